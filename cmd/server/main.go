package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	localConfig "calculator_lab/internal/config"
	"calculator_lab/internal/fault"
	"calculator_lab/internal/grpcserver"
	localHandlers "calculator_lab/internal/handlers"
	"calculator_lab/internal/submission"
)

func main() {
	// 1. Загрузка конфигурации.
	log.Println("Запуск сервера калькулятора...")
	cfg, err := localConfig.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	log.SetPrefix(cfg.LogPrefix)

	// 2. Обработчик ошибок процесса регистрируется один раз, до запуска любых горутин.
	fault.Install(log.Default(), fault.NopTracker{})

	// 3. Граница отправки и общая поверхность отображения.
	surface := &submission.Surface{}
	submitter := submission.NewHandler(submission.WithDisplay(surface))

	// 4. HTTP API.
	apiService := localHandlers.NewAPIService(submitter, surface)
	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      apiService.NewRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5. gRPC сервер.
	grpcServer := grpcserver.NewServer(submitter)
	lis, err := net.Listen("tcp", cfg.GRPCListenAddr)
	if err != nil {
		log.Fatalf("Ошибка при создании слушателя для gRPC: %v", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		log.Printf("Запуск HTTP-сервера на %s...", cfg.HTTPListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Printf("Запуск gRPC-сервера на %s...", cfg.GRPCListenAddr)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	go func() {
		if err := g.Wait(); err != nil {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	// 6. Ожидание сигнала завершения и graceful shutdown.
	log.Println("Сервер запущен и ожидает сигнала завершения (Ctrl+C, SIGTERM)...")
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Остановка HTTP сервера...")
				return httpServer.Shutdown(ctx)
			},
			"grpc-server": func(ctx context.Context) error {
				log.Println("Остановка gRPC сервера...")
				stopGRPC(ctx, grpcServer)
				return nil
			},
		},
	)

	exitCode := <-wait
	log.Printf("Сервер калькулятора остановлен с кодом %d.", exitCode)
	os.Exit(exitCode)
}

// stopGRPC дожидается завершения текущих вызовов, но не дольше, чем позволяет ctx.
func stopGRPC(ctx context.Context, s *grpc.Server) {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		log.Println("gRPC server плавно остановлен.")
	case <-ctx.Done():
		log.Println("gRPC server не успел остановиться, принудительная остановка.")
		s.Stop()
	}
}
