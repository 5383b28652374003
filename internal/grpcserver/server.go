package grpcserver

import (
	"context"
	"log"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"calculator_lab/internal/fault"
	localModels "calculator_lab/internal/models"
	"calculator_lab/internal/submission"
)

// AttemptIDMetadataKey: ключ метаданных, в котором клиент может передать свой ID попытки (UUID).
const AttemptIDMetadataKey = "x-attempt-id"

// Submitter - то, что умеет обработать одну отправку. Реализуется *submission.Handler.
type Submitter interface {
	Submit(ctx context.Context, req localModels.CalculationRequest) localModels.CalculationResponse
}

// GRPCServer - реализация CalculatorService поверх границы отправки.
// Классифицированные и неклассифицированные ошибки вычисления - это обычный ответ,
// gRPC-ошибкой становится только некорректный запрос.
type GRPCServer struct {
	Submitter Submitter
}

// NewGRPCServer создает реализацию сервиса.
func NewGRPCServer(submitter Submitter) *GRPCServer {
	return &GRPCServer{Submitter: submitter}
}

// NewServer собирает *grpc.Server с перехватом паник и зарегистрированным CalculatorService.
func NewServer(submitter Submitter, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(fault.UnaryServerInterceptor())}, opts...)
	s := grpc.NewServer(opts...)
	RegisterCalculatorServiceServer(s, NewGRPCServer(submitter))
	return s
}

// Evaluate: Реализация gRPC метода вычисления.
func (s *GRPCServer) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// Декодируем запрос
	req, err := requestFromStruct(in)
	if err != nil {
		log.Printf("Evaluate: некорректный запрос: %v", err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	// ID попытки из метаданных, если клиент его передал
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(AttemptIDMetadataKey); len(ids) > 0 && ids[0] != "" {
			if _, err := uuid.Parse(ids[0]); err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "%s must be a UUID", AttemptIDMetadataKey)
			}
			ctx = submission.ContextWithAttemptID(ctx, ids[0])
		}
	}

	// Вычисление; любой его исход - обычный ответ
	resp := s.Submitter.Submit(ctx, req)
	return responseToStruct(resp), nil
}
