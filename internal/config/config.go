package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config: Конфигурация сервера калькулятора.
// Читается из файла .env в текущей директории и из переменных среды.
type Config struct {
	HTTPListenAddr  string        `mapstructure:"HTTP_LISTEN_ADDR"` // Адрес HTTP API
	GRPCListenAddr  string        `mapstructure:"GRPC_LISTEN_ADDR"` // Адрес gRPC сервиса
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"` // Сколько ждать остановки серверов
	LogPrefix       string        `mapstructure:"LOG_PREFIX"`       // Префикс строк стандартного логгера
}

// LoadConfig читает конфигурацию из .env в текущей директории и переменных среды.
func LoadConfig() (*Config, error) {
	return Load(".")
}

// Load читает конфигурацию из файла .env в каталоге dir (если он есть) и переменных среды.
// Переменные среды имеют приоритет над файлом.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)    // Путь к каталогу с файлом конфигурации
	v.SetConfigName(".env") // Имя файла конфигурации
	v.SetConfigType("env")  // Формат файла конфигурации
	v.AutomaticEnv()        // Читаем переменные среды

	// Значения по умолчанию
	v.SetDefault("HTTP_LISTEN_ADDR", ":8080")
	v.SetDefault("GRPC_LISTEN_ADDR", ":50051")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOG_PREFIX", "calculator ")

	// Отсутствие файла - не ошибка, тогда работают только переменные среды и значения по умолчанию.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Распаковываем конфигурацию в структуру
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("невозможно распаковать конфигурацию: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Конфигурация успешно загружена: %+v", cfg)
	return cfg, nil
}

// Validate проверяет обязательные значения.
func (c *Config) Validate() error {
	if c.HTTPListenAddr == "" {
		return fmt.Errorf("HTTP_LISTEN_ADDR is not set in configuration")
	}
	if c.GRPCListenAddr == "" {
		return fmt.Errorf("GRPC_LISTEN_ADDR is not set in configuration")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
