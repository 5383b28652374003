package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPListenAddr)
	assert.Equal(t, ":50051", cfg.GRPCListenAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "calculator ", cfg.LogPrefix)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "HTTP_LISTEN_ADDR=127.0.0.1:9090\nSHUTDOWN_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPListenAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":50051", cfg.GRPCListenAddr, "незаданные ключи берутся по умолчанию")
}

// Переменные среды важнее файла .env.
func TestLoad_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GRPC_LISTEN_ADDR=:6000\n"), 0o600))
	t.Setenv("GRPC_LISTEN_ADDR", ":7000")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.GRPCListenAddr)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "0s")
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT must be positive")
}

func TestValidate(t *testing.T) {
	cfg := Config{HTTPListenAddr: ":1", GRPCListenAddr: ":2", ShutdownTimeout: time.Second}
	assert.NoError(t, cfg.Validate())

	noHTTP := cfg
	noHTTP.HTTPListenAddr = ""
	assert.ErrorContains(t, noHTTP.Validate(), "HTTP_LISTEN_ADDR")

	noGRPC := cfg
	noGRPC.GRPCListenAddr = ""
	assert.ErrorContains(t, noGRPC.Validate(), "GRPC_LISTEN_ADDR")
}
