package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, float64(120), cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
}

func TestLoadServer_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadServer_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "foodbank")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/foodbank")
	t.Setenv("CORS_ORIGIN", "https://app.example.org")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("QUERY_TIMEOUT", "2s")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "foodbank", cfg.JWTIssuer)
	assert.Equal(t, "postgres://localhost/foodbank", cfg.DatabaseURL)
	assert.Equal(t, "https://app.example.org", cfg.CORSOrigin)
	assert.Equal(t, float64(0), cfg.RateLimit)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout)
}

func TestLoadServer_LogLevel(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadServer_InvalidLogLevel(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "bogus")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoadServer_InvalidRateLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT", "-5")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT")
}

func TestLoadServer_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoadServer_NonPositiveDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("IDLE_TIMEOUT", "0s")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IDLE_TIMEOUT")
}

func TestLoadDotEnv_DoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOODBANK_TEST_FROM_FILE=file\nFOODBANK_TEST_PRESET=file\n"), 0o600))

	t.Setenv("FOODBANK_TEST_PRESET", "env")
	t.Cleanup(func() { _ = os.Unsetenv("FOODBANK_TEST_FROM_FILE") })

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "file", os.Getenv("FOODBANK_TEST_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("FOODBANK_TEST_PRESET"))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
