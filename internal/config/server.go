package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ServerConfig holds configuration for the food request server.
type ServerConfig struct {
	ListenAddr  string
	DatabaseURL string // empty selects the in-memory store
	JWTSecret   string
	JWTIssuer   string
	LogLevel    slog.Level
	CORSOrigin  string

	// RateLimit is requests per minute per caller; 0 disables limiting.
	RateLimit float64

	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	QueryTimeout      time.Duration
}

// LoadServer loads server configuration from environment variables.
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		ListenAddr:  ":8080",
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
		LogLevel:    slog.LevelInfo,
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	var err error
	if cfg.RateLimit, err = floatEnv("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.ReadHeaderTimeout, err = durationEnv("READ_HEADER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = durationEnv("IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.QueryTimeout, err = durationEnv("QUERY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}
