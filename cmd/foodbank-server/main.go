package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/guillermoBallester/foodbank/internal/adapter/auth"
	"github.com/guillermoBallester/foodbank/internal/adapter/httpserver"
	"github.com/guillermoBallester/foodbank/internal/adapter/store"
	"github.com/guillermoBallester/foodbank/internal/config"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
	"github.com/guillermoBallester/foodbank/internal/core/port"
	"github.com/guillermoBallester/foodbank/internal/core/service"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	logger.Info("starting foodbank-server",
		slog.String("version", version),
		slog.String("log_level", cfg.LogLevel.String()),
		slog.String("listen_addr", cfg.ListenAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var requestStore port.RequestStore
	if cfg.DatabaseURL != "" {
		if err := store.Migrate(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("database migrations applied")

		pool, err := store.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		requestStore = store.NewPostgresRequestStore(pool, cfg.QueryTimeout)
		logger.Info("using postgres request store")
	} else {
		requestStore = store.NewMemoryRequestStore()
		logger.Warn("DATABASE_URL not set, using in-memory request store")
	}

	authenticator := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, logger)
	requestSvc := service.NewFoodRequestService(requestStore, domain.NewRequestValidator(), logger)

	srv := httpserver.New(httpserver.Config{
		ListenAddr:        cfg.ListenAddr,
		CORSOrigin:        cfg.CORSOrigin,
		RateLimit:         cfg.RateLimit,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}, requestSvc, authenticator, logger)

	// Second signal during shutdown = hard exit.
	go func(done <-chan struct{}) {
		<-done
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		logger.Warn("forced shutdown", slog.String("signal", sig.String()))
		os.Exit(1)
	}(ctx.Done())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.ListenAndServe()
	})

	// Shutdown trigger: a signal or a failed component cancels ctx.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
