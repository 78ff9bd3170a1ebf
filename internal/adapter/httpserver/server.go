package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/guillermoBallester/foodbank/internal/core/port"
	"github.com/guillermoBallester/foodbank/internal/core/service"
)

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr        string
	CORSOrigin        string
	RateLimit         float64 // requests per minute per caller; 0 disables
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// Server wraps the HTTP server with chi routing, middleware, and graceful shutdown.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	limiter    *callerRateLimiter
	logger     *slog.Logger
	cfg        Config
}

// New creates a new Server wired with the given dependencies.
func New(cfg Config, requestSvc *service.FoodRequestService, authenticator port.Authenticator, logger *slog.Logger) *Server {
	s := &Server{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newCallerRateLimiter(cfg.RateLimit)
	}

	s.setupRoutes(requestSvc, authenticator)

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// Returns nil if the server was shut down gracefully via Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
