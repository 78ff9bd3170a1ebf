package httpserver

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/guillermoBallester/foodbank/internal/core/port"
	"github.com/guillermoBallester/foodbank/internal/core/service"
)

func (s *Server) setupRoutes(requestSvc *service.FoodRequestService, authenticator port.Authenticator) {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	if s.cfg.CORSOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{s.cfg.CORSOrigin},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health probes
	r.Get("/health", s.handleHealth())
	r.Get("/ready", s.handleReady(requestSvc))

	// Food requests are served at the root and under /api/requests for
	// deployments behind a path-prefixing gateway.
	requests := func(rr chi.Router) {
		rr.Use(s.identityAuth(authenticator))
		if s.limiter != nil {
			rr.Use(s.limiter.Middleware)
		}
		rr.Post("/", s.handleCreateRequest(requestSvc))
		rr.Delete("/", s.handleDeleteRequest(requestSvc))
		rr.Get("/", s.handleListRequests(requestSvc))
	}
	r.Group(requests)
	r.Route("/api/requests", requests)

	s.router = r
}
