package httpserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/guillermoBallester/foodbank/internal/core/port"
)

// requestLogger is a chi-compatible middleware that emits structured log lines
// for every HTTP request using slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", chimw.GetReqID(r.Context())),
			slog.String("remote_addr", r.RemoteAddr),
		)
	})
}

// identityAuth resolves the Bearer token to a port.Identity and attaches it to
// the request context. Unauthenticated requests never reach the handlers.
func (s *Server) identityAuth(authenticator port.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			identity, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				s.logger.Error("authentication error", slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, msgServerError)
				return
			}
			if identity == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := port.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
