package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/guillermoBallester/foodbank/internal/core/service"
)

// handleHealth returns a liveness probe handler. Always responds 200 if the
// server process is running.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleReady returns 200 when the request store is reachable, 503 otherwise.
func (s *Server) handleReady(requestSvc *service.FoodRequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requestSvc.Ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
