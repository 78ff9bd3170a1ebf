package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
	"github.com/guillermoBallester/foodbank/internal/core/port"
	"github.com/guillermoBallester/foodbank/internal/core/service"
)

const (
	msgCreated        = "Food request created successfully!"
	msgDeleted        = "Food request deleted successfully"
	msgServerError    = "Server error"
	msgMissingFields  = "Please fill all the fields"
	msgMissingName    = "Item name is required"
	msgNotFound       = "Food request not found"
	msgForbidCreate   = "Access denied. Only NGOs can request food."
	msgForbidDelete   = "Access denied. Only NGOs can delete their requests."
	msgForbidList     = "Access denied. Only NGOs can view food requests."
	maxRequestBodyLen = 1 << 20
)

type createRequestResponse struct {
	Message string              `json:"message"`
	Request *domain.FoodRequest `json:"request"`
}

type deleteRequestResponse struct {
	Message string `json:"message"`
}

type listRequestsResponse struct {
	Data []domain.FoodRequest `json:"data"`
}

// errorMessages holds the client-facing text for each failure of one endpoint.
type errorMessages struct {
	forbidden string
	invalid   string
}

func (s *Server) handleCreateRequest(requestSvc *service.FoodRequestService) http.HandlerFunc {
	msgs := errorMessages{forbidden: msgForbidCreate, invalid: msgMissingFields}
	return func(w http.ResponseWriter, r *http.Request) {
		in := decodeBody[domain.CreateInput](s.logger, w, r)

		rec, err := requestSvc.Create(r.Context(), port.IdentityFromContext(r.Context()), in)
		if err != nil {
			s.writeServiceError(w, r, "create food request", err, msgs)
			return
		}

		writeJSON(w, http.StatusCreated, createRequestResponse{
			Message: msgCreated,
			Request: rec,
		})
	}
}

func (s *Server) handleDeleteRequest(requestSvc *service.FoodRequestService) http.HandlerFunc {
	msgs := errorMessages{forbidden: msgForbidDelete, invalid: msgMissingName}
	return func(w http.ResponseWriter, r *http.Request) {
		in := decodeBody[domain.DeleteInput](s.logger, w, r)

		if err := requestSvc.DeleteByName(r.Context(), port.IdentityFromContext(r.Context()), in); err != nil {
			s.writeServiceError(w, r, "delete food request", err, msgs)
			return
		}

		writeJSON(w, http.StatusOK, deleteRequestResponse{Message: msgDeleted})
	}
}

func (s *Server) handleListRequests(requestSvc *service.FoodRequestService) http.HandlerFunc {
	msgs := errorMessages{forbidden: msgForbidList}
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := requestSvc.ListOwned(r.Context(), port.IdentityFromContext(r.Context()))
		if err != nil {
			s.writeServiceError(w, r, "list food requests", err, msgs)
			return
		}

		writeJSON(w, http.StatusOK, listRequestsResponse{Data: recs})
	}
}

// decodeBody reads a JSON body into T. An empty or malformed body yields the
// zero T so the service still reports the role check before missing fields.
// Decode failures are logged since the client only sees the generic 400.
func decodeBody[T any](logger *slog.Logger, w http.ResponseWriter, r *http.Request) T {
	var in T
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyLen)
	if err := json.NewDecoder(body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		logger.Info("invalid request body",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
			slog.String("request_id", chimw.GetReqID(r.Context())),
		)
		var zero T
		return zero
	}
	return in
}

// writeServiceError maps a service error to a status code. Internal error
// details are logged, never returned to the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error, msgs errorMessages) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, msgs.forbidden)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgs.invalid)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		s.logger.Error("failed to "+op,
			slog.String("error", err.Error()),
			slog.String("request_id", chimw.GetReqID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}
