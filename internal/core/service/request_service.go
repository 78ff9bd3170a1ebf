package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guillermoBallester/foodbank/internal/core/domain"
	"github.com/guillermoBallester/foodbank/internal/core/port"
)

// FoodRequestService lets NGOs create, delete and list their own food requests.
// Every operation authorizes the caller before touching the store.
type FoodRequestService struct {
	store     port.RequestStore
	validator *domain.RequestValidator
	logger    *slog.Logger
}

// NewFoodRequestService creates a new FoodRequestService.
func NewFoodRequestService(store port.RequestStore, validator *domain.RequestValidator, logger *slog.Logger) *FoodRequestService {
	return &FoodRequestService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create stores a new food request owned by the caller.
func (s *FoodRequestService) Create(ctx context.Context, identity *port.Identity, in domain.CreateInput) (*domain.FoodRequest, error) {
	if err := authorize(identity); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	rec, err := s.store.Create(ctx, &domain.FoodRequest{
		ItemNames:      in.ItemNames,
		ItemQuantity:   in.ItemQuantity,
		RequesterName:  string(in.RequesterName),
		RequesterEmail: string(in.RequesterEmail),
		RequesterPhone: string(in.RequesterPhone),
		Owner:          identity.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating food request: %w", err)
	}

	s.logger.Debug("food request created",
		slog.String("id", rec.ID.String()),
		slog.String("owner", rec.Owner),
	)
	return rec, nil
}

// DeleteByName removes the caller's oldest request whose item names match.
func (s *FoodRequestService) DeleteByName(ctx context.Context, identity *port.Identity, in domain.DeleteInput) error {
	if err := authorize(identity); err != nil {
		return err
	}
	if err := s.validator.Validate(in); err != nil {
		return err
	}

	rec, err := s.store.FindOne(ctx, port.RequestFilter{
		Owner:     identity.ID,
		ItemNames: in.ItemNames,
	})
	if err != nil {
		return fmt.Errorf("finding food request: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("food request %v: %w", in.ItemNames, domain.ErrNotFound)
	}

	// A concurrent delete surfaces as ErrNotFound from the store.
	if err := s.store.Delete(ctx, rec.ID); err != nil {
		return fmt.Errorf("deleting food request: %w", err)
	}

	s.logger.Debug("food request deleted",
		slog.String("id", rec.ID.String()),
		slog.String("owner", rec.Owner),
	)
	return nil
}

// ListOwned returns every request created by the caller. Never returns a nil slice.
func (s *FoodRequestService) ListOwned(ctx context.Context, identity *port.Identity) ([]domain.FoodRequest, error) {
	if err := authorize(identity); err != nil {
		return nil, err
	}

	recs, err := s.store.Find(ctx, port.RequestFilter{Owner: identity.ID})
	if err != nil {
		return nil, fmt.Errorf("listing food requests: %w", err)
	}
	if recs == nil {
		recs = []domain.FoodRequest{}
	}
	return recs, nil
}

// Ready reports whether the backing store is reachable.
func (s *FoodRequestService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func authorize(identity *port.Identity) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if !identity.HasRole(domain.RoleNGO) {
		return fmt.Errorf("role %q: %w", identity.Role, domain.ErrForbidden)
	}
	return nil
}
