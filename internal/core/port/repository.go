package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
)

// RequestFilter selects food requests. Owner is always matched; a nil
// ItemNames matches any item list.
type RequestFilter struct {
	Owner     string
	ItemNames domain.ItemNames
}

// Matches reports whether the request satisfies the filter.
func (f RequestFilter) Matches(req *domain.FoodRequest) bool {
	if req.Owner != f.Owner {
		return false
	}
	return f.ItemNames == nil || req.ItemNames.Equal(f.ItemNames)
}

// RequestStore persists food requests.
type RequestStore interface {
	// Create inserts the request and returns the stored record with its
	// ID and timestamps populated.
	Create(ctx context.Context, req *domain.FoodRequest) (*domain.FoodRequest, error)

	// FindOne returns the oldest request matching the filter.
	// Returns (nil, nil) when nothing matches.
	FindOne(ctx context.Context, filter RequestFilter) (*domain.FoodRequest, error)

	// Find returns every request matching the filter, oldest first.
	Find(ctx context.Context, filter RequestFilter) ([]domain.FoodRequest, error)

	// Delete removes a single request. Returns domain.ErrNotFound when
	// the id does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
