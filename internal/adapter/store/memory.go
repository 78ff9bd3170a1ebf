package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
	"github.com/guillermoBallester/foodbank/internal/core/port"
)

// MemoryRequestStore implements port.RequestStore in process memory.
// Used when no DATABASE_URL is configured and in tests. Records are kept
// in insertion order, which is also creation order.
type MemoryRequestStore struct {
	mu      sync.RWMutex
	records []domain.FoodRequest
	now     func() time.Time
}

// NewMemoryRequestStore creates an empty in-memory store.
func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{now: time.Now}
}

// Create stores a copy of req with a fresh ID and timestamps.
func (s *MemoryRequestStore) Create(ctx context.Context, req *domain.FoodRequest) (*domain.FoodRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := req.Clone()
	rec.ID = uuid.New()
	rec.CreatedAt = s.now().UTC()
	rec.UpdatedAt = rec.CreatedAt

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	out := rec.Clone()
	return &out, nil
}

// FindOne returns the oldest matching request, or nil.
func (s *MemoryRequestStore) FindOne(ctx context.Context, filter port.RequestFilter) (*domain.FoodRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if filter.Matches(&s.records[i]) {
			out := s.records[i].Clone()
			return &out, nil
		}
	}
	return nil, nil
}

// Find returns all matching requests in creation order.
func (s *MemoryRequestStore) Find(ctx context.Context, filter port.RequestFilter) ([]domain.FoodRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.FoodRequest, 0)
	for i := range s.records {
		if filter.Matches(&s.records[i]) {
			result = append(result, s.records[i].Clone())
		}
	}
	return result, nil
}

// Delete removes the request with the given id.
func (s *MemoryRequestStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.records, func(r domain.FoodRequest) bool { return r.ID == id })
	if idx < 0 {
		return fmt.Errorf("food request %s: %w", id, domain.ErrNotFound)
	}
	s.records = slices.Delete(s.records, idx, idx+1)
	return nil
}

// Ping always succeeds.
func (s *MemoryRequestStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored records.
func (s *MemoryRequestStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
