package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
	"github.com/guillermoBallester/foodbank/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(owner string, names ...string) *domain.FoodRequest {
	return &domain.FoodRequest{
		ItemNames:      domain.ItemNames(names),
		ItemQuantity:   json.RawMessage(`10`),
		RequesterName:  "X",
		RequesterEmail: "x@x.com",
		RequesterPhone: "123",
		Owner:          owner,
	}
}

func TestMemory_CreateAssignsIDAndTimestamps(t *testing.T) {
	s := NewMemoryRequestStore()

	rec, err := s.Create(context.Background(), newRequest("ngo-a", "Rice"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.Equal(t, 1, s.Len())
}

func TestMemory_ReturnedRecordsAreCopies(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx := context.Background()

	rec, err := s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)
	rec.ItemNames[0] = "Tampered"

	got, err := s.Find(ctx, port.RequestFilter{Owner: "ngo-a"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ItemNames{"Rice"}, got[0].ItemNames)
}

func TestMemory_FindScopesByOwner(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)
	_, err = s.Create(ctx, newRequest("ngo-b", "Beans"))
	require.NoError(t, err)

	got, err := s.Find(ctx, port.RequestFilter{Owner: "ngo-b"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ngo-b", got[0].Owner)

	got, err = s.Find(ctx, port.RequestFilter{Owner: "ngo-c"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemory_FindOneReturnsOldestMatch(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx := context.Background()

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first, err := s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)
	_, err = s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)

	got, err := s.FindOne(ctx, port.RequestFilter{Owner: "ngo-a", ItemNames: domain.ItemNames{"Rice"}})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}

func TestMemory_FindOneNoMatch(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)

	got, err := s.FindOne(ctx, port.RequestFilter{Owner: "ngo-b", ItemNames: domain.ItemNames{"Rice"}})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.FindOne(ctx, port.RequestFilter{Owner: "ngo-a", ItemNames: domain.ItemNames{"Rice", "Beans"}})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_DeleteRemovesExactlyOne(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx := context.Background()

	a, err := s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)
	_, err = s.Create(ctx, newRequest("ngo-a", "Rice"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.Equal(t, 1, s.Len())

	err = s.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestMemory_CancelledContext(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, newRequest("ngo-a", "Rice"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.Len())
}

func TestMemory_ConcurrentCreates(t *testing.T) {
	s := NewMemoryRequestStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, newRequest("ngo-a", "Rice"))
		}()
	}
	wg.Wait()

	got, err := s.Find(ctx, port.RequestFilter{Owner: "ngo-a"})
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
