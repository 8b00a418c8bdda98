package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps orders in process memory.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*projection.Projection[*domain.Order]
	now    func() time.Time
}

// NewRepository constructs an empty in-memory order store.
func NewRepository() *Repository {
	return &Repository{
		orders: map[string]*projection.Projection[*domain.Order]{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error) {
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := r.now()
	created := timestamp
	if existing, ok := r.orders[order.ID]; ok {
		created = existing.Metadata.CreatedAt
	}
	stored := projection.New(order.Clone(), created, timestamp)
	r.orders[order.ID] = stored
	return copyProjection(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyProjection(stored), nil
}

// List returns orders with the most recent order date first.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Order], 0, len(r.orders))
	for _, stored := range r.orders {
		list = append(list, copyProjection(stored))
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Entity, list[j].Entity
		if a.OrderDate.Equal(b.OrderDate) {
			return a.ID > b.ID
		}
		return a.OrderDate.After(b.OrderDate)
	})
	return list, nil
}

func copyProjection(p *projection.Projection[*domain.Order]) *projection.Projection[*domain.Order] {
	return projection.New(p.Entity.Clone(), p.Metadata.CreatedAt, p.Metadata.UpdatedAt)
}
