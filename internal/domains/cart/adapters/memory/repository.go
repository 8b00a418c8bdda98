package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps carts in memory. Carts never expire.
type Repository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewRepository() *Repository {
	return &Repository{carts: map[string]*domain.Cart{}}
}

func (r *Repository) Get(_ context.Context, id string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.carts[id].Clone(), nil
}

func (r *Repository) Save(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cannot save nil cart")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.ID] = cart.Clone()
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
	return nil
}
