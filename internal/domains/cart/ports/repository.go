package ports

import (
	"context"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/domain"
)

// Repository stores carts by id. Get returns nil, nil when no cart exists yet.
type Repository interface {
	Get(ctx context.Context, id string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, id string) error
}
