package ports

import (
	"context"
	"errors"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error)
	// List returns orders newest first.
	List(ctx context.Context) ([]*projection.Projection[*domain.Order], error)
}
