package ports

import (
	"context"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
)

// Service exposes order use cases to adapters.
type Service interface {
	Create(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error)
	UpdateStatus(ctx context.Context, input types.UpdateOrderStatusInput) (*types.StatusUpdateResult, error)
	Get(ctx context.Context, input types.OrderIdentifier) (*types.OrderProjection, error)
	List(ctx context.Context) ([]*types.OrderProjection, error)
	Invoice(ctx context.Context, input types.OrderIdentifier) (*types.Invoice, error)
}
