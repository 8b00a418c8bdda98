package ports

import (
	"context"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application/types"
	orderstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	ordersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

// Service exposes cart use cases to adapters.
type Service interface {
	Get(ctx context.Context, input types.CartIdentifier) (*types.CartView, error)
	AddItem(ctx context.Context, input types.AddItemInput) (*types.CartResult, error)
	UpdateQuantity(ctx context.Context, input types.UpdateQuantityInput) (*types.CartResult, error)
	RemoveItem(ctx context.Context, input types.RemoveItemInput) (*types.CartResult, error)
	Clear(ctx context.Context, input types.CartIdentifier) error
	Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error)
}

// OrderPlacer turns cart lines into an order.
type OrderPlacer interface {
	Create(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.OrderProjection, error)
}

// Catalog snapshots the name and price of a batch when it is added to a cart.
type Catalog interface {
	Lookup(ctx context.Context, medicineID string) (*ordersports.ProductSnapshot, error)
}
