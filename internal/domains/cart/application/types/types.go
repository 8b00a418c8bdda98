package types

import (
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/domain"
	orderstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

// CartView is the cart with its derived amounts.
type CartView struct {
	Cart     *domain.Cart
	Subtotal float64
	Tax      float64
	Total    float64
}

type CartIdentifier struct {
	CartID string
}

type AddItemInput struct {
	CartID     string
	MedicineID string
	Name       string
	Price      float64
	Quantity   int
}

type UpdateQuantityInput struct {
	CartID     string
	MedicineID string
	Quantity   int
}

type RemoveItemInput struct {
	CartID     string
	MedicineID string
}

// CartResult is a mutated cart plus the notice shown to the shopper, if any.
type CartResult struct {
	View   *CartView
	Notice *notification.Notice
}

// CheckoutInput submits the cart as an order. CustomerName falls back to a guest label.
type CheckoutInput struct {
	CartID          string
	CustomerID      string
	CustomerName    string
	ShippingAddress string
	MobileNumber    string
	IdempotencyKey  string
}

type CheckoutResult struct {
	Order  *orderstypes.OrderProjection
	Notice *notification.Notice
}
