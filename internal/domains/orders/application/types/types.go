package types

import (
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

// OrderProjection is the stored order plus persistence metadata.
type OrderProjection = projection.Projection[*domain.Order]

// LineItemInput is one requested line of a checkout.
type LineItemInput struct {
	MedicineID string
	Name       string
	Quantity   int
	Price      float64
}

// CreateOrderInput captures a checkout submission.
type CreateOrderInput struct {
	CustomerID      string
	CustomerName    string
	Items           []LineItemInput
	ShippingAddress string
	MobileNumber    string
	IdempotencyKey  string
}

// UpdateOrderStatusInput moves an order to a new status.
type UpdateOrderStatusInput struct {
	ID     string
	Status string
}

// OrderIdentifier addresses a single order.
type OrderIdentifier struct {
	ID string
}

// StatusUpdateResult pairs the updated order with the notification shown to the operator.
type StatusUpdateResult struct {
	Order  *OrderProjection
	Notice *notification.Notice
}

// Invoice is a rendered order document.
type Invoice struct {
	OrderID     string
	Filename    string
	ContentType string
	Content     []byte
}
