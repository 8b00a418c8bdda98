package mapper

import (
	"time"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

// LineItem is one order line on the wire.
type LineItem struct {
	MedicineID string  `json:"medicineId" binding:"required"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// CreateOrder is the checkout payload.
type CreateOrder struct {
	CustomerName    string     `json:"customerName" binding:"required"`
	Items           []LineItem `json:"items" binding:"required"`
	ShippingAddress string     `json:"shippingAddress" binding:"required"`
	MobileNumber    string     `json:"mobileNumber" binding:"required"`
}

// UpdateOrderStatus carries the target status.
type UpdateOrderStatus struct {
	Status string `json:"status" binding:"required"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customerId,omitempty"`
	CustomerName    string     `json:"customerName"`
	Items           []LineItem `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	Status          string     `json:"status"`
	OrderDate       time.Time  `json:"orderDate"`
	ShippingAddress string     `json:"shippingAddress"`
	MobileNumber    string     `json:"mobileNumber"`
}

// StatusUpdate is the response of a status change.
type StatusUpdate struct {
	Order  Order                `json:"order"`
	Notice *notification.Notice `json:"notice,omitempty"`
}

// ToCreateInput maps a checkout payload. customerID comes from the authenticated caller, if any.
func ToCreateInput(payload CreateOrder, customerID, idempotencyKey string) types.CreateOrderInput {
	items := make([]types.LineItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, types.LineItemInput(item))
	}
	return types.CreateOrderInput{
		CustomerID:      customerID,
		CustomerName:    payload.CustomerName,
		Items:           items,
		ShippingAddress: payload.ShippingAddress,
		MobileNumber:    payload.MobileNumber,
		IdempotencyKey:  idempotencyKey,
	}
}

// FromProjection maps an order projection to its HTTP form.
func FromProjection(p *types.OrderProjection) Order {
	if p == nil || p.Entity == nil {
		return Order{}
	}
	o := p.Entity
	items := make([]LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItem(item))
	}
	tax := o.Tax()
	return Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Items:           items,
		Subtotal:        o.Total - tax,
		Tax:             tax,
		Total:           o.Total,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		MobileNumber:    o.MobileNumber,
	}
}

func FromProjectionList(list []*types.OrderProjection) []Order {
	out := make([]Order, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}

func FromStatusUpdate(result *types.StatusUpdateResult) StatusUpdate {
	if result == nil {
		return StatusUpdate{}
	}
	return StatusUpdate{Order: FromProjection(result.Order), Notice: result.Notice}
}
