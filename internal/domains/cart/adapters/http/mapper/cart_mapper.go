package mapper

import (
	"time"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

// AddItem is the payload of an add-to-cart call.
type AddItem struct {
	MedicineID string  `json:"id" binding:"required"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type UpdateQuantity struct {
	Quantity int `json:"quantity"`
}

// Checkout carries the shipping details of a cart checkout.
type Checkout struct {
	CustomerName    string `json:"customerName"`
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	MobileNumber    string `json:"mobileNumber" binding:"required"`
}

type Line struct {
	MedicineID string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Cart struct {
	ID        string               `json:"id"`
	Items     []Line               `json:"items"`
	ItemCount int                  `json:"itemCount"`
	Subtotal  float64              `json:"subtotal"`
	Tax       float64              `json:"tax"`
	Total     float64              `json:"total"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
	Notice    *notification.Notice `json:"notice,omitempty"`
}

func ToAddItemInput(cartID string, payload AddItem) types.AddItemInput {
	return types.AddItemInput{
		CartID:     cartID,
		MedicineID: payload.MedicineID,
		Name:       payload.Name,
		Price:      payload.Price,
		Quantity:   payload.Quantity,
	}
}

func FromView(v *types.CartView) Cart {
	if v == nil || v.Cart == nil {
		return Cart{Items: []Line{}}
	}
	out := Cart{
		ID:        v.Cart.ID,
		Items:     make([]Line, 0, len(v.Cart.Lines)),
		ItemCount: v.Cart.ItemCount(),
		Subtotal:  v.Subtotal,
		Tax:       v.Tax,
		Total:     v.Total,
	}
	if !v.Cart.UpdatedAt.IsZero() {
		updated := v.Cart.UpdatedAt
		out.UpdatedAt = &updated
	}
	for _, l := range v.Cart.Lines {
		out.Items = append(out.Items, Line(l))
	}
	return out
}

// FromResult maps a cart mutation including its notice.
func FromResult(r *types.CartResult) Cart {
	if r == nil {
		return FromView(nil)
	}
	out := FromView(r.View)
	out.Notice = r.Notice
	return out
}
