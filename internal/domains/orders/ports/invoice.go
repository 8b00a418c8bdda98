package ports

import (
	"errors"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
)

// ErrInvoicesUnavailable is returned when no renderer is wired.
var ErrInvoicesUnavailable = errors.New("invoice rendering not configured")

// InvoiceRenderer turns an order into a printable document.
type InvoiceRenderer interface {
	Render(order *domain.Order) ([]byte, error)
	ContentType() string
}
