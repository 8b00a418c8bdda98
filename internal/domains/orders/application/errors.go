package application

import (
	"errors"
	"fmt"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidItemQuantity) ||
		errors.Is(err, domain.ErrNegativeItemPrice) ||
		errors.Is(err, domain.ErrMissingMedicineID) ||
		errors.Is(err, domain.ErrMissingItemName) ||
		errors.Is(err, domain.ErrMissingCustomerName) ||
		errors.Is(err, domain.ErrInvalidShippingAddress) ||
		errors.Is(err, domain.ErrInvalidMobileNumber) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, ports.ErrMedicineNotOrderable) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
