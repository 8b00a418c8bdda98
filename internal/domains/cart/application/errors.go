package application

import (
	"errors"
	"fmt"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/domain"
	ordersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

var (
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrNotFound is returned when the addressed cart line does not exist.
	ErrNotFound = errors.New("cart item not found")
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrLineNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, domain.ErrMissingCartID),
		errors.Is(err, domain.ErrMissingMedicineID),
		errors.Is(err, domain.ErrMissingItemName),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, ordersports.ErrMedicineNotOrderable):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
