package application

import (
	"errors"
	"fmt"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid medicine input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidManufacturer) ||
		errors.Is(err, domain.ErrEmptyBatchNo) ||
		errors.Is(err, domain.ErrInvalidDescription) ||
		errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrMissingMfgDate) ||
		errors.Is(err, domain.ErrMissingExpDate) ||
		errors.Is(err, domain.ErrInvalidSupplyChain) ||
		errors.Is(err, domain.ErrInvalidListing) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
