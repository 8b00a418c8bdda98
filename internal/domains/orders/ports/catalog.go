package ports

import (
	"context"
	"errors"
)

var (
	// ErrUnknownMedicine is returned when a line references a batch the record store does not hold.
	ErrUnknownMedicine = errors.New("medicine not found")
	// ErrMedicineNotOrderable is returned for batches that are not customer-visible yet.
	ErrMedicineNotOrderable = errors.New("medicine is not available for ordering")
)

// ProductSnapshot is the name and unit price a line item freezes at ordering time.
type ProductSnapshot struct {
	MedicineID string
	Name       string
	Price      float64
}

// Catalog resolves customer-visible batches from the inventory record store.
type Catalog interface {
	Lookup(ctx context.Context, medicineID string) (*ProductSnapshot, error)
}
