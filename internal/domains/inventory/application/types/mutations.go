package types

import "time"

// CreateMedicineInput captures a new batch submission.
type CreateMedicineInput struct {
	Name              string
	Manufacturer      string
	BatchNo           string
	Description       string
	MfgDate           time.Time
	ExpDate           time.Time
	Quantity          int
	Price             float64
	SupplyChainStatus string
}

// UpdateMedicineInput is a partial edit; nil fields are left untouched.
type UpdateMedicineInput struct {
	ID                string
	Name              *string
	Manufacturer      *string
	BatchNo           *string
	Description       *string
	MfgDate           *time.Time
	ExpDate           *time.Time
	Quantity          *int
	Price             *float64
	SupplyChainStatus *string
}

// LedgerConfirmationInput identifies the write a settlement was scheduled for.
type LedgerConfirmationInput struct {
	MedicineID string
	Generation int64
}
