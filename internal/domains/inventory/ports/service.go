package ports

import (
	"context"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
)

// Service defines the inventory use cases exposed to adapters.
type Service interface {
	Create(ctx context.Context, input types.CreateMedicineInput) (*types.MedicineProjection, error)
	Update(ctx context.Context, input types.UpdateMedicineInput) (*types.MedicineProjection, error)
	Approve(ctx context.Context, input types.MedicineIdentifier) (*types.MedicineProjection, error)
	Delete(ctx context.Context, input types.MedicineIdentifier) error
	Get(ctx context.Context, input types.MedicineIdentifier) (*types.MedicineProjection, error)
	List(ctx context.Context) ([]*types.MedicineProjection, error)
	FindByListingStatus(ctx context.Context, input types.FindByListingStatusInput) ([]*types.MedicineProjection, error)
	ConfirmLedger(ctx context.Context, input types.LedgerConfirmationInput) (*types.MedicineProjection, error)
	LedgerHealth(ctx context.Context) (*types.LedgerHandshake, error)
}
