package ledger

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

// ConfirmLedgerActivityName settles a single medicine write on the ledger.
const ConfirmLedgerActivityName = "inventory.activities.ConfirmLedger"

// ConfirmationOutcome reports whether the settlement changed the record.
type ConfirmationOutcome struct {
	Applied bool
}

// Activities groups activities that operate on the inventory bounded context.
type Activities struct {
	service inventoryports.Service
}

// NewActivities wires the inventory service into the Temporal activities bundle.
func NewActivities(service inventoryports.Service) *Activities {
	return &Activities{service: service}
}

// ConfirmLedger applies the settlement. Superseded or deleted targets complete without retry.
func (a *Activities) ConfirmLedger(ctx context.Context, input inventorytypes.LedgerConfirmationInput) (*ConfirmationOutcome, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("ledger confirmation activity not initialized", "medicineId", input.MedicineID)
		return nil, errors.New("ledger confirmation activity not initialized")
	}
	logger.Info("ConfirmLedger activity started", "medicineId", input.MedicineID, "generation", input.Generation)
	_, err := a.service.ConfirmLedger(ctx, input)
	if errors.Is(err, inventoryports.ErrStaleConfirmation) || errors.Is(err, inventoryports.ErrNotFound) {
		logger.Info("ConfirmLedger skipped", "medicineId", input.MedicineID, "generation", input.Generation, "reason", err.Error())
		return &ConfirmationOutcome{Applied: false}, nil
	}
	if err != nil {
		logger.Error("ConfirmLedger activity failed", "medicineId", input.MedicineID, "error", err)
		return nil, err
	}
	logger.Info("ConfirmLedger activity completed", "medicineId", input.MedicineID, "generation", input.Generation)
	return &ConfirmationOutcome{Applied: true}, nil
}
