package catalog

import (
	"context"
	"errors"
	"fmt"

	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	inventorydomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

// Getter is the slice of the inventory service the catalog needs.
type Getter interface {
	Get(ctx context.Context, input inventorytypes.MedicineIdentifier) (*inventorytypes.MedicineProjection, error)
}

// Inventory prices order and cart lines from approved batches.
type Inventory struct {
	medicines Getter
}

func NewInventory(medicines Getter) *Inventory {
	return &Inventory{medicines: medicines}
}

var _ ports.Catalog = (*Inventory)(nil)

func (c *Inventory) Lookup(ctx context.Context, medicineID string) (*ports.ProductSnapshot, error) {
	found, err := c.medicines.Get(ctx, inventorytypes.MedicineIdentifier{ID: medicineID})
	if err != nil {
		if errors.Is(err, inventoryports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ports.ErrUnknownMedicine, medicineID)
		}
		return nil, err
	}
	m := found.Entity
	if m.ListingStatus != inventorydomain.ListingApproved {
		return nil, fmt.Errorf("%w: %s is %s", ports.ErrMedicineNotOrderable, m.Name, m.ListingStatus)
	}
	return &ports.ProductSnapshot{MedicineID: m.ID, Name: m.Name, Price: m.Price}, nil
}
