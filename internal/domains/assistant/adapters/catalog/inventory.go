package catalog

import (
	"context"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	inventorydomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
)

// Lister is the slice of the inventory service the catalog needs.
type Lister interface {
	FindByListingStatus(ctx context.Context, input inventorytypes.FindByListingStatusInput) ([]*inventorytypes.MedicineProjection, error)
}

// Inventory exposes approved listings to the assistant.
type Inventory struct {
	medicines Lister
}

func NewInventory(medicines Lister) *Inventory {
	return &Inventory{medicines: medicines}
}

var _ ports.Catalog = (*Inventory)(nil)

func (c *Inventory) Snapshot(ctx context.Context) ([]domain.CatalogEntry, error) {
	listed, err := c.medicines.FindByListingStatus(ctx, inventorytypes.FindByListingStatusInput{
		Statuses: []string{string(inventorydomain.ListingApproved)},
	})
	if err != nil {
		return nil, err
	}
	entries := make([]domain.CatalogEntry, 0, len(listed))
	for _, p := range listed {
		if p == nil || p.Entity == nil {
			continue
		}
		m := p.Entity
		entries = append(entries, domain.CatalogEntry{
			Name:         m.Name,
			Manufacturer: m.Manufacturer,
			BatchNo:      m.BatchNo,
			ExpDate:      m.ExpDate,
			Description:  m.Description,
			Quantity:     m.Quantity,
			StockStatus:  string(m.StockStatus()),
		})
	}
	return entries, nil
}
