package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorymemory "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application"
	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
)

func TestSnapshotOnlyListsApprovedBatches(t *testing.T) {
	ctx := context.Background()
	svc := inventoryapp.NewService(inventorymemory.NewRepository())

	create := func(name string, qty int) string {
		t.Helper()
		p, err := svc.Create(ctx, inventorytypes.CreateMedicineInput{
			Name:         name,
			Manufacturer: "HealthCorp",
			BatchNo:      name + "-B1",
			Description:  "Used for testing the assistant catalog.",
			MfgDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ExpDate:      time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			Quantity:     qty,
			Price:        4.5,
		})
		require.NoError(t, err)
		return p.Entity.ID
	}
	approved := create("Paracetamol", 20)
	create("Ibuprofen", 100)
	_, err := svc.Approve(ctx, inventorytypes.MedicineIdentifier{ID: approved})
	require.NoError(t, err)

	entries, err := NewInventory(svc).Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Paracetamol", entries[0].Name)
	assert.Equal(t, "Paracetamol-B1", entries[0].BatchNo)
	assert.Equal(t, 20, entries[0].Quantity)
	assert.Equal(t, "Low Stock", entries[0].StockStatus)
}
