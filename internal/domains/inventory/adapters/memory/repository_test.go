package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

func newMedicine(t *testing.T, id, name string) *domain.Medicine {
	t.Helper()
	m, err := domain.NewMedicine(id, domain.Details{
		Name:         name,
		Manufacturer: "Acme Pharma",
		BatchNo:      "B-" + id,
		Description:  "Pain relief tablets",
		MfgDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     10,
		Price:        4.5,
	}, time.Now())
	require.NoError(t, err)
	return m
}

func TestRepositorySavePreservesCreatedAt(t *testing.T) {
	repo := NewRepository()
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return first })
	ctx := context.Background()

	m := newMedicine(t, "mdc-1", "Paracetamol")
	_, err := repo.Save(ctx, m)
	require.NoError(t, err)

	later := first.Add(time.Hour)
	repo.WithClock(func() time.Time { return later })
	saved, err := repo.Save(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, first, saved.Metadata.CreatedAt)
	assert.Equal(t, later, saved.Metadata.UpdatedAt)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, newMedicine(t, "mdc-1", "Paracetamol"))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "mdc-1")
	require.NoError(t, err)
	got.Entity.Quantity = 999
	got.Entity.History = nil

	again, err := repo.GetByID(ctx, "mdc-1")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Entity.Quantity)
	assert.Len(t, again.Entity.History, 1)
}

func TestRepositoryListSortedAndFiltered(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	approved := newMedicine(t, "mdc-2", "Amoxicillin")
	approved.Approve(time.Now())
	for _, m := range []*domain.Medicine{newMedicine(t, "mdc-1", "Paracetamol"), approved, newMedicine(t, "mdc-3", "Ibuprofen")} {
		_, err := repo.Save(ctx, m)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Amoxicillin", list[0].Entity.Name)
	assert.Equal(t, "Ibuprofen", list[1].Entity.Name)
	assert.Equal(t, "Paracetamol", list[2].Entity.Name)

	visible, err := repo.FindByListingStatus(ctx, []domain.ListingStatus{domain.ListingApproved})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "mdc-2", visible[0].Entity.ID)
}

func TestRepositoryMarkConfirmed(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	m := newMedicine(t, "mdc-1", "Paracetamol")
	_, err := repo.Save(ctx, m)
	require.NoError(t, err)

	_, err = repo.MarkConfirmed(ctx, "mdc-1", 2)
	assert.ErrorIs(t, err, ports.ErrStaleConfirmation)

	confirmed, err := repo.MarkConfirmed(ctx, "mdc-1", 1)
	require.NoError(t, err)
	assert.True(t, confirmed.Entity.OnChain)

	_, err = repo.MarkConfirmed(ctx, "missing", 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepositoryMarkApprovedKeepsLedgerFlag(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, newMedicine(t, "mdc-1", "Paracetamol"))
	require.NoError(t, err)
	_, err = repo.MarkConfirmed(ctx, "mdc-1", 1)
	require.NoError(t, err)

	approved, changed, err := repo.MarkApproved(ctx, "mdc-1", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, approved.Entity.OnChain)
	assert.Equal(t, domain.ListingApproved, approved.Entity.ListingStatus)
	assert.Len(t, approved.Entity.History, 2)

	again, changed, err := repo.MarkApproved(ctx, "mdc-1", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, again.Entity.History, 2)

	_, _, err = repo.MarkApproved(ctx, "missing", time.Now())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	repo := NewRepository()
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ports.ErrNotFound)
}
