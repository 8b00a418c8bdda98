//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	inventorypostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/persistence/postgres"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("pharmatrack_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func newMedicine(t *testing.T, id, name string, quantity int) *domain.Medicine {
	t.Helper()
	m, err := domain.NewMedicine(id, domain.Details{
		Name:         name,
		Manufacturer: "Acme Pharma",
		BatchNo:      "B-" + id,
		Description:  "Broad spectrum antibiotic",
		MfgDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ExpDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:     quantity,
		Price:        12.75,
	}, time.Now())
	require.NoError(t, err)
	return m
}

func TestPostgresRepository_SaveRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()

	m := newMedicine(t, "mdc-pg-1", "Amoxicillin", 60)
	saved, err := repo.Save(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "Amoxicillin", saved.Entity.Name)
	assert.Equal(t, m.MfgDate, saved.Entity.MfgDate)
	require.Len(t, saved.Entity.History, 1)
	assert.Equal(t, domain.ActionCreated, saved.Entity.History[0].Action)

	qty := 30
	changed, err := m.Apply(domain.Patch{Quantity: &qty}, time.Now())
	require.NoError(t, err)
	require.True(t, changed)
	updated, err := repo.Save(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, domain.StockLowStock, updated.Entity.StockStatus())
	require.Len(t, updated.Entity.History, 2)
	assert.Equal(t, "Quantity changed from 60 to 30", updated.Entity.History[1].Changes)
	assert.Equal(t, saved.Metadata.CreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())
}

func TestPostgresRepository_MarkConfirmedGuardsGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()
	_, err := repo.Save(ctx, newMedicine(t, "mdc-pg-2", "Ibuprofen", 5))
	require.NoError(t, err)

	_, err = repo.MarkConfirmed(ctx, "mdc-pg-2", 4)
	assert.ErrorIs(t, err, ports.ErrStaleConfirmation)

	confirmed, err := repo.MarkConfirmed(ctx, "mdc-pg-2", 1)
	require.NoError(t, err)
	assert.True(t, confirmed.Entity.OnChain)

	_, err = repo.MarkConfirmed(ctx, "missing", 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_MarkApprovedKeepsLedgerFlag(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()
	_, err := repo.Save(ctx, newMedicine(t, "mdc-pg-3", "Cetirizine", 40))
	require.NoError(t, err)
	_, err = repo.MarkConfirmed(ctx, "mdc-pg-3", 1)
	require.NoError(t, err)

	approved, changed, err := repo.MarkApproved(ctx, "mdc-pg-3", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, approved.Entity.OnChain)
	assert.Equal(t, domain.ListingApproved, approved.Entity.ListingStatus)
	require.Len(t, approved.Entity.History, 2)

	_, changed, err = repo.MarkApproved(ctx, "mdc-pg-3", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = repo.MarkApproved(ctx, "missing", time.Now())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_FindByListingStatusAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()
	approved := newMedicine(t, "mdc-pg-3", "Cetirizine", 80)
	approved.Approve(time.Now())
	_, err := repo.Save(ctx, approved)
	require.NoError(t, err)
	_, err = repo.Save(ctx, newMedicine(t, "mdc-pg-4", "Aspirin", 80))
	require.NoError(t, err)

	visible, err := repo.FindByListingStatus(ctx, []domain.ListingStatus{domain.ListingApproved})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "mdc-pg-3", visible[0].Entity.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Aspirin", all[0].Entity.Name)

	require.NoError(t, repo.Delete(ctx, "mdc-pg-4"))
	assert.ErrorIs(t, repo.Delete(ctx, "mdc-pg-4"), ports.ErrNotFound)
}
