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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	userspostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/persistence/postgres"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/migrations"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
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
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	return db
}

func TestPostgresUserRepository(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := userspostgres.NewRepository(db)

	user, err := domain.NewUser("usr-1", "ops@example.com", "secret1", "Ops", "", bcrypt.MinCost, time.Now())
	require.NoError(t, err)
	_, err = repo.Create(ctx, user)
	require.NoError(t, err)

	dup, err := domain.NewUser("usr-2", "ops@example.com", "secret2", "Dup", "", bcrypt.MinCost, time.Now())
	require.NoError(t, err)
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrEmailTaken)

	require.NoError(t, user.ChangeRole(domain.RoleAdmin))
	updated, err := repo.Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	loaded, err := repo.GetByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, loaded.CheckPassword("secret1"))
}

func TestPostgresSessionStore(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	store := userspostgres.NewSessionStore(db)

	require.NoError(t, store.Save(ctx, ports.Session{UserID: "usr-1", TokenID: "t1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, ports.Session{UserID: "usr-1", TokenID: "t2", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, ports.Session{UserID: "usr-2", TokenID: "t3", ExpiresAt: time.Now().Add(-time.Minute)}))

	live, err := store.Get(ctx, "usr-1")
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, "t2", live.TokenID)

	expired, err := store.Get(ctx, "usr-2")
	require.NoError(t, err)
	assert.Nil(t, expired)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, store.Delete(ctx, "usr-1"))
	gone, err := store.Get(ctx, "usr-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
