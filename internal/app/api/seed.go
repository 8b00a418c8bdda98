package api

import (
	"context"
	"log/slog"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/app/seed"
	inventoryapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application"
	usersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application"
)

// NewSeeder opens the configured stores and returns a seeder writing into them.
// Ledger confirmations are not scheduled for seeded batches.
func NewSeeder(ctx context.Context, cfg Config, logger *slog.Logger) (*seed.Seeder, func(), error) {
	stores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	inventory := inventoryapp.NewService(stores.medicines, inventoryapp.WithLogger(logger))
	users := usersapp.NewService(stores.users, stores.sessions, nil)
	return seed.NewSeeder(inventory, users), stores.close, nil
}
