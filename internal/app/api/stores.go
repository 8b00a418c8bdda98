package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	cartmemory "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/adapters/memory"
	cartredis "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/adapters/redis"
	cartports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/ports"
	inventorymemory "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/memory"
	inventorymongo "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/persistence/mongo"
	inventorypostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/persistence/postgres"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	ordersmemory "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
	usersmemory "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/memory"
	usersmongo "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/persistence/mongo"
	userspostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/persistence/postgres"
	usersredis "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/redis"
	usersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
	platformmongo "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/mongo"
	platformpostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/postgres"
	platformredis "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/redis"
)

// stores groups the repositories selected for the configured backend.
type stores struct {
	medicines   inventoryports.Repository
	orders      ordersports.Repository
	idempotency ordersports.IdempotencyStore
	carts       cartports.Repository
	users       usersports.Repository
	sessions    usersports.SessionStore
	closers     []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func memoryStores() *stores {
	return &stores{
		medicines:   inventorymemory.NewRepository(),
		orders:      ordersmemory.NewRepository(),
		idempotency: ordersmemory.NewIdempotencyStore(),
		carts:       cartmemory.NewRepository(),
		users:       usersmemory.NewRepository(),
		sessions:    usersmemory.NewSessionStore(),
	}
}

// buildStores opens the configured backends. Orders always need a relational store or memory,
// carts and sessions move to Redis whenever REDIS_URL is set.
func buildStores(ctx context.Context, cfg Config, logger *slog.Logger) (*stores, error) {
	s := memoryStores()
	switch cfg.StorageBackend {
	case StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
	case StoragePostgres:
		db, err := connectPostgres(ctx, cfg, logger, s)
		if err != nil {
			return nil, err
		}
		s.medicines = inventorypostgres.NewRepository(db)
		s.users = userspostgres.NewRepository(db)
		s.sessions = userspostgres.NewSessionStore(db)
		logger.Info("storage configured with postgres")
	case StorageMongo:
		db, cleanup, err := platformmongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		s.closers = append(s.closers, cleanup)
		s.medicines = inventorymongo.NewRepository(db)
		users, err := usersmongo.NewRepository(ctx, db)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("prepare mongo users collection: %w", err)
		}
		s.users = users
		if cfg.PostgresDSN != "" {
			if _, err := connectPostgres(ctx, cfg, logger, s); err != nil {
				return nil, err
			}
		} else {
			logger.Warn("POSTGRES_DSN not set, orders stay in memory")
		}
		logger.Info("storage configured with mongo", slog.String("database", cfg.MongoDatabase))
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.carts = cartredis.NewRepository(client, cfg.SessionTTL)
		s.sessions = usersredis.NewSessionStore(client)
		logger.Info("carts and sessions configured with redis")
	}
	return s, nil
}

// connectPostgres dials the DSN and points the order stores at it.
func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger, s *stores) (*gorm.DB, error) {
	db, cleanup, err := platformpostgres.ConnectWithCleanup(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	s.closers = append(s.closers, cleanup)
	s.orders = orderspostgres.NewRepository(db)
	s.idempotency = orderspostgres.NewIdempotencyStore(db)
	return db, nil
}
