package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists checkout idempotency keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

// NewIdempotencyStore wires a PostgreSQL-backed idempotency store. The table is migrated by NewRepository.
func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     string    `gorm:"column:order_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toPort(), nil
}

// Save inserts the record. A duplicate key with a different hash or order yields ErrIdempotencyConflict.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	row := idempotencyRecord{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		OrderID:     record.OrderID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		existing, getErr := s.Get(ctx, record.Key)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, err
		}
		if existing.RequestHash != record.RequestHash || existing.OrderID != record.OrderID {
			return existing, ports.ErrIdempotencyConflict
		}
		return existing, nil
	}
	return row.toPort(), nil
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

func (r idempotencyRecord) toPort() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		OrderID:     r.OrderID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
