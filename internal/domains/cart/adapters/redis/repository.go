// Package redis stores carts as JSON blobs with a sliding expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// KeyPrefix namespaces cart keys.
const KeyPrefix = "cart-storage:"

// DefaultTTL is how long an untouched cart survives.
const DefaultTTL = 24 * time.Hour

// Repository persists carts in Redis. Every read or write refreshes the key's TTL.
type Repository struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewRepository wires a Redis-backed cart store. A non-positive ttl uses DefaultTTL.
func NewRepository(client goredis.UniversalClient, ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Repository{client: client, ttl: ttl}
}

// Key is the Redis key holding the cart id.
func Key(id string) string { return KeyPrefix + id }

type cartDocument struct {
	ID        string         `json:"id"`
	Lines     []lineDocument `json:"items"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type lineDocument struct {
	MedicineID string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Cart, error) {
	if err := r.ensureClient(); err != nil {
		return nil, err
	}
	raw, err := r.client.GetEx(ctx, Key(id), r.ttl).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", id, err)
	}
	var doc cartDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", id, err)
	}
	cart := &domain.Cart{ID: id, Lines: make([]domain.Line, 0, len(doc.Lines)), UpdatedAt: doc.UpdatedAt}
	for _, l := range doc.Lines {
		cart.Lines = append(cart.Lines, domain.Line(l))
	}
	return cart, nil
}

func (r *Repository) Save(ctx context.Context, cart *domain.Cart) error {
	if err := r.ensureClient(); err != nil {
		return err
	}
	if cart == nil {
		return errors.New("cannot save nil cart")
	}
	doc := cartDocument{ID: cart.ID, Lines: make([]lineDocument, 0, len(cart.Lines)), UpdatedAt: cart.UpdatedAt}
	for _, l := range cart.Lines {
		doc.Lines = append(doc.Lines, lineDocument(l))
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, Key(cart.ID), payload, r.ttl).Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureClient(); err != nil {
		return err
	}
	return r.client.Del(ctx, Key(id)).Err()
}

func (r *Repository) ensureClient() error {
	if r == nil || r.client == nil {
		return errors.New("redis cart repository not configured")
	}
	return nil
}
