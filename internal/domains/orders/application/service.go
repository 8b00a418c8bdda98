package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

// Service orchestrates order use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
	invoices    ports.InvoiceRenderer
	catalog     ports.Catalog
	now         func() time.Time
	newID       func(time.Time) string
}

// Option customises the service.
type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key replay for checkouts.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithInvoiceRenderer wires the invoice document renderer.
func WithInvoiceRenderer(renderer ports.InvoiceRenderer) Option {
	return func(s *Service) { s.invoices = renderer }
}

// WithCatalog snapshots line names and prices from the record store. Without it the
// request values are trusted.
func WithCatalog(catalog ports.Catalog) Option {
	return func(s *Service) { s.catalog = catalog }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides order id generation.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService wires the order service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: NewOrderID}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewOrderID returns ORD-<unix millis>-<5 lowercase alphanumerics>.
func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

// Create validates a checkout and stores it as a pending order. Inventory is not decremented.
func (s *Service) Create(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		var err error
		fingerprint, err = FingerprintCreateOrder(input)
		if err != nil {
			return nil, err
		}
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, existing.OrderID)
		}
	}

	now := s.now()
	items, err := s.lineItems(ctx, input.Items)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := domain.NewOrder(s.newID(now),
		domain.Customer{ID: input.CustomerID, Name: input.CustomerName},
		items,
		domain.Shipping{Address: input.ShippingAddress, MobileNumber: input.MobileNumber},
		now,
	)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}

	if fingerprint != "" {
		record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, OrderID: saved.Entity.ID})
		if errors.Is(err, ports.ErrIdempotencyConflict) && record != nil && record.RequestHash == fingerprint {
			// a concurrent replay won the race; answer with its order
			return s.repo.GetByID(ctx, record.OrderID)
		}
		if err != nil {
			return nil, err
		}
	}
	return saved, nil
}

func (s *Service) lineItems(ctx context.Context, inputs []types.LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, item := range inputs {
		line := domain.LineItem{MedicineID: item.MedicineID, Name: item.Name, Quantity: item.Quantity, Price: item.Price}
		if s.catalog != nil && line.MedicineID != "" {
			snapshot, err := s.catalog.Lookup(ctx, line.MedicineID)
			if err != nil {
				return nil, err
			}
			line.Name, line.Price = snapshot.Name, snapshot.Price
		}
		items = append(items, line)
	}
	return items, nil
}

// UpdateStatus moves an order to any known status and returns the operator notification.
func (s *Service) UpdateStatus(ctx context.Context, input types.UpdateOrderStatusInput) (*types.StatusUpdateResult, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := current.Entity.UpdateStatus(status); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, current.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	return &types.StatusUpdateResult{
		Order: saved,
		Notice: notification.New("Order Status Updated",
			fmt.Sprintf("Order %s is now %s.", saved.Entity.Reference(), saved.Entity.Status)),
	}, nil
}

// Get loads one order.
func (s *Service) Get(ctx context.Context, input types.OrderIdentifier) (*types.OrderProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]*types.OrderProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Invoice renders the printable document of an order.
func (s *Service) Invoice(ctx context.Context, input types.OrderIdentifier) (*types.Invoice, error) {
	if s.invoices == nil {
		return nil, ports.ErrInvoicesUnavailable
	}
	order, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	content, err := s.invoices.Render(order.Entity)
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return &types.Invoice{
		OrderID:     order.Entity.ID,
		Filename:    "invoice-" + order.Entity.ID + ".pdf",
		ContentType: s.invoices.ContentType(),
		Content:     content,
	}, nil
}

var _ ports.Service = (*Service)(nil)
