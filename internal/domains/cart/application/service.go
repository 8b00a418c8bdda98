package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/ports"
	orderstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	ordersdomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

// GuestCustomerName labels orders placed without a customer name.
const GuestCustomerName = "Guest Customer"

// Service implements the shopper basket.
type Service struct {
	repo    ports.Repository
	orders  ports.OrderPlacer
	catalog ports.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithOrderPlacer enables Checkout.
func WithOrderPlacer(orders ports.OrderPlacer) Option {
	return func(s *Service) { s.orders = orders }
}

// WithCatalog prices added lines from the record store instead of the request.
func WithCatalog(catalog ports.Catalog) Option {
	return func(s *Service) { s.catalog = catalog }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the cart, or an empty one when nothing was stored yet.
func (s *Service) Get(ctx context.Context, input types.CartIdentifier) (*types.CartView, error) {
	cart, err := s.load(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	return view(cart), nil
}

func (s *Service) AddItem(ctx context.Context, input types.AddItemInput) (*types.CartResult, error) {
	cart, err := s.load(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	line := domain.Line{
		MedicineID: input.MedicineID,
		Name:       input.Name,
		Price:      input.Price,
		Quantity:   input.Quantity,
	}
	if s.catalog != nil && line.MedicineID != "" {
		snapshot, err := s.catalog.Lookup(ctx, line.MedicineID)
		if err != nil {
			return nil, mapError(err)
		}
		line.Name, line.Price = snapshot.Name, snapshot.Price
	}
	added, err := cart.Add(line, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if !added {
		return &types.CartResult{
			View: view(cart),
			Notice: notification.New("Item already in cart",
				fmt.Sprintf("%s is already in your cart. You can change the quantity there.", line.Name)),
		}, nil
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return &types.CartResult{
		View:   view(cart),
		Notice: notification.New("Added to Cart", fmt.Sprintf("%s has been added to your cart.", line.Name)),
	}, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, input types.UpdateQuantityInput) (*types.CartResult, error) {
	cart, err := s.load(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(input.MedicineID, input.Quantity, s.now()); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return &types.CartResult{View: view(cart)}, nil
}

func (s *Service) RemoveItem(ctx context.Context, input types.RemoveItemInput) (*types.CartResult, error) {
	cart, err := s.load(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if cart.Remove(input.MedicineID, s.now()) {
		if err := s.repo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return &types.CartResult{View: view(cart)}, nil
}

func (s *Service) Clear(ctx context.Context, input types.CartIdentifier) error {
	if _, err := domain.New(input.CartID); err != nil {
		return mapError(err)
	}
	return s.repo.Delete(ctx, input.CartID)
}

// Checkout places an order from the cart lines and clears the cart once the order is stored.
func (s *Service) Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error) {
	if s.orders == nil {
		return nil, errors.New("checkout is not configured")
	}
	cart, err := s.load(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, mapError(domain.ErrEmptyCart)
	}
	name := input.CustomerName
	if name == "" {
		name = GuestCustomerName
	}
	items := make([]orderstypes.LineItemInput, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, orderstypes.LineItemInput{
			MedicineID: line.MedicineID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Price:      line.Price,
		})
	}
	order, err := s.orders.Create(ctx, orderstypes.CreateOrderInput{
		CustomerID:      input.CustomerID,
		CustomerName:    name,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		MobileNumber:    input.MobileNumber,
		IdempotencyKey:  input.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, cart.ID); err != nil {
		// the order exists; a stale cart is recoverable by the shopper
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("cart.id", cart.ID), slog.String("order.id", order.Entity.ID), slog.String("error", err.Error()))
	}
	return &types.CheckoutResult{
		Order:  order,
		Notice: notification.New("Order Placed!", "Your order has been successfully submitted."),
	}, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Cart, error) {
	empty, err := domain.New(id)
	if err != nil {
		return nil, mapError(err)
	}
	cart, err := s.repo.Get(ctx, empty.ID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return empty, nil
	}
	return cart, nil
}

func view(cart *domain.Cart) *types.CartView {
	subtotal := cart.Subtotal()
	total := ordersdomain.ComputeTotal(toOrderLines(cart.Lines))
	return &types.CartView{
		Cart:     cart.Clone(),
		Subtotal: subtotal,
		Tax:      math.Round((total-subtotal)*100) / 100,
		Total:    total,
	}
}

func toOrderLines(lines []domain.Line) []ordersdomain.LineItem {
	out := make([]ordersdomain.LineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, ordersdomain.LineItem{MedicineID: l.MedicineID, Name: l.Name, Quantity: l.Quantity, Price: l.Price})
	}
	return out
}

var _ ports.Service = (*Service)(nil)
