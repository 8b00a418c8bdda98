package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/ports"
)

const tracerName = "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/adapters/observability/service"

// Service decorates the cart port with spans, logs and counters.
type Service struct {
	inner     ports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	additions metric.Int64Counter
	checkouts metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.additions, _ = m.Int64Counter("cart.service.additions", metric.WithDescription("Add-to-cart calls by outcome"))
		s.checkouts, _ = m.Int64Counter("cart.service.checkouts", metric.WithDescription("Completed cart checkouts"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Get(ctx context.Context, input types.CartIdentifier) (*types.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Get", trace.WithAttributes(attribute.String("cart.id", input.CartID)))
	defer span.End()
	result, err := s.inner.Get(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load cart", input.CartID)
	}
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, input types.AddItemInput) (*types.CartResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.AddItem", trace.WithAttributes(
		attribute.String("cart.id", input.CartID),
		attribute.String("medicine.id", input.MedicineID),
	))
	defer span.End()
	result, err := s.inner.AddItem(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to add cart item", input.CartID)
	}
	outcome := "added"
	if result.Notice != nil && result.Notice.Title == "Item already in cart" {
		outcome = "duplicate"
	}
	span.SetAttributes(attribute.String("cart.add.outcome", outcome))
	if s.additions != nil {
		s.additions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	return result, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, input types.UpdateQuantityInput) (*types.CartResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.UpdateQuantity", trace.WithAttributes(
		attribute.String("cart.id", input.CartID),
		attribute.String("medicine.id", input.MedicineID),
		attribute.Int("cart.quantity", input.Quantity),
	))
	defer span.End()
	result, err := s.inner.UpdateQuantity(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update cart quantity", input.CartID)
	}
	return result, nil
}

func (s *Service) RemoveItem(ctx context.Context, input types.RemoveItemInput) (*types.CartResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.RemoveItem", trace.WithAttributes(attribute.String("cart.id", input.CartID)))
	defer span.End()
	result, err := s.inner.RemoveItem(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to remove cart item", input.CartID)
	}
	return result, nil
}

func (s *Service) Clear(ctx context.Context, input types.CartIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "Service.Clear", trace.WithAttributes(attribute.String("cart.id", input.CartID)))
	defer span.End()
	if err := s.inner.Clear(ctx, input); err != nil {
		return s.fail(ctx, span, err, "failed to clear cart", input.CartID)
	}
	return nil
}

func (s *Service) Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Checkout", trace.WithAttributes(attribute.String("cart.id", input.CartID)))
	defer span.End()
	result, err := s.inner.Checkout(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "cart checkout failed", input.CartID)
	}
	if s.checkouts != nil {
		s.checkouts.Add(ctx, 1)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "cart checked out",
		slog.String("cart.id", input.CartID),
		slog.String("order.id", result.Order.Entity.ID))
	return result, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg, cartID string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, slog.String("cart.id", cartID), slog.String("error", err.Error()))
	return err
}

var _ ports.Service = (*Service)(nil)
