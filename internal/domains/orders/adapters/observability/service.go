package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

const tracerName = "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/observability/service"

// Service decorates the orders port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
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

func (s *Service) Create(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Create", trace.WithAttributes(
		attribute.Int("order.items", len(input.Items)),
		attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		if errors.Is(err, ports.ErrIdempotencyConflict) {
			s.metrics.add(ctx, s.metrics.conflicts)
		}
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("customer.name", input.CustomerName))
	}
	span.SetAttributes(attribute.String("order.id", result.Entity.ID), attribute.Float64("order.total", result.Entity.Total))
	s.metrics.add(ctx, s.metrics.created)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.String("order.id", result.Entity.ID),
		slog.Float64("order.total", result.Entity.Total),
		slog.Int("order.items", len(result.Entity.Items)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, input types.UpdateOrderStatusInput) (*types.StatusUpdateResult, error) {
	ctx, span := s.tracer.Start(ctx, "Service.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", input.ID),
		attribute.String("order.status", input.Status),
	))
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", input.ID))
	}
	s.metrics.add(ctx, s.metrics.statusChanges, attribute.String("order.status", input.Status))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order status updated", slog.String("order.id", input.ID), slog.String("order.status", input.Status))
	return result, nil
}

func (s *Service) Get(ctx context.Context, input types.OrderIdentifier) (*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Get", trace.WithAttributes(attribute.String("order.id", input.ID)))
	defer span.End()

	result, err := s.inner.Get(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", input.ID))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*types.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

func (s *Service) Invoice(ctx context.Context, input types.OrderIdentifier) (*types.Invoice, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Invoice", trace.WithAttributes(attribute.String("order.id", input.ID)))
	defer span.End()

	result, err := s.inner.Invoice(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to render invoice", slog.String("order.id", input.ID))
	}
	span.SetAttributes(attribute.Int("invoice.bytes", len(result.Content)))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	created       metric.Int64Counter
	statusChanges metric.Int64Counter
	conflicts     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders placed"))
	statusChanges, _ := m.Int64Counter("orders.service.status_changes", metric.WithDescription("Order status transitions by target status"))
	conflicts, _ := m.Int64Counter("orders.service.idempotency_conflicts", metric.WithDescription("Checkouts rejected for reusing an idempotency key"))
	return serviceMetrics{created: created, statusChanges: statusChanges, conflicts: conflicts}
}

func (serviceMetrics) add(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
