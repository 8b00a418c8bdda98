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

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

const tracerName = "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Create(ctx context.Context, input types.CreateMedicineInput) (*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Create",
		attribute.String("medicine.batch_no", input.BatchNo),
		attribute.Int("medicine.quantity", input.Quantity),
	)
	defer span.End()

	s.logInfo(ctx, "registering medicine batch", slog.String("medicine.name", input.Name), slog.String("medicine.batch_no", input.BatchNo))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register medicine batch", slog.String("medicine.batch_no", input.BatchNo))
	}
	if result != nil && result.Entity != nil {
		span.SetAttributes(attribute.String("medicine.id", result.Entity.ID))
		s.metrics.recordCreated(ctx, result.Entity.StockStatus())
		s.logInfo(ctx, "medicine batch registered",
			slog.String("medicine.id", result.Entity.ID),
			slog.String("stock.status", string(result.Entity.StockStatus())))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, input types.UpdateMedicineInput) (*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Update", attribute.String("medicine.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "updating medicine batch", slog.String("medicine.id", input.ID))
	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update medicine batch", slog.String("medicine.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordUpdated(ctx, result.Entity.StockStatus())
		s.logInfo(ctx, "medicine batch updated",
			slog.String("medicine.id", result.Entity.ID),
			slog.Int64("medicine.generation", result.Entity.Generation),
			slog.String("stock.status", string(result.Entity.StockStatus())))
	}
	return result, nil
}

func (s *Service) Approve(ctx context.Context, input types.MedicineIdentifier) (*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Approve", attribute.String("medicine.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "approving medicine listing", slog.String("medicine.id", input.ID))
	result, err := s.inner.Approve(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to approve medicine listing", slog.String("medicine.id", input.ID))
	}
	s.metrics.recordApproved(ctx)
	return result, nil
}

func (s *Service) Delete(ctx context.Context, input types.MedicineIdentifier) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", attribute.String("medicine.id", input.ID))
	defer span.End()

	s.logInfo(ctx, "deleting medicine batch", slog.String("medicine.id", input.ID))
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete medicine batch", slog.String("medicine.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "medicine batch deleted", slog.String("medicine.id", input.ID))
	return nil
}

func (s *Service) Get(ctx context.Context, input types.MedicineIdentifier) (*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Get", attribute.String("medicine.id", input.ID))
	defer span.End()

	result, err := s.inner.Get(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load medicine batch", slog.String("medicine.id", input.ID))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list medicines")
	}
	span.SetAttributes(attribute.Int("medicine.result.count", len(result)))
	s.logInfo(ctx, "listed medicines", slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) FindByListingStatus(ctx context.Context, input types.FindByListingStatusInput) ([]*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.FindByListingStatus", attribute.StringSlice("medicine.listing.requested", input.Statuses))
	defer span.End()

	result, err := s.inner.FindByListingStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to filter medicines", slog.Any("statuses", input.Statuses))
	}
	span.SetAttributes(attribute.Int("medicine.result.count", len(result)))
	return result, nil
}

// ConfirmLedger records settlement outcomes. Stale settlements are expected and not marked as span errors.
func (s *Service) ConfirmLedger(ctx context.Context, input types.LedgerConfirmationInput) (*types.MedicineProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.ConfirmLedger",
		attribute.String("medicine.id", input.MedicineID),
		attribute.Int64("medicine.generation", input.Generation),
	)
	defer span.End()

	result, err := s.inner.ConfirmLedger(ctx, input)
	switch {
	case err == nil:
		s.metrics.recordConfirmation(ctx, "applied")
		s.logInfo(ctx, "ledger confirmation applied", slog.String("medicine.id", input.MedicineID), slog.Int64("medicine.generation", input.Generation))
		return result, nil
	case isStale(err):
		s.metrics.recordConfirmation(ctx, "stale")
		span.SetAttributes(attribute.Bool("ledger.stale", true))
		return nil, err
	default:
		s.metrics.recordConfirmation(ctx, "failed")
		return nil, s.handleError(ctx, span, err, "ledger confirmation failed", slog.String("medicine.id", input.MedicineID))
	}
}

func (s *Service) LedgerHealth(ctx context.Context) (*types.LedgerHandshake, error) {
	ctx, span := s.startSpan(ctx, "Service.LedgerHealth")
	defer span.End()

	result, err := s.inner.LedgerHealth(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "ledger health check failed")
	}
	span.SetAttributes(attribute.String("ledger.endpoint", result.Endpoint))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func isStale(err error) bool {
	return errors.Is(err, ports.ErrStaleConfirmation) || errors.Is(err, ports.ErrNotFound)
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	created       metric.Int64Counter
	updated       metric.Int64Counter
	approved      metric.Int64Counter
	deleted       metric.Int64Counter
	confirmations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("inventory.service.created", metric.WithDescription("Number of medicine batches registered"))
	updated, _ := m.Int64Counter("inventory.service.updated", metric.WithDescription("Number of medicine batches updated"))
	approved, _ := m.Int64Counter("inventory.service.approved", metric.WithDescription("Number of approve calls"))
	deleted, _ := m.Int64Counter("inventory.service.deleted", metric.WithDescription("Number of medicine batches deleted"))
	confirmations, _ := m.Int64Counter("inventory.ledger.confirmations", metric.WithDescription("Ledger settlements by outcome"))
	return serviceMetrics{
		created:       created,
		updated:       updated,
		approved:      approved,
		deleted:       deleted,
		confirmations: confirmations,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.StockStatus) {
	addCounter(ctx, m.created, 1, attribute.String("stock.status", string(status)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.StockStatus) {
	addCounter(ctx, m.updated, 1, attribute.String("stock.status", string(status)))
}

func (m serviceMetrics) recordApproved(ctx context.Context) {
	addCounter(ctx, m.approved, 1)
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.deleted, 1)
}

func (m serviceMetrics) recordConfirmation(ctx context.Context, outcome string) {
	addCounter(ctx, m.confirmations, 1, attribute.String("outcome", outcome))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
