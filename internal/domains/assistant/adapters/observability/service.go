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

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application"
	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
)

const tracerName = "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/adapters/observability/service"

// Service decorates the assistant with spans, logs and request counters.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	requests metric.Int64Counter
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
		s.requests, _ = m.Int64Counter("assistant.service.requests", metric.WithDescription("Assistant calls by kind and outcome"))
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

func (s *Service) Chat(ctx context.Context, input types.ChatInput) (*types.ChatReply, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Chat", trace.WithAttributes(attribute.Int("assistant.history_length", len(input.History))))
	defer span.End()
	reply, err := s.inner.Chat(ctx, input)
	s.count(ctx, "chat", err)
	if err != nil {
		return nil, s.fail(ctx, span, err, "assistant chat failed")
	}
	span.SetAttributes(attribute.Int("assistant.answer_length", len(reply.Message.Content)))
	return reply, nil
}

func (s *Service) SideEffects(ctx context.Context, input types.SideEffectsInput) (*types.SideEffectsReply, error) {
	ctx, span := s.tracer.Start(ctx, "Service.SideEffects", trace.WithAttributes(attribute.String("medicine.name", input.MedicineName)))
	defer span.End()
	reply, err := s.inner.SideEffects(ctx, input)
	s.count(ctx, "side_effects", err)
	if err != nil {
		return nil, s.fail(ctx, span, err, "assistant side effects lookup failed")
	}
	return reply, nil
}

func (s *Service) count(ctx context.Context, kind string, err error) {
	if s.requests == nil {
		return
	}
	outcome := "ok"
	switch {
	case errors.Is(err, ports.ErrUnavailable):
		outcome = "unavailable"
	case errors.Is(err, application.ErrInvalidInput):
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	s.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind), attribute.String("outcome", outcome)))
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string) error {
	if errors.Is(err, ports.ErrUnavailable) || errors.Is(err, application.ErrInvalidInput) {
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("error", err.Error()))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, slog.String("error", err.Error()))
	return err
}

var _ ports.Service = (*Service)(nil)
