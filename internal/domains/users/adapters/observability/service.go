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

	userapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application"
	usertypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application/types"
	userdomain "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	userports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

const tracerName = "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) SignUp(ctx context.Context, input usertypes.SignUpInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.SignUp")
	defer span.End()
	result, err := s.inner.SignUp(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "sign up failed")
	}
	span.SetAttributes(attribute.String("user.id", result.ID))
	s.metrics.add(ctx, s.metrics.signUps)
	s.logInfo(ctx, "user signed up", slog.String("user.id", result.ID))
	return result, nil
}

// SignIn counts outcomes. Bad credentials and role mismatches are logged at warn level without the email.
func (s *Service) SignIn(ctx context.Context, input usertypes.SignInInput) (*usertypes.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.SignIn", trace.WithAttributes(attribute.String("user.role.requested", input.Role)))
	defer span.End()
	result, err := s.inner.SignIn(ctx, input)
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, userapp.ErrAuthentication):
			outcome = "invalid_credentials"
		case errors.Is(err, userapp.ErrForbidden):
			outcome = "role_mismatch"
		}
		s.metrics.add(ctx, s.metrics.signIns, attribute.String("outcome", outcome))
		if outcome != "error" {
			span.SetAttributes(attribute.String("auth.outcome", outcome))
			s.logger.LogAttrs(ctx, slog.LevelWarn, "sign in rejected", slog.String("outcome", outcome))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "sign in failed")
	}
	s.metrics.add(ctx, s.metrics.signIns, attribute.String("outcome", "success"))
	s.logInfo(ctx, "user signed in", slog.String("user.id", result.User.ID), slog.String("user.role", string(result.User.Role)))
	return result, nil
}

func (s *Service) SignOut(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.SignOut", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	if err := s.inner.SignOut(ctx, userID); err != nil {
		return s.handleError(ctx, span, err, "sign out failed", slog.String("user.id", userID))
	}
	s.logInfo(ctx, "user signed out", slog.String("user.id", userID))
	return nil
}

// Authenticate runs on every protected request, so only failures are logged.
func (s *Service) Authenticate(ctx context.Context, token string) (*userports.Claims, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	claims, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, userapp.ErrAuthentication) {
			span.SetAttributes(attribute.Bool("auth.rejected", true))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "token authentication failed")
	}
	span.SetAttributes(attribute.String("user.id", claims.UserID), attribute.String("user.role", string(claims.Role)))
	return claims, nil
}

func (s *Service) Get(ctx context.Context, userID string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Get", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()
	result, err := s.inner.Get(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.String("user.id", userID))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()
	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.result.count", len(result)))
	return result, nil
}

func (s *Service) UpdateRole(ctx context.Context, input usertypes.UpdateRoleInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateRole", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.String("user.role", input.Role),
	))
	defer span.End()
	result, err := s.inner.UpdateRole(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update role", slog.String("user.id", input.UserID))
	}
	s.metrics.add(ctx, s.metrics.roleChanges, attribute.String("user.role", string(result.Role)))
	s.logInfo(ctx, "user role updated", slog.String("user.id", result.ID), slog.String("user.role", string(result.Role)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	signUps     metric.Int64Counter
	signIns     metric.Int64Counter
	roleChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	signUps, _ := m.Int64Counter("users.service.sign_ups", metric.WithDescription("Accounts registered"))
	signIns, _ := m.Int64Counter("users.service.sign_ins", metric.WithDescription("Sign-in attempts by outcome"))
	roleChanges, _ := m.Int64Counter("users.service.role_changes", metric.WithDescription("Role assignments by target role"))
	return serviceMetrics{signUps: signUps, signIns: signIns, roleChanges: roleChanges}
}

func (serviceMetrics) add(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

var _ userports.Service = (*Service)(nil)
