package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Trace exporters selectable through OTEL_TRACES_EXPORTER.
const (
	ExporterOTLP    = "otlp"
	ExporterConsole = "console"
	ExporterNone    = "none"
)

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Settings controls logging and trace export for one process.
type Settings struct {
	ServiceName    string
	Environment    string
	LogLevel       slog.Level
	LogFormat      string // json or text
	TracesExporter string
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// SettingsFromEnv reads LOG_LEVEL, LOG_FORMAT, ENVIRONMENT and the OTEL_* variables.
func SettingsFromEnv(serviceName string) Settings {
	return Settings{
		ServiceName:    serviceName,
		Environment:    envOrDefault("ENVIRONMENT", "local"),
		LogLevel:       ParseLevel(os.Getenv("LOG_LEVEL")),
		LogFormat:      strings.ToLower(envOrDefault("LOG_FORMAT", "json")),
		TracesExporter: strings.ToLower(envOrDefault("OTEL_TRACES_EXPORTER", ExporterOTLP)),
		OTLPEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:   os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
	}
}

// Init configures observability from the environment.
func Init(ctx context.Context, serviceName string) (*Instruments, func(context.Context) error, error) {
	return InitWithSettings(ctx, SettingsFromEnv(serviceName))
}

// InitWithSettings installs slog, the tracer provider and the meter provider as process defaults.
// The returned shutdown flushes pending spans and must run before exit.
func InitWithSettings(ctx context.Context, settings Settings) (*Instruments, func(context.Context) error, error) {
	logger := NewLogger(os.Stdout, settings)
	slog.SetDefault(logger)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", settings.ServiceName),
			attribute.String("deployment.environment", settings.Environment),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	exporter, err := newSpanExporter(ctx, settings, logger)
	if err != nil {
		return nil, nil, err
	}
	if exporter != nil {
		traceOpts = append(traceOpts, sdktrace.WithBatcher(exporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	return &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// NewLogger builds the process logger. Every record carries the service name.
func NewLogger(w io.Writer, settings Settings) *slog.Logger {
	opts := &slog.HandlerOptions{Level: settings.LogLevel, AddSource: settings.LogLevel <= slog.LevelDebug}
	var handler slog.Handler
	if settings.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	if settings.ServiceName != "" {
		logger = logger.With(slog.String("service", settings.ServiceName))
	}
	return logger
}

// ParseLevel maps LOG_LEVEL values onto slog levels. Unknown values mean info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newSpanExporter returns nil when tracing export is disabled.
func newSpanExporter(ctx context.Context, settings Settings, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	switch settings.TracesExporter {
	case ExporterNone:
		return nil, nil
	case ExporterConsole:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	var opts []otlptracehttp.Option
	if settings.OTLPEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(settings.OTLPEndpoint))
	}
	if settings.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
