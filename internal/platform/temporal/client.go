package temporal

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ClientConfig addresses a Temporal cluster.
type ClientConfig struct {
	HostPort  string
	Namespace string
}

// Dial connects to Temporal with structured logging and OpenTelemetry tracing.
func Dial(cfg ClientConfig, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	options := client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	if options.HostPort == "" {
		options.HostPort = client.DefaultHostPort
	}
	if options.Namespace == "" {
		options.Namespace = client.DefaultNamespace
	}
	if tracer != nil {
		interceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
		if err != nil {
			return nil, err
		}
		options.Interceptors = append(options.Interceptors, interceptor)
	}
	return client.Dial(options)
}
