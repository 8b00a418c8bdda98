package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/memory"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application"
	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func checkout(key string, qty int) types.CreateOrderInput {
	return types.CreateOrderInput{
		CustomerName:    "Meera",
		Items:           []types.LineItemInput{{MedicineID: "mdc-1", Name: "ORS", Quantity: qty, Price: 2}},
		ShippingAddress: "7 Lake View Colony, Chennai",
		MobileNumber:    "9123456780",
		IdempotencyKey:  key,
	}
}

func TestDecoratorCountsOrdersAndConflicts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	core := application.NewService(memory.NewRepository(), application.WithIdempotencyStore(memory.NewIdempotencyStore()))
	svc := New(core, WithMeter(provider.Meter("test")))
	ctx := context.Background()

	created, err := svc.Create(ctx, checkout("key-1", 1))
	require.NoError(t, err)
	require.Equal(t, int64(1), counterValue(t, reader, "orders.service.created"))

	_, err = svc.Create(ctx, checkout("key-1", 3))
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.Equal(t, int64(1), counterValue(t, reader, "orders.service.idempotency_conflicts"))

	_, err = svc.UpdateStatus(ctx, types.UpdateOrderStatusInput{ID: created.Entity.ID, Status: "Shipped"})
	require.NoError(t, err)
	require.Equal(t, int64(1), counterValue(t, reader, "orders.service.status_changes"))
}

func TestDecoratorMarksFailedSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := New(application.NewService(memory.NewRepository()), WithTracer(tp.Tracer("test")))

	_, err := svc.Get(context.Background(), types.OrderIdentifier{ID: "ORD-missing"})
	require.ErrorIs(t, err, ports.ErrNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "Service.Get", spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)
}
