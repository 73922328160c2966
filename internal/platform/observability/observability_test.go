package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.Equal(t, "picklog", config.ServiceName)
	require.Equal(t, "localhost:4317", config.OTLPEndpoint)
	require.Equal(t, 1.0, config.SampleRate)
	require.False(t, config.Enabled)
	require.True(t, config.Insecure)
}

func TestDisabledProviderRecordsIntoGlobalMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(meterProvider)
	t.Cleanup(func() { _ = meterProvider.Shutdown(context.Background()) })

	ctx := context.Background()
	p, err := New(ctx, DefaultConfig(), nil)
	require.NoError(t, err)

	p.RecordPick(ctx, "R1")
	p.RecordPick(ctx, "R1")
	p.RecordRequest(ctx, "POST", "/pick", 201, 3*time.Millisecond)
	p.RecordRequest(ctx, "POST", "/pick", 500, time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, point := range data.DataPoints {
					sums[m.Name] += point.Value
				}
			}
		}
	}
	require.Equal(t, int64(2), sums["picklog.picks.logged"])
	require.Equal(t, int64(2), sums["picklog.http.requests"])
	require.Equal(t, int64(1), sums["picklog.http.errors"])

	require.NoError(t, p.Shutdown(ctx))
}

func TestStartSpanWithoutExporter(t *testing.T) {
	p, err := New(context.Background(), DefaultConfig(), nil)
	require.NoError(t, err)

	ctx, span := p.StartSpan(context.Background(), "unit")
	require.NotNil(t, ctx)
	span.End()
}
