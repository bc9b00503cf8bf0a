package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInit_DisabledInstallsNoop(t *testing.T) {
	t.Setenv(EnvStdout, "")

	p, err := Init(context.Background(), &bytes.Buffer{}, "recipebox", "test")
	require.NoError(t, err)
	assert.False(t, Enabled())
	assert.IsType(t, metricnoop.MeterProvider{}, otel.GetMeterProvider())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInit_StdoutExportsOnShutdown(t *testing.T) {
	t.Setenv(EnvStdout, "true")
	t.Cleanup(func() {
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
	})

	var buf bytes.Buffer
	p, err := Init(context.Background(), &buf, "recipebox", "test")
	require.NoError(t, err)
	assert.True(t, Enabled())
	assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())
	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())

	counter, err := otel.Meter("test").Int64Counter("recipebox.test.counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	_, span := otel.Tracer("test").Start(context.Background(), "test.span")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "recipebox.test.counter")
	assert.Contains(t, buf.String(), "test.span")

	assert.NoError(t, p.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestShutdown_NilProviders(t *testing.T) {
	var p *Providers
	assert.NoError(t, p.Shutdown(context.Background()))
}
