package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imbuesvc/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.PrometheusHTTP)
	assert.Nil(t, providers.TracerProvider, "tracing is off by default")
}

func TestOTelDisabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.MetricExporter = "none"
	cfg.TraceExporter = "none"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer, "no-op tracer is provided")
	assert.NotNil(t, providers.Meter, "no-op meter is provided")
	assert.Nil(t, providers.PrometheusHTTP)

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	RecordImputation(context.Background(), metrics, ImputationOutcome{Strategy: "zeroed", Synthesized: 3})
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelUnsupportedExporters(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "jaeger"
	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)

	cfg = DefaultOTelConfig()
	cfg.MetricExporter = "statsd"
	_, err = InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestOTelConfigFrom(t *testing.T) {
	cfg := OTelConfigFrom(config.TelemetryConfig{
		Environment:    "production",
		TraceExporter:  "stdout",
		MetricExporter: "none",
		SampleRatio:    0.25,
	})

	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.Equal(t, config.AppVersion, cfg.ServiceVersion)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.Equal(t, "none", cfg.MetricExporter)
	assert.Equal(t, 0.25, cfg.SampleRatio)
}

func TestImputationMetricsExposed(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordImputation(ctx, metrics, ImputationOutcome{
		Strategy:    "average",
		AxisSpan:    5,
		Synthesized: 3,
		Duration:    time.Millisecond,
	})
	RecordImputation(ctx, metrics, ImputationOutcome{
		Strategy:  "average",
		FaultKind: "duplicate_position",
	})
	RecordImputation(ctx, nil, ImputationOutcome{Strategy: "average"})

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "imbue_requests_total")
	assert.Contains(t, body, "imbue_points_synthesized_total")
	assert.Contains(t, body, "imbue_faults_total")
	assert.Contains(t, body, `fault="duplicate_position"`)
	assert.Contains(t, body, "go_goroutines")
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	cfg := DefaultOTelConfig()
	cfg.MetricExporter = "none"
	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	ctx, span := providers.Tracer.Start(context.Background(), "noop")
	defer span.End()
	RecordError(ctx, assert.AnError)
	assert.Empty(t, TraceIDFromContext(ctx), "no-op spans carry no trace id")
}
