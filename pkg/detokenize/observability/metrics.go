package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records detokenize metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCall records a completed call with its duration, substitution
	// count and error status. mode is "sync" or "async".
	RecordCall(ctx context.Context, mode string, duration time.Duration, substitutions int, err error)

	// RecordDeferred records how many deferred values one async call awaited.
	RecordDeferred(ctx context.Context, pending int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	calls         metric.Int64Counter
	errors        metric.Int64Counter
	latency       metric.Float64Histogram
	substitutions metric.Int64Histogram
	deferred      metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily creates the instruments on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("detokenize")

	calls, err := meter.Int64Counter("detokenize.calls",
		metric.WithDescription("Number of detokenize calls"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("detokenize.errors",
		metric.WithDescription("Number of failed detokenize calls"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("detokenize.latency_ms",
		metric.WithDescription("Detokenize call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	substitutions, err := meter.Int64Histogram("detokenize.substitutions",
		metric.WithDescription("Token occurrences substituted per call"),
	)
	if err != nil {
		return nil, err
	}

	deferred, err := meter.Int64Histogram("detokenize.deferred",
		metric.WithDescription("Deferred values awaited per async call"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		calls:         calls,
		errors:        errs,
		latency:       latency,
		substitutions: substitutions,
		deferred:      deferred,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCall records a detokenize call.
func (m *otelMetrics) RecordCall(ctx context.Context, mode string, duration time.Duration, substitutions int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.Bool("success", err == nil),
	)

	m.calls.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.substitutions.Record(ctx, int64(substitutions), attrs)

	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
	}
}

// RecordDeferred records the number of awaited deferred values.
func (m *otelMetrics) RecordDeferred(ctx context.Context, pending int) {
	m.deferred.Record(ctx, int64(pending))
}
