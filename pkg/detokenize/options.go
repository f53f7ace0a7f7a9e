package detokenize

import (
	"log/slog"

	"github.com/randalmurphal/detokenize/pkg/detokenize/observability"
)

// Option configures a Detokenizer.
type Option func(*Detokenizer)

// WithLogger enables structured logging of calls.
// Default: nil (no logging).
//
// Example:
//
//	d := detokenize.New(detokenize.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detokenizer) {
		d.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}.
//
// Example:
//
//	d := detokenize.New(detokenize.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(d *Detokenizer) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithTracing sets the span manager.
// Default: observability.NoopSpanManager{}.
//
// Example:
//
//	d := detokenize.New(detokenize.WithTracing(observability.NewSpanManager()))
func WithTracing(s observability.SpanManager) Option {
	return func(d *Detokenizer) {
		if s != nil {
			d.spans = s
		}
	}
}
