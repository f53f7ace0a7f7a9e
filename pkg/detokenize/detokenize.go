package detokenize

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/detokenize/pkg/detokenize/observability"
)

const (
	modeSync  = "sync"
	modeAsync = "async"
)

// Detokenizer substitutes tokens in strings and reports each call to the
// configured logger, metrics recorder and span manager.
//
// Create with New(). Detokenizer is safe for concurrent use; calls share
// no mutable state.
type Detokenizer struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates a Detokenizer with the given options.
//
// Default configuration:
//   - Logger: nil (no logging)
//   - Metrics: observability.NoopMetrics{}
//   - Tracing: observability.NoopSpanManager{}
func New(opts ...Option) *Detokenizer {
	d := &Detokenizer{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Build partitions input into literal and substituted segments without
// joining them. Substituted segments hold the raw replacement values,
// including unresolved Deferred values.
func (d *Detokenizer) Build(input string, values Values) ([]Segment, error) {
	segments, _, err := build(input, definitionsOf(values))
	return segments, err
}

// Detokenize replaces every token occurrence in input and returns the result.
//
// Every replacement must be immediately available: a Deferred value yields
// ErrDeferredValue. A replacement function error is returned unmodified and
// no partial output is produced.
func (d *Detokenizer) Detokenize(input string, values Values) (string, error) {
	defs := definitionsOf(values)
	ctx, c := d.begin(context.Background(), modeSync, input, len(defs))

	segments, stats, err := build(input, defs)
	var out string
	if err == nil {
		out, err = join(segments)
	}

	c.end(ctx, len(segments), stats, err)
	if err != nil {
		return "", err
	}
	return out, nil
}

// DetokenizeAsync is Detokenize for replacements that may resolve later.
//
// Every replacement function is invoked during the build without waiting on
// earlier results. The call then waits once for all Deferred values and
// joins the segments in their original order, regardless of the order in
// which the values resolved. The first failure observed is returned
// unmodified. Cancelling ctx stops the wait and returns ctx.Err().
func (d *Detokenizer) DetokenizeAsync(ctx context.Context, input string, values Values) (string, error) {
	defs := definitionsOf(values)
	ctx, c := d.begin(ctx, modeAsync, input, len(defs))

	segments, stats, err := build(input, defs)
	var out string
	if err == nil {
		done := observability.TimedOperation()
		var pending int
		pending, err = resolveAll(ctx, segments)
		d.metrics.RecordDeferred(ctx, pending)
		d.spans.AddSpanEvent(ctx, "deferred.resolved", attribute.Int("pending", pending))
		observability.LogDeferredResolved(c.logger, pending, done())
	}
	if err == nil {
		out, err = join(segments)
	}

	c.end(ctx, len(segments), stats, err)
	if err != nil {
		return "", err
	}
	return out, nil
}

// call carries the observability state of one invocation.
type call struct {
	d      *Detokenizer
	mode   string
	logger *slog.Logger
	span   trace.Span
	start  time.Time
}

func (d *Detokenizer) begin(ctx context.Context, mode, input string, definitions int) (context.Context, *call) {
	c := &call{d: d, mode: mode, start: time.Now()}

	callID := ""
	if _, noop := d.spans.(observability.NoopSpanManager); d.logger != nil || !noop {
		callID = uuid.NewString()
	}

	ctx, c.span = d.spans.StartCallSpan(ctx, mode, callID, definitions)
	c.logger = observability.EnrichLogger(d.logger, callID, mode)
	observability.LogCallStart(c.logger, len(input), definitions)
	return ctx, c
}

func (c *call) end(ctx context.Context, segments int, stats buildStats, err error) {
	duration := time.Since(c.start)
	durationMs := float64(duration.Microseconds()) / 1000

	c.d.metrics.RecordCall(ctx, c.mode, duration, stats.substitutions, err)
	if err != nil {
		observability.LogCallError(c.logger, err, durationMs)
	} else {
		observability.LogCallComplete(c.logger, durationMs, segments, stats.substitutions)
	}
	c.d.spans.EndSpanWithError(c.span, err)
}

// defaultDetokenizer has no logger and no-op metrics and tracing.
var defaultDetokenizer = New()

// Build partitions input into segments using the default Detokenizer.
func Build(input string, values Values) ([]Segment, error) {
	return defaultDetokenizer.Build(input, values)
}

// Detokenize replaces tokens in input using the default Detokenizer.
//
// Example:
//
//	out, err := detokenize.Detokenize("a{a}b{b}", detokenize.NewRecord().
//	    Set("{a}", "A").
//	    Set("{b}", 2))
//	// out: "aAb2"
func Detokenize(input string, values Values) (string, error) {
	return defaultDetokenizer.Detokenize(input, values)
}

// DetokenizeSync is an alias of Detokenize.
var DetokenizeSync = Detokenize

// DetokenizeAsync replaces tokens in input using the default Detokenizer,
// waiting for Deferred replacement values.
//
// Example:
//
//	out, err := detokenize.DetokenizeAsync(ctx, "Hi {user}", detokenize.NewRecord().
//	    Set("{user}", func(string) (any, error) {
//	        return detokenize.Go(fetchUserName), nil
//	    }))
func DetokenizeAsync(ctx context.Context, input string, values Values) (string, error) {
	return defaultDetokenizer.DetokenizeAsync(ctx, input, values)
}
