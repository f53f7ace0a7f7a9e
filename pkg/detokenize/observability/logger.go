// Package observability provides logging, metrics and tracing for
// detokenize calls.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds call context to a logger.
// Returns a new logger with call_id and mode fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "5f0c...", "async")
//	enriched.Debug("resolving") // includes call_id, mode
func EnrichLogger(logger *slog.Logger, callID, mode string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("call_id", callID),
		slog.String("mode", mode),
	)
}

// LogCallStart logs the start of a detokenize call.
func LogCallStart(logger *slog.Logger, inputLen, definitions int) {
	if logger == nil {
		return
	}
	logger.Debug("detokenize starting",
		slog.Int("input_bytes", inputLen),
		slog.Int("definitions", definitions),
	)
}

// LogCallComplete logs a successful detokenize call.
func LogCallComplete(logger *slog.Logger, durationMs float64, segments, substitutions int) {
	if logger == nil {
		return
	}
	logger.Debug("detokenize completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("segments", segments),
		slog.Int("substitutions", substitutions),
	)
}

// LogCallError logs a failed detokenize call.
func LogCallError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("detokenize failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDeferredResolved logs the completion of the await-all step.
func LogDeferredResolved(logger *slog.Logger, pending int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("deferred values resolved",
		slog.Int("pending", pending),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
