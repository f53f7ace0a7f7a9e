package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records as JSON lines.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &testHandler{buf: h.buf, level: h.level, attrs: merged}
}

func (h *testHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *testHandler) lastRecord() map[string]any {
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	if len(lines) == 0 || len(lines[len(lines)-1]) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &m); err != nil {
		return nil
	}
	return m
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds call_id and mode", func(t *testing.T) {
		h := newTestHandler()
		enriched := EnrichLogger(slog.New(h), "call-1", "async")
		enriched.Info("hello")

		record := h.lastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "call-1", record["call_id"])
		assert.Equal(t, "async", record["mode"])
		assert.Equal(t, "hello", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "call-1", "sync"))
	})
}

func TestLogCallStart(t *testing.T) {
	h := newTestHandler()
	LogCallStart(slog.New(h), 12, 3)

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "detokenize starting", record["msg"])
	assert.Equal(t, float64(12), record["input_bytes"]) // JSON decodes ints as float64
	assert.Equal(t, float64(3), record["definitions"])
}

func TestLogCallComplete(t *testing.T) {
	h := newTestHandler()
	LogCallComplete(slog.New(h), 1.5, 5, 2)

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "detokenize completed", record["msg"])
	assert.Equal(t, 1.5, record["duration_ms"])
	assert.Equal(t, float64(5), record["segments"])
	assert.Equal(t, float64(2), record["substitutions"])
}

func TestLogCallError(t *testing.T) {
	h := newTestHandler()
	LogCallError(slog.New(h), errors.New("boom"), 2)

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "detokenize failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogDeferredResolved(t *testing.T) {
	h := newTestHandler()
	LogDeferredResolved(slog.New(h), 4, 10)

	record := h.lastRecord()
	require.NotNil(t, record)
	assert.Equal(t, "deferred values resolved", record["msg"])
	assert.Equal(t, float64(4), record["pending"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCallStart(nil, 1, 1)
		LogCallComplete(nil, 1, 1, 1)
		LogCallError(nil, errors.New("x"), 1)
		LogDeferredResolved(nil, 1, 1)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	assert.GreaterOrEqual(t, done(), float64(0))
}
