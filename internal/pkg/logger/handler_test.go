package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(WithTraceID(context.Background(), "abc"), "hello")
	l.InfoContext(context.Background(), "untraced")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0][TraceIDKey])
	assert.NotContains(t, lines[1], TraceIDKey)
}

func TestContextHandler_WithAttrsKeepsTrace(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)}).With("component", "test")

	l.InfoContext(WithTraceID(context.Background(), "xyz"), "hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "xyz", lines[0][TraceIDKey])
	assert.Equal(t, "test", lines[0]["component"])
}

func TestTeeHandler_RemoteOnlyReceivesTracedRecords(t *testing.T) {
	var local, remote bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&local, nil),
		NewRemoteFilterHandler(log.NewJSONHandler(&remote, nil), log.LevelError),
	)
	l := log.New(&ContextHandler{h})

	l.InfoContext(context.Background(), "local only")
	l.InfoContext(WithTraceID(context.Background(), "t-1"), "both")
	l.ErrorContext(context.Background(), "startup failure")

	assert.Len(t, decodeLines(t, &local), 3)
	remoteLines := decodeLines(t, &remote)
	require.Len(t, remoteLines, 2)
	assert.Equal(t, "both", remoteLines[0]["msg"])
	assert.Equal(t, "startup failure", remoteLines[1]["msg"])
}

func TestTeeHandler_PerHandlerLevel(t *testing.T) {
	var debug, warn bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&debug, &log.HandlerOptions{Level: log.LevelDebug}),
		log.NewJSONHandler(&warn, &log.HandlerOptions{Level: log.LevelWarn}),
	)
	l := log.New(h)

	l.Debug("debug")
	l.Warn("warn")

	assert.Len(t, decodeLines(t, &debug), 2)
	assert.Len(t, decodeLines(t, &warn), 1)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, parseLevel("warning"))
	assert.Equal(t, log.LevelError, parseLevel("error"))
	assert.Equal(t, log.LevelInfo, parseLevel(""))
}

func TestSetLevel(t *testing.T) {
	captureDefault(t)
	prev := Level()
	t.Cleanup(func() { level.Set(prev) })

	SetLevel("error")
	assert.Equal(t, log.LevelError, Level())

	SetLevel("debug")
	assert.Equal(t, log.LevelDebug, Level())

	handler := log.NewJSONHandler(&bytes.Buffer{}, &log.HandlerOptions{Level: level})
	assert.True(t, handler.Enabled(context.Background(), log.LevelDebug))
}
