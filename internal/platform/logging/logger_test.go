package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Writer: &buf})

	logger.Debug("hidden")
	logger.InfoContext(context.Background(), "match result registered", "match_id", int64(7), "is_correction", true)
	logger.With("component", "reconcile").Warn("drift detected", "error", errors.New("totals differ"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[0], &first))
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "match result registered", first["msg"])
	assert.EqualValues(t, 7, first["match_id"])
	assert.Equal(t, true, first["is_correction"])

	var second map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[1], &second))
	assert.Equal(t, "reconcile", second["component"])
	assert.Equal(t, "totals differ", second["error"])
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("no logger configured")
		logger.WarnContext(context.Background(), "still fine")
	})
}

func TestNew_AttachesBaseAndRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Writer: &buf, Service: "tournament-ledger-api", Env: "dev"})

	ctx := WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "tournament started", "tournament_id", int64(3))
	logger.Info("no request")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[0], &first))
	assert.Equal(t, "tournament-ledger-api", first["service"])
	assert.Equal(t, "dev", first["env"])
	assert.Equal(t, "req-42", first["request_id"])
	assert.NotContains(t, first, "version")

	var second map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[1], &second))
	assert.NotContains(t, second, "request_id")
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(WithRequestID(context.Background(), "")))
	assert.Equal(t, "abc", RequestIDFromContext(WithRequestID(context.Background(), "abc")))
}

func TestLogger_ConcurrentWritesKeepLinesIntact(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Writer: &buf})

	const workers, perWorker = 16, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				logger.Info("team standing updated", "worker", w, "seq", i)
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, workers*perWorker)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, sonic.UnmarshalString(line, &entry), line)
		assert.Equal(t, "team standing updated", entry["msg"])
	}
}
