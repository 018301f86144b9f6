package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/logger"
)

type ctxKey struct{}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return slog.String("request_id", v), true
	}
	return slog.Attr{}, false
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), requestIDExtractor)
		log := slog.New(h)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "hello")

		rec := decode(t, &buf)
		require.Equal(t, "req-1", rec["request_id"])
		require.Equal(t, "hello", rec["msg"])
	})

	t.Run("skips missing values and nil extractors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil, requestIDExtractor)
		slog.New(h).InfoContext(context.Background(), "hello")

		rec := decode(t, &buf)
		_, ok := rec["request_id"]
		require.False(t, ok)
	})

	t.Run("keeps extractors through WithAttrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), requestIDExtractor)
		log := slog.New(h).With("component", "shell")

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-2")
		log.InfoContext(ctx, "rendered")

		rec := decode(t, &buf)
		require.Equal(t, "req-2", rec["request_id"])
		require.Equal(t, "shell", rec["component"])
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestComponent(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logger.Component(nil, "x"))
	require.NotNil(t, logger.NewNope())
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.SentryConfig{Level: "debug"})
	require.NotNil(t, log)
	require.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	require.NoError(t, logger.SentryFlush()(context.Background()))
}
