package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("extractors add attributes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, logger.StringValue(ctxKey{}, "request_id"))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "hello")

		rec := decode(t, &buf)
		require.Equal(t, "hello", rec["msg"])
		require.Equal(t, "req-1", rec["request_id"])
	})

	t.Run("missing value is skipped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, logger.StringValue(ctxKey{}, "request_id"), nil)

		log.InfoContext(context.Background(), "hello")

		rec := decode(t, &buf)
		require.NotContains(t, rec, "request_id")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf, Level: slog.LevelWarn})

		log.Info("dropped")
		require.Zero(t, buf.Len())

		log.Warn("kept")
		require.Equal(t, "kept", decode(t, &buf)["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf, Format: logger.FormatText})

		log.Info("plain", slog.Int("n", 1))
		require.Contains(t, buf.String(), "msg=plain")
		require.Contains(t, buf.String(), "n=1")
	})

	t.Run("with attrs keeps extractors", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, logger.StringValue(ctxKey{}, "request_id")).
			With("component", "web")

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-2")
		log.InfoContext(ctx, "hello")

		rec := decode(t, &buf)
		require.Equal(t, "web", rec["component"])
		require.Equal(t, "req-2", rec["request_id"])
	})
}

func TestLevelFor(t *testing.T) {
	t.Parallel()
	require.Equal(t, slog.LevelDebug, logger.LevelFor(true))
	require.Equal(t, slog.LevelInfo, logger.LevelFor(false))
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }

func TestFanout(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	ha := slog.NewJSONHandler(&a, nil)
	hb := slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError})

	log := slog.New(logger.Fanout(ha, hb))
	log.Info("only a")
	require.NotZero(t, a.Len())
	require.Zero(t, b.Len())

	log.Error("both")
	require.NotZero(t, b.Len())

	h := logger.Fanout(failingHandler{ha}, hb)
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "x", 0))
	require.Error(t, err)
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()
	log := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
}
