package internal_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/afoslt/internal"
	"github.com/dmitrymomot/afoslt/pkg/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runCancelled(t *testing.T, app *internal.App, opts ...internal.RunOption) (string, error) {
	t.Helper()

	out := &syncBuffer{}
	log := logger.NewWithConfig(logger.Config{Output: out, Level: slog.LevelDebug})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.Run(append([]internal.RunOption{
		internal.Address("127.0.0.1:0"),
		internal.Logger(log),
		internal.WithContext(ctx),
		internal.ShutdownTimeout(time.Second),
	}, opts...)...)
	return out.String(), err
}

func TestRunLogsManifestAtStartup(t *testing.T) {
	t.Parallel()

	t.Run("manifest loaded", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, appFS("name: Demo\nversion: 1.2.0\nbuild: release\n"))

		out, err := runCancelled(t, app)
		require.NoError(t, err)
		require.Contains(t, out, `"msg":"manifest loaded"`)
		require.Contains(t, out, `"name":"Demo"`)
		require.Contains(t, out, `"build":"release"`)
		require.Contains(t, out, `"controllers":2`)
		require.Contains(t, out, `"msg":"shutdown completed"`)
	})

	t.Run("missing manifest still starts", func(t *testing.T) {
		t.Parallel()
		fsys := appFS("")
		delete(fsys, "config/manifest.yaml")

		out, err := runCancelled(t, newApp(t, fsys))
		require.NoError(t, err)
		require.Contains(t, out, `"msg":"manifest unavailable, every request will drop"`)
	})

	t.Run("no filesystem", func(t *testing.T) {
		t.Parallel()
		out, err := runCancelled(t, internal.New())
		require.NoError(t, err)
		require.Contains(t, out, `"msg":"no application filesystem, every request will drop"`)
	})
}

func TestRunShutdownHookErrors(t *testing.T) {
	t.Parallel()

	errFlush := errors.New("flush failed")
	var order []int
	out, err := runCancelled(t, newApp(t, appFS("name: Demo\n")),
		internal.ShutdownHook(func(context.Context) error {
			order = append(order, 1)
			return errFlush
		}),
		internal.ShutdownHook(func(context.Context) error {
			order = append(order, 2)
			return nil
		}),
	)

	require.ErrorIs(t, err, errFlush)
	require.Equal(t, []int{1, 2}, order)
	require.Contains(t, out, `"msg":"shutdown hook failed"`)
}

func TestRunListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	app := newApp(t, appFS("name: Demo\n"))
	err = app.Run(internal.Address(ln.Addr().String()), internal.Logger(logger.NewNope()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen "+ln.Addr().String())
}
