package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/afoslt/pkg/manifest"
)

// Run serves the App and blocks until SIGINT, SIGTERM or cancellation of
// the base context, then shuts down gracefully. A session store that
// implements io.Closer is closed during shutdown.
//
// The manifest is loaded once at startup for logging only. Every request
// loads it again, so a missing manifest does not prevent the server from
// starting.
//
// Example:
//
//	err := app.Run(afoslt.Address(":8080"), afoslt.Logger(log))
func (a *App) Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	log := cfg.logger
	if log == nil {
		log = a.logger
	}

	hooks := cfg.shutdownHooks
	if a.sessions != nil {
		if closer, ok := a.sessions.Store().(io.Closer); ok {
			hooks = append(hooks, func(context.Context) error { return closer.Close() })
		}
	}

	a.logStartup(log)

	ctx, cancel := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.address, err)
	}

	server := a.newServer()
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	return shutdown(server, hooks, cfg.shutdownTimeout, log)
}

func (a *App) newServer() *http.Server {
	return &http.Server{
		Handler:           a,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}

// logStartup reports the manifest the first requests will see.
func (a *App) logStartup(log *slog.Logger) {
	attrs := []any{
		slog.String("manifest", a.manifestPath),
		slog.Int("controllers", a.controllers.Len()),
	}
	if a.fs == nil {
		log.Warn("no application filesystem, every request will drop", attrs...)
		return
	}

	m, err := manifest.Load(a.fs, a.manifestPath)
	if err != nil {
		log.Warn("manifest unavailable, every request will drop",
			append(attrs, slog.String("error", err.Error()))...)
		return
	}
	log.Info("manifest loaded", append(attrs,
		slog.String("name", m.Name),
		slog.String("version", m.Version),
		slog.String("build", m.Build.String()),
		slog.String("routes", m.RoutesDirectory),
	)...)
}

// shutdown stops accepting requests, waits for in-flight dispatch cycles and
// runs hooks in order. All failures are joined.
func shutdown(server *http.Server, hooks []func(context.Context) error, timeout time.Duration, log *slog.Logger) error {
	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.Int("hook", i), slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Error("shutdown completed with errors")
		return err
	}
	log.Info("shutdown completed")
	return nil
}
