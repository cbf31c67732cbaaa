package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig enables error reporting to Sentry.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	// MinLevel is the lowest level stored as a Sentry log. Errors always become issues.
	MinLevel slog.Level
}

// NewWithSentry returns a JSON stdout logger that also reports to Sentry.
// An empty DSN yields a stdout-only logger.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{Sentry: cfg}, extractors...)
}

// FlushSentry waits up to timeout for buffered Sentry events to be sent.
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

func newSentryHandler(cfg SentryConfig) (slog.Handler, error) {
	env := cfg.Environment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		return nil, fmt.Errorf("logger: sentry init: %w", err)
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	switch {
	case cfg.MinLevel >= slog.LevelError:
		logLevels = []slog.Level{slog.LevelError}
	case cfg.MinLevel <= slog.LevelInfo:
		logLevels = []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background()), nil
}
