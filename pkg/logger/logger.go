package logger

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the encoding of log records.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config describes how a logger is built.
type Config struct {
	// Output defaults to os.Stdout.
	Output io.Writer
	// Level defaults to slog.LevelInfo.
	Level slog.Leveler
	// Format defaults to FormatJSON.
	Format Format
	// Sentry is optional; records are also sent to Sentry when its DSN is set.
	Sentry SentryConfig
}

// New returns a JSON logger writing to stdout at info level.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{}, extractors...)
}

// NewWithConfig builds a logger from cfg and decorates it with the given extractors.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var base slog.Handler
	switch cfg.Format {
	case FormatText:
		base = slog.NewTextHandler(out, opts)
	default:
		base = slog.NewJSONHandler(out, opts)
	}

	if cfg.Sentry.DSN != "" {
		sh, err := newSentryHandler(cfg.Sentry)
		if err != nil {
			slog.New(base).Error("sentry disabled", slog.String("error", err.Error()))
		} else {
			base = Fanout(base, sh)
		}
	}

	return slog.New(WithContext(base, extractors...))
}

// LevelFor maps a debug flag to a log level.
func LevelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewNope returns a logger that drops every record.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
