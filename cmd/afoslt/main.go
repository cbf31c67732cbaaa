package main

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/afoslt"
	"github.com/dmitrymomot/afoslt/pkg/logger"
	"github.com/dmitrymomot/afoslt/pkg/redis"
	"github.com/dmitrymomot/afoslt/pkg/session"
)

//go:embed all:app
var embedded embed.FS

func main() {
	ctx := context.Background()

	log := logger.NewWithConfig(logger.Config{
		Level: logger.LevelFor(os.Getenv("DEBUG") != ""),
		Sentry: logger.SentryConfig{
			DSN:         os.Getenv("SENTRY_DSN"),
			Environment: getEnv("SENTRY_ENVIRONMENT", "production"),
		},
	}, afoslt.LogExtractors()...)

	appFS, err := fs.Sub(embedded, "app")
	if err != nil {
		fatal(log, "embedded files", err)
	}

	reg := afoslt.NewRegistry()
	registerControllers(reg)

	opts := []afoslt.Option{
		afoslt.WithFS(appFS),
		afoslt.WithControllers(reg),
		afoslt.WithCustomLogger(log),
		afoslt.WithStaticFiles("/static", appFS, "public"),
		afoslt.WithMetrics(),
		afoslt.WithTracing(""),
	}
	runOpts := []afoslt.RunOption{
		afoslt.Address(getEnv("ADDR", ":8080")),
		afoslt.Logger(log),
	}

	var store session.Store
	if url := os.Getenv("REDIS_URL"); url != "" {
		client, err := redis.Open(ctx, url)
		if err != nil {
			fatal(log, "redis connection failed", err)
		}
		store = session.NewRedisStore(client)
		opts = append(opts, afoslt.WithHealthChecks(
			afoslt.WithReadinessCheck("redis", redis.Healthcheck(client)),
		))
		runOpts = append(runOpts, afoslt.ShutdownHook(redis.Shutdown(client)))
	} else {
		store = session.NewMemoryStore()
		opts = append(opts, afoslt.WithHealthChecks())
	}
	opts = append(opts, afoslt.WithSessionStore(store))

	app := afoslt.New(opts...)
	if err := app.Run(runOpts...); err != nil {
		fatal(log, "server stopped", err)
	}
	logger.FlushSentry(sentryFlushTimeout)
}

const sentryFlushTimeout = 2 * time.Second

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.String("error", err.Error()))
	logger.FlushSentry(sentryFlushTimeout)
	os.Exit(1)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
