// Package logger builds log/slog loggers for afoslt applications.
//
// Records are JSON on stdout by default. A ContextHandler enriches each record
// with request-scoped attributes pulled from the logging context by
// ContextExtractor functions, so a call such as
//
//	log.InfoContext(ctx, "dispatched")
//
// carries request_id, controller and action without passing them explicitly.
// When SentryConfig.DSN is set, records are also fanned out to Sentry: errors
// become issues and warnings are stored as logs.
package logger
