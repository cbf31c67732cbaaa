package internal

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/dmitrymomot/afoslt"

// startSpan opens the span covering one dispatch cycle and stores its
// context on c. The returned func ends the span.
func (a *App) startSpan(c *requestContext) func(*Application) {
	if a.tracer == nil {
		return func(*Application) {}
	}

	r := c.request
	ctx, span := a.tracer.Start(r.Context(), "afoslt.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", r.URL.Path),
		),
	)
	c.request = r.WithContext(ctx)

	return func(app *Application) {
		defer span.End()
		span.SetAttributes(
			attribute.String("afoslt.state", app.State().String()),
			attribute.String("afoslt.controller", c.controller),
			attribute.String("afoslt.action", c.action),
			attribute.Int("http.response.status_code", c.response.Status()),
		)
		if e := app.Err(); e != nil {
			span.RecordError(e)
			span.SetStatus(codes.Error, e.Code)
		}
	}
}

func newTracer(name string) trace.Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return otel.Tracer(name)
}
