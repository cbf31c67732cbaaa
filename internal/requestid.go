package internal

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/afoslt/pkg/logger"
)

type (
	requestIDKey  struct{}
	controllerKey struct{}
	actionKey     struct{}
)

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-ID"

// requestIDHeaders are checked in order for an upstream request ID.
var requestIDHeaders = []string{RequestIDHeader, "X-Correlation-ID"}

// assignRequestID reuses an upstream ID or generates one, stores it on c
// and sets the response header.
func assignRequestID(c *requestContext) string {
	var id string
	for _, h := range requestIDHeaders {
		if v := c.Header(h); v != "" {
			id = v
			break
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey{}, id)
	c.SetHeader(RequestIDHeader, id)
	return id
}

// RequestIDExtractor logs the request ID as "request_id".
func RequestIDExtractor() logger.ContextExtractor {
	return logger.StringValue(requestIDKey{}, "request_id")
}

// RouteExtractors log the resolved controller and action names once a route matched.
func RouteExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		logger.StringValue(controllerKey{}, "controller"),
		logger.StringValue(actionKey{}, "action"),
	}
}

// LogExtractors returns the request ID, controller and action extractors.
func LogExtractors() []logger.ContextExtractor {
	return append([]logger.ContextExtractor{RequestIDExtractor()}, RouteExtractors()...)
}
