package routes

import "errors"

// Sentinel errors for route compilation and discovery.
var (
	// ErrInvalidPattern is returned when a pattern does not compile to a valid expression.
	ErrInvalidPattern = errors.New("routes: invalid pattern")

	// ErrInvalidFile is returned when a route file cannot be parsed.
	ErrInvalidFile = errors.New("routes: invalid route file")
)
