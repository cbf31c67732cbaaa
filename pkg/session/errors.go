package session

import "errors"

// Session errors.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidID is returned for empty session IDs.
	ErrInvalidID = errors.New("session: invalid id")

	// ErrClosed is returned when using a closed store.
	ErrClosed = errors.New("session: store closed")

	// ErrMarshal is returned when a session cannot be encoded or decoded.
	ErrMarshal = errors.New("session: failed to marshal session")
)
