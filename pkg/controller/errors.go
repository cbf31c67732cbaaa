package controller

import "errors"

var (
	// ErrInvalidName is returned when a controller name is empty or has empty segments.
	ErrInvalidName = errors.New("controller: invalid name")

	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("controller: already registered")

	// ErrNilFactory is returned when registering a nil factory.
	ErrNilFactory = errors.New("controller: nil factory")

	// ErrNotFound is returned when no usable controller is registered under a name.
	ErrNotFound = errors.New("controller: not found")

	// ErrUnknownMember is returned when invoking a member the controller does not have.
	ErrUnknownMember = errors.New("controller: unknown member")

	// ErrNotCallable is returned when invoking a member that is not public.
	ErrNotCallable = errors.New("controller: member is not public")
)
