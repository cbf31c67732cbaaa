package manifest

import "errors"

// Sentinel errors for manifest loading.
var (
	// ErrNotFound is returned when the manifest file does not exist.
	ErrNotFound = errors.New("manifest: not found")

	// ErrInvalid is returned when the manifest file cannot be parsed.
	ErrInvalid = errors.New("manifest: invalid")

	// ErrUnknownBuild is returned for a build mode other than debug or release.
	ErrUnknownBuild = errors.New("manifest: unknown build mode")
)
