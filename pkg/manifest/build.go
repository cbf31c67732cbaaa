package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Build is the application work mode.
// It controls how much error detail reaches the client.
type Build int

const (
	// BuildDebug surfaces full error detail in responses.
	BuildDebug Build = iota
	// BuildRelease hides error detail behind generic status text.
	BuildRelease
)

// String returns "debug" or "release".
func (b Build) String() string {
	if b == BuildRelease {
		return "release"
	}
	return "debug"
}

// ParseBuild converts a build name ("debug", "release") or its numeric
// form ("0", "1") to a Build.
func ParseBuild(s string) (Build, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "0", "":
		return BuildDebug, nil
	case "release", "1":
		return BuildRelease, nil
	default:
		return BuildDebug, fmt.Errorf("%w: %q", ErrUnknownBuild, s)
	}
}

// UnmarshalYAML accepts both the symbolic and the numeric form.
func (b *Build) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar at line %d", ErrUnknownBuild, node.Line)
	}
	parsed, err := ParseBuild(node.Value)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalYAML writes the symbolic form.
func (b Build) MarshalYAML() (any, error) {
	return b.String(), nil
}
