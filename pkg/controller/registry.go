package controller

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Factory creates a fresh controller instance.
type Factory[C any] func() Controller[C]

type entry[C any] struct {
	name    string
	factory Factory[C]
}

// Registry maps fully-qualified controller names to factories.
//
// Names are dot-separated; slashes and backslashes are accepted as
// separators too. Namespace segments are matched case-insensitively and
// the last segment exactly, so "controllers.admin.UsersController" finds
// a controller registered as "Controllers.Admin.UsersController".
//
// Registry is safe for concurrent use.
type Registry[C any] struct {
	entries map[string]entry[C]
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{entries: make(map[string]entry[C])}
}

// Register adds a factory under fullName.
func (r *Registry[C]) Register(fullName string, factory Factory[C]) error {
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, fullName)
	}
	key, name, err := registryKey(fullName)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %s (as %s)", ErrDuplicate, fullName, existing.name)
	}
	r.entries[key] = entry[C]{name: name, factory: factory}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[C]) MustRegister(fullName string, factory Factory[C]) {
	if err := r.Register(fullName, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under fullName.
func (r *Registry[C]) Lookup(fullName string) (Factory[C], bool) {
	key, _, err := registryKey(fullName)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return e.factory, true
}

// Has reports whether fullName is registered and its factory produces a
// controller.
func (r *Registry[C]) Has(fullName string) bool {
	_, err := r.New(fullName)
	return err == nil
}

// New instantiates the controller registered under fullName.
func (r *Registry[C]) New(fullName string) (Controller[C], error) {
	factory, ok := r.Lookup(fullName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fullName)
	}
	c := factory()
	if c == nil {
		return nil, fmt.Errorf("%w: %s: factory returned nil", ErrNotFound, fullName)
	}
	return c, nil
}

// Names returns the registered names in their original spelling, sorted.
func (r *Registry[C]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered controllers.
func (r *Registry[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// registryKey returns the lookup key and the dot-separated name.
func registryKey(fullName string) (key, name string, err error) {
	segments := strings.FieldsFunc(fullName, func(r rune) bool {
		return r == '.' || r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, fullName)
	}
	for _, s := range segments {
		if strings.TrimSpace(s) != s {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidName, fullName)
		}
	}

	name = strings.Join(segments, ".")

	// A Caser keeps state and cannot be shared between goroutines.
	fold := cases.Fold()
	keys := make([]string, len(segments))
	for i, s := range segments[:len(segments)-1] {
		keys[i] = fold.String(s)
	}
	keys[len(keys)-1] = segments[len(segments)-1]

	return strings.Join(keys, "."), name, nil
}
