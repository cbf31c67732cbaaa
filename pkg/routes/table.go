package routes

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RawTable is an insertion-ordered mapping of raw patterns to targets, as
// read from route files. Setting an existing pattern replaces its target
// and keeps its original position.
type RawTable struct {
	entries *orderedmap.OrderedMap[string, Target]
}

// NewRawTable creates an empty RawTable.
func NewRawTable() *RawTable {
	return &RawTable{entries: orderedmap.New[string, Target]()}
}

// Set adds or replaces the target of a raw pattern.
func (t *RawTable) Set(pattern string, target Target) {
	t.entries.Set(pattern, target)
}

// Get returns the target declared for a raw pattern.
func (t *RawTable) Get(pattern string) (Target, bool) {
	return t.entries.Get(pattern)
}

// Len returns the number of raw patterns.
func (t *RawTable) Len() int {
	return t.entries.Len()
}

// Merge copies every entry of other into t in other's order.
func (t *RawTable) Merge(other *RawTable) {
	if other == nil {
		return
	}
	other.Each(func(pattern string, target Target) {
		t.Set(pattern, target)
	})
}

// Each calls fn for every entry in insertion order.
func (t *RawTable) Each(fn func(pattern string, target Target)) {
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Patterns returns the raw patterns in insertion order.
func (t *RawTable) Patterns() []string {
	out := make([]string, 0, t.Len())
	t.Each(func(pattern string, _ Target) {
		out = append(out, pattern)
	})
	return out
}

// Table is the ordered collection of compiled routes. Routes are keyed by
// their normalized pattern: adding a pattern that normalizes to an existing
// one replaces that route in place.
type Table struct {
	routes *orderedmap.OrderedMap[string, Route]
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{routes: orderedmap.New[string, Route]()}
}

// FromRaw compiles every entry of raw in order.
func FromRaw(raw *RawTable) (*Table, error) {
	t := NewTable()
	if raw == nil {
		return t, nil
	}

	var firstErr error
	raw.Each(func(pattern string, target Target) {
		if firstErr != nil {
			return
		}
		firstErr = t.Add(pattern, target)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return t, nil
}

// Add compiles pattern and appends it, or replaces the route that has the
// same normalized pattern.
func (t *Table) Add(pattern string, target Target) error {
	r, err := NewRoute(pattern, target)
	if err != nil {
		return err
	}
	t.routes.Set(r.Pattern, r)
	return nil
}

// Lookup returns the route declared for pattern (normalized before lookup).
func (t *Table) Lookup(pattern string) (Route, bool) {
	return t.routes.Get(Normalize(pattern))
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return t.routes.Len()
}

// Routes returns the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, t.Len())
	for pair := t.routes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
