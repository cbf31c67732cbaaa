package controller

import (
	"fmt"
	"sort"
)

// ActionFunc handles a request. C is the request context type.
type ActionFunc[C any] func(c C) error

// Controller is a named unit exposing members. Only public members may be
// dispatched to.
type Controller[C any] interface {
	// Member reports whether the controller has a member called name and
	// whether it is public.
	Member(name string) (public, ok bool)

	// Invoke calls the public member called name.
	Invoke(c C, name string) error
}

type member[C any] struct {
	fn     ActionFunc[C]
	public bool
}

// Base implements Controller. Embed it and register members from the
// controller's factory:
//
//	type Users struct {
//		controller.Base[afoslt.Context]
//	}
//
//	func NewUsers() controller.Controller[afoslt.Context] {
//		u := &Users{}
//		u.Action("IndexAction", u.index)
//		u.Helper("load", u.load)
//		return u
//	}
type Base[C any] struct {
	members map[string]member[C]
}

// Action registers a public member. Registering an existing name replaces it.
func (b *Base[C]) Action(name string, fn ActionFunc[C]) {
	b.set(name, fn, true)
}

// Helper registers a member that exists on the controller but cannot be
// dispatched to.
func (b *Base[C]) Helper(name string, fn ActionFunc[C]) {
	b.set(name, fn, false)
}

func (b *Base[C]) set(name string, fn ActionFunc[C], public bool) {
	if name == "" {
		panic("controller: empty member name")
	}
	if fn == nil {
		panic("controller: nil member " + name)
	}
	if b.members == nil {
		b.members = make(map[string]member[C])
	}
	b.members[name] = member[C]{fn: fn, public: public}
}

// Member implements Controller. Names are case-sensitive.
func (b *Base[C]) Member(name string) (public, ok bool) {
	m, ok := b.members[name]
	return m.public, ok
}

// Invoke implements Controller.
func (b *Base[C]) Invoke(c C, name string) error {
	m, ok := b.members[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMember, name)
	}
	if !m.public {
		return fmt.Errorf("%w: %s", ErrNotCallable, name)
	}
	return m.fn(c)
}

// Members returns the names of all members, sorted.
func (b *Base[C]) Members() []string {
	names := make([]string, 0, len(b.members))
	for name := range b.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
