package naming

import "strings"

// Separator joins namespace segments of a qualified controller name.
const Separator = "."

// Default conventions.
const (
	DefaultRootNamespace     = "Controllers"
	DefaultControllerKeyword = "Controller"
	DefaultActionKeyword     = "Action"
)

// Conventions are the manifest-driven naming rules.
type Conventions struct {
	RootNamespace     string
	ControllerKeyword string
	ActionKeyword     string
	AddKeywords       bool
}

// DefaultConventions returns the conventions of a manifest with no overrides.
func DefaultConventions() Conventions {
	return Conventions{
		RootNamespace:     DefaultRootNamespace,
		ControllerKeyword: DefaultControllerKeyword,
		ActionKeyword:     DefaultActionKeyword,
		AddKeywords:       true,
	}
}

// Units reports whether a qualified controller name maps onto a loadable
// controller. It is implemented by controller.Registry.
type Units interface {
	Has(fullName string) bool
}

// Members exposes the members of a controller instance together with
// their visibility.
type Members interface {
	// Member reports whether the controller has a member with exactly this
	// name (ok) and whether it may be invoked from outside (public).
	Member(name string) (public, ok bool)
}

// Resolver translates route-declared short names into qualified identifiers.
type Resolver struct {
	units Units
	conv  Conventions
}

// New creates a Resolver. Empty keyword or namespace fields fall back to
// the defaults. units may be nil, in which case Exists always reports false.
func New(conv Conventions, units Units) *Resolver {
	if conv.RootNamespace == "" {
		conv.RootNamespace = DefaultRootNamespace
	}
	if conv.ControllerKeyword == "" {
		conv.ControllerKeyword = DefaultControllerKeyword
	}
	if conv.ActionKeyword == "" {
		conv.ActionKeyword = DefaultActionKeyword
	}
	conv.RootNamespace = normalizeSeparators(conv.RootNamespace)
	return &Resolver{conv: conv, units: units}
}

// Conventions returns the conventions the resolver applies.
func (r *Resolver) Conventions() Conventions {
	return r.conv
}

// ResolveControllerName returns the qualified controller name for a short
// name such as "Users/Settings" or "Examples\Example".
//
//	ResolveControllerName("Users/Settings") // "Controllers.Users.SettingsController"
//
// An empty name resolves to an empty name. Qualified names are returned
// with the keyword applied, so the operation is idempotent.
func (r *Resolver) ResolveControllerName(short string) string {
	name := normalizeSeparators(short)
	if name == "" {
		return ""
	}

	full := name
	if !r.IsQualified(name) {
		var prefix, base string
		if i := strings.LastIndex(name, Separator); i >= 0 {
			prefix, base = name[:i], name[i+1:]
		} else {
			base = name
		}

		full = r.conv.RootNamespace + Separator
		if prefix != "" {
			full += prefix + Separator
		}
		full += base
	}

	if r.conv.AddKeywords && !hasSuffix(full, r.conv.ControllerKeyword) {
		full += r.conv.ControllerKeyword
	}
	return full
}

// IsQualified reports whether name already starts with the controllers
// root namespace. The root segment is compared case-insensitively, like
// namespaces in the controller registry.
func (r *Resolver) IsQualified(name string) bool {
	name = normalizeSeparators(name)
	root := r.conv.RootNamespace + Separator
	return len(name) > len(root) && strings.EqualFold(name[:len(root)], root)
}

// Exists reports whether a short or qualified controller name maps onto a
// registered, constructible controller.
func (r *Resolver) Exists(name string) bool {
	if name == "" || r.units == nil {
		return false
	}
	full := r.ResolveControllerName(name)
	if full == "" {
		return false
	}
	return r.units.Has(full)
}

// ResolveActionName appends the action keyword when keywords are enabled
// and the name does not already carry it.
//
//	ResolveActionName("Test")       // "TestAction"
//	ResolveActionName("TestAction") // "TestAction"
func (r *Resolver) ResolveActionName(short string) string {
	if short == "" {
		return ""
	}
	if r.conv.AddKeywords && !hasSuffix(short, r.conv.ActionKeyword) {
		return short + r.conv.ActionKeyword
	}
	return short
}

// ActionExists reports whether the controller exposes a public member named
// after the resolved action. Members that exist but are not public do not count.
func (r *Resolver) ActionExists(m Members, action string) bool {
	if m == nil {
		return false
	}
	full := r.ResolveActionName(action)
	if full == "" {
		return false
	}
	public, ok := m.Member(full)
	return ok && public
}

// normalizeSeparators maps slashes and backslashes onto Separator, dropping empty
// segments together with leading and trailing separators.
func normalizeSeparators(s string) string {
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '\\' || r == '.'
	})
	return strings.Join(segments, Separator)
}

// hasSuffix is a length-safe suffix test: a name shorter than the keyword
// never carries it.
func hasSuffix(name, keyword string) bool {
	return len(name) >= len(keyword) && strings.HasSuffix(name, keyword)
}
