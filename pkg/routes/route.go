package routes

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches a {name} segment in a route pattern.
var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Target is what a route points at. Every field is optional: an empty
// string means the route does not declare it.
type Target struct {
	Controller string `yaml:"controller,omitempty" json:"controller,omitempty"`
	Action     string `yaml:"action,omitempty" json:"action,omitempty"`
	Layout     string `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// Route is a compiled route. The matcher is derived from Pattern once and
// never changes afterwards.
type Route struct {
	matcher *regexp.Regexp
	Target  Target
	Pattern string // normalized
}

// NewRoute normalizes and compiles pattern.
func NewRoute(pattern string, target Target) (Route, error) {
	re, err := Compile(pattern)
	if err != nil {
		return Route{}, err
	}
	return Route{Pattern: Normalize(pattern), Target: target, matcher: re}, nil
}

// Expr returns the anchored expression the route was compiled to.
func (r Route) Expr() string {
	if r.matcher == nil {
		return ""
	}
	return r.matcher.String()
}

// match reports whether path (already normalized) fully matches the route
// and returns its named captures.
func (r Route) match(path string) (map[string]string, bool) {
	if r.matcher == nil {
		return nil, false
	}
	m := r.matcher.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string)
	for i, name := range r.matcher.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		params[name] = m[i]
	}
	return params, true
}

// Normalize strips any number of leading and trailing slashes and
// backslashes. Normalize is idempotent.
func Normalize(s string) string {
	return strings.Trim(s, `/\`)
}

// Compile turns a route pattern into an anchored matcher.
// Each {name} placeholder becomes a named group matching one or more word
// characters. All other characters are used as they are, so regular
// expression syntax in a pattern keeps its meaning.
//
//	Compile("/test/{id}/") // ^test/(?P<id>\w+)$
func Compile(pattern string) (*regexp.Regexp, error) {
	expr := "^" + placeholder.ReplaceAllString(Normalize(pattern), `(?P<${1}>\w+)`) + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// NormalizeRequest prepares a request path for matching: slashes are
// stripped first, then everything from the first "?" on is discarded.
// A slash in front of the query is kept, so "/users/?page=2" becomes "users/".
func NormalizeRequest(requestPath string) string {
	p := Normalize(requestPath)
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}
