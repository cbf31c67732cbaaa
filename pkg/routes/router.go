package routes

// MatchResult is the outcome of a successful Match.
// Empty Controller, Action or Layout mean the matched route does not
// declare them, which is not an error.
type MatchResult struct {
	Params     map[string]string
	Controller string
	Action     string
	Layout     string
	Pattern    string
}

// HasController reports whether the matched route names a controller.
func (m *MatchResult) HasController() bool { return m.Controller != "" }

// HasAction reports whether the matched route names an action.
func (m *MatchResult) HasAction() bool { return m.Action != "" }

// HasLayout reports whether a layout was selected for the request.
func (m *MatchResult) HasLayout() bool { return m.Layout != "" }

// Router resolves request paths against a Table.
type Router struct {
	table         *Table
	defaultLayout string
}

// Option configures a Router.
type Option func(*Router)

// WithDefaultLayout sets the layout used when the matched route declares none.
func WithDefaultLayout(name string) Option {
	return func(r *Router) {
		r.defaultLayout = name
	}
}

// NewRouter creates a Router over table. A nil table matches nothing.
func NewRouter(table *Table, opts ...Option) *Router {
	if table == nil {
		table = NewTable()
	}
	r := &Router{table: table}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the router's table.
func (r *Router) Table() *Table {
	return r.table
}

// Match resolves requestPath against the table.
// Routes are tried in table order and the first one whose pattern matches
// the whole normalized path wins, whether or not it declares a controller
// or an action. Returns false if no route matches.
func (r *Router) Match(requestPath string) (*MatchResult, bool) {
	path := NormalizeRequest(requestPath)

	for pair := r.table.routes.Oldest(); pair != nil; pair = pair.Next() {
		route := pair.Value
		params, ok := route.match(path)
		if !ok {
			continue
		}

		res := &MatchResult{
			Pattern:    route.Pattern,
			Controller: route.Target.Controller,
			Action:     route.Target.Action,
			Layout:     route.Target.Layout,
			Params:     params,
		}
		if res.Layout == "" {
			res.Layout = r.defaultLayout
		}
		return res, true
	}

	return nil, false
}
