package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/afoslt/pkg/manifest"
	"github.com/dmitrymomot/afoslt/pkg/naming"
	"github.com/dmitrymomot/afoslt/pkg/routes"
)

// State is a step of the dispatch cycle.
type State int

const (
	StateUninitialized State = iota
	StateManifestLoaded
	StateRoutesBuilt
	StateRequestRead
	StateDispatched
	StateDropped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateManifestLoaded:
		return "manifest-loaded"
	case StateRoutesBuilt:
		return "routes-built"
	case StateRequestRead:
		return "request-read"
	case StateDispatched:
		return "dispatched"
	case StateDropped:
		return "dropped"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// errorRoute is dispatched when no route exists for the numeric status.
const errorRoute = "app/error"

const stackSize = 4 << 10

// Application runs a single dispatch cycle. A new Application is created for
// every request and discarded afterwards.
type Application struct {
	app      *App
	ctx      *requestContext
	manifest *manifest.Manifest
	table    *routes.Table
	router   *routes.Router
	resolver *naming.Resolver
	match    *routes.MatchResult
	err      *Error
	log      *slog.Logger
	state    State
	sinking  bool
}

func newApplication(app *App, c *requestContext) *Application {
	a := &Application{app: app, ctx: c, log: app.logger}
	c.drop = a.DropApplication
	return a
}

// State returns the current state.
func (a *Application) State() State {
	return a.state
}

// Err returns the error the cycle was dropped with, or nil.
func (a *Application) Err() *Error {
	return a.err
}

// Match returns the matched route, or nil before the request was read.
func (a *Application) Match() *routes.MatchResult {
	return a.match
}

// Run drives the cycle to StateDispatched or StateDropped.
func (a *Application) Run() {
	start := time.Now()
	defer func() {
		a.saveSession()
		a.app.metrics.observe(a.ctx.controller, a.ctx.action, a.ctx.response.Status(), time.Since(start))
	}()

	steps := []func() *Error{
		a.loadManifest,
		a.buildRoutes,
		a.readRequest,
		a.dispatch,
	}
	for _, step := range steps {
		if e := step(); e != nil {
			a.drop(e)
			return
		}
	}
}

// DropApplication ends the cycle with the given taxonomy code and emits the
// error response. Actions reach it through Context.Drop.
func (a *Application) DropApplication(code, message string) *Error {
	e := NewError(code, message)
	a.drop(e)
	return e
}

func (a *Application) transition(s State) {
	a.log.DebugContext(a.ctx, "dispatch state changed",
		slog.String("from", a.state.String()),
		slog.String("to", s.String()),
	)
	a.state = s
}

func (a *Application) loadManifest() *Error {
	if a.app.fs == nil {
		return NewError(CodeNoManifest, "no filesystem configured")
	}
	m, err := manifest.Load(a.app.fs, a.app.manifestPath)
	if err != nil {
		return wrapError(CodeNoManifest, err)
	}

	a.manifest = m
	a.ctx.manifest = m
	a.ctx.renderer = a.app.renderer(*m)
	a.transition(StateManifestLoaded)
	return nil
}

func (a *Application) buildRoutes() *Error {
	raw, err := routes.LoadDir(a.app.fs, a.manifest.RoutesDirectory)
	if err != nil {
		return wrapError(CodeInvalidRoute, err)
	}
	if a.app.routes != nil {
		raw.Merge(a.app.routes)
	}

	table, err := routes.FromRaw(raw)
	if err != nil {
		return wrapError(CodeInvalidRoute, err)
	}

	var opts []routes.Option
	if a.manifest.HasDefaultLayout() {
		opts = append(opts, routes.WithDefaultLayout(a.manifest.DefaultLayout))
	}
	a.table = table
	a.router = routes.NewRouter(table, opts...)
	a.resolver = naming.New(a.manifest.Conventions(), a.app.controllers)
	a.transition(StateRoutesBuilt)
	return nil
}

func (a *Application) readRequest() *Error {
	r := a.ctx.request
	raw := r.RequestURI
	if raw == "" {
		raw = r.URL.RequestURI()
	}

	match, ok := a.router.Match(raw)
	if !ok {
		return NewError(CodeNoMatchingRoute, fmt.Sprintf("no route matches %q", routes.NormalizeRequest(raw)))
	}
	a.match = match

	args := make(map[string]string, len(match.Params))
	for k, v := range match.Params {
		args[k] = v
	}
	if a.manifest.ReadGetPost {
		for k, vs := range r.URL.Query() {
			if len(vs) > 0 {
				args[k] = vs[0]
			}
		}
		if err := r.ParseForm(); err != nil {
			a.log.WarnContext(a.ctx, "request form ignored", slog.String("error", err.Error()))
		}
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				args[k] = vs[0]
			}
		}
	}

	a.ctx.params = match.Params
	a.ctx.args = args
	a.ctx.layout = match.Layout
	a.transition(StateRequestRead)

	a.startSession()
	return nil
}

func (a *Application) startSession() {
	if !a.manifest.StartupSession || a.app.sessions == nil {
		return
	}
	s, err := a.app.sessions.Start(a.ctx, a.ctx.response, a.ctx.request)
	if err != nil {
		a.log.WarnContext(a.ctx, "session unavailable", slog.String("error", err.Error()))
		return
	}
	a.ctx.session = s
	a.ctx.response.OnBeforeWrite(a.saveSession)
}

func (a *Application) saveSession() {
	if a.ctx.session == nil || !a.ctx.session.IsDirty() {
		return
	}
	if err := a.app.sessions.Save(a.ctx, a.ctx.session); err != nil {
		a.log.ErrorContext(a.ctx, "failed to save session", slog.String("error", err.Error()))
	}
}

func (a *Application) dispatch() *Error {
	ctrl, action, e := a.resolve(a.match.Controller, a.match.Action)
	if e != nil {
		return e
	}

	a.log.InfoContext(a.ctx, "dispatching", slog.String("route", a.match.Pattern))
	err := a.invoke(ctrl, action)
	if a.state == StateDropped {
		return nil
	}
	if err != nil {
		if de := AsError(err); de != nil {
			return de
		}
		e := wrapError(CodeActionFailed, err)
		e.Message = fmt.Sprintf("%s.%s: %s", a.ctx.controller, action, err)
		return e
	}

	a.transition(StateDispatched)
	return nil
}

// resolve qualifies the short names from a route target, checks that the
// controller and the public action exist and instantiates the controller.
func (a *Application) resolve(shortController, shortAction string) (Controller, string, *Error) {
	name := a.resolver.ResolveControllerName(shortController)
	if name == "" {
		return nil, "", NewError(CodeControllerNotFound, "route has no controller")
	}
	if !a.resolver.Exists(name) {
		return nil, "", NewError(CodeControllerNotFound, fmt.Sprintf("controller %q not found", name))
	}
	ctrl, err := a.app.controllers.New(name)
	if err != nil {
		return nil, "", wrapError(CodeControllerNotFound, err)
	}

	a.ctx.controller = name
	a.ctx.Set(controllerKey{}, name)

	action := a.resolver.ResolveActionName(shortAction)
	if action == "" {
		return nil, "", NewError(CodeActionNotFound, fmt.Sprintf("route for %q has no action", name))
	}
	if !a.resolver.ActionExists(ctrl, action) {
		return nil, "", NewError(CodeActionNotFound, fmt.Sprintf("action %q not found in %q", action, name))
	}

	a.ctx.action = action
	a.ctx.Set(actionKey{}, action)
	return ctrl, action, nil
}

// invoke calls the action and turns a panic into a *PanicError.
func (a *Application) invoke(ctrl Controller, action string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, stackSize)
			stack = stack[:runtime.Stack(stack, false)]
			a.log.ErrorContext(a.ctx, "panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(stack)),
			)
			err = &PanicError{Value: r, Stack: stack}
		}
	}()
	return ctrl.Invoke(a.ctx, action)
}

// drop is the only producer of error responses.
func (a *Application) drop(e *Error) {
	a.err = e
	a.ctx.err = e
	a.transition(StateDropped)
	a.app.metrics.dropped(e.Code)

	level := slog.LevelWarn
	if e.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.log.Log(a.ctx, level, "dispatch dropped",
		slog.String("code", e.Code),
		slog.Int("status", e.Status),
		slog.String("message", e.Message),
	)

	if a.ctx.Written() {
		return
	}
	if a.sinking {
		a.writeError(e)
		return
	}
	a.sinking = true

	if a.app.errorHandler != nil {
		err := a.app.errorHandler(a.ctx, e)
		if err == nil || a.ctx.Written() {
			return
		}
		a.log.ErrorContext(a.ctx, "error handler failed", slog.String("error", err.Error()))
		a.writeError(e)
		return
	}

	if a.dispatchErrorRoute(e) {
		return
	}
	a.writeError(e)
}

// dispatchErrorRoute runs the route registered under the numeric status, or
// the app/error route. It reports whether a response was produced.
func (a *Application) dispatchErrorRoute(e *Error) bool {
	if a.table == nil {
		return false
	}

	for _, pattern := range []string{strconv.Itoa(e.Status), errorRoute} {
		route, ok := a.table.Lookup(pattern)
		if !ok {
			continue
		}
		ctrl, action, re := a.resolve(route.Target.Controller, route.Target.Action)
		if re != nil {
			a.log.DebugContext(a.ctx, "error route skipped",
				slog.String("route", pattern),
				slog.String("reason", re.Message),
			)
			continue
		}
		a.ctx.layout = route.Target.Layout
		if a.ctx.layout == "" && a.manifest.HasDefaultLayout() {
			a.ctx.layout = a.manifest.DefaultLayout
		}

		if err := a.invoke(ctrl, action); err != nil {
			a.log.ErrorContext(a.ctx, "error route failed", slog.String("error", err.Error()))
		}
		return a.ctx.Written()
	}
	return false
}

func (a *Application) writeError(e *Error) {
	debug := a.manifest == nil || a.manifest.IsDebug()
	var err error
	if acceptsJSON(a.ctx.request) {
		err = a.ctx.JSON(e.Status, e.Payload(debug))
	} else {
		err = a.ctx.String(e.Status, e.Body(debug))
	}
	if err != nil {
		a.log.ErrorContext(a.ctx, "failed to write error response", slog.String("error", err.Error()))
	}
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
