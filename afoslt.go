package afoslt

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/afoslt/internal"
	"github.com/dmitrymomot/afoslt/pkg/controller"
	"github.com/dmitrymomot/afoslt/pkg/health"
	"github.com/dmitrymomot/afoslt/pkg/logger"
	"github.com/dmitrymomot/afoslt/pkg/routes"
	"github.com/dmitrymomot/afoslt/pkg/session"
	"github.com/dmitrymomot/afoslt/pkg/view"
)

// Type aliases - public API
type (
	// App serves every request through a fresh dispatch cycle.
	App = internal.App

	// Application is the state of a single dispatch cycle.
	Application = internal.Application

	// State is a step of the dispatch cycle.
	State = internal.State

	// Context is the request-scoped state handed to controller actions.
	Context = internal.Context

	// Controller is a controller dispatched with the request Context.
	Controller = internal.Controller

	// Base is embedded by controllers to register actions and helpers.
	Base = controller.Base[Context]

	// ActionFunc is the signature of controller actions.
	ActionFunc = internal.ActionFunc

	// Factory creates a fresh controller for each dispatch.
	Factory = controller.Factory[Context]

	// Registry maps qualified controller names to factories.
	Registry = internal.Registry

	// Error is a terminal failure of a dispatch cycle.
	Error = internal.Error

	// ErrorHandler replaces the default error response.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health endpoints.
	HealthOption = internal.HealthOption

	// MetricsOption configures dispatch metrics.
	MetricsOption = internal.MetricsOption

	// ContextExtractor pulls a log attribute out of the request context.
	ContextExtractor = logger.ContextExtractor

	// Target is the controller, action and layout a route points to.
	Target = routes.Target

	// Routes is an ordered set of routes declared in code.
	Routes = routes.RawTable

	// Page describes a view rendering.
	Page = view.Page

	// Session is a server-side session.
	Session = session.Session

	// SessionStore persists sessions.
	SessionStore = session.Store

	// SessionOption configures the session cookie.
	SessionOption = session.ManagerOption

	// ResponseWriter records the response and runs hooks before the first write.
	ResponseWriter = internal.ResponseWriter
)

// Dispatch states.
const (
	StateUninitialized  = internal.StateUninitialized
	StateManifestLoaded = internal.StateManifestLoaded
	StateRoutesBuilt    = internal.StateRoutesBuilt
	StateRequestRead    = internal.StateRequestRead
	StateDispatched     = internal.StateDispatched
	StateDropped        = internal.StateDropped
)

// Error codes.
const (
	CodeNoManifest         = internal.CodeNoManifest
	CodeNoMatchingRoute    = internal.CodeNoMatchingRoute
	CodeControllerNotFound = internal.CodeControllerNotFound
	CodeActionNotFound     = internal.CodeActionNotFound
	CodeInvalidRoute       = internal.CodeInvalidRoute
	CodeActionFailed       = internal.CodeActionFailed
)

// Sentinel errors for errors.Is.
var (
	ErrNoManifest         = internal.ErrNoManifest
	ErrNoMatchingRoute    = internal.ErrNoMatchingRoute
	ErrControllerNotFound = internal.ErrControllerNotFound
	ErrActionNotFound     = internal.ErrActionNotFound
	ErrInvalidRoute       = internal.ErrInvalidRoute
	ErrActionFailed       = internal.ErrActionFailed
)

// DefaultManifestPath is where the manifest is looked up in the app filesystem.
const DefaultManifestPath = internal.DefaultManifestPath

// Constructors

// New creates an application.
//
// Example:
//
//	//go:embed config views layouts
//	var appFS embed.FS
//
//	app := afoslt.New(
//	    afoslt.WithFS(appFS),
//	    afoslt.WithController("Controllers.HomeController", NewHome),
//	)
//
//	err := app.Run(afoslt.Address(":8080"))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRegistry creates an empty controller registry.
func NewRegistry() *Registry {
	return controller.NewRegistry[Context]()
}

// NewRoutes creates an empty set of code-declared routes.
func NewRoutes() *Routes {
	return routes.NewRawTable()
}

// NewError builds an Error for one of the error codes.
func NewError(code, message string) *Error {
	return internal.NewError(code, message)
}

// App options

// WithFS sets the filesystem holding the manifest, route files, views and layouts.
func WithFS(fsys fs.FS) Option {
	return internal.WithFS(fsys)
}

// WithManifestPath sets the manifest location. Defaults to "config/manifest.yaml".
func WithManifestPath(path string) Option {
	return internal.WithManifestPath(path)
}

// WithControllers replaces the controller registry.
func WithControllers(reg *Registry) Option {
	return internal.WithControllers(reg)
}

// WithController registers a controller factory under its qualified name,
// for example "Controllers.Admin.UsersController".
func WithController(name string, factory Factory) Option {
	return internal.WithController(name, factory)
}

// WithRoutes adds routes declared in code, merged after the route files.
func WithRoutes(r *Routes) Option {
	return internal.WithRoutes(r)
}

// WithRoute adds a single route declared in code.
func WithRoute(pattern string, target Target) Option {
	return internal.WithRoute(pattern, target)
}

// WithLogger creates a JSON logger tagged with component.
// Request ID, controller and action are always logged.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithErrorHandler replaces the default error response.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithSessionStore enables sessions backed by store.
func WithSessionStore(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSessionStore(store, opts...)
}

// WithHealthChecks serves liveness and readiness endpoints.
//
// Example:
//
//	afoslt.WithHealthChecks(
//	    afoslt.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithMetrics serves Prometheus dispatch metrics.
func WithMetrics(opts ...MetricsOption) Option {
	return internal.WithMetrics(opts...)
}

// WithTracing opens an OpenTelemetry span per dispatch cycle.
func WithTracing(name string) Option {
	return internal.WithTracing(name)
}

// WithStaticFiles serves files from subDir of fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// Health options

// WithLivenessPath sets the liveness endpoint.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness endpoint.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Metrics options

// WithMetricsNamespace sets the metric name prefix.
func WithMetricsNamespace(ns string) MetricsOption {
	return internal.WithMetricsNamespace(ns)
}

// WithMetricsPath sets the scrape endpoint.
func WithMetricsPath(path string) MetricsOption {
	return internal.WithMetricsPath(path)
}

// WithMetricsRegistry registers the collectors on reg.
func WithMetricsRegistry(reg *prometheus.Registry) MetricsOption {
	return internal.WithMetricsRegistry(reg)
}

// Run options

// Address sets the listen address. Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server lifecycle logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function run after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it stops the server.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Logging

// RequestIDExtractor logs the request ID as "request_id".
func RequestIDExtractor() ContextExtractor {
	return internal.RequestIDExtractor()
}

// LogExtractors returns the request ID, controller and action extractors,
// for loggers passed to WithCustomLogger.
func LogExtractors() []ContextExtractor {
	return internal.LogExtractors()
}

// Request values

// Param returns a route placeholder converted to T.
func Param[T internal.Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Arg returns a request argument converted to T.
func Arg[T internal.Scalar](c Context, name string) T {
	return internal.Arg[T](c, name)
}

// ArgDefault returns a request argument converted to T, or def.
func ArgDefault[T internal.Scalar](c Context, name string, def T) T {
	return internal.ArgDefault(c, name, def)
}

// ContextValue returns the request value stored under key when it has type T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}
