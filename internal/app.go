package internal

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/afoslt/pkg/controller"
	"github.com/dmitrymomot/afoslt/pkg/health"
	"github.com/dmitrymomot/afoslt/pkg/logger"
	"github.com/dmitrymomot/afoslt/pkg/manifest"
	"github.com/dmitrymomot/afoslt/pkg/routes"
	"github.com/dmitrymomot/afoslt/pkg/session"
	"github.com/dmitrymomot/afoslt/pkg/view"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// DefaultManifestPath is where the manifest is looked up in the app filesystem.
const DefaultManifestPath = "config/manifest.yaml"

type (
	// Controller is a controller dispatched with the request Context.
	Controller = controller.Controller[Context]

	// Registry maps qualified controller names to factories.
	Registry = controller.Registry[Context]

	// ActionFunc is the signature of controller actions.
	ActionFunc = controller.ActionFunc[Context]
)

// ErrorHandler replaces the default error response. When it returns an
// error without writing, the plain default response is sent.
type ErrorHandler func(c Context, e *Error) error

// App serves every request through a fresh dispatch cycle.
// App is immutable after New returns.
type App struct {
	router       chi.Router
	fs           fs.FS
	controllers  *Registry
	routes       *routes.RawTable
	logger       *slog.Logger
	errorHandler ErrorHandler
	sessions     *session.Manager
	healthConfig *healthConfig
	metrics      *metrics
	tracer       trace.Tracer
	renderers    map[rendererKey]*view.Renderer
	manifestPath string
	staticRoutes []staticRoute
	renderMu     sync.Mutex
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

type rendererKey struct {
	views, layouts, title string
}

// New creates an App.
//
// Example:
//
//	app := afoslt.New(
//	    afoslt.WithFS(appFS),
//	    afoslt.WithController("Controllers.HomeController", NewHome),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		controllers:  controller.NewRegistry[Context](),
		logger:       logger.NewNope(),
		manifestPath: DefaultManifestPath,
		renderers:    make(map[rendererKey]*view.Renderer),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setupRoutes()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Controllers returns the controller registry.
func (a *App) Controllers() *Registry {
	return a.controllers
}

func (a *App) setupRoutes() {
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		checks := make(health.Checks, len(a.healthConfig.checks)+1)
		checks["manifest"] = a.manifestCheck
		for name, fn := range a.healthConfig.checks {
			checks[name] = fn
		}
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(checks, health.WithLogger(a.logger)))
	}

	if a.metrics != nil {
		a.router.Handle(a.metrics.path, a.metrics.handler())
	}

	a.router.HandleFunc("/*", a.dispatch)
}

func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a.logger)
	assignRequestID(c)
	end := a.startSpan(c)

	app := newApplication(a, c)
	app.Run()
	end(app)
}

// manifestCheck fails while the manifest cannot be loaded.
func (a *App) manifestCheck(context.Context) error {
	if a.fs == nil {
		return manifest.ErrNotFound
	}
	_, err := manifest.Load(a.fs, a.manifestPath)
	return err
}

// renderer returns the view renderer for the directories named in m.
func (a *App) renderer(m manifest.Manifest) *view.Renderer {
	key := rendererKey{views: m.ViewsDirectory, layouts: m.LayoutsDirectory, title: m.Name}

	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	if r, ok := a.renderers[key]; ok {
		return r
	}
	r := view.NewRenderer(a.fs, view.Config{
		ViewsDir:   key.views,
		LayoutsDir: key.layouts,
		Title:      key.title,
	})
	a.renderers[key] = r
	return r
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets the liveness endpoint. Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets the readiness endpoint. Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check. The manifest check is always present.
//
// Example:
//
//	afoslt.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name != "" && fn != nil {
			c.checks[name] = fn
		}
	}
}
