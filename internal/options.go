package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/afoslt/pkg/controller"
	"github.com/dmitrymomot/afoslt/pkg/health"
	"github.com/dmitrymomot/afoslt/pkg/logger"
	"github.com/dmitrymomot/afoslt/pkg/routes"
	"github.com/dmitrymomot/afoslt/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithFS sets the filesystem holding the manifest, route files, views and layouts.
//
// Example:
//
//	//go:embed config views layouts
//	var appFS embed.FS
//
//	afoslt.New(afoslt.WithFS(appFS))
func WithFS(fsys fs.FS) Option {
	return func(a *App) {
		a.fs = fsys
	}
}

// WithManifestPath sets the manifest location inside the filesystem.
// Defaults to "config/manifest.yaml".
func WithManifestPath(path string) Option {
	return func(a *App) {
		if path = strings.Trim(path, "/"); path != "" {
			a.manifestPath = path
		}
	}
}

// WithControllers replaces the controller registry.
func WithControllers(reg *Registry) Option {
	return func(a *App) {
		if reg != nil {
			a.controllers = reg
		}
	}
}

// WithController registers a single controller factory under its qualified name.
// It panics if the name is invalid or already taken.
//
// Example:
//
//	afoslt.WithController("Controllers.HomeController", func() afoslt.Controller {
//	    return NewHomeController()
//	})
func WithController(name string, factory controller.Factory[Context]) Option {
	return func(a *App) {
		a.controllers.MustRegister(name, factory)
	}
}

// WithRoutes adds routes declared in code. They are merged after the route
// files, so a pattern present in both keeps its file position and takes the
// target given here.
func WithRoutes(raw *routes.RawTable) Option {
	return func(a *App) {
		if raw == nil {
			return
		}
		if a.routes == nil {
			a.routes = routes.NewRawTable()
		}
		a.routes.Merge(raw)
	}
}

// WithRoute adds a single route declared in code.
func WithRoute(pattern string, target routes.Target) Option {
	return func(a *App) {
		if a.routes == nil {
			a.routes = routes.NewRawTable()
		}
		a.routes.Set(pattern, target)
	}
}

// WithLogger creates a JSON logger tagged with component. Request ID,
// controller and action are always extracted; extra extractors are appended.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		l := logger.New(append(LogExtractors(), extractors...)...)
		if component != "" {
			l = l.With(slog.String("component", component))
		}
		a.logger = l
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithErrorHandler replaces the default error response.
//
// Example:
//
//	afoslt.WithErrorHandler(func(c afoslt.Context, e *afoslt.Error) error {
//	    return c.Render(e.Status, "errors/page", e)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithSessionStore enables sessions backed by store. Sessions are started
// for every matched request when the manifest sets startupSession.
func WithSessionStore(store session.Store, opts ...session.ManagerOption) Option {
	return func(a *App) {
		if store != nil {
			a.sessions = session.NewManager(store, opts...)
		}
	}
}

// WithHealthChecks serves liveness and readiness endpoints.
// Readiness always includes a check that the manifest loads.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMetrics records Prometheus metrics for every dispatch cycle and
// serves them at "/metrics".
func WithMetrics(opts ...MetricsOption) Option {
	return func(a *App) {
		a.metrics = newMetrics(opts...)
	}
}

// WithTracing opens an OpenTelemetry span per dispatch cycle using the
// global tracer provider. An empty name uses the module path.
func WithTracing(name string) Option {
	return func(a *App) {
		a.tracer = newTracer(name)
	}
}

// WithStaticFiles serves files from subDir of fsys under pattern.
// Directory listings are disabled.
//
// Example:
//
//	afoslt.WithStaticFiles("/static", assets, "public")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(sub))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			files.ServeHTTP(w, r)
		})
		a.staticRoutes = append(a.staticRoutes, staticRoute{handler: handler, pattern: pattern})
	}
}
