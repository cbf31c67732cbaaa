package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultMetricsNamespace = "afoslt"
	defaultMetricsPath      = "/metrics"
)

// MetricsOption configures dispatch metrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	registry  *prometheus.Registry
	namespace string
	path      string
	buckets   []float64
}

// WithMetricsNamespace sets the metric name prefix. Defaults to "afoslt".
func WithMetricsNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		if ns != "" {
			c.namespace = ns
		}
	}
}

// WithMetricsPath sets the scrape endpoint. Defaults to "/metrics".
func WithMetricsPath(path string) MetricsOption {
	return func(c *metricsConfig) {
		if path != "" {
			c.path = path
		}
	}
}

// WithMetricsRegistry registers the collectors on reg instead of a
// registry private to the App.
func WithMetricsRegistry(reg *prometheus.Registry) MetricsOption {
	return func(c *metricsConfig) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithMetricsBuckets sets the dispatch duration histogram buckets.
func WithMetricsBuckets(buckets []float64) MetricsOption {
	return func(c *metricsConfig) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// metrics records one observation per dispatch cycle.
type metrics struct {
	registry *prometheus.Registry
	cycles   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	drops    *prometheus.CounterVec
	path     string
}

func newMetrics(opts ...MetricsOption) *metrics {
	cfg := metricsConfig{
		namespace: defaultMetricsNamespace,
		path:      defaultMetricsPath,
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
		cfg.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(cfg.registry)
	return &metrics{
		registry: cfg.registry,
		path:     cfg.path,
		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "dispatch_total",
			Help:      "Dispatch cycles by controller, action and response status.",
		}, []string{"controller", "action", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of dispatch cycles.",
			Buckets:   cfg.buckets,
		}, []string{"controller", "action"}),
		drops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "dispatch_errors_total",
			Help:      "Dispatch cycles dropped, by error code.",
		}, []string{"code"}),
	}
}

func (m *metrics) observe(controller, action string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(controller, action, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(controller, action).Observe(elapsed.Seconds())
}

func (m *metrics) dropped(code string) {
	if m == nil {
		return
	}
	m.drops.WithLabelValues(code).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
