package render

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus render metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "domtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the render metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "domtree",
		Subsystem: "render",
		// renders are in-memory: 10µs to ~1s
		Buckets:  prometheus.ExponentialBuckets(0.00001, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of a renderer. A nil *Metrics
// records nothing.
type Metrics struct {
	rendersTotal      *prometheus.CounterVec
	cacheHits         prometheus.Counter
	viewDispatch      *prometheus.CounterVec
	placeholderMisses prometheus.Counter
	renderDuration    prometheus.Histogram
}

// NewMetrics registers the render metrics:
//   - domtree_render_renders_total: renders by status
//   - domtree_render_cache_hits_total: nodes served from their cache
//   - domtree_render_view_dispatch_total: data objects rendered per view
//   - domtree_render_placeholder_misses_total: placeholders without content
//   - domtree_render_render_duration_seconds: duration of a full render
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of tree renders",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cache_hits_total",
			Help:        "Total number of nodes served from their render cache",
			ConstLabels: config.ConstLabels,
		}),

		viewDispatch: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "view_dispatch_total",
			Help:        "Total number of data objects rendered through a view",
			ConstLabels: config.ConstLabels,
		}, []string{"view"}),

		placeholderMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "placeholder_misses_total",
			Help:        "Total number of placeholders rendered without content",
			ConstLabels: config.ConstLabels,
		}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Duration of tree renders in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) rendered(d time.Duration) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues("success").Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) renderFailed() {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues("error").Inc()
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) dispatched(viewName string) {
	if m == nil {
		return
	}
	m.viewDispatch.WithLabelValues(viewName).Inc()
}

func (m *Metrics) placeholderMissed() {
	if m == nil {
		return
	}
	m.placeholderMisses.Inc()
}
