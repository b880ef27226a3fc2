package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the host Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hx").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the host metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors for a host runtime. A nil
// *Metrics records nothing.
type Metrics struct {
	renders       prometheus.Counter
	commits       prometheus.Counter
	effects       prometheus.Counter
	renderErrors  *prometheus.CounterVec
	staleUpdates  prometheus.Counter
	mounted       prometheus.Gauge
	subscriptions prometheus.Gauge
}

// NewMetrics registers the host collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "hx",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		renders:      counter("renders_total", "Total number of component renders"),
		commits:      counter("commits_total", "Total number of committed render passes"),
		effects:      counter("effects_total", "Total number of effect runs"),
		staleUpdates: counter("stale_updates_suppressed_total", "Updates dropped because their instance was unmounted"),
		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of component errors by phase and whether a boundary caught them",
			ConstLabels: config.ConstLabels,
		}, []string{"phase", "caught"}),
		mounted:       gauge("mounted_instances", "Number of mounted component instances"),
		subscriptions: gauge("bridge_subscriptions", "Number of active reference-cell subscriptions"),
	}
}

func (m *Metrics) incRenders() {
	if m != nil {
		m.renders.Inc()
	}
}

func (m *Metrics) incCommits() {
	if m != nil {
		m.commits.Inc()
	}
}

func (m *Metrics) incEffects() {
	if m != nil {
		m.effects.Inc()
	}
}

func (m *Metrics) incStale() {
	if m != nil {
		m.staleUpdates.Inc()
	}
}

func (m *Metrics) renderError(phase Phase, caught bool) {
	if m == nil {
		return
	}
	c := "false"
	if caught {
		c = "true"
	}
	m.renderErrors.WithLabelValues(string(phase), c).Inc()
}

func (m *Metrics) mountedDelta(d float64) {
	if m != nil {
		m.mounted.Add(d)
	}
}

// SubscriptionAdded records a new reference-cell subscription.
func (m *Metrics) SubscriptionAdded() {
	if m != nil {
		m.subscriptions.Inc()
	}
}

// SubscriptionRemoved records a removed reference-cell subscription.
func (m *Metrics) SubscriptionRemoved() {
	if m != nil {
		m.subscriptions.Dec()
	}
}
