package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/digits/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "digits"

// Metrics holds the Prometheus collectors for the engine.
type Metrics struct {
	registry *prometheus.Registry

	queries     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	expanded    *prometheus.HistogramVec
	found       *prometheus.CounterVec
	cacheErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Queries answered, by kind and cache outcome.",
		}, []string{"kind", "cache"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time to answer a query, including cache lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kind"}),
		expanded: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_states_expanded",
			Help:      "States expanded by each uncached search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),
		found: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_found_total",
			Help:      "Solutions (solve) or reachable values (targets) returned.",
		}, []string{"kind"}),
		cacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_errors_total",
			Help:      "Failed cache operations, by operation.",
		}, []string{"op"}),
	}

	m.registry.MustRegister(m.queries, m.duration, m.expanded, m.found, m.cacheErrors)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearch:     m.observeSearch,
		OnCacheError: m.observeCacheError,
	}
}

// Registry exposes the underlying registry, e.g. for tests or extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeSearch(_ context.Context, ev *domain.SearchEvent) {
	kind := string(ev.Kind)
	cache := "miss"
	if ev.CacheHit {
		cache = "hit"
	}

	m.queries.WithLabelValues(kind, cache).Inc()
	m.duration.WithLabelValues(kind).Observe(ev.Duration.Seconds())
	m.found.WithLabelValues(kind).Add(float64(ev.Found))
	if !ev.CacheHit {
		m.expanded.WithLabelValues(kind).Observe(float64(ev.Stats.Expanded))
	}
}

func (m *Metrics) observeCacheError(_ context.Context, ev *domain.CacheEvent) {
	m.cacheErrors.WithLabelValues(ev.Op).Inc()
}
