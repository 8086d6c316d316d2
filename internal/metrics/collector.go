package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/collegeconnect/socialgraph/internal/graph"
)

const namespace = "socialgraph"

// Collector records graph operations, traversal timings and graph size on a
// private registry.
type Collector struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	traversals   *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec

	users       prometheus.Gauge
	friendships prometheus.Gauge
	pending     prometheus.Gauge
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Graph operations by operation name and outcome.",
		}, []string{"operation", "outcome"}),
		traversals: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "traversal_duration_seconds",
			Help:      "Duration of suggestion traversals.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"algorithm"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_cache_lookups_total",
			Help:      "Suggestion cache lookups by algorithm and result.",
		}, []string{"algorithm", "result"}),
		users: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Users with at least one graph entry.",
		}),
		friendships: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "friendships",
			Help:      "Confirmed friendships.",
		}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_requests",
			Help:      "Outstanding friend requests.",
		}),
	}
}

// RecordOperation counts one operation with its outcome label
// (applied, noop, rejected, throttled, error, ok).
func (c *Collector) RecordOperation(operation, outcome string) {
	c.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveTraversal records how long a suggestion traversal took
func (c *Collector) ObserveTraversal(algorithm string, elapsed time.Duration) {
	c.traversals.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// ObserveCacheLookup counts a suggestion cache hit or miss
func (c *Collector) ObserveCacheLookup(algorithm string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(algorithm, result).Inc()
}

// SetGraphStats publishes graph size gauges
func (c *Collector) SetGraphStats(stats graph.Stats) {
	c.users.Set(float64(stats.Users))
	c.friendships.Set(float64(stats.Friendships))
	c.pending.Set(float64(stats.PendingRequests))
}

// Registry exposes the underlying registry (for tests and extra collectors)
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
