// Package metrics exposes Prometheus collectors for the realtime and cache
// subsystems. Collectors are registered with the default registry and served
// through promhttp on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectedClients tracks the number of registered realtime connections.
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Subsystem: "realtime",
		Name:      "connected_clients",
		Help:      "Number of currently registered realtime clients.",
	})

	// EventsBroadcast counts domain events fanned out, labeled by event type.
	EventsBroadcast = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "realtime",
		Name:      "events_broadcast_total",
		Help:      "Total domain events broadcast to realtime clients.",
	}, []string{"type"})

	// ClientsDropped counts clients removed because a send failed or stalled.
	ClientsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "realtime",
		Name:      "clients_dropped_total",
		Help:      "Total realtime clients dropped after a failed send.",
	})

	// CacheHits counts result-cache lookups served from memory.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total result cache hits.",
	})

	// CacheMisses counts result-cache lookups that fell through to storage.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total result cache misses.",
	})

	// RequestDuration observes HTTP request latency by method and path.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "catalog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// CacheInvalidations counts global cache flushes triggered by mutations.
	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "Total global cache invalidations.",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
