// Package metrics exposes Prometheus counters for the store facade.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Backend labels
const (
	BackendSQL   = "sql"
	BackendLocal = "local"
)

// Recorder counts facade operations and relational-to-local fallbacks
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
}

// New registers the counters on a private registry together with the Go
// runtime and process collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_history",
			Name:      "store_operations_total",
			Help:      "Store facade operations by operation and serving backend.",
		}, []string{"operation", "backend"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_history",
			Name:      "store_fallbacks_total",
			Help:      "Operations retried against the local store after the relational store was unavailable.",
		}, []string{"operation"}),
	}

	r.registry.MustRegister(
		r.operations,
		r.fallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Operation records an operation served by backend
func (r *Recorder) Operation(operation, backend string) {
	r.operations.WithLabelValues(operation, backend).Inc()
}

// Fallback records a relational failure that was retried locally
func (r *Recorder) Fallback(operation string) {
	r.fallbacks.WithLabelValues(operation).Inc()
}

// FallbackCount returns the current fallback counter for operation.
func (r *Recorder) FallbackCount(operation string) prometheus.Counter {
	return r.fallbacks.WithLabelValues(operation)
}

// OperationCount returns the current operation counter.
func (r *Recorder) OperationCount(operation, backend string) prometheus.Counter {
	return r.operations.WithLabelValues(operation, backend)
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
