package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "easycar"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	SessionTransitions *prometheus.CounterVec
	TokenStoreErrors   *prometheus.CounterVec
	AuthAttempts       *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// NewRegistry creates a registry with the easycar metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		SessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Session events applied, by event type.",
		}, []string{"event"}),
		TokenStoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token_store",
			Name:      "errors_total",
			Help:      "Token store failures, by operation.",
		}, []string{"op"}),
		AuthAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Authentication attempts, by result.",
		}, []string{"result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	r.registry.MustRegister(
		r.SessionTransitions,
		r.TokenStoreErrors,
		r.AuthAttempts,
		r.RequestDuration,
	)
	return r
}

// WithRuntimeMetrics adds the Go runtime and process collectors. Used by
// the long-running dev server; the CLI keeps its textfile small.
func (r *Registry) WithRuntimeMetrics() *Registry {
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Register adds an extra collector.
func (r *Registry) Register(c prometheus.Collector) error {
	if r == nil {
		return nil
	}
	return r.registry.Register(c)
}

// Registerer exposes the underlying registry for components that register
// their own collectors.
func (r *Registry) Registerer() prometheus.Registerer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// Gatherer exposes the underlying registry for tests and exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// SessionTransition counts an applied session event.
func (r *Registry) SessionTransition(event string) {
	if r == nil {
		return
	}
	r.SessionTransitions.WithLabelValues(event).Inc()
}

// StoreError counts a failed token store operation.
func (r *Registry) StoreError(op string) {
	if r == nil {
		return
	}
	r.TokenStoreErrors.WithLabelValues(op).Inc()
}

// AuthAttempt counts an authentication attempt (success, failure, throttled).
func (r *Registry) AuthAttempt(result string) {
	if r == nil {
		return
	}
	r.AuthAttempts.WithLabelValues(result).Inc()
}

// ObserveHTTP records the latency of one HTTP exchange. A zero code means
// the request failed before a response arrived.
func (r *Registry) ObserveHTTP(method string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	r.RequestDuration.WithLabelValues(method, label).Observe(elapsed.Seconds())
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// WriteTextfile writes the current metrics in the node-exporter textfile
// format. The write is atomic.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
