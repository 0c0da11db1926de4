// Package metric provides Prometheus metrics for easycar.
//
//   - prometheus.go: registry, counters and exposition (HTTP and textfile)
//   - collector.go: session phase collector
//
// All Registry methods are safe on a nil *Registry, so components can be
// built without metrics in tests.
package metric
