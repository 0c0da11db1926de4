package metric

import "github.com/prometheus/client_golang/prometheus"

// PhaseCollector exports the current session phase as a one-hot gauge:
// easycar_session_phase{phase="signed_in"} 1, the others 0.
type PhaseCollector struct {
	desc    *prometheus.Desc
	phases  []string
	current func() string
}

// NewPhaseCollector creates a collector over the given phase names. current
// is called on every scrape.
func NewPhaseCollector(phases []string, current func() string) *PhaseCollector {
	return &PhaseCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "session", "phase"),
			"Current session phase (1 for the active phase).",
			[]string{"phase"}, nil,
		),
		phases:  phases,
		current: current,
	}
}

// Describe implements prometheus.Collector.
func (c *PhaseCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *PhaseCollector) Collect(ch chan<- prometheus.Metric) {
	current := c.current()
	for _, phase := range c.phases {
		v := 0.0
		if phase == current {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, v, phase)
	}
}
