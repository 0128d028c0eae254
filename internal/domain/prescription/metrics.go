package prescription

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts prescription workflow outcomes.
type Metrics struct {
	Created   prometheus.Counter
	Rejected  prometheus.Counter
	Conflicts prometheus.Counter
}

// NewMetrics creates and registers the workflow counters on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prescriptions_created_total",
			Help: "Total prescriptions committed",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prescriptions_rejected_total",
			Help: "Total creation requests rejected before any write",
		}),
		Conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prescription_conflicts_total",
			Help: "Total commits lost to a concurrent writer",
		}),
	}
	reg.MustRegister(m.Created, m.Rejected, m.Conflicts)
	return m
}
