package timer

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes optional Prometheus instrumentation for a Registry's
// sweep activity, mirroring thread.Metrics.
type Metrics struct {
	fires      prometheus.Counter
	registered prometheus.Gauge
}

// NewMetrics registers a Metrics set against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fires: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "delegate",
			Subsystem: "timer",
			Name:      "fires_total",
			Help:      "Timers fired across every ProcessAll sweep.",
		}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "delegate",
			Subsystem: "timer",
			Name:      "registered",
			Help:      "Timers currently registered.",
		}),
	}
	reg.MustRegister(m.fires, m.registered)
	return m
}

func (m *Metrics) onFire() {
	if m == nil {
		return
	}
	m.fires.Inc()
}

func (m *Metrics) setRegistered(n int) {
	if m == nil {
		return
	}
	m.registered.Set(float64(n))
}

// WithMetrics attaches Prometheus instrumentation to a Registry.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}
