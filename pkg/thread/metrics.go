package thread

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gopherfabric/delegate/pkg/container"
)

// Metrics exposes optional Prometheus instrumentation for a Thread's queue
// depth and dispatch activity. Nothing in this package requires it; a
// Thread constructed without WithMetrics runs identically but silently.
type Metrics struct {
	dispatched *prometheus.CounterVec
	queueDepth *prometheus.GaugeVec
	watchdog   *prometheus.CounterVec
}

// NewMetrics registers a Metrics set against reg. Callers typically share
// one Metrics across every Thread in a process and pass it to each via
// WithMetrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delegate",
			Subsystem: "thread",
			Name:      "tasks_dispatched_total",
			Help:      "Tasks run by a Thread's worker goroutine, by priority.",
		}, []string{"thread", "priority"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "delegate",
			Subsystem: "thread",
			Name:      "queue_depth",
			Help:      "Tasks currently queued on a Thread, by priority.",
		}, []string{"thread", "priority"}),
		watchdog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delegate",
			Subsystem: "thread",
			Name:      "watchdog_fires_total",
			Help:      "Times a Thread's watchdog observed an idle interval.",
		}, []string{"thread"}),
	}
	reg.MustRegister(m.dispatched, m.queueDepth, m.watchdog)
	return m
}

func (m *Metrics) onDispatch(name string, p container.Priority) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(name, p.String()).Inc()
	m.queueDepth.WithLabelValues(name, p.String()).Dec()
}

func (m *Metrics) onEnqueue(name string, p container.Priority) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(name, p.String()).Inc()
}

func (m *Metrics) onWatchdog(name string) {
	if m == nil {
		return
	}
	m.watchdog.WithLabelValues(name).Inc()
}

// WithMetrics attaches Prometheus instrumentation to a Thread.
func WithMetrics(m *Metrics) Option {
	return func(t *Thread) { t.metrics = m }
}
