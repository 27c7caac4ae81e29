package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters/histograms for the availability and lifecycle
// engines. A nil *Metrics is valid and records nothing.
type Metrics struct {
	transitions  *prometheus.CounterVec
	resolveTime  prometheus.Histogram
	slotCache    *prometheus.CounterVec
	slotsOffered prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delivery_scheduler",
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Appointment lifecycle operations by outcome",
		}, []string{"operation", "outcome"}),
		resolveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "delivery_scheduler",
			Subsystem: "availability",
			Name:      "resolve_seconds",
			Help:      "Latency of slot resolution",
			Buckets:   prometheus.DefBuckets,
		}),
		slotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "delivery_scheduler",
			Subsystem: "slot_cache",
			Name:      "total",
			Help:      "Slot cache lookups by result",
		}, []string{"result"}),
		slotsOffered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "delivery_scheduler",
			Subsystem: "availability",
			Name:      "slots_offered",
			Help:      "Number of slots returned per query",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.resolveTime, m.slotCache, m.slotsOffered)
	return m
}

// ObserveTransition counts one lifecycle call; outcome is "ok" or the
// business error code.
func (m *Metrics) ObserveTransition(operation, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveResolve(seconds float64, slots int) {
	if m == nil {
		return
	}
	m.resolveTime.Observe(seconds)
	m.slotsOffered.Observe(float64(slots))
}

func (m *Metrics) ObserveSlotCache(result string) {
	if m == nil {
		return
	}
	m.slotCache.WithLabelValues(result).Inc()
}
