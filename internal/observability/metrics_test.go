package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveTransition("approve", "ok")
	m.ObserveTransition("approve", "ok")
	m.ObserveTransition("approve", "forbidden")
	m.ObserveSlotCache("hit")
	m.ObserveResolve(0.01, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("approve", "forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotCache.WithLabelValues("hit")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveTransition("approve", "ok")
	m.ObserveSlotCache("miss")
	m.ObserveResolve(0.1, 0)
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("production", "debug")
	assert.Equal(t, "debug", logger.GetLevel().String())

	logger = NewLogger("production", "nonsense")
	assert.Equal(t, "info", logger.GetLevel().String())
}
