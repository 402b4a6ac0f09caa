// Package metrics defines the Prometheus collectors for the dishes service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

const namespace = "dishes"

// MenuMetrics tracks menu operations and size. A nil *MenuMetrics is valid
// and records nothing.
type MenuMetrics struct {
	OperationsTotal *prometheus.CounterVec
	Size            prometheus.Gauge
	Inconsistencies prometheus.Counter
}

// NewMenuMetrics creates and registers menu metrics on the given registry.
func NewMenuMetrics(reg prometheus.Registerer) *MenuMetrics {
	m := &MenuMetrics{
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "operations_total",
			Help:      "Total number of menu operations, by operation and result.",
		}, []string{"operation", "result"}),
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "dishes",
			Help:      "Number of dishes currently on the menu.",
		}),
		Inconsistencies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "menu",
			Name:      "inconsistent_renames_total",
			Help:      "Renames whose compensation failed, leaving neither name on the menu.",
		}),
	}

	reg.MustRegister(m.OperationsTotal, m.Size, m.Inconsistencies)
	return m
}

// Observe counts one operation with a result label derived from err.
func (m *MenuMetrics) Observe(op string, err error) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(op, Result(err)).Inc()
}

// SetSize records the current menu size.
func (m *MenuMetrics) SetSize(n int) {
	if m == nil {
		return
	}
	m.Size.Set(float64(n))
}

// Inconsistent counts a rename that ended in the inconsistent state.
func (m *MenuMetrics) Inconsistent() {
	if m == nil {
		return
	}
	m.Inconsistencies.Inc()
}

// Result maps an operation error to a stable, low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, types.ErrInconsistentState):
		return "inconsistent"
	case errors.Is(err, types.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, types.ErrInvalidCount):
		return "invalid_count"
	case errors.Is(err, types.ErrPersist):
		return "persist_error"
	case errors.Is(err, types.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, types.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
