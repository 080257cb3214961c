package incidents

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"incident-registry/core/store"
)

const subsystem = "incidents"

type Metrics struct {
	created       prometheus.Counter
	statusUpdates prometheus.Counter
	opErrors      *prometheus.CounterVec
}

// NewMetrics builds the registry counters and registers them on reg when it
// is non-nil. count backs the stored-records gauge.
func NewMetrics(reg prometheus.Registerer, count func() float64) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "created_total",
			Help:      "Count of incidents created.",
		}),
		statusUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "status_updates_total",
			Help:      "Count of successful incident status updates.",
		}),
		opErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "operation_errors_total",
			Help:      "Count of failed registry operations by operation and error kind.",
		}, []string{"op", "kind"}),
	}
	if reg == nil {
		return m
	}
	reg.MustRegister(m.created, m.statusUpdates, m.opErrors)
	if count != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "stored",
			Help:      "Number of incidents currently held in the registry.",
		}, count))
	}
	return m
}

func (m *Metrics) observeCreate() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *Metrics) observeStatusUpdate() {
	if m != nil {
		m.statusUpdates.Inc()
	}
}

func (m *Metrics) observeError(op string, err error) {
	if m == nil || err == nil {
		return
	}
	m.opErrors.WithLabelValues(op, errorKind(err)).Inc()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case store.IsValidation(err):
		return "validation"
	default:
		return "internal"
	}
}
