package app

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ftl/linkbudget/core"
)

type metrics struct {
	cycles           prometheus.Counter
	suppressedCycles prometheus.Counter
	closureError     prometheus.Gauge
}

// newMetrics registers the main loop metrics against the given registerer, defaulting to the global Prometheus registry when nil.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	cycles, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkbudget_cycles_total",
		Help: "Total number of evaluation cycles of the link budget.",
	}), "linkbudget_cycles_total")
	if err != nil {
		return nil, err
	}
	suppressedCycles, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkbudget_suppressed_cycles_total",
		Help: "Total number of evaluation cycles that left the link unchanged because of a non-finite result.",
	}), "linkbudget_suppressed_cycles_total")
	if err != nil {
		return nil, err
	}
	closureError, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkbudget_closure_error_db",
		Help: "Closure error in dB absorbed by the last finite evaluation cycle.",
	}), "linkbudget_closure_error_db")
	if err != nil {
		return nil, err
	}

	return &metrics{
		cycles:           cycles,
		suppressedCycles: suppressedCycles,
		closureError:     closureError,
	}, nil
}

func (m *metrics) observe(closureError core.DB, applied bool) {
	m.cycles.Inc()
	if !applied {
		m.suppressedCycles.Inc()
		return
	}
	m.closureError.Set(float64(closureError))
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, errors.Wrapf(err, "cannot register %s", name)
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, errors.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, errors.Wrapf(err, "cannot register %s", name)
	}
	return gauge, nil
}
