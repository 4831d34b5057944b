package app

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/linkbudget/core"
)

func TestControllerWithoutRig(t *testing.T) {
	configuration := core.Configuration{
		Parameters:  defaultParameters(),
		Target:      core.TargetDistance,
		RefreshRate: 50,
	}
	controller := New(configuration, prometheus.NewRegistry())
	require.NoError(t, controller.Startup())
	defer controller.Shutdown()

	state := waitFor(t, controller, func(s LinkState) bool { return s.Target == core.TargetDistance })
	assert.InDelta(t, 369.8563846941092, state.Parameters.Distance, 1e-6)

	params := defaultParameters()
	params.Gains = 30
	controller.SetTarget(core.TargetTxPower)
	controller.SetParameters(params)

	state = waitFor(t, controller, func(s LinkState) bool { return s.Parameters.Gains == 30 })
	assert.Equal(t, core.TargetTxPower, state.Target)
	assert.Equal(t, core.DB(30), state.Parameters.Gains)
	assert.InDelta(t, -1.49268268953341, state.Parameters.TxPower.DBm, 1e-9)
	assert.InDelta(t, 0, float64(state.Breakdown.ClosureError), 1e-9)
}

func TestShutdownWithoutStartup(t *testing.T) {
	controller := New(core.Configuration{Parameters: defaultParameters()}, prometheus.NewRegistry())

	assert.NotPanics(t, controller.Shutdown)
}

func TestShutdownAfterFailedStartup(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkbudget_cycles_total",
		Help: "A gauge in the place of the cycle counter.",
	})))
	controller := New(core.Configuration{Parameters: defaultParameters()}, registry)

	assert.Error(t, controller.Startup())
	assert.NotPanics(t, controller.Shutdown)
}

func waitFor(t *testing.T, controller *Controller, accept func(LinkState) bool) LinkState {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case state := <-controller.State():
			if accept(state) {
				return state
			}
		case <-timeout:
			t.Fatal("no matching state published")
			return LinkState{}
		}
	}
}
