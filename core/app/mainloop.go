package app

import (
	"log"
	"time"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/budget"
)

// LinkState is the state of the link after one evaluation cycle.
type LinkState struct {
	Parameters core.LinkParameters
	Target     core.CalculationTarget
	Breakdown  budget.Breakdown
}

func newMainLoop(params core.LinkParameters, target core.CalculationTarget, refreshRate int, metrics *metrics) *mainLoop {
	if refreshRate <= 0 {
		refreshRate = 1
	}
	refreshInterval := (1 * time.Second) / time.Duration(refreshRate)
	result := &mainLoop{
		params:  params,
		target:  target,
		metrics: metrics,

		refreshInterval: refreshInterval,
		command:         make(chan command, 10),

		state: make(chan LinkState, 1),
	}

	return result
}

type command func()

type mainLoop struct {
	params  core.LinkParameters
	target  core.CalculationTarget
	metrics *metrics

	refreshInterval time.Duration
	command         chan command

	state chan LinkState
}

func (m *mainLoop) Run(stop chan struct{}) {
	defer log.Print("main loop shutdown")
	refreshTick := time.NewTicker(m.refreshInterval)
	for {
		select {
		case <-refreshTick.C:
			m.cycle()
		case command := <-m.command:
			command()
		case <-stop:
			refreshTick.Stop()
			return
		}
	}
}

func (m *mainLoop) cycle() {
	params, before, applied := budget.Apply(m.params, m.target)
	m.params = params
	m.metrics.observe(before.ClosureError, applied)

	breakdown := before
	if applied {
		breakdown = budget.Evaluate(m.params)
	}
	state := LinkState{
		Parameters: m.params,
		Target:     m.target,
		Breakdown:  breakdown,
	}
	select {
	case m.state <- state:
	default:
	}
}

// State of the link, published after each evaluation cycle. States are dropped while the consumer lags behind.
func (m *mainLoop) State() <-chan LinkState {
	return m.state
}

func (m *mainLoop) q(cmd command) {
	select {
	case m.command <- cmd:
	default:
		log.Print("Mainloop.q hangs")
	}
}

// SetFrequency of the link.
func (m *mainLoop) SetFrequency(f core.Frequency) {
	m.q(func() {
		m.params.Frequency = f
	})
}

// SetTarget selects the quantity that absorbs the closure error.
func (m *mainLoop) SetTarget(target core.CalculationTarget) {
	m.q(func() {
		m.target = target
	})
}

// SetParameters replaces all parameters of the link.
func (m *mainLoop) SetParameters(params core.LinkParameters) {
	m.q(func() {
		m.params = params
	})
}
