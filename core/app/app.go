package app

import (
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ftl/linkbudget/core"
	"github.com/ftl/linkbudget/core/vfo"
)

// New returns a new Controller for the given configuration. The metrics are registered against the given registerer.
func New(configuration core.Configuration, registerer prometheus.Registerer) *Controller {
	return &Controller{
		configuration: configuration,
		registerer:    registerer,
		done:          make(chan struct{}),
		subProcesses:  new(sync.WaitGroup),
	}
}

// Controller for the application.
type Controller struct {
	configuration core.Configuration
	registerer    prometheus.Registerer

	done         chan struct{}
	subProcesses *sync.WaitGroup

	mainLoop *mainLoop
}

// Startup the application. If a rig host is configured, the link follows the frequency of the rig.
func (c *Controller) Startup() error {
	metrics, err := newMetrics(c.registerer)
	if err != nil {
		return err
	}

	c.mainLoop = newMainLoop(c.configuration.Parameters, c.configuration.Target, c.configuration.RefreshRate, metrics)

	var rig *vfo.Follower
	if c.configuration.RigHost != "" {
		rig, err = vfo.Open(c.configuration.RigHost, vfo.DefaultResolution)
		if err != nil {
			return err
		}
		rig.OnFrequencyChange(func(f core.Frequency) {
			log.Print("Rig frequency: ", f)
			c.mainLoop.SetFrequency(f)
		})
	}

	c.subProcesses.Add(1)
	go func() {
		defer c.subProcesses.Done()
		c.mainLoop.Run(c.done)
	}()
	if rig != nil {
		rig.Run(c.done, c.subProcesses)
	}
	return nil
}

// Shutdown the application.
func (c *Controller) Shutdown() {
	close(c.done)
	c.subProcesses.Wait()
}

// State of the link, published after each evaluation cycle.
func (c *Controller) State() <-chan LinkState {
	return c.mainLoop.State()
}

// SetFrequency of the link.
func (c *Controller) SetFrequency(f core.Frequency) {
	c.mainLoop.SetFrequency(f)
}

// SetTarget selects the quantity that absorbs the closure error.
func (c *Controller) SetTarget(target core.CalculationTarget) {
	c.mainLoop.SetTarget(target)
}

// SetParameters replaces all parameters of the link.
func (c *Controller) SetParameters(params core.LinkParameters) {
	c.mainLoop.SetParameters(params)
}
