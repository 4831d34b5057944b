// Package vfo lets the link follow the operating frequency of a transceiver controlled through hamlib's rigctld.
package vfo

import (
	"context"
	"log"
	"math"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ftl/rigproxy/pkg/protocol"
	"github.com/pkg/errors"

	"github.com/ftl/linkbudget/core"
)

// DefaultAddress of rigctld.
const DefaultAddress = "localhost:4532"

// DefaultResolution of the follower. Smaller frequency changes do not change the link budget noticeably.
const DefaultResolution core.Frequency = 1000

// Open a follower for the rig at the given network address. If address is empty, DefaultAddress is used.
// Frequency changes smaller than the given resolution are not reported.
func Open(address string, resolution core.Frequency) (*Follower, error) {
	if address == "" {
		address = DefaultAddress
	}
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot connect to rig at %s", address)
	}

	trx := protocol.NewTransceiver(conn)
	trx.WhenDone(func() {
		conn.Close()
	})

	result := newFollower(resolution)
	result.trx = trx
	return result, nil
}

func newFollower(resolution core.Frequency) *Follower {
	if resolution <= 0 {
		resolution = 1
	}
	return &Follower{
		pollingInterval: 500 * time.Millisecond,
		requestTimeout:  2 * time.Second,
		resolution:      resolution,
		frequencyLock:   new(sync.RWMutex),
	}
}

// Follower polls the frequency of a rig.
type Follower struct {
	trx             *protocol.Transceiver
	pollingInterval time.Duration
	requestTimeout  time.Duration
	resolution      core.Frequency

	frequency          core.Frequency
	frequencyLock      *sync.RWMutex
	frequencyListeners []FrequencyListener
}

// FrequencyListener is notified when the rig frequency changes.
type FrequencyListener func(f core.Frequency)

// Run the follower until the stop channel is closed.
func (r *Follower) Run(stop chan struct{}, wait *sync.WaitGroup) {
	wait.Add(1)
	go func() {
		defer wait.Done()
		defer r.shutdown()

		pollTick := time.NewTicker(r.pollingInterval)
		defer pollTick.Stop()
		for {
			select {
			case <-pollTick.C:
				r.poll()
			case <-stop:
				return
			}
		}
	}()
}

func (r *Follower) shutdown() {
	r.trx.Close()
	log.Print("rig follower shutdown")
}

func (r *Follower) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), r.requestTimeout)
	defer cancel()

	response, err := r.trx.Send(ctx, protocol.Request{Command: protocol.ShortCommand("f")})
	if err != nil {
		log.Print("Polling the rig frequency failed: ", err)
		return
	}
	if err := r.handleFrequency(response.Data); err != nil {
		log.Print(err)
	}
}

func (r *Follower) handleFrequency(data []string) error {
	if len(data) == 0 {
		return errors.New("empty frequency response")
	}
	f, err := parseFrequency(data[0])
	if err != nil {
		return err
	}
	r.setFrequency(f)
	return nil
}

func (r *Follower) setFrequency(f core.Frequency) {
	if !r.updateFrequency(f) {
		return
	}
	for _, listener := range r.frequencyListeners {
		listener(f)
	}
}

func (r *Follower) updateFrequency(f core.Frequency) bool {
	r.frequencyLock.Lock()
	defer r.frequencyLock.Unlock()
	if r.frequency != 0 && math.Abs(float64(f-r.frequency)) < float64(r.resolution) {
		return false
	}
	r.frequency = f
	return true
}

// Frequency returns the last reported frequency of the rig, or 0 if the rig was not polled yet.
func (r *Follower) Frequency() core.Frequency {
	r.frequencyLock.RLock()
	defer r.frequencyLock.RUnlock()
	return r.frequency
}

// OnFrequencyChange registers the given listener.
func (r *Follower) OnFrequencyChange(listener FrequencyListener) {
	r.frequencyListeners = append(r.frequencyListeners, listener)
}

func parseFrequency(s string) (core.Frequency, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "wrong frequency format %q", s)
	}
	if f <= 0 || math.IsInf(f, 0) {
		return 0, errors.Errorf("invalid frequency %q", s)
	}
	return core.Frequency(f), nil
}
