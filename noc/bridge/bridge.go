// Package bridge provides the bridge that forwards requests from the system
// bus to the I/O bus.
package bridge

import (
	"github.com/sarchlab/memhier/sim"
)

// Comp forwards the requests arriving at its CPUSide port out of its MemSide
// port after a fixed delay.
type Comp struct {
	*sim.ComponentBase

	Delay    sim.VTimeInSec
	ReqSize  int
	RespSize int

	CPUSide sim.Port
	MemSide sim.Port
}

// Builder can build bridges.
type Builder struct {
	delay    sim.VTimeInSec
	reqSize  int
	respSize int
}

// MakeBuilder creates a builder with a 50ns delay and 16-entry queues.
func MakeBuilder() Builder {
	return Builder{
		delay:    50 * sim.Ns,
		reqSize:  16,
		respSize: 16,
	}
}

// WithDelay sets the time a request spends crossing the bridge.
func (b Builder) WithDelay(delay sim.VTimeInSec) Builder {
	b.delay = delay
	return b
}

// WithReqSize sets the number of requests the bridge can hold.
func (b Builder) WithReqSize(n int) Builder {
	b.reqSize = n
	return b
}

// WithRespSize sets the number of responses the bridge can hold.
func (b Builder) WithRespSize(n int) Builder {
	b.respSize = n
	return b
}

// Build creates a new bridge.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		Delay:         b.delay,
		ReqSize:       b.reqSize,
		RespSize:      b.respSize,
	}

	c.CPUSide = sim.NewPort(c, name+".CPUSide")
	c.MemSide = sim.NewPort(c, name+".MemSide")
	c.AddPort("CPUSide", c.CPUSide)
	c.AddPort("MemSide", c.MemSide)

	return c
}
