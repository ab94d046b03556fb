package idealmemcontroller

import (
	"github.com/sarchlab/memhier/mem/mem"
	"github.com/sarchlab/memhier/sim"
)

// Builder can build ideal memory controllers.
type Builder struct {
	width     int
	latency   int
	freq      sim.Freq
	startAddr uint64
	capacity  uint64
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		latency:  100,
		freq:     1 * sim.GHz,
		capacity: 4 * mem.GB,
		width:    1,
	}
}

// WithWidth sets the width of the memory controller
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithLatency sets the latency of the memory controller
func (b Builder) WithLatency(latency int) Builder {
	b.latency = latency
	return b
}

// WithFreq sets the frequency of the memory controller
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithStartAddr sets the first address served by the memory controller
func (b Builder) WithStartAddr(addr uint64) Builder {
	b.startAddr = addr
	return b
}

// WithCapacity sets the capacity of the memory controller
func (b Builder) WithCapacity(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// Build builds a new Comp
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		Freq:          b.freq,
		Latency:       b.latency,
		Width:         b.width,
		StartAddr:     b.startAddr,
		Capacity:      b.capacity,
	}

	c.topPort = sim.NewPort(c, name+".TopPort")
	c.AddPort("Top", c.topPort)

	return c
}
