// Package badaddr provides the responder that answers requests to addresses
// that no memory controller or device claims.
package badaddr

import (
	"github.com/sarchlab/memhier/sim"
)

// Comp answers every request with an error response after a fixed number of
// cycles.
type Comp struct {
	*sim.ComponentBase

	Freq    sim.Freq
	Latency int
	Warn    bool

	Pio sim.Port
}

// ResponseTime returns the time taken to answer a request.
func (c *Comp) ResponseTime() sim.VTimeInSec {
	return c.Freq.NCycles(c.Latency)
}

// Builder can build bad-address responders.
type Builder struct {
	freq    sim.Freq
	latency int
	warn    bool
}

// MakeBuilder creates a builder with a one-cycle response.
func MakeBuilder() Builder {
	return Builder{
		freq:    1 * sim.GHz,
		latency: 1,
		warn:    true,
	}
}

// WithFreq sets the frequency of the responder.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLatency sets the number of cycles taken to answer.
func (b Builder) WithLatency(cycles int) Builder {
	b.latency = cycles
	return b
}

// WithoutWarning silences the warning printed on each bad access.
func (b Builder) WithoutWarning() Builder {
	b.warn = false
	return b
}

// Build creates a new responder.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		Freq:          b.freq,
		Latency:       b.latency,
		Warn:          b.warn,
	}

	c.Pio = sim.NewPort(c, name+".Pio")
	c.AddPort("Pio", c.Pio)

	return c
}
