package xbar

import (
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/sim"
)

// Builder can build crossbars.
type Builder struct {
	kind            Kind
	freq            sim.Freq
	width           int
	frontendLatency int
	forwardLatency  int
	responseLatency int
	maxMemSidePorts int
	connector       wiring.Connector
}

// MakeBuilder creates a builder for a system bus.
func MakeBuilder() Builder {
	return Builder{
		freq:      1 * sim.GHz,
		connector: wiring.DirectConnector{},
	}.WithKind(SystemBus)
}

// WithKind sets the kind of the crossbar and applies the timing and fan-out
// presets of that kind. Private L2 buses and the shared L3 bus feed exactly
// one cache, so they allow a single memory-side attachment.
func (b Builder) WithKind(kind Kind) Builder {
	b.kind = kind

	switch kind {
	case L2Bus:
		b.width = 32
		b.frontendLatency = 1
		b.forwardLatency = 0
		b.responseLatency = 1
	default:
		b.width = 16
		b.frontendLatency = 3
		b.forwardLatency = 4
		b.responseLatency = 2
	}

	switch kind {
	case L2Bus, L3Bus:
		b.maxMemSidePorts = 1
	default:
		b.maxMemSidePorts = 0
	}

	return b
}

// WithFreq sets the frequency of the crossbar.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithWidth sets the data path width in bytes.
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithFrontendLatency sets the cycles spent in the crossbar frontend.
func (b Builder) WithFrontendLatency(cycles int) Builder {
	b.frontendLatency = cycles
	return b
}

// WithForwardLatency sets the cycles spent forwarding a request.
func (b Builder) WithForwardLatency(cycles int) Builder {
	b.forwardLatency = cycles
	return b
}

// WithResponseLatency sets the cycles spent returning a response.
func (b Builder) WithResponseLatency(cycles int) Builder {
	b.responseLatency = cycles
	return b
}

// WithMaxMemSidePorts limits the number of memory-side attachments. Use 0 for
// no limit.
func (b Builder) WithMaxMemSidePorts(n int) Builder {
	b.maxMemSidePorts = n
	return b
}

// WithConnector sets what makes the links when ports attach. A journal can be
// given here so that the links can be rolled back.
func (b Builder) WithConnector(connector wiring.Connector) Builder {
	b.connector = connector
	return b
}

// Build creates a new crossbar.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		ComponentBase:   sim.NewComponentBase(name),
		Kind:            b.kind,
		Freq:            b.freq,
		Width:           b.width,
		FrontendLatency: b.frontendLatency,
		ForwardLatency:  b.forwardLatency,
		ResponseLatency: b.responseLatency,
		connector:       b.connector,
	}

	c.CPUSide = &VectorPort{
		bus:  c,
		name: name + ".CPUSide",
		side: CPUSide,
	}
	c.MemSide = &VectorPort{
		bus:   c,
		name:  name + ".MemSide",
		side:  MemSide,
		limit: b.maxMemSidePorts,
	}

	return c
}
