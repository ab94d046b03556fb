package hierarchy

import (
	"github.com/rs/xid"

	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/mem/badaddr"
	"github.com/sarchlab/memhier/mem/cache"
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/noc/xbar"
	"github.com/sarchlab/memhier/sim"
)

// Builder can build cache hierarchies.
type Builder struct {
	freq              sim.Freq
	l1iSize           string
	l1dSize           string
	l2Size            string
	l3Size            string
	l3Assoc           int
	specs             map[cache.Role]cache.Spec
	bridgeDelay       sim.VTimeInSec
	wirings           map[isa.ISA]InterruptWiring
	requireCoherentIO bool
	withBadAddr       bool
	hooks             []sim.Hook
}

// MakeBuilder creates a builder with private 32kB L1 caches, a private 4kB L2
// and a shared 16-way 2MiB L3.
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * sim.GHz,
		l1iSize:     "32kB",
		l1dSize:     "32kB",
		l2Size:      "4kB",
		l3Size:      "2MiB",
		l3Assoc:     16,
		bridgeDelay: 50 * sim.Ns,
		wirings:     DefaultInterruptWirings(),
		withBadAddr: true,
	}
}

// WithFreq sets the clock of the caches and buses.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithL1ISize sets the capacity of each L1 instruction cache.
func (b Builder) WithL1ISize(size string) Builder {
	b.l1iSize = size
	return b
}

// WithL1DSize sets the capacity of each L1 data cache.
func (b Builder) WithL1DSize(size string) Builder {
	b.l1dSize = size
	return b
}

// WithL2Size sets the capacity of each L2 cache.
func (b Builder) WithL2Size(size string) Builder {
	b.l2Size = size
	return b
}

// WithL3Size sets the capacity of the shared L3 cache.
func (b Builder) WithL3Size(size string) Builder {
	b.l3Size = size
	return b
}

// WithL3Assoc sets the associativity of the shared L3 cache.
func (b Builder) WithL3Assoc(assoc int) Builder {
	b.l3Assoc = assoc
	return b
}

// WithSpec replaces the parameters of all the caches of a role. It takes
// precedence over the size setters.
func (b Builder) WithSpec(role cache.Role, spec cache.Spec) Builder {
	specs := make(map[cache.Role]cache.Spec, len(b.specs)+1)
	for r, s := range b.specs {
		specs[r] = s
	}

	spec.Role = role
	specs[role] = spec
	b.specs = specs

	return b
}

// WithBridgeDelay sets the delay of the bridge to the I/O bus.
func (b Builder) WithBridgeDelay(delay sim.VTimeInSec) Builder {
	b.bridgeDelay = delay
	return b
}

// WithInterruptWiring sets how the interrupts of cores of an instruction set
// are connected.
func (b Builder) WithInterruptWiring(
	family isa.ISA,
	w InterruptWiring,
) Builder {
	wirings := make(map[isa.ISA]InterruptWiring, len(b.wirings)+1)
	for i, existing := range b.wirings {
		wirings[i] = existing
	}

	wirings[family] = w
	b.wirings = wirings

	return b
}

// WithCoherentIORequired makes incorporation fail on boards without coherent
// I/O.
func (b Builder) WithCoherentIORequired() Builder {
	b.requireCoherentIO = true
	return b
}

// WithoutBadAddr leaves the default slot of the system bus empty.
func (b Builder) WithoutBadAddr() Builder {
	b.withBadAddr = false
	return b
}

// WithHook registers a hook that observes the construction.
func (b Builder) WithHook(hook sim.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// Build creates a hierarchy that is ready to be incorporated into a board.
// The system bus exists right away so that its ports can be handed out.
func (b Builder) Build(name string) *Hierarchy {
	sim.NameMustBeValid(name)

	h := &Hierarchy{
		name:              name,
		id:                xid.New(),
		freq:              b.freq,
		specs:             b.resolveSpecs(),
		bridgeDelay:       b.bridgeDelay,
		wirings:           b.wirings,
		requireCoherentIO: b.requireCoherentIO,
		journal:           wiring.NewJournal(),
		registry:          NewRegistry(),
	}

	for _, hook := range b.hooks {
		h.AcceptHook(hook)
	}

	h.systemBus = xbar.MakeBuilder().
		WithKind(xbar.SystemBus).
		WithFreq(b.freq).
		WithConnector(h.journal).
		Build(sim.BuildName(name, "MemBus"))
	h.addComponent(h.systemBus)

	if b.withBadAddr {
		h.badAddr = badaddr.MakeBuilder().
			WithFreq(b.freq).
			Build(sim.BuildName(name, "BadAddr"))
		h.addComponent(h.badAddr)
	}

	return h
}

func (b Builder) resolveSpecs() map[cache.Role]cache.Spec {
	specs := map[cache.Role]cache.Spec{
		cache.L1I:  cache.L1Spec(cache.L1I, b.l1iSize, 8),
		cache.L1D:  cache.L1Spec(cache.L1D, b.l1dSize, 8),
		cache.L2:   cache.L2Spec(b.l2Size, 8),
		cache.L3:   cache.L3Spec(b.l3Size, b.l3Assoc),
		cache.IPTW: cache.DefaultSpec(cache.IPTW),
		cache.DPTW: cache.DefaultSpec(cache.DPTW),
		cache.IO:   cache.DefaultSpec(cache.IO),
	}

	for role, spec := range b.specs {
		specs[role] = spec
	}

	return specs
}
