package hierarchy

import (
	"fmt"

	"github.com/sarchlab/memhier/isa"
)

// InterruptWiring tells how the interrupt controller of a core is connected.
type InterruptWiring int

const (
	// SelfContainedInterrupt needs no port outside the core.
	SelfContainedInterrupt InterruptWiring = iota + 1

	// ExplicitPortsInterrupt puts the interrupt controller on the system bus
	// with a request slot and a response slot.
	ExplicitPortsInterrupt
)

func (w InterruptWiring) String() string {
	switch w {
	case SelfContainedInterrupt:
		return "SelfContained"
	case ExplicitPortsInterrupt:
		return "ExplicitPorts"
	default:
		return fmt.Sprintf("InterruptWiring(%d)", int(w))
	}
}

// The x86 local APIC sits on the memory fabric. The other families keep
// their interrupt controllers inside the core.
var defaultInterruptWirings = map[isa.ISA]InterruptWiring{
	isa.X86:   ExplicitPortsInterrupt,
	isa.ARM:   SelfContainedInterrupt,
	isa.RISCV: SelfContainedInterrupt,
	isa.SPARC: SelfContainedInterrupt,
	isa.MIPS:  SelfContainedInterrupt,
	isa.POWER: SelfContainedInterrupt,
}

// DefaultInterruptWirings returns a copy of the built-in interrupt wiring
// rules.
func DefaultInterruptWirings() map[isa.ISA]InterruptWiring {
	wirings := make(map[isa.ISA]InterruptWiring, len(defaultInterruptWirings))
	for i, w := range defaultInterruptWirings {
		wirings[i] = w
	}

	return wirings
}

func resolveInterruptWiring(
	wirings map[isa.ISA]InterruptWiring,
	family isa.ISA,
) (InterruptWiring, error) {
	w, found := wirings[family]
	if !found {
		return 0, &UnsupportedISAWiringError{ISA: family}
	}

	return w, nil
}
