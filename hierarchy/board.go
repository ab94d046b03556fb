package hierarchy

import (
	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/sim"
)

// A Core is a processor core that the caches connect to. Each Connect method
// binds a port owned by the core to the given port.
type Core interface {
	ConnectInstructionCache(cpuSide sim.Port) error
	ConnectDataCache(cpuSide sim.Port) error
	ConnectWalkerPorts(itbCPUSide, dtbCPUSide sim.Port) error

	// ConnectInterrupt hooks up an interrupt controller that needs no port
	// outside the core. DisconnectInterrupt undoes it.
	ConnectInterrupt() error
	DisconnectInterrupt()

	// ConnectInterruptPorts binds the core's interrupt responder to a request
	// slot of the system bus and the core's interrupt requestor to a response
	// slot of the system bus.
	ConnectInterruptPorts(busRequestor, busResponder sim.Port) error
}

// A Processor is a group of cores that share an instruction set.
type Processor interface {
	NumCores() int
	Cores() []Core
	ISA() isa.ISA
}

// A MemoryController serves the main memory through a single port.
type MemoryController interface {
	Port() sim.Port
}

// An UpstreamAttacher accepts requestors from above, such as an I/O bus.
// DetachUpstream removes a slot returned by AttachUpstream once it is unbound.
type UpstreamAttacher interface {
	AttachUpstream(peer sim.Port) (sim.Port, error)
	DetachUpstream(slot sim.Port) error
}

// A Board is a machine that a cache hierarchy can be incorporated into.
type Board interface {
	sim.Named

	Processor() Processor
	MemoryControllers() []MemoryController

	HasIOBus() bool
	IOBus() UpstreamAttacher

	// CoherentIOPort returns the requestor port that coherent devices issue
	// requests from. It is only used when HasCoherentIO is true.
	HasCoherentIO() bool
	CoherentIOPort() sim.Port

	// BootROMPort returns nil if the board has no boot ROM.
	BootROMPort() sim.Port

	// ConnectSystemPort binds the port used for functional accesses to the
	// given system bus slot.
	ConnectSystemPort(slot sim.Port) error

	// AdoptCacheHierarchy hands the ownership of a fully built hierarchy to
	// the board.
	AdoptCacheHierarchy(h *Hierarchy) error
}
