// Package board provides a machine that cache hierarchies can be incorporated
// into.
package board

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/memhier/hierarchy"
	"github.com/sarchlab/memhier/mem/idealmemcontroller"
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/noc/xbar"
	"github.com/sarchlab/memhier/sim"
)

// Board is a machine with a processor, main memory and optional I/O devices.
type Board struct {
	*sim.ComponentBase

	processor  *Processor
	memCtrls   []*idealmemcontroller.Comp
	ioBus      *xbar.Comp
	coherentIO bool
	dmaPort    sim.Port
	ioCacheBus sim.Port
	bootROM    *BootROM

	SystemPort sim.Port

	cacheHierarchy *hierarchy.Hierarchy
}

// Processor returns the processor.
func (b *Board) Processor() hierarchy.Processor {
	return b.processor
}

// Proc returns the processor with its concrete type.
func (b *Board) Proc() *Processor {
	return b.processor
}

// MemoryControllers returns the controllers of the main memory.
func (b *Board) MemoryControllers() []hierarchy.MemoryController {
	ctrls := make([]hierarchy.MemoryController, len(b.memCtrls))
	for i, c := range b.memCtrls {
		ctrls[i] = c
	}

	return ctrls
}

// MemCtrls returns the memory controllers with their concrete type.
func (b *Board) MemCtrls() []*idealmemcontroller.Comp {
	return b.memCtrls
}

// HasIOBus tells if the board has an I/O bus.
func (b *Board) HasIOBus() bool {
	return b.ioBus != nil
}

// IOBus returns the I/O bus, or nil.
func (b *Board) IOBus() hierarchy.UpstreamAttacher {
	if b.ioBus == nil {
		return nil
	}

	return b.ioBus
}

// IOBusComp returns the I/O bus with its concrete type, or nil.
func (b *Board) IOBusComp() *xbar.Comp {
	return b.ioBus
}

// HasCoherentIO tells if the devices need a coherent view of memory.
func (b *Board) HasCoherentIO() bool {
	return b.coherentIO
}

// CoherentIOPort returns the port that coherent devices issue requests from.
// With an I/O bus it is a memory-side slot of the bus. Without one it is the
// DMA port of the board.
func (b *Board) CoherentIOPort() sim.Port {
	if !b.coherentIO {
		return nil
	}

	if b.ioBus == nil {
		return b.dmaPort
	}

	return b.ioCacheBus
}

// BootROMPort returns the port of the boot ROM, or nil.
func (b *Board) BootROMPort() sim.Port {
	if b.bootROM == nil {
		return nil
	}

	return b.bootROM.Port
}

// BootROM returns the boot ROM, or nil.
func (b *Board) BootROM() *BootROM {
	return b.bootROM
}

// ConnectSystemPort binds the port used for functional accesses.
func (b *Board) ConnectSystemPort(slot sim.Port) error {
	_, err := wiring.Connect(b.SystemPort, slot)
	return err
}

// AdoptCacheHierarchy takes the ownership of a hierarchy. A board can only
// have one.
func (b *Board) AdoptCacheHierarchy(h *hierarchy.Hierarchy) error {
	if b.cacheHierarchy != nil {
		return errors.Errorf("%s already has cache hierarchy %s",
			b.Name(), b.cacheHierarchy.Name())
	}

	b.cacheHierarchy = h

	return nil
}

// CacheHierarchy returns the adopted hierarchy, or nil.
func (b *Board) CacheHierarchy() *hierarchy.Hierarchy {
	return b.cacheHierarchy
}

// Components returns the board itself and everything on it, followed by the
// components of the adopted cache hierarchy.
func (b *Board) Components() []sim.Component {
	comps := []sim.Component{b, b.processor}

	for _, c := range b.processor.cores {
		comps = append(comps, c)
	}

	for _, c := range b.memCtrls {
		comps = append(comps, c)
	}

	if b.ioBus != nil {
		comps = append(comps, b.ioBus)
	}

	if b.bootROM != nil {
		comps = append(comps, b.bootROM)
	}

	if b.cacheHierarchy != nil {
		comps = append(comps, b.cacheHierarchy.Components()...)
	}

	return comps
}
