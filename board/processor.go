package board

import (
	"github.com/sarchlab/memhier/hierarchy"
	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/sim"
)

// Processor is a group of identical cores.
type Processor struct {
	*sim.ComponentBase

	Freq sim.Freq

	isa   isa.ISA
	cores []*Core
}

// NumCores returns the number of cores.
func (p *Processor) NumCores() int {
	return len(p.cores)
}

// Cores returns the cores.
func (p *Processor) Cores() []hierarchy.Core {
	cores := make([]hierarchy.Core, len(p.cores))
	for i, c := range p.cores {
		cores[i] = c
	}

	return cores
}

// Core returns the core with the given index.
func (p *Processor) Core(i int) *Core {
	return p.cores[i]
}

// ISA returns the instruction set of the cores.
func (p *Processor) ISA() isa.ISA {
	return p.isa
}
