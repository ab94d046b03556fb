package board

import (
	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/mem/idealmemcontroller"
	"github.com/sarchlab/memhier/mem/mem"
	"github.com/sarchlab/memhier/noc/xbar"
	"github.com/sarchlab/memhier/sim"
)

// Builder can build boards.
type Builder struct {
	numCores    int
	isa         isa.ISA
	clockFreq   sim.Freq
	ioBus       bool
	coherentIO  bool
	bootROM     bool
	numMemCtrls int
	memSize     uint64
}

// MakeBuilder creates a builder for a single-core RISC-V board with 8GiB of
// memory behind one controller.
func MakeBuilder() Builder {
	return Builder{
		numCores:    1,
		isa:         isa.RISCV,
		clockFreq:   3 * sim.GHz,
		numMemCtrls: 1,
		memSize:     8 * mem.GB,
	}
}

// WithNumCores sets the number of cores.
func (b Builder) WithNumCores(n int) Builder {
	b.numCores = n
	return b
}

// WithISA sets the instruction set of the cores.
func (b Builder) WithISA(family isa.ISA) Builder {
	b.isa = family
	return b
}

// WithClockFreq sets the clock of the processor.
func (b Builder) WithClockFreq(freq sim.Freq) Builder {
	b.clockFreq = freq
	return b
}

// WithIOBus adds an I/O bus.
func (b Builder) WithIOBus() Builder {
	b.ioBus = true
	return b
}

// WithCoherentIO makes the devices need a coherent view of memory.
func (b Builder) WithCoherentIO() Builder {
	b.coherentIO = true
	return b
}

// WithBootROM adds a boot ROM.
func (b Builder) WithBootROM() Builder {
	b.bootROM = true
	return b
}

// WithNumMemCtrls sets the number of memory controllers.
func (b Builder) WithNumMemCtrls(n int) Builder {
	b.numMemCtrls = n
	return b
}

// WithMemSize sets the total capacity of the main memory.
func (b Builder) WithMemSize(size uint64) Builder {
	b.memSize = size
	return b
}

// Build creates a new board.
func (b Builder) Build(name string) *Board {
	board := &Board{
		ComponentBase: sim.NewComponentBase(name),
		coherentIO:    b.coherentIO,
	}

	board.SystemPort = sim.NewPort(board, sim.BuildName(name, "SystemPort"))
	board.AddPort("SystemPort", board.SystemPort)

	b.buildProcessor(board, name)
	b.buildMemCtrls(board, name)

	if b.ioBus {
		board.ioBus = xbar.MakeBuilder().
			WithKind(xbar.IOBus).
			WithFreq(b.clockFreq).
			Build(sim.BuildName(name, "IOBus"))

		if b.coherentIO {
			slot, err := board.ioBus.MemSide.NewSlot("coherent I/O")
			if err != nil {
				panic(err)
			}

			board.ioCacheBus = slot
		}
	} else if b.coherentIO {
		board.dmaPort = sim.NewPort(board, sim.BuildName(name, "DMAPort"))
		board.AddPort("DMAPort", board.dmaPort)
	}

	if b.bootROM {
		board.bootROM = newBootROM(sim.BuildName(name, "BootROM"),
			0x1000, 64*mem.KB)
	}

	return board
}

func (b Builder) buildProcessor(board *Board, name string) {
	procName := sim.BuildName(name, "Processor")
	p := &Processor{
		ComponentBase: sim.NewComponentBase(procName),
		Freq:          b.clockFreq,
		isa:           b.isa,
	}

	for i := 0; i < b.numCores; i++ {
		p.cores = append(p.cores,
			newCore(sim.BuildNameWithIndex(procName, "Core", i), i))
	}

	board.processor = p
}

func (b Builder) buildMemCtrls(board *Board, name string) {
	if b.numMemCtrls == 0 {
		return
	}

	capacity := b.memSize / uint64(b.numMemCtrls)

	for i := 0; i < b.numMemCtrls; i++ {
		ctrl := idealmemcontroller.MakeBuilder().
			WithStartAddr(0x80000000 + uint64(i)*capacity).
			WithCapacity(capacity).
			Build(sim.BuildNameWithIndex(name, "MemCtrl", i))
		board.memCtrls = append(board.memCtrls, ctrl)
	}
}
