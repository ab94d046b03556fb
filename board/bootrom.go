package board

import (
	"github.com/sarchlab/memhier/sim"
)

// BootROM holds the firmware that the cores run after reset.
type BootROM struct {
	*sim.ComponentBase

	StartAddr uint64
	Size      uint64

	Port sim.Port
}

func newBootROM(name string, startAddr, size uint64) *BootROM {
	r := &BootROM{
		ComponentBase: sim.NewComponentBase(name),
		StartAddr:     startAddr,
		Size:          size,
	}

	r.Port = sim.NewPort(r, sim.BuildName(name, "Port"))
	r.AddPort("Port", r.Port)

	return r
}
