// Package idealmemcontroller provides a memory controller that serves every
// request in a fixed number of cycles.
package idealmemcontroller

import (
	"github.com/sarchlab/memhier/sim"
)

// An Comp is an ideal memory controller. It serves the address range
// [StartAddr, StartAddr+Capacity) through its top port.
type Comp struct {
	*sim.ComponentBase

	Freq      sim.Freq
	Latency   int
	Width     int
	StartAddr uint64
	Capacity  uint64

	topPort sim.Port
}

// Port returns the port that the memory bus attaches to.
func (c *Comp) Port() sim.Port {
	return c.topPort
}

// Contains tells if the address is served by the controller.
func (c *Comp) Contains(addr uint64) bool {
	return addr >= c.StartAddr && addr-c.StartAddr < c.Capacity
}
