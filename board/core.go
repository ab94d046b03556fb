package board

import (
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/sim"
)

// Core is a processor core with the ports that the caches connect to.
type Core struct {
	*sim.ComponentBase

	Index int

	ICachePort    sim.Port
	DCachePort    sim.Port
	ITBWalkerPort sim.Port
	DTBWalkerPort sim.Port
	IntRequestor  sim.Port
	IntResponder  sim.Port

	// SelfContainedInterrupts counts the calls to ConnectInterrupt.
	SelfContainedInterrupts int
}

func newCore(name string, index int) *Core {
	c := &Core{
		ComponentBase: sim.NewComponentBase(name),
		Index:         index,
	}

	c.ICachePort = c.addPort("ICachePort")
	c.DCachePort = c.addPort("DCachePort")
	c.ITBWalkerPort = c.addPort("ITBWalkerPort")
	c.DTBWalkerPort = c.addPort("DTBWalkerPort")
	c.IntRequestor = c.addPort("IntRequestor")
	c.IntResponder = c.addPort("IntResponder")

	return c
}

func (c *Core) addPort(name string) sim.Port {
	p := sim.NewPort(c, sim.BuildName(c.Name(), name))
	c.AddPort(name, p)

	return p
}

// ConnectInstructionCache binds the instruction fetch port to the cache.
func (c *Core) ConnectInstructionCache(cpuSide sim.Port) error {
	_, err := wiring.Connect(c.ICachePort, cpuSide)
	return err
}

// ConnectDataCache binds the load/store port to the cache.
func (c *Core) ConnectDataCache(cpuSide sim.Port) error {
	_, err := wiring.Connect(c.DCachePort, cpuSide)
	return err
}

// ConnectWalkerPorts binds the page-table walkers of the instruction and data
// TLBs to their caches.
func (c *Core) ConnectWalkerPorts(itbCPUSide, dtbCPUSide sim.Port) error {
	if _, err := wiring.Connect(c.ITBWalkerPort, itbCPUSide); err != nil {
		return err
	}

	_, err := wiring.Connect(c.DTBWalkerPort, dtbCPUSide)

	return err
}

// ConnectInterrupt hooks up the interrupt controller inside the core.
func (c *Core) ConnectInterrupt() error {
	c.SelfContainedInterrupts++
	return nil
}

// DisconnectInterrupt undoes one ConnectInterrupt.
func (c *Core) DisconnectInterrupt() {
	if c.SelfContainedInterrupts > 0 {
		c.SelfContainedInterrupts--
	}
}

// ConnectInterruptPorts puts the interrupt controller on the system bus.
func (c *Core) ConnectInterruptPorts(busRequestor, busResponder sim.Port) error {
	if _, err := wiring.Connect(busRequestor, c.IntResponder); err != nil {
		return err
	}

	_, err := wiring.Connect(c.IntRequestor, busResponder)

	return err
}
