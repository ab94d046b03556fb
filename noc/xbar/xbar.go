// Package xbar provides the crossbars that caches, memory controllers and
// devices attach to.
package xbar

import (
	"fmt"

	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/sim"
)

// Kind tells where a crossbar sits in the hierarchy.
type Kind int

// The crossbar kinds.
const (
	SystemBus Kind = iota
	L2Bus
	L3Bus
	IOBus
)

func (k Kind) String() string {
	switch k {
	case SystemBus:
		return "SystemBus"
	case L2Bus:
		return "L2Bus"
	case L3Bus:
		return "L3Bus"
	case IOBus:
		return "IOBus"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Comp is a crossbar. Requestors from above attach to the CPUSide vector port
// and responders below attach to the MemSide vector port.
type Comp struct {
	*sim.ComponentBase

	Kind            Kind
	Freq            sim.Freq
	Width           int
	FrontendLatency int
	ForwardLatency  int
	ResponseLatency int

	CPUSide *VectorPort
	MemSide *VectorPort
	Default sim.Port

	connector wiring.Connector
}

// AttachUpstream binds a requestor port above the crossbar to a new CPU-side
// slot.
func (c *Comp) AttachUpstream(peer sim.Port) (sim.Port, error) {
	return c.CPUSide.Connect(peer)
}

// DetachUpstream removes a CPU-side slot made by AttachUpstream. The slot
// must be unbound and the newest on its side.
func (c *Comp) DetachUpstream(slot sim.Port) error {
	return c.CPUSide.RemoveSlot(slot)
}

// SetDownstream binds a new memory-side slot to a responder port below the
// crossbar.
func (c *Comp) SetDownstream(peer sim.Port) (sim.Port, error) {
	return c.MemSide.Connect(peer)
}

// SetDefault binds the default slot, which receives requests that match no
// memory-side address range, to the given responder. There is only one
// default slot.
func (c *Comp) SetDefault(peer sim.Port) error {
	if c.Default != nil {
		return &sim.DuplicateAttachmentError{
			Slot:      c.Name() + ".Default",
			Existing:  c.Default.Connection().Name(),
			Attempted: peer.Name(),
		}
	}

	slot := sim.NewPort(c, c.Name()+".Default")
	if _, err := c.connector.Connect(slot, peer); err != nil {
		return err
	}

	c.Default = slot
	c.AddPort("Default", slot)

	return nil
}

// NumAttachments returns the number of bound slots on both sides, including
// the default slot.
func (c *Comp) NumAttachments() int {
	n := c.CPUSide.NumSlots() + c.MemSide.NumSlots()
	if c.Default != nil {
		n++
	}

	return n
}
