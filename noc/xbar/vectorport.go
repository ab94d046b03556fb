package xbar

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/memhier/sim"
)

// Side tells which side of a crossbar a vector port is on.
type Side int

// The sides of a crossbar.
const (
	CPUSide Side = iota
	MemSide
)

// A VectorPort is a growable group of slots on one side of a crossbar. Each
// attachment gets its own slot, named like "Bus.CPUSide[3]".
type VectorPort struct {
	bus   *Comp
	name  string
	side  Side
	limit int
	slots []sim.Port
}

// Name returns the name of the vector port.
func (vp *VectorPort) Name() string {
	return vp.name
}

// Side returns the side of the crossbar that the vector port is on.
func (vp *VectorPort) Side() Side {
	return vp.side
}

// Slots returns the slots created so far.
func (vp *VectorPort) Slots() []sim.Port {
	return vp.slots
}

// NumSlots returns the number of slots created so far.
func (vp *VectorPort) NumSlots() int {
	return len(vp.slots)
}

// Limit returns the maximum number of slots, or 0 if unlimited.
func (vp *VectorPort) Limit() int {
	return vp.limit
}

// Connect creates a slot and binds it to the peer. On the CPU side the peer
// is the requestor; on the memory side the slot is the requestor. No slot is
// kept if the binding fails.
func (vp *VectorPort) Connect(peer sim.Port) (sim.Port, error) {
	if err := vp.mustHaveRoom(peer.Name()); err != nil {
		return nil, err
	}

	slot := vp.makeSlot()

	var err error
	if vp.side == CPUSide {
		_, err = vp.bus.connector.Connect(peer, slot)
	} else {
		_, err = vp.bus.connector.Connect(slot, peer)
	}

	if err != nil {
		return nil, err
	}

	vp.addSlot(slot)

	return slot, nil
}

// NewSlot creates an unbound slot for a peer that binds itself, for example a
// board that registers its system port. The slot counts as an attachment
// right away.
func (vp *VectorPort) NewSlot(peerName string) (sim.Port, error) {
	if err := vp.mustHaveRoom(peerName); err != nil {
		return nil, err
	}

	slot := vp.makeSlot()
	vp.addSlot(slot)

	return slot, nil
}

// RemoveSlot takes back the newest slot. Slots are only removed while
// undoing an attachment, newest first, so that slot indices stay dense.
func (vp *VectorPort) RemoveSlot(slot sim.Port) error {
	last := len(vp.slots) - 1
	if last < 0 || vp.slots[last] != slot {
		return errors.Errorf("%s is not the newest slot of %s",
			slot.Name(), vp.name)
	}

	if conn := slot.Connection(); conn != nil {
		return errors.Errorf("%s is still bound to %s",
			slot.Name(), conn.Name())
	}

	vp.slots = vp.slots[:last]
	vp.bus.RemovePort(sim.BuildNameWithIndex("", vp.localName(), last))

	return nil
}

func (vp *VectorPort) mustHaveRoom(peerName string) error {
	if vp.limit > 0 && len(vp.slots) >= vp.limit {
		existing := vp.slots[0].Name()
		if conn := vp.slots[0].Connection(); conn != nil {
			existing = conn.Name()
		}

		return &sim.DuplicateAttachmentError{
			Slot:      vp.name,
			Existing:  existing,
			Attempted: peerName,
		}
	}

	return nil
}

func (vp *VectorPort) makeSlot() sim.Port {
	return sim.NewPort(vp.bus, sim.BuildNameWithIndex(
		vp.bus.Name(), vp.localName(), len(vp.slots)))
}

func (vp *VectorPort) addSlot(slot sim.Port) {
	localName := sim.BuildNameWithIndex("", vp.localName(), len(vp.slots))
	vp.slots = append(vp.slots, slot)
	vp.bus.AddPort(localName, slot)
}

func (vp *VectorPort) localName() string {
	if vp.side == CPUSide {
		return "CPUSide"
	}

	return "MemSide"
}
