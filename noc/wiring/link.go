// Package wiring binds ports together.
package wiring

import (
	"fmt"

	"github.com/sarchlab/memhier/sim"
)

// A Link is a directed binding from a requestor port to a responder port.
// Each end of a link belongs to exactly one link.
type Link struct {
	name string

	Requestor sim.Port
	Responder sim.Port
}

// Connect binds the requestor to the responder. If either port is already
// bound, Connect returns a DuplicateAttachmentError and leaves both ports
// untouched.
func Connect(requestor, responder sim.Port) (*Link, error) {
	if requestor == responder {
		panic("cannot connect port " + requestor.Name() + " to itself")
	}

	l := &Link{
		name: fmt.Sprintf("%s->%s", requestor.Name(), responder.Name()),
	}

	if err := l.PlugIn(requestor); err != nil {
		return nil, err
	}

	if err := l.PlugIn(responder); err != nil {
		l.Unplug(requestor)
		return nil, err
	}

	return l, nil
}

// Name returns the name of the link.
func (l *Link) Name() string {
	return l.name
}

// PlugIn connects a port to the link. The first port plugged in is the
// requestor.
func (l *Link) PlugIn(port sim.Port) error {
	if err := port.SetConnection(l); err != nil {
		return err
	}

	switch {
	case l.Requestor == nil:
		l.Requestor = port
	case l.Responder == nil:
		l.Responder = port
	default:
		panic("link already has two ports connected")
	}

	return nil
}

// Unplug removes a port from the link.
func (l *Link) Unplug(port sim.Port) {
	switch port {
	case l.Requestor:
		l.Requestor = nil
	case l.Responder:
		l.Responder = nil
	default:
		return
	}

	port.ClearConnection(l)
}

// Ports returns the ports that are plugged into the link.
func (l *Link) Ports() []sim.Port {
	ports := make([]sim.Port, 0, 2)

	if l.Requestor != nil {
		ports = append(ports, l.Requestor)
	}

	if l.Responder != nil {
		ports = append(ports, l.Responder)
	}

	return ports
}

// Disconnect unbinds both ends of the link.
func (l *Link) Disconnect() {
	for _, p := range l.Ports() {
		l.Unplug(p)
	}
}

// IsConnected tells if both ends are still plugged in.
func (l *Link) IsConnected() bool {
	return l.Requestor != nil && l.Responder != nil
}

// A Connector makes links between ports.
type Connector interface {
	Connect(requestor, responder sim.Port) (*Link, error)
}

// DirectConnector makes links without keeping track of them.
type DirectConnector struct{}

// Connect binds the requestor to the responder.
func (DirectConnector) Connect(requestor, responder sim.Port) (*Link, error) {
	return Connect(requestor, responder)
}
