package sim

import (
	"fmt"
	"strings"
)

// A PortOwner owns ports and looks them up by their local names.
type PortOwner interface {
	AddPort(name string, port Port)
	GetPortByName(name string) Port
	Ports() []Port
}

// PortOwnerBase keeps the ports of a component in the order they were added.
type PortOwnerBase struct {
	names []string
	ports map[string]Port
}

// NewPortOwnerBase creates a PortOwnerBase without ports.
func NewPortOwnerBase() *PortOwnerBase {
	return &PortOwnerBase{
		ports: make(map[string]Port),
	}
}

// AddPort registers a port under a local name. Local names are unique within
// an owner.
func (po *PortOwnerBase) AddPort(name string, port Port) {
	if _, found := po.ports[name]; found {
		panic("port " + name + " already exists")
	}

	po.names = append(po.names, name)
	po.ports[name] = port
}

// RemovePort drops the port registered under the local name, if any.
func (po *PortOwnerBase) RemovePort(name string) {
	if _, found := po.ports[name]; !found {
		return
	}

	delete(po.ports, name)

	for i, n := range po.names {
		if n == name {
			po.names = append(po.names[:i], po.names[i+1:]...)
			break
		}
	}
}

// GetPortByName returns the port registered under the local name. It panics
// if there is no such port.
func (po *PortOwnerBase) GetPortByName(name string) Port {
	port, found := po.ports[name]
	if !found {
		panic(fmt.Sprintf("port %s not found, available ports: %s",
			name, strings.Join(po.names, ", ")))
	}

	return port
}

// Ports returns all the ports in the order they were added.
func (po *PortOwnerBase) Ports() []Port {
	list := make([]Port, len(po.names))
	for i, name := range po.names {
		list[i] = po.ports[name]
	}

	return list
}
