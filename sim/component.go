package sim

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a piece of hardware that owns ports and takes a place in the
// memory topology.
type Component interface {
	Named
	PortOwner
}

// ComponentBase provides some functions that other component can use.
type ComponentBase struct {
	*PortOwnerBase

	name string
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name
	c.PortOwnerBase = NewPortOwnerBase()

	return c
}

// Name returns the name of the BasicComponent
func (c *ComponentBase) Name() string {
	return c.name
}

// UnboundPorts returns the ports of the component that are not connected to
// anything.
func UnboundPorts(c Component) []Port {
	var unbound []Port

	for _, p := range c.Ports() {
		if p.Connection() == nil {
			unbound = append(unbound, p)
		}
	}

	return unbound
}
