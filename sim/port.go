package sim

// A RemotePort is a string that refers to another port.
type RemotePort string

// A Port is owned by a component and is used to plugin connections.
type Port interface {
	Named

	AsRemote() RemotePort
	Component() Component

	Connection() Connection
	SetConnection(conn Connection) error
	ClearConnection(conn Connection)
}

type defaultPort struct {
	name string
	comp Component
	conn Connection
}

// NewPort creates a new port with default behavior.
func NewPort(comp Component, name string) Port {
	NameMustBeValid(name)

	p := new(defaultPort)
	p.comp = comp
	p.name = name

	return p
}

// AsRemote returns the remote port name.
func (p *defaultPort) AsRemote() RemotePort {
	return RemotePort(p.name)
}

// Name returns the name of the port.
func (p *defaultPort) Name() string {
	return p.name
}

// Component returns the owner component of the port.
func (p *defaultPort) Component() Component {
	return p.comp
}

// Connection returns the connection that the port is plugged into, or nil if
// the port is still unbound.
func (p *defaultPort) Connection() Connection {
	return p.conn
}

// SetConnection sets which connection plugged in to this port. A port can only
// be bound once.
func (p *defaultPort) SetConnection(conn Connection) error {
	if p.conn != nil {
		return &DuplicateAttachmentError{
			Slot:      p.name,
			Existing:  p.conn.Name(),
			Attempted: conn.Name(),
		}
	}

	p.conn = conn

	return nil
}

// ClearConnection unbinds the port if it is currently plugged into the given
// connection.
func (p *defaultPort) ClearConnection(conn Connection) {
	if p.conn == conn {
		p.conn = nil
	}
}
