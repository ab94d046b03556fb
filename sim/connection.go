package sim

// A Connection binds ports together. In a memory topology, every port is
// plugged into exactly one connection.
type Connection interface {
	Named

	PlugIn(port Port) error
	Unplug(port Port)
	Ports() []Port
}
