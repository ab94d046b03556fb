// Package hierarchy builds the cache hierarchy of a multi-core machine and
// wires it into a board.
//
// Each core gets private L1 instruction and data caches, two page-table-walk
// caches and an L2 cache behind a private bus. All the L2 caches share an L3
// cache through the L3 bus, and the L3 cache sits on the system bus together
// with the memory controllers.
package hierarchy

import (
	"github.com/rs/xid"

	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/mem/badaddr"
	"github.com/sarchlab/memhier/mem/cache"
	"github.com/sarchlab/memhier/noc/bridge"
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/noc/xbar"
	"github.com/sarchlab/memhier/sim"
)

// HookPosComponentCreated marks a bus, cache or device being created.
var HookPosComponentCreated = &sim.HookPos{Name: "Component Created"}

type state int

const (
	stateReady state = iota
	stateCommitted
	stateDiscarded
)

// CoreCaches holds the private caches and bus of a core.
type CoreCaches struct {
	Index int
	L2Bus *xbar.Comp
	L1I   *cache.Comp
	L1D   *cache.Comp
	IPTW  *cache.Comp
	DPTW  *cache.Comp
	L2    *cache.Comp
}

// Hierarchy is the root of a cache hierarchy. It owns every bus and cache it
// creates.
type Hierarchy struct {
	sim.HookableBase

	name              string
	id                xid.ID
	freq              sim.Freq
	specs             map[cache.Role]cache.Spec
	bridgeDelay       sim.VTimeInSec
	wirings           map[isa.ISA]InterruptWiring
	requireCoherentIO bool

	journal    *wiring.Journal
	registry   *Registry
	components []sim.Component
	state      state
	board      Board

	systemBus *xbar.Comp
	badAddr   *badaddr.Comp
	l3Bus     *xbar.Comp
	l3Cache   *cache.Comp
	ioBridge  *bridge.Comp
	ioCache   *cache.Comp
	cores     []CoreCaches
}

// Name returns the name of the hierarchy.
func (h *Hierarchy) Name() string {
	return h.name
}

// ID returns the unique ID of the hierarchy.
func (h *Hierarchy) ID() string {
	return h.id.String()
}

// AcceptHook registers a hook for both the components and the links created
// by the hierarchy.
func (h *Hierarchy) AcceptHook(hook sim.Hook) {
	h.HookableBase.AcceptHook(hook)
	h.journal.AcceptHook(hook)
}

// MemSidePort returns the memory-side vector port of the system bus.
func (h *Hierarchy) MemSidePort() *xbar.VectorPort {
	return h.systemBus.MemSide
}

// CPUSidePort returns the CPU-side vector port of the system bus.
func (h *Hierarchy) CPUSidePort() *xbar.VectorPort {
	return h.systemBus.CPUSide
}

// SystemBus returns the system bus.
func (h *Hierarchy) SystemBus() *xbar.Comp {
	return h.systemBus
}

// BadAddr returns the responder on the default slot of the system bus, or nil
// if the hierarchy was built without it.
func (h *Hierarchy) BadAddr() *badaddr.Comp {
	return h.badAddr
}

// L3Bus returns the bus between the L2 caches and the L3 cache.
func (h *Hierarchy) L3Bus() *xbar.Comp {
	return h.l3Bus
}

// L3Cache returns the shared L3 cache.
func (h *Hierarchy) L3Cache() *cache.Comp {
	return h.l3Cache
}

// IOBridge returns the bridge to the I/O bus, or nil if the board has no I/O
// bus.
func (h *Hierarchy) IOBridge() *bridge.Comp {
	return h.ioBridge
}

// IOCache returns the coherent I/O cache, or nil if the board has no coherent
// I/O.
func (h *Hierarchy) IOCache() *cache.Comp {
	return h.ioCache
}

// Cores returns the private caches of every core.
func (h *Hierarchy) Cores() []CoreCaches {
	return h.cores
}

// Registry returns the index of all the caches.
func (h *Hierarchy) Registry() *Registry {
	return h.registry
}

// Components returns every component owned by the hierarchy in the order they
// were created.
func (h *Hierarchy) Components() []sim.Component {
	return h.components
}

// Links returns every link made while incorporating the hierarchy.
func (h *Hierarchy) Links() []*wiring.Link {
	return h.journal.Links()
}

// Spec returns the parameters used for caches of the given role.
func (h *Hierarchy) Spec(role cache.Role) cache.Spec {
	return h.specs[role]
}

// IsCommitted tells if the hierarchy has been adopted by a board.
func (h *Hierarchy) IsCommitted() bool {
	return h.state == stateCommitted
}

// IsDiscarded tells if an incorporation failed and the hierarchy can no
// longer be used.
func (h *Hierarchy) IsDiscarded() bool {
	return h.state == stateDiscarded
}

func (h *Hierarchy) addComponent(c sim.Component) {
	h.components = append(h.components, c)

	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosComponentCreated,
		Item:   c,
	})
}
