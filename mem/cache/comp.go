// Package cache provides the cache parameter sets and the cache components
// that populate a memory hierarchy.
package cache

import (
	"github.com/sarchlab/memhier/sim"
)

// Shared is the core index of caches that do not belong to a single core.
const Shared = -1

// Comp is a cache placed in the memory topology. The CPUSide port faces the
// requestors above the cache and the MemSide port faces the memory below.
type Comp struct {
	*sim.ComponentBase

	Spec     Spec
	CoreID   int
	Freq     sim.Freq
	ByteSize uint64
	LineSize int
	NumSets  int

	CPUSide sim.Port
	MemSide sim.Port
}

// Role returns the role of the cache.
func (c *Comp) Role() Role {
	return c.Spec.Role
}

// IsShared tells if the cache is shared by all the cores.
func (c *Comp) IsShared() bool {
	return c.CoreID == Shared
}

// AccessLatency returns the time to look up the tags and read the data on a
// hit.
func (c *Comp) AccessLatency() sim.VTimeInSec {
	return c.Freq.NCycles(c.Spec.TagLatency + c.Spec.DataLatency)
}
