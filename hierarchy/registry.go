package hierarchy

import (
	"fmt"

	"github.com/sarchlab/memhier/mem/cache"
	"github.com/sarchlab/memhier/sim"
)

type registryKey struct {
	role cache.Role
	core int
}

// A Registry indexes the caches of a hierarchy by role and core. Shared caches
// use cache.Shared as the core.
type Registry struct {
	caches map[registryKey]*cache.Comp
	order  []*cache.Comp
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		caches: make(map[registryKey]*cache.Comp),
	}
}

// Add registers a cache. A second cache with the same role and core is
// rejected.
func (r *Registry) Add(c *cache.Comp) error {
	key := registryKey{role: c.Role(), core: c.CoreID}

	if existing, found := r.caches[key]; found {
		return &sim.DuplicateAttachmentError{
			Slot:      slotName(key),
			Existing:  existing.Name(),
			Attempted: c.Name(),
		}
	}

	r.caches[key] = c
	r.order = append(r.order, c)

	return nil
}

// Get returns the cache with the given role and core, or nil.
func (r *Registry) Get(role cache.Role, core int) *cache.Comp {
	return r.caches[registryKey{role: role, core: core}]
}

// Count returns the number of caches with the given role.
func (r *Registry) Count(role cache.Role) int {
	n := 0

	for _, c := range r.order {
		if c.Role() == role {
			n++
		}
	}

	return n
}

// All returns every cache in the order they were added.
func (r *Registry) All() []*cache.Comp {
	return r.order
}

func slotName(key registryKey) string {
	if key.core == cache.Shared {
		return fmt.Sprintf("shared %s cache", key.role)
	}

	return fmt.Sprintf("%s cache of core %d", key.role, key.core)
}
