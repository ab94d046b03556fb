package cache

import (
	"fmt"

	"github.com/sarchlab/memhier/mem/mem"
)

// Role identifies what a cache is used for in the hierarchy.
type Role int

// The cache roles.
const (
	L1I Role = iota
	L1D
	L2
	L3
	IPTW
	DPTW
	IO
)

var roleNames = [...]string{"L1I", "L1D", "L2", "L3", "IPTW", "DPTW", "IO"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}

	return roleNames[r]
}

// IsWalker tells if the role is a page-table-walk cache.
func (r Role) IsWalker() bool {
	return r == IPTW || r == DPTW
}

// Roles returns all the cache roles.
func Roles() []Role {
	return []Role{L1I, L1D, L2, L3, IPTW, DPTW, IO}
}

// Spec holds the immutable timing and sizing parameters of a cache. Latencies
// are in cycles of the cache clock.
type Spec struct {
	Role            Role
	Size            string
	Assoc           int
	TagLatency      int
	DataLatency     int
	ResponseLatency int
	MSHRs           int
	TgtsPerMSHR     int
	WritebackClean  bool
}

// L1Spec returns the parameters of an L1 instruction or data cache.
func L1Spec(role Role, size string, assoc int) Spec {
	return Spec{
		Role:            role,
		Size:            size,
		Assoc:           assoc,
		TagLatency:      1,
		DataLatency:     1,
		ResponseLatency: 1,
		MSHRs:           16,
		TgtsPerMSHR:     12,
	}
}

// L2Spec returns the parameters of a private L2 cache.
func L2Spec(size string, assoc int) Spec {
	return Spec{
		Role:            L2,
		Size:            size,
		Assoc:           assoc,
		TagLatency:      10,
		DataLatency:     10,
		ResponseLatency: 10,
		MSHRs:           20,
		TgtsPerMSHR:     12,
	}
}

// L3Spec returns the parameters of the shared L3 cache.
func L3Spec(size string, assoc int) Spec {
	return Spec{
		Role:            L3,
		Size:            size,
		Assoc:           assoc,
		TagLatency:      40,
		DataLatency:     40,
		ResponseLatency: 40,
		MSHRs:           32,
		TgtsPerMSHR:     16,
	}
}

// MMUSpec returns the parameters of an instruction or data page-table-walk
// cache.
func MMUSpec(role Role, size string, assoc int) Spec {
	return Spec{
		Role:            role,
		Size:            size,
		Assoc:           assoc,
		TagLatency:      1,
		DataLatency:     1,
		ResponseLatency: 1,
		MSHRs:           10,
		TgtsPerMSHR:     8,
	}
}

// IOSpec returns the parameters of the coherent I/O cache.
func IOSpec(size string, assoc int) Spec {
	return Spec{
		Role:            IO,
		Size:            size,
		Assoc:           assoc,
		TagLatency:      50,
		DataLatency:     50,
		ResponseLatency: 50,
		MSHRs:           20,
		TgtsPerMSHR:     12,
	}
}

// SpecFor returns the parameters of a cache of the given role. Latencies and
// MSHR counts are fixed per role; only size and associativity vary.
func SpecFor(role Role, size string, assoc int) Spec {
	switch role {
	case L1I, L1D:
		return L1Spec(role, size, assoc)
	case L2:
		return L2Spec(size, assoc)
	case L3:
		return L3Spec(size, assoc)
	case IPTW, DPTW:
		return MMUSpec(role, size, assoc)
	case IO:
		return IOSpec(size, assoc)
	default:
		panic(fmt.Sprintf("unknown cache role %s", role))
	}
}

// DefaultSpec returns the parameters of a cache of the given role with the
// default size and associativity.
func DefaultSpec(role Role) Spec {
	switch role {
	case L1I, L1D:
		return SpecFor(role, "32kB", 8)
	case L2:
		return SpecFor(role, "256kB", 8)
	case L3:
		return SpecFor(role, "2MiB", 16)
	case IPTW, DPTW:
		return SpecFor(role, "8KiB", 4)
	case IO:
		return SpecFor(role, "1KiB", 8)
	default:
		panic(fmt.Sprintf("unknown cache role %s", role))
	}
}

// ByteSize returns the capacity of the cache in bytes.
func (s Spec) ByteSize() (uint64, error) {
	return mem.ParseSize(s.Size)
}

// Validate checks that the spec describes a cache that can be built.
func (s Spec) Validate() error {
	size, err := s.ByteSize()
	if err != nil {
		return s.invalid("Size", err.Error())
	}

	if size == 0 {
		return s.invalid("Size", "must be > 0")
	}

	positives := []struct {
		field string
		value int
	}{
		{"Assoc", s.Assoc},
		{"TagLatency", s.TagLatency},
		{"DataLatency", s.DataLatency},
		{"ResponseLatency", s.ResponseLatency},
		{"MSHRs", s.MSHRs},
		{"TgtsPerMSHR", s.TgtsPerMSHR},
	}

	for _, p := range positives {
		if p.value <= 0 {
			return s.invalid(p.field, "must be > 0")
		}
	}

	if uint64(s.Assoc) > size {
		return s.invalid("Assoc", fmt.Sprintf(
			"%d exceeds the %d bytes of the cache", s.Assoc, size))
	}

	return nil
}

func (s Spec) invalid(field, reason string) *InvalidSpecError {
	return &InvalidSpecError{Role: s.Role, Field: field, Reason: reason}
}

// InvalidSpecError reports a cache spec that cannot be built.
type InvalidSpecError struct {
	Role   Role
	Field  string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid %s cache spec: %s %s", e.Role, e.Field, e.Reason)
}
