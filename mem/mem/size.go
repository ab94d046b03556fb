// Package mem defines the sizes and capacity literals shared by the memory
// components.
package mem

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Capacity units. Memory capacities are always binary, so "kB" and "KiB" both
// mean 1024 bytes.
const (
	B  uint64 = 1
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
	TB uint64 = 1 << 40
)

var sizeSuffixes = []struct {
	suffix string
	unit   uint64
}{
	{"KiB", KB}, {"MiB", MB}, {"GiB", GB}, {"TiB", TB},
	{"kB", KB}, {"KB", KB}, {"MB", MB}, {"GB", GB}, {"TB", TB},
	{"B", B},
}

// ParseSize converts a capacity literal such as "32kB", "2MiB" or "4096" into
// a number of bytes.
func ParseSize(literal string) (uint64, error) {
	s := strings.TrimSpace(literal)
	if s == "" {
		return 0, errors.New("empty capacity literal")
	}

	unit := B
	for _, sfx := range sizeSuffixes {
		if strings.HasSuffix(s, sfx.suffix) {
			unit = sfx.unit
			s = strings.TrimSpace(strings.TrimSuffix(s, sfx.suffix))

			break
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("malformed capacity literal %q", literal)
	}

	if n > ^uint64(0)/unit {
		return 0, errors.Errorf("capacity literal %q overflows", literal)
	}

	return n * unit, nil
}

// FormatSize renders a byte count for humans, e.g. "32 KiB".
func FormatSize(bytes uint64) string {
	return humanize.IBytes(bytes)
}
