// Package isa lists the instruction-set families that a board's processor can
// implement.
package isa

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ISA is an instruction-set family.
type ISA int

// The supported instruction-set families.
const (
	Null ISA = iota
	X86
	ARM
	RISCV
	SPARC
	MIPS
	POWER
)

var isaNames = map[ISA]string{
	Null:  "null",
	X86:   "x86",
	ARM:   "arm",
	RISCV: "riscv",
	SPARC: "sparc",
	MIPS:  "mips",
	POWER: "power",
}

func (i ISA) String() string {
	name, ok := isaNames[i]
	if !ok {
		return fmt.Sprintf("ISA(%d)", int(i))
	}

	return name
}

// Parse converts a name such as "riscv", "RISC-V" or "x86" into an ISA.
func Parse(name string) (ISA, error) {
	normalized := strings.ToLower(name)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	for i, n := range isaNames {
		if n == normalized {
			return i, nil
		}
	}

	return Null, errors.Errorf("unknown ISA %q", name)
}

// All returns every known ISA in declaration order.
func All() []ISA {
	return []ISA{Null, X86, ARM, RISCV, SPARC, MIPS, POWER}
}
