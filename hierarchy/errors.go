package hierarchy

import (
	"fmt"
	"strings"

	"github.com/sarchlab/memhier/isa"
)

// MissingCapabilityError is returned when the board lacks something that the
// hierarchy needs.
type MissingCapabilityError struct {
	Capability string
	Reason     string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("board lacks %s: %s", e.Capability, e.Reason)
}

// UnsupportedISAWiringError is returned when there is no rule to connect the
// interrupts of cores with the given instruction set.
type UnsupportedISAWiringError struct {
	ISA isa.ISA
}

func (e *UnsupportedISAWiringError) Error() string {
	return fmt.Sprintf("no interrupt wiring rule for ISA %s", e.ISA)
}

// UnboundPortError is returned when a finished hierarchy still has ports that
// are not connected.
type UnboundPortError struct {
	Ports []string
}

func (e *UnboundPortError) Error() string {
	return fmt.Sprintf("%d port(s) left unbound: %s",
		len(e.Ports), strings.Join(e.Ports, ", "))
}
