package datarecording

import (
	"fmt"

	"github.com/sarchlab/memhier/mem/badaddr"
	"github.com/sarchlab/memhier/mem/cache"
	"github.com/sarchlab/memhier/mem/idealmemcontroller"
	"github.com/sarchlab/memhier/mem/mem"
	"github.com/sarchlab/memhier/noc/bridge"
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/noc/xbar"
	"github.com/sarchlab/memhier/sim"
)

// The tables written by RecordTopology.
const (
	ComponentTable = "components"
	LinkTable      = "links"
)

// ComponentEntry is a row of the components table.
type ComponentEntry struct {
	Name     string
	Kind     string
	Detail   string
	NumPorts int
}

// LinkEntry is a row of the links table.
type LinkEntry struct {
	Name      string
	Requestor string
	Responder string
}

// RecordTopology writes the components and the links between them.
func RecordTopology(
	r Recorder,
	comps []sim.Component,
	links []*wiring.Link,
) error {
	if err := r.CreateTable(ComponentTable, ComponentEntry{}); err != nil {
		return err
	}

	if err := r.CreateTable(LinkTable, LinkEntry{}); err != nil {
		return err
	}

	for _, c := range comps {
		if err := r.InsertData(ComponentTable, DescribeComponent(c)); err != nil {
			return err
		}
	}

	for _, l := range links {
		err := r.InsertData(LinkTable, LinkEntry{
			Name:      l.Name(),
			Requestor: l.Requestor.Name(),
			Responder: l.Responder.Name(),
		})
		if err != nil {
			return err
		}
	}

	return r.Flush()
}

// DescribeComponent summarizes a component in a row.
func DescribeComponent(c sim.Component) ComponentEntry {
	e := ComponentEntry{
		Name:     c.Name(),
		NumPorts: len(c.Ports()),
	}

	switch c := c.(type) {
	case *cache.Comp:
		e.Kind = "Cache"
		e.Detail = fmt.Sprintf("%s %s %d-way", c.Role(),
			mem.FormatSize(c.ByteSize), c.Spec.Assoc)
	case *xbar.Comp:
		e.Kind = "Bus"
		e.Detail = c.Kind.String()
	case *bridge.Comp:
		e.Kind = "Bridge"
		e.Detail = fmt.Sprintf("%.0fns", float64(c.Delay/sim.Ns))
	case *badaddr.Comp:
		e.Kind = "BadAddr"
	case *idealmemcontroller.Comp:
		e.Kind = "MemCtrl"
		e.Detail = mem.FormatSize(c.Capacity)
	default:
		e.Kind = fmt.Sprintf("%T", c)
	}

	return e
}
