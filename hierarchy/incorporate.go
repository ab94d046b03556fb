package hierarchy

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sarchlab/memhier/mem/cache"
	"github.com/sarchlab/memhier/noc/bridge"
	"github.com/sarchlab/memhier/noc/xbar"
	"github.com/sarchlab/memhier/sim"
)

type step struct {
	name string
	run  func(b Board) error
}

// Incorporate builds the caches and buses and wires them into the board. It
// either succeeds completely, in which case the board adopts the hierarchy, or
// undoes every connection it made and leaves the hierarchy discarded.
//
// Incorporating again into the board that adopted the hierarchy does nothing.
func (h *Hierarchy) Incorporate(b Board) error {
	switch h.state {
	case stateCommitted:
		if b == h.board {
			return nil
		}

		return errors.Errorf("%s is already incorporated into %s",
			h.name, h.board.Name())
	case stateDiscarded:
		return errors.Errorf("%s was discarded by a failed incorporation",
			h.name)
	}

	steps := []step{
		{"check board", h.checkBoard},
		{"connect system bus", h.connectSystemBus},
		{"bridge I/O bus", h.bridgeIOBus},
		{"build L3", h.buildL3},
		{"build cores", h.buildCores},
		{"set up coherent I/O", h.setUpCoherentIO},
		{"connect boot ROM", h.connectBootROM},
		{"verify ports", h.verifyPorts},
		{"commit", h.commit},
	}

	for _, s := range steps {
		if err := s.run(b); err != nil {
			h.journal.Rollback()
			h.state = stateDiscarded

			return errors.Wrapf(err, "incorporating %s into %s: %s",
				h.name, b.Name(), s.name)
		}
	}

	return nil
}

func (h *Hierarchy) checkBoard(b Board) error {
	p := b.Processor()
	if p == nil {
		return &MissingCapabilityError{
			Capability: "processor",
			Reason:     "the board has no processor",
		}
	}

	if n := len(p.Cores()); n < p.NumCores() {
		return &MissingCapabilityError{
			Capability: "cores",
			Reason: fmt.Sprintf("the processor reports %d cores but exposes %d",
				p.NumCores(), n),
		}
	}

	if h.requireCoherentIO && !b.HasCoherentIO() {
		return &MissingCapabilityError{
			Capability: "coherent I/O",
			Reason:     "the hierarchy requires a coherent I/O port",
		}
	}

	if p.NumCores() > 0 {
		if _, err := resolveInterruptWiring(h.wirings, p.ISA()); err != nil {
			return err
		}
	}

	return nil
}

func (h *Hierarchy) connectSystemBus(b Board) error {
	slot, err := h.systemBus.CPUSide.NewSlot(b.Name() + " system port")
	if err != nil {
		return err
	}

	err = h.handOut(func() error { return b.ConnectSystemPort(slot) }, slot)
	if err != nil {
		return err
	}

	for _, ctrl := range b.MemoryControllers() {
		if _, err := h.systemBus.SetDownstream(ctrl.Port()); err != nil {
			return err
		}
	}

	if h.badAddr != nil {
		if err := h.systemBus.SetDefault(h.badAddr.Pio); err != nil {
			return err
		}
	}

	return nil
}

func (h *Hierarchy) bridgeIOBus(b Board) error {
	if !b.HasIOBus() {
		return nil
	}

	ioBus := b.IOBus()
	if ioBus == nil {
		return &MissingCapabilityError{
			Capability: "I/O bus",
			Reason:     "the board reports an I/O bus but does not expose it",
		}
	}

	h.ioBridge = bridge.MakeBuilder().
		WithDelay(h.bridgeDelay).
		Build(sim.BuildName(h.name, "IOBridge"))
	h.addComponent(h.ioBridge)

	slot, err := ioBus.AttachUpstream(h.ioBridge.MemSide)
	if err != nil {
		return err
	}

	h.journal.OnRollback(func() { _ = ioBus.DetachUpstream(slot) })
	h.journal.RecordPort(h.ioBridge.MemSide)

	if _, err := h.systemBus.SetDownstream(h.ioBridge.CPUSide); err != nil {
		return err
	}

	if b.HasCoherentIO() {
		return h.ensureIOCache(b)
	}

	return nil
}

func (h *Hierarchy) buildL3(_ Board) error {
	h.l3Bus = xbar.MakeBuilder().
		WithKind(xbar.L3Bus).
		WithFreq(h.freq).
		WithConnector(h.journal).
		Build(sim.BuildName(h.name, "L3Bus"))
	h.addComponent(h.l3Bus)

	l3, err := h.buildCache(cache.L3, cache.Shared,
		sim.BuildName(h.name, "L3Cache"))
	if err != nil {
		return err
	}

	h.l3Cache = l3

	if _, err := h.l3Bus.SetDownstream(l3.CPUSide); err != nil {
		return err
	}

	if _, err := h.systemBus.AttachUpstream(l3.MemSide); err != nil {
		return err
	}

	return nil
}

func (h *Hierarchy) buildCores(b Board) error {
	p := b.Processor()
	if p.NumCores() == 0 {
		return nil
	}

	w, err := resolveInterruptWiring(h.wirings, p.ISA())
	if err != nil {
		return err
	}

	cores := p.Cores()
	for i := 0; i < p.NumCores(); i++ {
		if err := h.buildCore(i, cores[i], w); err != nil {
			return errors.Wrapf(err, "core %d", i)
		}
	}

	return nil
}

func (h *Hierarchy) buildCore(
	index int,
	core Core,
	w InterruptWiring,
) error {
	name := sim.BuildNameWithIndex(h.name, "Core", index)
	cc := CoreCaches{Index: index}

	cc.L2Bus = xbar.MakeBuilder().
		WithKind(xbar.L2Bus).
		WithFreq(h.freq).
		WithConnector(h.journal).
		Build(sim.BuildName(name, "L2Bus"))
	h.addComponent(cc.L2Bus)

	leaves := []struct {
		role cache.Role
		elem string
		dst  **cache.Comp
	}{
		{cache.L1I, "L1ICache", &cc.L1I},
		{cache.L1D, "L1DCache", &cc.L1D},
		{cache.IPTW, "IPTWCache", &cc.IPTW},
		{cache.DPTW, "DPTWCache", &cc.DPTW},
		{cache.L2, "L2Cache", &cc.L2},
	}

	for _, leaf := range leaves {
		c, err := h.buildCache(leaf.role, index, sim.BuildName(name, leaf.elem))
		if err != nil {
			return err
		}

		*leaf.dst = c
	}

	h.cores = append(h.cores, cc)

	if err := h.connectCoreToLeaves(core, cc); err != nil {
		return err
	}

	for _, c := range []*cache.Comp{cc.L1I, cc.L1D, cc.IPTW, cc.DPTW} {
		if _, err := cc.L2Bus.AttachUpstream(c.MemSide); err != nil {
			return err
		}
	}

	if _, err := cc.L2Bus.SetDownstream(cc.L2.CPUSide); err != nil {
		return err
	}

	if _, err := h.l3Bus.AttachUpstream(cc.L2.MemSide); err != nil {
		return err
	}

	return h.connectInterrupts(index, core, w)
}

func (h *Hierarchy) connectCoreToLeaves(core Core, cc CoreCaches) error {
	err := h.handOut(func() error {
		return core.ConnectInstructionCache(cc.L1I.CPUSide)
	}, cc.L1I.CPUSide)
	if err != nil {
		return errors.Wrap(err, "instruction cache")
	}

	err = h.handOut(func() error {
		return core.ConnectDataCache(cc.L1D.CPUSide)
	}, cc.L1D.CPUSide)
	if err != nil {
		return errors.Wrap(err, "data cache")
	}

	err = h.handOut(func() error {
		return core.ConnectWalkerPorts(cc.IPTW.CPUSide, cc.DPTW.CPUSide)
	}, cc.IPTW.CPUSide, cc.DPTW.CPUSide)
	if err != nil {
		return errors.Wrap(err, "walker caches")
	}

	return nil
}

// handOut runs a board-side call that binds the given ports and records the
// links it made, including those made before a failure.
func (h *Hierarchy) handOut(connect func() error, ports ...sim.Port) error {
	err := connect()

	for _, p := range ports {
		h.journal.RecordPort(p)
	}

	return err
}

func (h *Hierarchy) connectInterrupts(
	index int,
	core Core,
	w InterruptWiring,
) error {
	switch w {
	case SelfContainedInterrupt:
		if err := core.ConnectInterrupt(); err != nil {
			return errors.Wrap(err, "interrupts")
		}

		h.journal.OnRollback(core.DisconnectInterrupt)

		return nil
	case ExplicitPortsInterrupt:
		peer := fmt.Sprintf("core %d interrupts", index)

		req, err := h.systemBus.MemSide.NewSlot(peer)
		if err != nil {
			return err
		}

		rsp, err := h.systemBus.CPUSide.NewSlot(peer)
		if err != nil {
			return err
		}

		err = h.handOut(func() error {
			return core.ConnectInterruptPorts(req, rsp)
		}, req, rsp)

		return errors.Wrap(err, "interrupt ports")
	default:
		return errors.Errorf("unknown interrupt wiring %s", w)
	}
}

func (h *Hierarchy) setUpCoherentIO(b Board) error {
	if !b.HasCoherentIO() {
		return nil
	}

	return h.ensureIOCache(b)
}

// ensureIOCache places the coherent I/O cache between the board's coherent
// I/O port and the system bus. It is reached both from the I/O bus bridge and
// from the board-level check and only builds the cache on the first call.
func (h *Hierarchy) ensureIOCache(b Board) error {
	if h.ioCache != nil {
		return nil
	}

	port := b.CoherentIOPort()
	if port == nil {
		return &MissingCapabilityError{
			Capability: "coherent I/O port",
			Reason:     "the board reports coherent I/O but exposes no port",
		}
	}

	c, err := h.buildIOCache()
	if err != nil {
		return err
	}

	h.ioCache = c

	if _, err := h.systemBus.AttachUpstream(c.MemSide); err != nil {
		return err
	}

	if _, err := h.journal.Connect(port, c.CPUSide); err != nil {
		return err
	}

	return nil
}

func (h *Hierarchy) buildIOCache() (*cache.Comp, error) {
	return h.buildCache(cache.IO, cache.Shared, sim.BuildName(h.name, "IOCache"))
}

func (h *Hierarchy) connectBootROM(b Board) error {
	port := b.BootROMPort()
	if port == nil {
		return nil
	}

	_, err := h.systemBus.SetDownstream(port)

	return err
}

func (h *Hierarchy) verifyPorts(_ Board) error {
	var unbound []string

	for _, c := range h.components {
		for _, p := range sim.UnboundPorts(c) {
			unbound = append(unbound, p.Name())
		}
	}

	if len(unbound) > 0 {
		return &UnboundPortError{Ports: unbound}
	}

	return nil
}

func (h *Hierarchy) commit(b Board) error {
	if err := b.AdoptCacheHierarchy(h); err != nil {
		return err
	}

	h.board = b
	h.state = stateCommitted

	return nil
}

func (h *Hierarchy) buildCache(
	role cache.Role,
	coreID int,
	name string,
) (*cache.Comp, error) {
	c, err := cache.MakeBuilder().
		WithFreq(h.freq).
		WithSpec(h.specs[role]).
		WithCoreID(coreID).
		Build(name)
	if err != nil {
		return nil, err
	}

	if err := h.registry.Add(c); err != nil {
		return nil, err
	}

	h.addComponent(c)

	return c, nil
}
