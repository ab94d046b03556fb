package xbar

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/sim"
)

var _ = Describe("Builder", func() {
	It("should apply the system bus preset", func() {
		bus := MakeBuilder().Build("MemBus")

		Expect(bus.Kind).To(Equal(SystemBus))
		Expect(bus.Width).To(Equal(16))
		Expect(bus.FrontendLatency).To(Equal(3))
		Expect(bus.ForwardLatency).To(Equal(4))
		Expect(bus.ResponseLatency).To(Equal(2))
		Expect(bus.MemSide.Limit()).To(Equal(0))
		Expect(bus.CPUSide.Name()).To(Equal("MemBus.CPUSide"))
	})

	It("should apply the L2 bus preset", func() {
		bus := MakeBuilder().WithKind(L2Bus).Build("L2Bus")

		Expect(bus.Width).To(Equal(32))
		Expect(bus.FrontendLatency).To(Equal(1))
		Expect(bus.ForwardLatency).To(Equal(0))
		Expect(bus.ResponseLatency).To(Equal(1))
		Expect(bus.MemSide.Limit()).To(Equal(1))
	})

	It("should let setters override the preset", func() {
		bus := MakeBuilder().
			WithKind(L3Bus).
			WithWidth(64).
			WithMaxMemSidePorts(2).
			WithFrontendLatency(5).
			Build("L3Bus")

		Expect(bus.Kind.String()).To(Equal("L3Bus"))
		Expect(bus.Width).To(Equal(64))
		Expect(bus.FrontendLatency).To(Equal(5))
		Expect(bus.MemSide.Limit()).To(Equal(2))
	})
})

var _ = Describe("Comp", func() {
	var (
		bus *Comp
	)

	BeforeEach(func() {
		bus = MakeBuilder().WithKind(L2Bus).Build("L2Bus")
	})

	It("should create a slot per upstream attachment", func() {
		for i := 0; i < 3; i++ {
			peer := sim.NewPort(nil, sim.BuildNameWithIndex("Cache", "MemSide", i))
			slot, err := bus.AttachUpstream(peer)

			Expect(err).NotTo(HaveOccurred())
			Expect(slot.Name()).To(Equal(
				sim.BuildNameWithIndex("L2Bus", "CPUSide", i)))
			Expect(slot.Connection()).To(BeIdenticalTo(peer.Connection()))

			link := slot.Connection().(*wiring.Link)
			Expect(link.Requestor).To(BeIdenticalTo(peer))
			Expect(link.Responder).To(BeIdenticalTo(slot))
		}

		Expect(bus.CPUSide.NumSlots()).To(Equal(3))
		Expect(bus.GetPortByName("CPUSide[2]")).
			To(BeIdenticalTo(bus.CPUSide.Slots()[2]))
		Expect(bus.NumAttachments()).To(Equal(3))
		Expect(sim.UnboundPorts(bus)).To(BeEmpty())
	})

	It("should make the slot the requestor on the memory side", func() {
		peer := sim.NewPort(nil, "L2Cache.CPUSide")

		slot, err := bus.SetDownstream(peer)

		Expect(err).NotTo(HaveOccurred())
		link := slot.Connection().(*wiring.Link)
		Expect(link.Requestor).To(BeIdenticalTo(slot))
		Expect(link.Responder).To(BeIdenticalTo(peer))
	})

	It("should reject a second downstream on a single-downstream bus", func() {
		_, err := bus.SetDownstream(sim.NewPort(nil, "L2Cache.CPUSide"))
		Expect(err).NotTo(HaveOccurred())

		other := sim.NewPort(nil, "Other.CPUSide")
		_, err = bus.SetDownstream(other)

		var dupErr *sim.DuplicateAttachmentError
		Expect(errors.As(err, &dupErr)).To(BeTrue())
		Expect(dupErr.Slot).To(Equal("L2Bus.MemSide"))
		Expect(dupErr.Attempted).To(Equal("Other.CPUSide"))
		Expect(other.Connection()).To(BeNil())
		Expect(bus.MemSide.NumSlots()).To(Equal(1))
	})

	It("should not keep a slot when the peer is already bound", func() {
		peer := sim.NewPort(nil, "Cache.MemSide")
		_, err := bus.AttachUpstream(peer)
		Expect(err).NotTo(HaveOccurred())

		_, err = bus.AttachUpstream(peer)

		var dupErr *sim.DuplicateAttachmentError
		Expect(errors.As(err, &dupErr)).To(BeTrue())
		Expect(bus.CPUSide.NumSlots()).To(Equal(1))
		Expect(bus.Ports()).To(HaveLen(1))
	})

	It("should accept a single default", func() {
		sys := MakeBuilder().Build("MemBus")
		Expect(sys.SetDefault(sim.NewPort(nil, "BadAddr.Pio"))).To(Succeed())

		err := sys.SetDefault(sim.NewPort(nil, "Other.Pio"))

		var dupErr *sim.DuplicateAttachmentError
		Expect(errors.As(err, &dupErr)).To(BeTrue())
		Expect(dupErr.Slot).To(Equal("MemBus.Default"))
		Expect(sys.NumAttachments()).To(Equal(1))
	})

	It("should hand out unbound slots", func() {
		slot, err := bus.CPUSide.NewSlot("Board.SystemPort")

		Expect(err).NotTo(HaveOccurred())
		Expect(slot.Connection()).To(BeNil())
		Expect(sim.UnboundPorts(bus)).To(ConsistOf(slot))
	})

	It("should detach the newest unbound slot", func() {
		peer := sim.NewPort(nil, "Cache.MemSide")
		slot, err := bus.AttachUpstream(peer)
		Expect(err).NotTo(HaveOccurred())

		slot.Connection().(*wiring.Link).Disconnect()

		Expect(bus.DetachUpstream(slot)).To(Succeed())
		Expect(bus.CPUSide.NumSlots()).To(Equal(0))
		Expect(bus.Ports()).To(BeEmpty())

		again, err := bus.AttachUpstream(peer)
		Expect(err).NotTo(HaveOccurred())
		Expect(again.Name()).To(Equal("L2Bus.CPUSide[0]"))
		Expect(bus.GetPortByName("CPUSide[0]")).To(BeIdenticalTo(again))
	})

	It("should keep a slot that is still bound", func() {
		slot, err := bus.AttachUpstream(sim.NewPort(nil, "Cache.MemSide"))
		Expect(err).NotTo(HaveOccurred())

		Expect(bus.DetachUpstream(slot)).To(
			MatchError(ContainSubstring("still bound")))
		Expect(bus.CPUSide.NumSlots()).To(Equal(1))
	})

	It("should only remove the newest slot", func() {
		first, err := bus.CPUSide.NewSlot("First")
		Expect(err).NotTo(HaveOccurred())
		_, err = bus.CPUSide.NewSlot("Second")
		Expect(err).NotTo(HaveOccurred())

		Expect(bus.CPUSide.RemoveSlot(first)).To(
			MatchError(ContainSubstring("not the newest slot")))
		Expect(bus.CPUSide.NumSlots()).To(Equal(2))
	})

	It("should connect through the given connector", func() {
		j := wiring.NewJournal()
		bus = MakeBuilder().WithConnector(j).Build("MemBus")

		_, err := bus.AttachUpstream(sim.NewPort(nil, "Cache.MemSide"))
		Expect(err).NotTo(HaveOccurred())
		_, err = bus.SetDownstream(sim.NewPort(nil, "Mem.Port"))
		Expect(err).NotTo(HaveOccurred())

		Expect(j.Links()).To(HaveLen(2))
	})
})
