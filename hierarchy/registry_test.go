package hierarchy

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memhier/isa"
	"github.com/sarchlab/memhier/mem/cache"
	"github.com/sarchlab/memhier/sim"
)

func mustBuildCache(role cache.Role, coreID int, name string) *cache.Comp {
	c, err := cache.MakeBuilder().
		WithSpec(cache.DefaultSpec(role)).
		WithCoreID(coreID).
		Build(name)
	Expect(err).NotTo(HaveOccurred())

	return c
}

var _ = Describe("Registry", func() {
	var (
		r *Registry
	)

	BeforeEach(func() {
		r = NewRegistry()
	})

	It("should index caches by role and core", func() {
		l1i0 := mustBuildCache(cache.L1I, 0, "L1ICache0")
		l1i1 := mustBuildCache(cache.L1I, 1, "L1ICache1")
		l3 := mustBuildCache(cache.L3, cache.Shared, "L3Cache")

		Expect(r.Add(l1i0)).To(Succeed())
		Expect(r.Add(l1i1)).To(Succeed())
		Expect(r.Add(l3)).To(Succeed())

		Expect(r.Get(cache.L1I, 1)).To(BeIdenticalTo(l1i1))
		Expect(r.Get(cache.L3, cache.Shared)).To(BeIdenticalTo(l3))
		Expect(r.Get(cache.L1D, 0)).To(BeNil())
		Expect(r.Count(cache.L1I)).To(Equal(2))
		Expect(r.All()).To(Equal([]*cache.Comp{l1i0, l1i1, l3}))
	})

	It("should reject a second cache in the same place", func() {
		Expect(r.Add(mustBuildCache(cache.L2, 3, "L2Cache"))).To(Succeed())

		err := r.Add(mustBuildCache(cache.L2, 3, "OtherL2Cache"))

		var dupErr *sim.DuplicateAttachmentError
		Expect(errors.As(err, &dupErr)).To(BeTrue())
		Expect(dupErr.Slot).To(Equal("L2 cache of core 3"))
		Expect(dupErr.Existing).To(Equal("L2Cache"))
		Expect(dupErr.Attempted).To(Equal("OtherL2Cache"))
		Expect(r.Count(cache.L2)).To(Equal(1))
	})

	It("should name shared slots", func() {
		Expect(r.Add(mustBuildCache(cache.IO, cache.Shared, "IOCache"))).
			To(Succeed())

		err := r.Add(mustBuildCache(cache.IO, cache.Shared, "IOCache"))

		Expect(err).To(MatchError("shared IO cache is already attached to " +
			"IOCache, cannot attach IOCache"))
	})
})

var _ = Describe("InterruptWiring", func() {
	It("should wire x86 through explicit ports", func() {
		w, err := resolveInterruptWiring(DefaultInterruptWirings(), isa.X86)

		Expect(err).NotTo(HaveOccurred())
		Expect(w).To(Equal(ExplicitPortsInterrupt))
		Expect(w.String()).To(Equal("ExplicitPorts"))
	})

	DescribeTable("self-contained families",
		func(family isa.ISA) {
			w, err := resolveInterruptWiring(DefaultInterruptWirings(), family)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(Equal(SelfContainedInterrupt))
		},
		Entry("arm", isa.ARM),
		Entry("riscv", isa.RISCV),
		Entry("sparc", isa.SPARC),
		Entry("mips", isa.MIPS),
		Entry("power", isa.POWER),
	)

	It("should have no rule for the null ISA", func() {
		_, err := resolveInterruptWiring(DefaultInterruptWirings(), isa.Null)

		Expect(err).To(MatchError("no interrupt wiring rule for ISA null"))
	})

	It("should hand out copies of the defaults", func() {
		wirings := DefaultInterruptWirings()
		wirings[isa.X86] = SelfContainedInterrupt

		Expect(DefaultInterruptWirings()[isa.X86]).
			To(Equal(ExplicitPortsInterrupt))
	})

	It("should not share overrides between builders", func() {
		base := MakeBuilder()
		_ = base.WithInterruptWiring(isa.X86, SelfContainedInterrupt)

		Expect(base.wirings[isa.X86]).To(Equal(ExplicitPortsInterrupt))
	})
})
