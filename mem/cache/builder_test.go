package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memhier/sim"
)

var _ = Describe("Builder", func() {
	It("should build a cache with two ports", func() {
		c, err := MakeBuilder().
			WithFreq(2 * sim.GHz).
			WithSpec(SpecFor(L1I, "32kB", 8)).
			WithCoreID(3).
			Build("Cache")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Name()).To(Equal("Cache"))
		Expect(c.Role()).To(Equal(L1I))
		Expect(c.CoreID).To(Equal(3))
		Expect(c.IsShared()).To(BeFalse())
		Expect(c.ByteSize).To(Equal(uint64(32 * 1024)))
		Expect(c.LineSize).To(Equal(64))
		Expect(c.NumSets).To(Equal(64))
		Expect(c.CPUSide.Name()).To(Equal("Cache.CPUSide"))
		Expect(c.MemSide.Name()).To(Equal("Cache.MemSide"))
		Expect(c.GetPortByName("CPUSide")).To(BeIdenticalTo(c.CPUSide))
		Expect(c.Ports()).To(HaveLen(2))
		Expect(sim.UnboundPorts(c)).To(HaveLen(2))
	})

	It("should default to a shared cache", func() {
		c, err := MakeBuilder().WithSpec(DefaultSpec(L3)).Build("L3Cache")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.IsShared()).To(BeTrue())
	})

	It("should compute the access latency", func() {
		c, err := MakeBuilder().
			WithFreq(1 * sim.GHz).
			WithSpec(DefaultSpec(L2)).
			Build("L2Cache")

		Expect(err).NotTo(HaveOccurred())
		Expect(float64(c.AccessLatency())).To(BeNumerically("~", 20e-9, 1e-15))
	})

	It("should reject invalid specs", func() {
		spec := DefaultSpec(L2)
		spec.MSHRs = 0

		c, err := MakeBuilder().WithSpec(spec).Build("L2Cache")

		var specErr *InvalidSpecError
		Expect(c).To(BeNil())
		Expect(errors.As(err, &specErr)).To(BeTrue())
	})

	It("should reject sizes without full sets", func() {
		c, err := MakeBuilder().
			WithSpec(SpecFor(L1D, "96B", 2)).
			Build("L1DCache")

		var specErr *InvalidSpecError
		Expect(c).To(BeNil())
		Expect(errors.As(err, &specErr)).To(BeTrue())
		Expect(specErr.Field).To(Equal("Size"))
	})

	It("should reject more ways than lines", func() {
		var c *Comp
		var err error

		Expect(func() {
			c, err = MakeBuilder().
				WithSpec(L3Spec("2MiB", 1<<58)).
				Build("L3Cache")
		}).NotTo(Panic())

		var specErr *InvalidSpecError
		Expect(c).To(BeNil())
		Expect(errors.As(err, &specErr)).To(BeTrue())
		Expect(specErr.Field).To(Equal("Assoc"))

		_, err = MakeBuilder().
			WithSpec(L3Spec("1KiB", 32)).
			Build("L3Cache")
		Expect(errors.As(err, &specErr)).To(BeTrue())
		Expect(specErr.Field).To(Equal("Assoc"))
		Expect(specErr.Reason).To(ContainSubstring("16 lines"))
	})

	It("should reject line sizes out of range", func() {
		for _, log2 := range []int{-1, 1, 17, 70} {
			_, err := MakeBuilder().
				WithLog2CacheLineSize(log2).
				Build("L1DCache")

			var specErr *InvalidSpecError
			Expect(errors.As(err, &specErr)).To(BeTrue())
			Expect(specErr.Field).To(Equal("LineSize"))
		}
	})

	It("should honor the line size", func() {
		c, err := MakeBuilder().
			WithSpec(SpecFor(IO, "1KiB", 8)).
			WithLog2CacheLineSize(7).
			Build("IOCache")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.LineSize).To(Equal(128))
		Expect(c.NumSets).To(Equal(1))
	})
})
