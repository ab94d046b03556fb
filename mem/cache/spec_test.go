package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memhier/mem/mem"
)

var _ = Describe("Spec", func() {
	It("should derive identical specs from identical inputs", func() {
		a := SpecFor(L1D, "32kB", 8)
		b := SpecFor(L1D, "32kB", 8)

		Expect(a == b).To(BeTrue())
	})

	DescribeTable("role defaults",
		func(role Role, tag, data, resp, mshrs, tgts int) {
			s := DefaultSpec(role)

			Expect(s.Role).To(Equal(role))
			Expect(s.TagLatency).To(Equal(tag))
			Expect(s.DataLatency).To(Equal(data))
			Expect(s.ResponseLatency).To(Equal(resp))
			Expect(s.MSHRs).To(Equal(mshrs))
			Expect(s.TgtsPerMSHR).To(Equal(tgts))
			Expect(s.WritebackClean).To(BeFalse())
			Expect(s.Validate()).To(Succeed())
		},
		Entry("L1I", L1I, 1, 1, 1, 16, 12),
		Entry("L1D", L1D, 1, 1, 1, 16, 12),
		Entry("L2", L2, 10, 10, 10, 20, 12),
		Entry("L3", L3, 40, 40, 40, 32, 16),
		Entry("IPTW", IPTW, 1, 1, 1, 10, 8),
		Entry("DPTW", DPTW, 1, 1, 1, 10, 8),
		Entry("IO", IO, 50, 50, 50, 20, 12),
	)

	It("should keep caller size and associativity", func() {
		s := SpecFor(L3, "4MiB", 32)

		Expect(s.Size).To(Equal("4MiB"))
		Expect(s.Assoc).To(Equal(32))
		Expect(s.ByteSize()).To(Equal(4 * mem.MB))
	})

	It("should panic on unknown role", func() {
		Expect(func() { SpecFor(Role(99), "1kB", 1) }).To(Panic())
		Expect(func() { DefaultSpec(Role(99)) }).To(Panic())
	})

	DescribeTable("invalid specs",
		func(mutate func(s *Spec), field string) {
			s := DefaultSpec(L2)
			mutate(&s)

			err := s.Validate()

			var specErr *InvalidSpecError
			Expect(errors.As(err, &specErr)).To(BeTrue())
			Expect(specErr.Role).To(Equal(L2))
			Expect(specErr.Field).To(Equal(field))
		},
		Entry("zero size", func(s *Spec) { s.Size = "0kB" }, "Size"),
		Entry("malformed size", func(s *Spec) { s.Size = "big" }, "Size"),
		Entry("zero assoc", func(s *Spec) { s.Assoc = 0 }, "Assoc"),
		Entry("zero tag latency", func(s *Spec) { s.TagLatency = 0 }, "TagLatency"),
		Entry("negative data latency",
			func(s *Spec) { s.DataLatency = -1 }, "DataLatency"),
		Entry("zero response latency",
			func(s *Spec) { s.ResponseLatency = 0 }, "ResponseLatency"),
		Entry("zero mshrs", func(s *Spec) { s.MSHRs = 0 }, "MSHRs"),
		Entry("zero targets", func(s *Spec) { s.TgtsPerMSHR = 0 }, "TgtsPerMSHR"),
		Entry("more ways than bytes",
			func(s *Spec) { s.Assoc = 1 << 58 }, "Assoc"),
	)

	It("should name roles", func() {
		Expect(L1I.String()).To(Equal("L1I"))
		Expect(IO.String()).To(Equal("IO"))
		Expect(Role(42).String()).To(Equal("Role(42)"))
		Expect(IPTW.IsWalker()).To(BeTrue())
		Expect(L1D.IsWalker()).To(BeFalse())
		Expect(Roles()).To(HaveLen(7))
	})
})
