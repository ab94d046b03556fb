package mem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseSize", func() {
	DescribeTable("valid literals",
		func(literal string, expected uint64) {
			Expect(ParseSize(literal)).To(Equal(expected))
		},
		Entry("kB is binary", "32kB", 32*KB),
		Entry("KiB", "8KiB", 8*KB),
		Entry("MiB", "2MiB", 2*MB),
		Entry("MB is binary", "2MB", 2*MB),
		Entry("GiB", "8GiB", 8*GB),
		Entry("bytes", "64B", uint64(64)),
		Entry("bare number", "4096", uint64(4096)),
		Entry("spaces", " 4 kB ", 4*KB),
	)

	DescribeTable("invalid literals",
		func(literal string) {
			_, err := ParseSize(literal)
			Expect(err).To(HaveOccurred())
		},
		Entry("empty", ""),
		Entry("unit only", "kB"),
		Entry("negative", "-1kB"),
		Entry("fraction", "1.5MiB"),
		Entry("unknown unit", "3 parsecs"),
		Entry("overflow", "99999999999TiB"),
	)

	It("should format sizes", func() {
		Expect(FormatSize(32 * KB)).To(Equal("32 KiB"))
		Expect(FormatSize(2 * MB)).To(Equal("2.0 MiB"))
	})
})
