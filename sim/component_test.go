package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("ComponentBase", func() {
	var (
		mockCtrl  *gomock.Controller
		component *ComponentBase
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		component = NewComponentBase("Machine.Cache")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should set and get name", func() {
		Expect(component.Name()).To(Equal("Machine.Cache"))
	})

	It("should reject invalid names", func() {
		Expect(func() { NewComponentBase("Machine..Cache") }).To(Panic())
	})

	It("should list the unbound ports", func() {
		top := NewPort(component, "Machine.Cache.Top")
		bottom := NewPort(component, "Machine.Cache.Bottom")
		component.AddPort("Top", top)
		component.AddPort("Bottom", bottom)

		conn := NewMockConnection(mockCtrl)
		Expect(top.SetConnection(conn)).To(Succeed())

		Expect(UnboundPorts(component)).To(ConsistOf(bottom))
	})
})
