package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Port Owner", func() {
	var (
		po *PortOwnerBase
	)

	BeforeEach(func() {
		po = NewPortOwnerBase()
	})

	It("shoud panic if the same name is added twice", func() {
		port1 := NewPort(nil, "Port1")
		port2 := NewPort(nil, "Port2")

		po.AddPort("LocalPort", port1)
		Expect(func() { po.AddPort("LocalPort", port2) }).To(Panic())
	})

	It("should add and get port", func() {
		port := NewPort(nil, "PortA")

		po.AddPort("LocalPort", port)

		Expect(po.GetPortByName("LocalPort")).To(BeIdenticalTo(port))
	})

	It("should list ports in the order they were added", func() {
		ports := make([]Port, 12)
		for i := range ports {
			name := BuildNameWithIndex("", "CPUSide", i)
			ports[i] = NewPort(nil, BuildName("Bus", name))
			po.AddPort(name, ports[i])
		}

		Expect(po.Ports()).To(Equal(ports))
		Expect(po.Ports()[2].Name()).To(Equal("Bus.CPUSide[2]"))
		Expect(po.Ports()[10].Name()).To(Equal("Bus.CPUSide[10]"))
	})

	It("should remove ports", func() {
		portA := NewPort(nil, "PortA")
		portB := NewPort(nil, "PortB")
		po.AddPort("A", portA)
		po.AddPort("B", portB)

		po.RemovePort("A")
		po.RemovePort("Missing")

		Expect(po.Ports()).To(Equal([]Port{portB}))
		Expect(func() { po.GetPortByName("A") }).To(Panic())
		Expect(func() { po.AddPort("A", portA) }).NotTo(Panic())
	})
})

var _ = Describe("UnboundPorts", func() {
	It("should report ports without connection", func() {
		comp := NewComponentBase("Comp")
		bound := NewPort(comp, "Comp.Bound")
		free := NewPort(comp, "Comp.Free")
		comp.AddPort("Bound", bound)
		comp.AddPort("Free", free)

		Expect(bound.SetConnection(fakeConn{})).To(Succeed())

		Expect(UnboundPorts(comp)).To(Equal([]Port{free}))
	})
})

type fakeConn struct{}

func (fakeConn) Name() string        { return "Fake" }
func (fakeConn) PlugIn(_ Port) error { return nil }
func (fakeConn) Unplug(_ Port)       {}
func (fakeConn) Ports() []Port       { return nil }
