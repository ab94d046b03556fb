package wiring

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memhier/sim"
)

type recordingHook struct {
	positions []*sim.HookPos
	links     []*Link
}

func (h *recordingHook) Func(ctx sim.HookCtx) {
	h.positions = append(h.positions, ctx.Pos)
	h.links = append(h.links, ctx.Item.(*Link))
}

var _ = Describe("Journal", func() {
	var (
		j    *Journal
		hook *recordingHook
	)

	BeforeEach(func() {
		j = NewJournal()
		hook = &recordingHook{}
		j.AcceptHook(hook)
	})

	It("should record links", func() {
		l1, err := j.Connect(sim.NewPort(nil, "A"), sim.NewPort(nil, "B"))
		Expect(err).NotTo(HaveOccurred())
		l2, err := j.Connect(sim.NewPort(nil, "C"), sim.NewPort(nil, "D"))
		Expect(err).NotTo(HaveOccurred())

		Expect(j.Links()).To(Equal([]*Link{l1, l2}))
		Expect(hook.positions).To(Equal(
			[]*sim.HookPos{HookPosLinkConnect, HookPosLinkConnect}))
	})

	It("should not record failed links", func() {
		a := sim.NewPort(nil, "A")
		_, err := j.Connect(a, sim.NewPort(nil, "B"))
		Expect(err).NotTo(HaveOccurred())

		_, err = j.Connect(a, sim.NewPort(nil, "C"))

		Expect(err).To(HaveOccurred())
		Expect(j.Links()).To(HaveLen(1))
	})

	It("should record the link behind a port once", func() {
		a := sim.NewPort(nil, "A")
		b := sim.NewPort(nil, "B")
		l, _ := Connect(a, b)

		Expect(j.RecordPort(a)).To(BeTrue())
		Expect(j.RecordPort(b)).To(BeTrue())
		Expect(j.Links()).To(Equal([]*Link{l}))
	})

	It("should not record unbound ports", func() {
		Expect(j.RecordPort(sim.NewPort(nil, "A"))).To(BeFalse())
		Expect(j.Links()).To(BeEmpty())
	})

	It("should roll back newest first", func() {
		a := sim.NewPort(nil, "A")
		b := sim.NewPort(nil, "B")
		c := sim.NewPort(nil, "C")
		l1, _ := j.Connect(a, b)
		l2, _ := j.Connect(c, sim.NewPort(nil, "D"))

		j.Rollback()

		Expect(j.Links()).To(BeEmpty())
		Expect(a.Connection()).To(BeNil())
		Expect(b.Connection()).To(BeNil())
		Expect(c.Connection()).To(BeNil())
		Expect(hook.positions[2:]).To(Equal(
			[]*sim.HookPos{HookPosLinkDisconnect, HookPosLinkDisconnect}))
		Expect(hook.links[2:]).To(Equal([]*Link{l2, l1}))
	})
	It("should interleave undo steps with links on rollback", func() {
		a := sim.NewPort(nil, "A")
		b := sim.NewPort(nil, "B")
		var order []string

		j.OnRollback(func() {
			order = append(order, "first undo")
		})
		_, err := j.Connect(a, b)
		Expect(err).NotTo(HaveOccurred())
		j.OnRollback(func() {
			order = append(order, "second undo, bound="+
				strconv.FormatBool(a.Connection() != nil))
		})

		j.Rollback()

		Expect(order).To(Equal([]string{"second undo, bound=true", "first undo"}))
		Expect(a.Connection()).To(BeNil())

		j.Rollback()
		Expect(order).To(HaveLen(2))
	})
})
