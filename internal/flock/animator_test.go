package flock_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/flock"
	"github.com/san-kum/studiofx/internal/host"
)

var _ = Describe("Animator", func() {
	var (
		cfg    flock.Config
		clock  *host.ManualClock
		win    *host.Window
		anim   *flock.Animator
		origin dynamo.Vec
	)

	frame := time.Second / 60

	BeforeEach(func() {
		cfg = flock.DefaultConfig()
		clock = host.NewManualClock(time.Unix(0, 0))
		win = host.NewWindow(clock, host.Viewport{Width: 1200, Height: 400})
		spring, err := flock.NewSpring(cfg.Spring)
		Expect(err).NotTo(HaveOccurred())
		anim = flock.NewAnimator(cfg, spring, rand.New(rand.NewSource(3)), nil)
		origin = dynamo.Vec{X: 100, Y: 50}
	})

	AfterEach(func() {
		anim.Unmount()
	})

	tick := func() {
		clock.Advance(frame)
		win.Pump()
	}

	It("refuses to mount without items", func() {
		Expect(anim.Mount(win, origin, nil)).To(MatchError(dynamo.ErrNoItems))
		Expect(anim.Mounted()).To(BeFalse())
		Expect(win.Pending()).To(BeZero())
		_, pointer := win.Listeners()
		Expect(pointer).To(BeZero())
	})

	It("refuses to mount twice", func() {
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())
		Expect(anim.Mount(win, origin, row(8, 100))).To(MatchError(dynamo.ErrAlreadyMounted))
	})

	It("ticks once per frame", func() {
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())
		for i := 0; i < 5; i++ {
			tick()
		}
		Expect(anim.State().Tick).To(Equal(5))
		Expect(anim.State().Elapsed).To(BeNumerically("~", 5*frame.Seconds(), 1e-9))
	})

	It("translates pointer events into container coordinates", func() {
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())

		win.MovePointer(origin.X+300, origin.Y)
		Expect(anim.Pointer()).To(Equal(flock.At(300, 0)))
		tick()

		s := anim.State()
		Expect(s.Items[3].Repulsion.X).To(BeNumerically("~", 23, 1e-9))
		Expect(s.Items[0].Repulsion).To(Equal(dynamo.Vec{}))

		win.LeavePointer()
		Expect(anim.Pointer().Present).To(BeFalse())
		for i := 0; i < 40; i++ {
			tick()
		}
		Expect(anim.State().Items[3].Repulsion.Len()).To(BeNumerically("<", 1))
	})

	It("ignores the pointer outside the container bounds", func() {
		anim.SetBounds(800, 100)
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())

		win.MovePointer(origin.X-50, origin.Y)
		Expect(anim.Pointer().Present).To(BeFalse())
		tick()
		Expect(anim.State().Items[0].Repulsion).To(Equal(dynamo.Vec{}))

		win.MovePointer(origin.X+20, origin.Y+10)
		Expect(anim.Pointer()).To(Equal(flock.At(20, 10)))
		tick()
		Expect(anim.State().Items[0].Repulsion.Len()).To(BeNumerically(">", 0))

		win.MovePointer(origin.X+20, origin.Y+150)
		Expect(anim.Pointer().Present).To(BeFalse())
	})

	It("survives a stalled frame", func() {
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())
		tick()
		clock.Advance(10 * time.Second)
		win.Pump()
		for _, it := range anim.State().Items {
			Expect(it.Offset.IsFinite()).To(BeTrue())
			Expect(it.Offset.Len()).To(BeNumerically("<", 50))
		}
	})

	It("goes quiet after unmount", func() {
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())
		tick()
		anim.Unmount()

		Expect(win.Pending()).To(BeZero())
		_, pointer := win.Listeners()
		Expect(pointer).To(BeZero())

		before := anim.State()
		win.MovePointer(origin.X+300, origin.Y)
		for i := 0; i < 3; i++ {
			tick()
		}
		Expect(anim.State()).To(Equal(before))
		Expect(anim.Pointer().Present).To(BeFalse())
	})

	It("can be mounted again after unmount", func() {
		Expect(anim.Mount(win, origin, row(8, 100))).To(Succeed())
		anim.Unmount()
		Expect(anim.Mount(win, origin, row(4, 100))).To(Succeed())
		tick()
		Expect(anim.State().Items).To(HaveLen(4))
		Expect(anim.State().Tick).To(Equal(1))
	})
})
