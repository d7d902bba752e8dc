package flock_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/flock"
)

func row(n int, spacing float64) []dynamo.Vec {
	homes := make([]dynamo.Vec, n)
	for i := range homes {
		homes[i] = dynamo.Vec{X: float64(i) * spacing, Y: 0}
	}
	return homes
}

func mustSpring(cfg flock.SpringConfig) flock.Spring {
	s, err := flock.NewSpring(cfg)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Repulsion", func() {
	cfg := flock.DefaultConfig()
	home := dynamo.Vec{X: 300, Y: 200}

	It("is full strength along +X when the pointer sits on home", func() {
		r := flock.Repulsion(cfg, home, home)
		Expect(r.X).To(BeNumerically("~", 25, 1e-12))
		Expect(r.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("vanishes at and beyond the radius", func() {
		Expect(flock.Repulsion(cfg, dynamo.Vec{X: 150, Y: 200}, home)).To(Equal(dynamo.Vec{}))
		Expect(flock.Repulsion(cfg, dynamo.Vec{X: 149, Y: 200}, home)).To(Equal(dynamo.Vec{}))
		Expect(flock.Repulsion(cfg, dynamo.Vec{X: 151, Y: 200}, home).Len()).To(BeNumerically(">", 0))
		Expect(flock.Repulsion(cfg, dynamo.Vec{X: 300, Y: 351}, home)).To(Equal(dynamo.Vec{}))
	})

	It("points away from the pointer", func() {
		r := flock.Repulsion(cfg, dynamo.Vec{X: 300, Y: 250}, home)
		Expect(r.X).To(BeNumerically("~", 0, 1e-9))
		Expect(r.Y).To(BeNumerically("<", 0))
		Expect(r.Len()).To(BeNumerically("~", 100.0/150*25, 1e-9))
	})

	It("shrinks monotonically with distance", func() {
		prev := math.Inf(1)
		for d := 0.0; d < 150; d += 5 {
			m := flock.Repulsion(cfg, dynamo.Vec{X: 300 - d, Y: 200}, home).Len()
			Expect(m).To(BeNumerically("<=", prev))
			prev = m
		}
	})
})

var _ = Describe("Step", func() {
	var (
		cfg    flock.Config
		spring flock.Spring
		state  flock.State
	)

	BeforeEach(func() {
		cfg = flock.DefaultConfig()
		spring = mustSpring(cfg.Spring)
		state = flock.NewState(cfg, rand.New(rand.NewSource(7)), row(8, 100))
	})

	It("draws ambient parameters from the configured ranges", func() {
		for _, it := range state.Items {
			Expect(it.Ambient.AmpX).To(And(BeNumerically(">=", 5), BeNumerically("<=", 20)))
			Expect(it.Ambient.AmpY).To(And(BeNumerically(">=", 5), BeNumerically("<=", 20)))
			Expect(it.Ambient.FreqX).To(And(BeNumerically(">=", 0.05), BeNumerically("<=", 0.2)))
			Expect(it.Ambient.FreqY).To(And(BeNumerically(">=", 0.05), BeNumerically("<=", 0.2)))
			Expect(it.Ambient.PhaseX).To(And(BeNumerically(">=", 0), BeNumerically("<", 2*math.Pi)))
			Expect(it.Offset).To(Equal(dynamo.Vec{}))
		}
	})

	It("does not modify its input", func() {
		before := state.Clone()
		flock.Step(cfg, spring, state, flock.Input{Pointer: flock.At(300, 0), Elapsed: 0.1, Dt: cfg.FrameDt})
		Expect(state).To(Equal(before))
	})

	It("pushes only the neighbours of a pointer resting on item 3", func() {
		next := flock.Step(cfg, spring, state, flock.Input{Pointer: flock.At(300, 0), Dt: cfg.FrameDt})

		Expect(next.Items[3].Repulsion.X).To(BeNumerically("~", 25*0.92, 1e-9))
		Expect(next.Items[3].Repulsion.Y).To(BeNumerically("~", 0, 1e-9))

		side := 25 * 50.0 / 150 * 0.92
		Expect(next.Items[2].Repulsion.X).To(BeNumerically("~", -side, 1e-9))
		Expect(next.Items[4].Repulsion.X).To(BeNumerically("~", side, 1e-9))

		for _, i := range []int{0, 1, 5, 6, 7} {
			Expect(next.Items[i].Repulsion).To(Equal(dynamo.Vec{}), "item %d", i)
		}
		Expect(next.Tick).To(Equal(1))
	})

	It("lets repulsion decay once the pointer leaves", func() {
		s := flock.Step(cfg, spring, state, flock.Input{Pointer: flock.At(300, 0), Dt: cfg.FrameDt})
		for i := 0; i < 40; i++ {
			s = flock.Step(cfg, spring, s, flock.Input{Pointer: flock.Absent, Dt: cfg.FrameDt})
		}
		for _, it := range s.Items {
			Expect(it.Repulsion.Len()).To(BeNumerically("<", 1))
		}
		Expect(s.Items[3].Repulsion.X).To(BeNumerically("~", 25*math.Pow(0.92, 41), 1e-9))
	})

	It("keeps repulsion topped up while the pointer stays", func() {
		s := state
		for i := 0; i < 100; i++ {
			s = flock.Step(cfg, spring, s, flock.Input{Pointer: flock.At(300, 0), Dt: cfg.FrameDt})
		}
		Expect(s.Items[3].Repulsion.X).To(BeNumerically("~", 23, 1e-9))
		target := s.Items[3].Ambient.At(0).X + 23
		Expect(s.Items[3].Offset.X).To(BeNumerically("~", target, 0.1))
	})

	DescribeTable("settles on the ambient target",
		func(integrator string) {
			sc := cfg.Spring
			sc.Integrator = integrator
			sp := mustSpring(sc)

			s := state
			for i := 0; i < 600; i++ {
				s = flock.Step(cfg, sp, s, flock.Input{Pointer: flock.Absent, Elapsed: 2, Dt: cfg.FrameDt})
			}
			for _, it := range s.Items {
				want := it.Ambient.At(2)
				Expect(it.Offset.Dist(want)).To(BeNumerically("<", 1e-3))
				Expect(it.Velocity.Len()).To(BeNumerically("<", 1e-3))
			}
		},
		Entry("harmonica", "harmonica"),
		Entry("euler", "euler"),
		Entry("rk4", "rk4"),
		Entry("verlet", "verlet"),
		Entry("leapfrog", "leapfrog"),
	)

	It("stays close to the ambient path while time runs", func() {
		s := state
		for i := 1; i <= 600; i++ {
			t := float64(i) * cfg.FrameDt
			s = flock.Step(cfg, spring, s, flock.Input{Pointer: flock.Absent, Elapsed: t, Dt: cfg.FrameDt})
		}
		for _, it := range s.Items {
			Expect(it.Offset.Dist(it.Ambient.At(s.Elapsed))).To(BeNumerically("<", 2))
		}
	})

	It("flattens into four values per item", func() {
		snap := state.Snapshot()
		Expect(snap).To(HaveLen(8 * flock.SnapshotStride))
	})
})

var _ = Describe("Config", func() {
	It("accepts the defaults", func() {
		Expect(flock.DefaultConfig().Validate()).To(Succeed())
	})

	It("rejects a damping factor of one", func() {
		cfg := flock.DefaultConfig()
		cfg.DampingFactor = 1
		Expect(cfg.Validate()).To(MatchError(dynamo.ErrParameterBounds))
	})

	It("rejects unknown spring integrators", func() {
		_, err := flock.NewSpring(flock.SpringConfig{Damping: 20, Stiffness: 150, Mass: 1, Integrator: "midpoint"})
		Expect(err).To(MatchError(dynamo.ErrUnknownIntegrator))
	})
})
