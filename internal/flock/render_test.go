package flock_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/flock"
	"github.com/san-kum/studiofx/internal/surface"
)

var _ = Describe("Render", func() {
	var (
		rec   *surface.Recorder
		state flock.State
	)

	BeforeEach(func() {
		rec = surface.NewRecorder(1000, 300)
		state = flock.NewState(flock.DefaultConfig(), rand.New(rand.NewSource(1)), row(8, 100))
	})

	It("clears and draws one square per item", func() {
		flock.Render(state, 40, flock.Absent, dynamo.Vec{X: 50, Y: 50}, rec)
		Expect(rec.Count(surface.OpRect)).To(Equal(9))
		Expect(rec.Count(surface.OpCircle)).To(BeZero())
		Expect(rec.Frames()).To(Equal(1))
	})

	It("places squares at origin plus displayed position", func() {
		flock.Render(state, 40, flock.Absent, dynamo.Vec{X: 50, Y: 50}, rec)
		ops := rec.Ops()
		last := ops[len(ops)-1]
		Expect(last.Points[0].X).To(BeNumerically("~", 50+700-20, 1e-9))
		Expect(last.Points[0].Y).To(BeNumerically("~", 50-20, 1e-9))
	})

	It("adds a glow under a present pointer", func() {
		flock.Render(state, 40, flock.At(300, 0), dynamo.Vec{}, rec)
		Expect(rec.Count(surface.OpCircle)).To(Equal(1))
	})
})
