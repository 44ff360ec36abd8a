package pressure

import (
	"math"
	"testing"

	"dfsph/contacts"
	"dfsph/kernel"
	"dfsph/object"
	"dfsph/vector"
)

// symmetricTwoParticleContacts builds a fluid-fluid contacts.Manager for
// a two-particle fluid using the real cubic-spline kernel, so the
// gradient/weight values used by tests are physically consistent rather
// than hand-picked numbers that happen to cancel.
func symmetricTwoParticleContacts(t *testing.T, fluid *object.Fluid, radius float64) *contacts.Manager {
	t.Helper()
	cm := contacts.NewManager(1, 0)

	rij01 := fluid.Positions[0].Sub(fluid.Positions[1])
	k := kernel.Default
	r01 := dist(fluid.Positions[0], fluid.Positions[1])

	c01 := contacts.Contact{
		IModel: 0, I: 0, JModel: 0, J: 1,
		Weight:   k.Weight(r01, radius),
		Gradient: k.Gradient(rij01, r01, radius),
	}
	rij10 := fluid.Positions[1].Sub(fluid.Positions[0])
	c10 := contacts.Contact{
		IModel: 0, I: 1, JModel: 0, J: 0,
		Weight:   k.Weight(r01, radius),
		Gradient: k.Gradient(rij10, r01, radius),
	}

	cm.FluidFluid[0].Reset([][]contacts.Contact{
		{c01},
		{c10},
	})
	cm.FluidBoundary[0].Reset([][]contacts.Contact{{}, {}})
	return cm
}

func dist(a, b vector.Vector) float64 {
	return math.Sqrt(a.Sub(b).NormSq())
}

// stubEvaluator refreshes nothing; tests that exercise Step pre-populate
// the contacts.Manager themselves and only need Step to leave it alone.
type stubEvaluator struct{}

func (stubEvaluator) EvaluateKernels(float64, *contacts.Manager, []*object.Fluid, []*object.Boundary) {
}

// fixedTimestep is a TimestepManager stub that never changes dt,
// isolating tests from timestep.Manager's CFL behavior.
type fixedTimestep struct {
	dt float64
}

func (f *fixedTimestep) Dt() float64    { return f.dt }
func (f *fixedTimestep) InvDt() float64 { return 1.0 / f.dt }
func (f *fixedTimestep) Advance([]*object.Fluid) {
}
