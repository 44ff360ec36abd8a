package pressure

import (
	"math"
	"testing"

	"dfsph/contacts"
	"dfsph/counters"
	"dfsph/kernel"
	"dfsph/object"
	"dfsph/vector"
)

// TestStepIsolatedParticleFallsUnderGravity checks that a single
// particle with no neighbors gets alpha = 0, dv = gravity*dt, and its
// position advances by (v + dv) * dt.
func TestStepIsolatedParticleFallsUnderGravity(t *testing.T) {
	fluid := newFluid(1, 1000, 1)
	fluids := []*object.Fluid{fluid}

	s := NewSolver(DefaultConfig())
	s.InitWithFluids(fluids)
	cm := contacts.NewManager(1, 0)

	dt := 1e-3
	ts := &fixedTimestep{dt: dt}
	c := counters.New()
	gravity := vector.Vector{0, -9.81}

	s.Step(c, stubEvaluator{}, ts, gravity, cm, 0.1, fluids, nil)

	wantDV := gravity.Scale(dt)

	// After one Step, velocity has not yet absorbed this step's dv (the
	// documented one-step commit lag): v is still zero, and the position
	// update used v(=0) + dv(=gravity*dt).
	if !fluid.Velocities[0].IsZero() {
		t.Fatalf("velocity = %v, want zero (dv lag not yet committed)", fluid.Velocities[0])
	}
	wantPos := wantDV.Scale(dt)
	for c := range wantPos {
		if math.Abs(fluid.Positions[0][c]-wantPos[c]) > 1e-12 {
			t.Fatalf("position = %v, want %v", fluid.Positions[0], wantPos)
		}
	}
}

// TestStepRestStateIdempotence checks that a fluid at or below rest
// density (here two unit-mass particles, far below ρ0), with zero
// velocity and zero external force (no gravity), is unchanged by one
// Step to within floating-point tolerance.
func TestStepRestStateIdempotence(t *testing.T) {
	radius := 0.3
	fluid := newFluid(2, 1000, 1)
	fluid.Positions[0] = vector.Vector{-0.1, 0}
	fluid.Positions[1] = vector.Vector{0.1, 0}
	fluids := []*object.Fluid{fluid}

	cm := symmetricTwoParticleContacts(t, fluid, radius)
	evaluator := &preloadedEvaluator{cm: cm}

	s := NewSolver(DefaultConfig())
	s.InitWithFluids(fluids)

	dt := 1e-3
	ts := &fixedTimestep{dt: dt}
	c := counters.New()

	origPos0 := fluid.Positions[0].Clone()
	origPos1 := fluid.Positions[1].Clone()

	s.Step(c, evaluator, ts, vector.Zero(), cm, radius, fluids, nil)

	for comp := range origPos0 {
		if math.Abs(fluid.Positions[0][comp]-origPos0[comp]) > 1e-9 {
			t.Fatalf("particle 0 moved: %v -> %v", origPos0, fluid.Positions[0])
		}
		if math.Abs(fluid.Positions[1][comp]-origPos1[comp]) > 1e-9 {
			t.Fatalf("particle 1 moved: %v -> %v", origPos1, fluid.Positions[1])
		}
	}
	if !fluid.Velocities[0].IsZero() || !fluid.Velocities[1].IsZero() {
		t.Fatalf("velocities not idempotent: %v %v", fluid.Velocities[0], fluid.Velocities[1])
	}
}

// preloadedEvaluator hands back a pre-built contacts.Manager instead of
// doing a real spatial search, so rest-state tests can hold a fixed
// symmetric neighbor graph across the Step call.
type preloadedEvaluator struct {
	cm *contacts.Manager
}

func (p *preloadedEvaluator) EvaluateKernels(float64, *contacts.Manager, []*object.Fluid, []*object.Boundary) {
}

// TestStepBoundaryForceReciprocity checks that the force a fluid
// particle deposits on a boundary particle is reciprocal (equal
// magnitude) to its own dv contribution scaled by m/dt.
func TestStepBoundaryForceReciprocity(t *testing.T) {
	fluid := newFluid(1, 1000, 1)
	fluid.Positions[0] = vector.Zero()
	fluids := []*object.Fluid{fluid}

	boundary := object.NewBoundary(1)
	boundary.Positions[0] = vector.Vector{0.05, 0}
	boundary.Velocities[0] = vector.Zero()
	boundaries := []*object.Boundary{boundary}

	radius := 0.3
	cfg := DefaultConfig()
	s := NewSolver(cfg)
	s.InitWithFluids(fluids)
	s.InitWithBoundaries(boundaries)

	cm := contacts.NewManager(1, 1)
	rij := fluid.Positions[0].Sub(boundary.Positions[0])
	r := math.Sqrt(rij.NormSq())
	k := kernel.Default
	fb := contacts.Contact{IModel: 0, I: 0, JModel: 0, J: 0, Weight: k.Weight(r, radius), Gradient: k.Gradient(rij, r, radius)}
	cm.FluidFluid[0].Reset([][]contacts.Contact{{}})
	cm.FluidBoundary[0].Reset([][]contacts.Contact{{fb}})
	cm.BoundaryBoundary[0].Reset([][]contacts.Contact{{{IModel: 0, I: 0, JModel: 0, J: 0, Weight: k.Weight(0, radius), Gradient: vector.Zero()}}})

	dt := 1e-3
	s.ComputeDensities(cm, fluids, boundaries)
	s.ComputeAlphas(cm, fluids, boundaries)
	s.buffers[0].PredictedDensity[0] = fluid.Density0 * 1.1 // force compression so k_i > 0
	s.computeVelocityChanges(cm, dt, fluids, boundaries)

	dv := s.buffers[0].DV[0]
	force := boundary.AccumulatedForce(0)

	dvMag := math.Sqrt(dv.NormSq())
	forceMag := math.Sqrt(force.NormSq())
	wantForceMag := dvMag * fluid.ParticleMass(0) / dt

	if math.Abs(forceMag-wantForceMag) > 1e-6*math.Max(1, wantForceMag) {
		t.Fatalf("force magnitude = %v, want %v (dv=%v)", forceMag, wantForceMag, dv)
	}
}
