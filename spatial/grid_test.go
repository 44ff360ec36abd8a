package spatial

import (
	"testing"

	"dfsph/contacts"
	"dfsph/object"
	"dfsph/vector"
)

func TestEvaluateKernelsFindsNearbyFluidNeighbor(t *testing.T) {
	fluid := &object.Fluid{
		Positions:  []vector.Vector{{0, 0}, {0.1, 0}},
		Velocities: []vector.Vector{vector.Zero(), vector.Zero()},
	}
	fluids := []*object.Fluid{fluid}

	s := NewSearcher(nil)
	cm := contacts.NewManager(1, 0)
	radius := 0.3

	s.EvaluateKernels(radius, cm, fluids, nil)

	c0 := cm.FluidFluid[0].Read(0)
	if len(c0) != 1 || c0[0].J != 1 {
		t.Fatalf("particle 0's contacts = %v, want one contact with J=1", c0)
	}
	c1 := cm.FluidFluid[0].Read(1)
	if len(c1) != 1 || c1[0].J != 0 {
		t.Fatalf("particle 1's contacts = %v, want one contact with J=0", c1)
	}
}

func TestEvaluateKernelsExcludesOutOfRangeFluidNeighbor(t *testing.T) {
	fluid := &object.Fluid{
		Positions:  []vector.Vector{{0, 0}, {10, 10}},
		Velocities: []vector.Vector{vector.Zero(), vector.Zero()},
	}
	fluids := []*object.Fluid{fluid}

	s := NewSearcher(nil)
	cm := contacts.NewManager(1, 0)
	s.EvaluateKernels(0.3, cm, fluids, nil)

	if got := cm.FluidFluid[0].Read(0); len(got) != 0 {
		t.Fatalf("far-apart particles should not be neighbors, got %v", got)
	}
}

func TestEvaluateKernelsBoundaryBoundaryIncludesSelf(t *testing.T) {
	boundary := object.NewBoundary(1)
	boundary.Positions[0] = vector.Zero()
	boundaries := []*object.Boundary{boundary}

	s := NewSearcher(nil)
	cm := contacts.NewManager(0, 1)
	s.EvaluateKernels(0.3, cm, nil, boundaries)

	got := cm.BoundaryBoundary[0].Read(0)
	if len(got) != 1 || got[0].J != 0 {
		t.Fatalf("isolated boundary particle's boundary-boundary contacts = %v, want self-contact", got)
	}
}

func TestEvaluateKernelsFluidBoundaryContact(t *testing.T) {
	fluid := &object.Fluid{
		Positions:  []vector.Vector{{0, 0}},
		Velocities: []vector.Vector{vector.Zero()},
	}
	boundary := object.NewBoundary(1)
	boundary.Positions[0] = vector.Vector{0.05, 0}

	s := NewSearcher(nil)
	cm := contacts.NewManager(1, 1)
	s.EvaluateKernels(0.3, cm, []*object.Fluid{fluid}, []*object.Boundary{boundary})

	got := cm.FluidBoundary[0].Read(0)
	if len(got) != 1 || got[0].JModel != 0 || got[0].J != 0 {
		t.Fatalf("fluid-boundary contacts = %v, want one contact to boundary 0 particle 0", got)
	}
}
