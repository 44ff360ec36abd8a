package pressure

import (
	"testing"

	"dfsph/object"
	"dfsph/vector"
)

func TestInitWithFluidsCompactsDeletedParticles(t *testing.T) {
	fluid := &object.Fluid{
		Positions: []vector.Vector{
			{0, 0}, {1, 0}, {2, 0}, {3, 0},
		},
		Velocities: []vector.Vector{
			{0, 0}, {1, 1}, {2, 2}, {3, 3},
		},
		Accelerations: []vector.Vector{
			vector.Zero(), vector.Zero(), vector.Zero(), vector.Zero(),
		},
		Density0:    1000,
		Masses:      []float64{1, 2, 3, 4},
		UniformMass: false,
		Deleted:     []bool{false, true, false, true},
	}

	s := NewSolver(DefaultConfig())
	s.InitWithFluids([]*object.Fluid{fluid})

	if got := fluid.NumParticles(); got != 2 {
		t.Fatalf("NumParticles() after compaction = %d, want 2", got)
	}
	if fluid.NumDeletedParticles() != 0 {
		t.Fatalf("NumDeletedParticles() after compaction = %d, want 0", fluid.NumDeletedParticles())
	}

	wantPositions := []vector.Vector{{0, 0}, {2, 0}}
	for i, want := range wantPositions {
		if !vectorsEqual(fluid.Positions[i], want) {
			t.Fatalf("Positions[%d] = %v, want %v", i, fluid.Positions[i], want)
		}
	}

	wantMasses := []float64{1, 3}
	for i, want := range wantMasses {
		if fluid.Masses[i] != want {
			t.Fatalf("Masses[%d] = %v, want %v", i, fluid.Masses[i], want)
		}
	}

	if len(s.buffers) != 1 {
		t.Fatalf("len(s.buffers) = %d, want 1", len(s.buffers))
	}
	if got := len(s.buffers[0].Alpha); got != 2 {
		t.Fatalf("buffer length after compaction = %d, want 2", got)
	}
}

func TestInitWithFluidsNoDeletionsLeavesFluidUntouched(t *testing.T) {
	fluid := &object.Fluid{
		Positions:     []vector.Vector{{0, 0}, {1, 0}},
		Velocities:    []vector.Vector{{0, 0}, {0, 0}},
		Accelerations: []vector.Vector{vector.Zero(), vector.Zero()},
		Density0:      1000,
		Masses:        []float64{1},
		UniformMass:   true,
		Deleted:       []bool{false, false},
	}

	s := NewSolver(DefaultConfig())
	s.InitWithFluids([]*object.Fluid{fluid})

	if got := fluid.NumParticles(); got != 2 {
		t.Fatalf("NumParticles() = %d, want 2 (nothing deleted)", got)
	}
	if got := len(s.buffers[0].Alpha); got != 2 {
		t.Fatalf("buffer length = %d, want 2", got)
	}
}

func TestInitWithFluidsCompactsUniformMassFluid(t *testing.T) {
	fluid := &object.Fluid{
		Positions:     []vector.Vector{{0, 0}, {1, 0}, {2, 0}},
		Velocities:    []vector.Vector{{0, 0}, {0, 0}, {0, 0}},
		Accelerations: []vector.Vector{vector.Zero(), vector.Zero(), vector.Zero()},
		Density0:      1000,
		Masses:        []float64{5},
		UniformMass:   true,
		Deleted:       []bool{true, false, false},
	}

	s := NewSolver(DefaultConfig())
	s.InitWithFluids([]*object.Fluid{fluid})

	if got := fluid.NumParticles(); got != 2 {
		t.Fatalf("NumParticles() = %d, want 2", got)
	}
	if len(fluid.Masses) != 1 || fluid.Masses[0] != 5 {
		t.Fatalf("Masses = %v, want untouched [5] (uniform mass)", fluid.Masses)
	}
	if !vectorsEqual(fluid.Positions[0], vector.Vector{1, 0}) {
		t.Fatalf("Positions[0] = %v, want {1, 0}", fluid.Positions[0])
	}
}

func vectorsEqual(a, b vector.Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
