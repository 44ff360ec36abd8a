// Package pressure is the DFSPH pressure-solver core: the coupled
// constant-density and divergence-free Jacobi relaxations that sit
// between a spatial neighbor search and a position/velocity integrator.
// It operates on struct-of-arrays buffers, one buffer set per fluid,
// each buffer's i-th slot lined up with the i-th particle of the
// corresponding object.Fluid.
package pressure

import (
	"dfsph/contacts"
	"dfsph/object"
	"dfsph/vector"
)

// KernelEvaluator is the external neighbor-search collaborator; building
// contact lists and evaluating kernel weights/gradients is out of scope
// for this package. package spatial's Searcher implements it.
type KernelEvaluator interface {
	EvaluateKernels(kernelRadius float64, cm *contacts.Manager, fluids []*object.Fluid, boundaries []*object.Boundary)
}

// TimestepManager is the external adaptive-dt collaborator; package
// timestep's Manager implements it.
type TimestepManager interface {
	Dt() float64
	InvDt() float64
	Advance(fluids []*object.Fluid)
}

// fluidBuffers holds one fluid's per-particle solver state: the values
// that live alongside the fluid's positions/velocities but belong to the
// pressure solver rather than to object.Fluid itself.
type fluidBuffers struct {
	Alpha            []float64
	Density          []float64
	PredictedDensity []float64
	Divergence       []float64
	DV               []vector.Vector
}

// Solver is the DFSPH pressure solver. It owns one fluidBuffers per
// fluid model (indexed the same way as the []*object.Fluid slice passed
// to every operation). Boundary volumes live on object.Boundary itself;
// the solver writes them each ComputeDensities call.
type Solver struct {
	Config Config

	buffers []fluidBuffers
}

// NewSolver returns a Solver configured with cfg.
func NewSolver(cfg Config) *Solver {
	return &Solver{Config: cfg}
}

// InitWithFluids compacts any fluid carrying deleted particles, then
// (re)allocates the per-fluid solver buffers, one set per entry in
// fluids, sized to each fluid's current (post-compaction) particle
// count. It must be called whenever the number of fluid models changes,
// a fluid's particle count changes, or a fluid has particles marked
// Deleted since the last call.
//
// Compaction walks each of the fluid's own per-particle slices
// (Positions, Velocities, Accelerations, and Masses when per-particle)
// once, keeping only the entries whose Deleted flag is false and
// preserving relative order, then clears Deleted to the new length. A
// fluid with no deleted particles is left untouched.
func (s *Solver) InitWithFluids(fluids []*object.Fluid) {
	s.buffers = make([]fluidBuffers, len(fluids))
	for a, fluid := range fluids {
		if fluid.NumDeletedParticles() > 0 {
			compactFluid(fluid)
		}

		n := fluid.NumParticles()
		s.buffers[a] = fluidBuffers{
			Alpha:            make([]float64, n),
			Density:          make([]float64, n),
			PredictedDensity: make([]float64, n),
			Divergence:       make([]float64, n),
			DV:               make([]vector.Vector, n),
		}
		for i := range s.buffers[a].DV {
			s.buffers[a].DV[i] = vector.Zero()
		}
	}
}

// compactFluid discards every particle fluid.Deleted marks true, in
// place, across Positions, Velocities, Accelerations, and Masses (when
// per-particle), preserving the relative order of the survivors, then
// resets Deleted to a clean, all-false mask sized to the survivor count.
func compactFluid(fluid *object.Fluid) {
	keep := fluid.Deleted
	n := len(keep)

	out := 0
	for i := 0; i < n; i++ {
		if keep[i] {
			continue
		}
		if out != i {
			fluid.Positions[out] = fluid.Positions[i]
			fluid.Velocities[out] = fluid.Velocities[i]
			fluid.Accelerations[out] = fluid.Accelerations[i]
			if !fluid.UniformMass {
				fluid.Masses[out] = fluid.Masses[i]
			}
		}
		out++
	}

	fluid.Positions = fluid.Positions[:out]
	fluid.Velocities = fluid.Velocities[:out]
	fluid.Accelerations = fluid.Accelerations[:out]
	if !fluid.UniformMass {
		fluid.Masses = fluid.Masses[:out]
	}
	fluid.Deleted = make([]bool, out)
}

// InitWithBoundaries ensures every boundary's Volumes slice is sized to
// its current particle count, reallocating where it has drifted (e.g.
// after a boundary was resized).
func (s *Solver) InitWithBoundaries(boundaries []*object.Boundary) {
	for _, boundary := range boundaries {
		if len(boundary.Volumes) != boundary.NumParticles() {
			boundary.Volumes = make([]float64, boundary.NumParticles())
		}
	}
}

// EvaluateKernels refreshes every contact list in cm for the fluids' and
// boundaries' current positions by delegating to evaluator. Exposed as
// its own operation, and also invoked as step 1 of Step's own state
// machine.
func (s *Solver) EvaluateKernels(
	evaluator KernelEvaluator,
	kernelRadius float64,
	cm *contacts.Manager,
	fluids []*object.Fluid,
	boundaries []*object.Boundary,
) {
	evaluator.EvaluateKernels(kernelRadius, cm, fluids, boundaries)
}

// DensityOf exposes fluid a's current per-particle density buffer,
// read-only, for callers (e.g. non-pressure force contributors) that
// need each particle's current density estimate.
func (s *Solver) DensityOf(a int) []float64 {
	return s.buffers[a].Density
}
