package pressure

import (
	"dfsph/contacts"
	"dfsph/counters"
	"dfsph/object"
	"dfsph/vector"
)

// Step advances the simulation by one full tick: it refreshes contacts,
// computes densities and alphas, resolves divergence, commits
// velocities, predicts advection, advances the timestep, integrates
// accelerations, resolves constant density, and finally advances
// positions. A single Step call is a complete simulation tick; callers
// never need to invoke the individual phases themselves.
//
// counters times the whole call under PressureResolutionTime and the
// divergence-solve under Custom; both accept Resume/Pause no matter
// what a caller does with the returned durations.
func (s *Solver) Step(
	c *counters.Counters,
	evaluator KernelEvaluator,
	ts TimestepManager,
	gravity vector.Vector,
	cm *contacts.Manager,
	kernelRadius float64,
	fluids []*object.Fluid,
	boundaries []*object.Boundary,
) {
	c.PressureResolutionTime.Resume()
	defer c.PressureResolutionTime.Pause()

	s.EvaluateKernels(evaluator, kernelRadius, cm, fluids, boundaries)
	s.ComputeDensities(cm, fluids, boundaries)
	s.ComputeAlphas(cm, fluids, boundaries)

	dt := ts.Dt()

	c.Custom.Resume()
	s.divergenceSolve(cm, dt, fluids, boundaries)
	c.Custom.Pause()

	s.commitVelocities(fluids)
	s.PredictAdvection(gravity, cm, dt, fluids, boundaries)

	ts.Advance(fluids)
	dt = ts.Dt()

	s.integrateAccelerations(dt, fluids)
	s.pressureSolve(cm, dt, fluids, boundaries)
	s.updatePositions(dt, fluids)
}
