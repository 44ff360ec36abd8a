package pressure

import (
	"dfsph/contacts"
	"dfsph/object"
	"dfsph/vector"
)

// commitVelocities folds the accumulated pressure/divergence velocity
// change into each particle's velocity, then clears the buffer for the
// next phase.
func (s *Solver) commitVelocities(fluids []*object.Fluid) {
	for a, fluid := range fluids {
		dv := s.buffers[a].DV
		for i := range fluid.Velocities {
			fluid.Velocities[i].AddInPlace(dv[i])
			dv[i] = vector.Zero()
		}
	}
}

// PredictAdvection folds gravity directly into each particle's
// acceleration, then runs every registered non-pressure force
// contributor with the fluid's full collaborator set: both of its
// contact families, the boundary models those contacts reference, and
// its current per-particle density estimate.
func (s *Solver) PredictAdvection(gravity vector.Vector, cm *contacts.Manager, dt float64, fluids []*object.Fluid, boundaries []*object.Boundary) {
	for a, fluid := range fluids {
		for i := range fluid.Accelerations {
			fluid.Accelerations[i].AddInPlace(gravity)
		}
		densities := s.buffers[a].Density
		for _, force := range fluid.NonPressureForces {
			force.Apply(fluid, cm.FluidFluid[a], cm.FluidBoundary[a], boundaries, densities, dt)
		}
	}
}

// integrateAccelerations folds acceleration into the velocity-change
// buffer scaled by the just-selected dt, then clears acceleration.
func (s *Solver) integrateAccelerations(dt float64, fluids []*object.Fluid) {
	for a, fluid := range fluids {
		dv := s.buffers[a].DV
		for i := range fluid.Accelerations {
			acc := fluid.Accelerations[i].Clone()
			acc.ScaleInPlace(dt)
			dv[i].AddInPlace(acc)
			fluid.Accelerations[i] = vector.Zero()
		}
	}
}

// updatePositions advances position by (v + dv) · dt. dv is deliberately
// NOT folded into v here; the next step commits it at the start of its
// own velocity-commit phase (see DESIGN.md's discussion of this lag).
func (s *Solver) updatePositions(dt float64, fluids []*object.Fluid) {
	for a, fluid := range fluids {
		dv := s.buffers[a].DV
		for i := range fluid.Positions {
			step := fluid.Velocities[i].Clone()
			step.AddInPlace(dv[i])
			step.ScaleInPlace(dt)
			fluid.Positions[i].AddInPlace(step)
		}
	}
}
