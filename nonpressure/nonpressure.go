// Package nonpressure implements the uniform non-pressure force hook
// registered fluid contributors use to add accelerations before the
// pressure solve runs. Gravity is handled directly by the solver's step
// orchestrator and is not a contributor here; XSPHViscosity is a
// reference contributor implementing the classic XSPH relative-velocity
// smoothing term against precomputed contact gradients/weights.
package nonpressure

import (
	"dfsph/contacts"
	"dfsph/object"
	"dfsph/vector"
)

// XSPHViscosity applies the classic SPH viscosity term: each particle's
// acceleration gains a contribution proportional to its neighbors'
// relative velocity, scaled by the kernel weight and a viscosity
// coefficient Nu.
type XSPHViscosity struct {
	Nu float64
}

// Apply implements object.NonPressureForce. It only needs fluid-fluid
// contacts and each neighbor's velocity; fluidBoundaryContacts,
// boundaries, and densities are accepted to satisfy the uniform
// contributor signature but unused by this particular force.
func (v XSPHViscosity) Apply(fluid *object.Fluid, fluidFluidContacts, fluidBoundaryContacts *contacts.List, boundaries []*object.Boundary, densities []float64, dt float64) {
	_ = fluidBoundaryContacts
	_ = boundaries
	_ = densities
	_ = dt // this force does not scale with dt; it is folded into acceleration and integrated like any other force.

	n := fluid.NumParticles()
	for i := 0; i < n; i++ {
		vi := fluid.Velocities[i]
		densityI := fluid.Density0

		acc := vector.Zero()
		for _, c := range fluidFluidContacts.Read(i) {
			vj := velocityOf(fluid, c.JModel, c.J)
			dv := vj.Sub(vi)
			coeff := v.Nu * c.Weight / densityI
			for k := range acc {
				acc[k] += dv[k] * coeff
			}
		}
		fluid.Accelerations[i].AddInPlace(acc)
	}
}

// velocityOf resolves a contact's neighbor velocity. All fluid-fluid
// contacts in this single-fluid-aware contributor are assumed to
// reference the same fluid model the contributor was attached to;
// jModel is accepted for symmetry with multi-fluid contact data but a
// viscosity contributor is registered per fluid.
func velocityOf(fluid *object.Fluid, jModel, j int) vector.Vector {
	_ = jModel
	return fluid.Velocities[j]
}
