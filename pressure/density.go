package pressure

import (
	"dfsph/contacts"
	"dfsph/object"
)

// ComputeDensities fills in boundary volumes and fluid densities from
// the current contact lists. Boundary volumes only need recomputing
// when boundary geometry changes, but recomputing them every step is
// correct and keeps both passes together.
func (s *Solver) ComputeDensities(cm *contacts.Manager, fluids []*object.Fluid, boundaries []*object.Boundary) {
	s.computeBoundaryVolumes(cm, boundaries)
	s.computeFluidDensities(cm, fluids, boundaries)
}

// computeBoundaryVolumes sets each boundary particle's volume to the
// inverse of the kernel-weighted sum over its boundary-boundary
// contacts (including itself, per spatial.collectBoundaryBoundary). A
// zero denominator is an invariant violation: a boundary particle must
// at least "see" itself or a neighbor.
func (s *Solver) computeBoundaryVolumes(cm *contacts.Manager, boundaries []*object.Boundary) {
	for beta, boundary := range boundaries {
		parallelFor(boundary.NumParticles(), func(j int) {
			var kernelSum float64
			for _, c := range cm.BoundaryBoundary[beta].Read(j) {
				kernelSum += c.Weight
			}
			if kernelSum <= 0 {
				panic("pressure: boundary particle kernel-sum is zero, volume undefined")
			}
			boundary.Volumes[j] = 1.0 / kernelSum
		})
	}
}

// computeFluidDensities sets each fluid particle's density to the
// mass-weighted kernel sum over fluid-fluid neighbors plus the boundary
// contribution (boundary particle volume times the owning fluid's rest
// density, the standard Akinci boundary-handling convention). Density
// must come out strictly positive whenever the particle has at least
// one neighbor; a non-positive result in that case means the contact
// graph handed the solver overlapping or otherwise malformed neighbors,
// an upstream invariant violation. A particle with no neighbors at all
// is not a violation — it simply has density 0 and, a step later, alpha
// 0, and falls through both solves under gravity alone.
func (s *Solver) computeFluidDensities(cm *contacts.Manager, fluids []*object.Fluid, boundaries []*object.Boundary) {
	for a, fluid := range fluids {
		densities := s.buffers[a].Density
		parallelFor(fluid.NumParticles(), func(i int) {
			ffContacts := cm.FluidFluid[a].Read(i)
			fbContacts := cm.FluidBoundary[a].Read(i)
			if len(ffContacts) == 0 && len(fbContacts) == 0 {
				densities[i] = 0
				return
			}

			var density float64
			for _, c := range ffContacts {
				density += fluids[c.JModel].ParticleMass(c.J) * c.Weight
			}
			for _, c := range fbContacts {
				density += boundaries[c.JModel].Volumes[c.J] * fluid.Density0 * c.Weight
			}
			if density <= 0 {
				panic("pressure: fluid particle density is non-positive")
			}
			densities[i] = density
		})
	}
}
