package pressure

import (
	"dfsph/contacts"
	"dfsph/object"
	"dfsph/vector"
)

// ComputeAlphas computes the DFSPH stiffness factor for every fluid
// particle, fused with the 1/ρᵢ every later consumer would otherwise
// apply separately. The denominator is the classic DFSPH Gram term: the
// sum of squared neighbor gradients plus the squared sum of neighbor
// gradients.
func (s *Solver) ComputeAlphas(cm *contacts.Manager, fluids []*object.Fluid, boundaries []*object.Boundary) {
	for a, fluid := range fluids {
		alphas := s.buffers[a].Alpha
		parallelFor(fluid.NumParticles(), func(i int) {
			sumGradSq := 0.0
			sumGrad := vector.Zero()

			for _, c := range cm.FluidFluid[a].Read(i) {
				g := c.Gradient.Clone()
				g.ScaleInPlace(fluids[c.JModel].ParticleMass(c.J))
				sumGradSq += g.NormSq()
				sumGrad.AddInPlace(g)
			}
			for _, c := range cm.FluidBoundary[a].Read(i) {
				g := c.Gradient.Clone()
				g.ScaleInPlace(boundaries[c.JModel].Volumes[c.J] * fluid.Density0)
				sumGradSq += g.NormSq()
				sumGrad.AddInPlace(g)
			}

			d := sumGradSq + sumGrad.NormSq()
			if d <= 1e-6 {
				alphas[i] = 0
				return
			}
			alphas[i] = 1.0 / d
		})
	}
}
