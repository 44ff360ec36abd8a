package pressure

import (
	"dfsph/contacts"
	"dfsph/object"
)

// computeDivergences computes per-particle velocity divergence (clamped
// to non-negative). Particles below the neighbor-count floor get a
// divergence of zero and count as zero in the per-fluid average (the
// mean is still taken over every particle). Boundary velocity is
// treated as zero here, unlike the predicted-density formula's
// relative-velocity term — an intentional asymmetry between the two
// solves (see SPEC_FULL.md).
// Returns the step error: the max over fluids of the per-fluid mean
// divergence/ρ0 error.
func (s *Solver) computeDivergences(cm *contacts.Manager, fluids []*object.Fluid, boundaries []*object.Boundary) float64 {
	stepErr := 0.0
	for a, fluid := range fluids {
		divergences := s.buffers[a].Divergence
		dv := s.buffers[a].DV
		n := fluid.NumParticles()

		perParticleErr := make([]float64, n)
		parallelFor(n, func(i int) {
			ffContacts := cm.FluidFluid[a].Read(i)
			fbContacts := cm.FluidBoundary[a].Read(i)
			if len(ffContacts)+len(fbContacts) < s.Config.NMinDivergence {
				divergences[i] = 0
				perParticleErr[i] = 0
				return
			}

			vi := fluid.Velocities[i]
			dvi := dv[i]

			delta := 0.0
			for _, c := range ffContacts {
				vj := fluids[c.JModel].Velocities[c.J]
				dvj := s.buffers[c.JModel].DV[c.J]
				rel := vi.Clone()
				rel.AddInPlace(dvi)
				rel = rel.Sub(vj)
				rel = rel.Sub(dvj)
				delta += fluids[c.JModel].ParticleMass(c.J) * rel.Dot(c.Gradient)
			}
			for _, c := range fbContacts {
				rel := vi.Clone()
				rel.AddInPlace(dvi)
				delta += boundaries[c.JModel].Volumes[c.J] * fluid.Density0 * rel.Dot(c.Gradient)
			}

			d := delta
			if d < 0 {
				d = 0
			}
			divergences[i] = d
			perParticleErr[i] = d / fluid.Density0
		})

		sum := 0.0
		for _, e := range perParticleErr {
			sum += e
		}
		fluidErr := 0.0
		if n > 0 {
			fluidErr = sum / float64(n)
		}
		if fluidErr > stepErr {
			stepErr = fluidErr
		}
	}
	return stepErr
}

// computeVelocityChangesForDivergence is the Jacobi velocity-correction
// update driven by the divergence buffer. Unlike the constant-density
// update this one is not divided by dt — the solve works directly in
// velocity-time-derivative units.
func (s *Solver) computeVelocityChangesForDivergence(cm *contacts.Manager, dt float64, fluids []*object.Fluid, boundaries []*object.Boundary) {
	for a, fluid := range fluids {
		dv := s.buffers[a].DV
		alphas := s.buffers[a].Alpha
		divergences := s.buffers[a].Divergence

		parallelFor(fluid.NumParticles(), func(i int) {
			ki := divergences[i] * alphas[i]

			for _, c := range cm.FluidFluid[a].Read(i) {
				kj := s.buffers[c.JModel].Divergence[c.J] * s.buffers[c.JModel].Alpha[c.J]
				coeff := -(ki + kj) * fluids[c.JModel].ParticleMass(c.J)
				g := c.Gradient.Clone()
				g.ScaleInPlace(coeff)
				dv[i].AddInPlace(g)
			}

			for _, c := range cm.FluidBoundary[a].Read(i) {
				boundary := boundaries[c.JModel]
				coeff := -ki * boundaries[c.JModel].Volumes[c.J] * fluid.Density0
				delta := c.Gradient.Clone()
				delta.ScaleInPlace(coeff)
				dv[i].AddInPlace(delta)

				reaction := delta.Clone()
				reaction.ScaleInPlace(-fluid.ParticleMass(i) / dt)
				boundary.ApplyForce(c.J, reaction)
			}
		})
	}
}

// divergenceSolve runs the bounded divergence-free Jacobi relaxation
// loop, alternating divergence evaluation with velocity correction
// until the divergence error falls below tolerance (after the minimum
// iteration count) or the iteration cap is reached.
func (s *Solver) divergenceSolve(cm *contacts.Manager, dt float64, fluids []*object.Fluid, boundaries []*object.Boundary) {
	tol := s.Config.MaxDivergenceError * (1.0 / dt) * 0.01
	for iter := 0; iter < s.Config.MaxDivergenceIter; iter++ {
		err := s.computeDivergences(cm, fluids, boundaries)
		if err <= tol && iter >= s.Config.MinDivergenceIter {
			return
		}
		s.computeVelocityChangesForDivergence(cm, dt, fluids, boundaries)
	}
}
