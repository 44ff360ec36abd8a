package pressure

import (
	"dfsph/contacts"
	"dfsph/object"
)

// computePredictedDensities extrapolates each particle's density forward
// by dt using its current velocity plus the in-flight pressure
// velocity-correction dv, against both fluid and boundary neighbors.
// Boundary velocity is included here, unlike the divergence formula's
// relative-velocity term — an intentional asymmetry between the two
// solves (see SPEC_FULL.md).
// Returns the step error: max over fluids of the per-fluid mean
// max(0, predicted/ρ0 - 1).
func (s *Solver) computePredictedDensities(cm *contacts.Manager, dt float64, fluids []*object.Fluid, boundaries []*object.Boundary) float64 {
	stepErr := 0.0
	for a, fluid := range fluids {
		predicted := s.buffers[a].PredictedDensity
		densities := s.buffers[a].Density
		dv := s.buffers[a].DV
		n := fluid.NumParticles()

		perParticleErr := make([]float64, n)
		parallelFor(n, func(i int) {
			ffContacts := cm.FluidFluid[a].Read(i)
			fbContacts := cm.FluidBoundary[a].Read(i)
			if len(ffContacts) == 0 && len(fbContacts) == 0 {
				// Mirrors computeFluidDensities's isolated-particle
				// exception: no neighbors means no pressure contribution
				// and nothing to extrapolate.
				predicted[i] = densities[i]
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
				boundary := boundaries[c.JModel]
				rel := vi.Clone()
				rel.AddInPlace(dvi)
				rel = rel.Sub(boundary.Velocities[c.J])
				delta += boundaries[c.JModel].Volumes[c.J] * fluid.Density0 * rel.Dot(c.Gradient)
			}

			pd := densities[i] + dt*delta
			if pd <= 0 {
				panic("pressure: predicted density is non-positive")
			}
			predicted[i] = pd

			err := pd/fluid.Density0 - 1
			if err < 0 {
				err = 0
			}
			perParticleErr[i] = err
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

// computeVelocityChanges is the Jacobi velocity-correction update driven
// by the predicted-density buffer, scaled by 1/dt (unlike the
// divergence-solve's undivided update).
func (s *Solver) computeVelocityChanges(cm *contacts.Manager, dt float64, fluids []*object.Fluid, boundaries []*object.Boundary) {
	invDt := 1.0 / dt
	for a, fluid := range fluids {
		dv := s.buffers[a].DV
		alphas := s.buffers[a].Alpha
		predicted := s.buffers[a].PredictedDensity

		parallelFor(fluid.NumParticles(), func(i int) {
			ki := (predicted[i] - fluid.Density0) * alphas[i]

			for _, c := range cm.FluidFluid[a].Read(i) {
				neighborFluid := fluids[c.JModel]
				kj := (s.buffers[c.JModel].PredictedDensity[c.J] - neighborFluid.Density0) * s.buffers[c.JModel].Alpha[c.J]
				kijPlus := 0.0
				if ki > 0 {
					kijPlus += ki
				}
				if kj > 0 {
					kijPlus += kj
				}
				if kijPlus <= 0 {
					continue
				}
				coeff := -kijPlus * neighborFluid.ParticleMass(c.J) * invDt
				g := c.Gradient.Clone()
				g.ScaleInPlace(coeff)
				dv[i].AddInPlace(g)
			}

			if ki <= 0 {
				return
			}
			for _, c := range cm.FluidBoundary[a].Read(i) {
				boundary := boundaries[c.JModel]
				// δ = ∇W · (kᵢ·volume·ρ0[a]/dt); dv -= δ, force = δ·mᵢ/dt
				// (force uses δ un-negated, unlike the dv update).
				coeff := ki * boundaries[c.JModel].Volumes[c.J] * fluid.Density0 * invDt
				delta := c.Gradient.Clone()
				delta.ScaleInPlace(coeff)

				neg := delta.Clone()
				neg.ScaleInPlace(-1)
				dv[i].AddInPlace(neg)

				reaction := delta.Clone()
				reaction.ScaleInPlace(fluid.ParticleMass(i) * invDt)
				boundary.ApplyForce(c.J, reaction)
			}
		})
	}
}

// pressureSolve runs the bounded constant-density Jacobi relaxation
// loop, alternating predicted-density evaluation with velocity
// correction until the density error falls below tolerance (after the
// minimum iteration count) or the iteration cap is reached.
func (s *Solver) pressureSolve(cm *contacts.Manager, dt float64, fluids []*object.Fluid, boundaries []*object.Boundary) {
	for iter := 0; iter < s.Config.MaxPressureIter; iter++ {
		err := s.computePredictedDensities(cm, dt, fluids, boundaries)
		if err <= s.Config.MaxDensityError && iter >= s.Config.MinPressureIter {
			return
		}
		s.computeVelocityChanges(cm, dt, fluids, boundaries)
	}
}
