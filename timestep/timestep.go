// Package timestep supplies the TimestepManager collaborator the
// pressure solver drives through its external interface. Time-step size
// selection itself is out of scope for the core — this is a reference
// CFL-based implementation so the solver can be exercised end-to-end.
package timestep

import (
	"math"

	"dfsph/object"
)

// Manager tracks the current step size and advances it between steps
// using a CFL condition: dt is capped so that the fastest particle this
// step cannot travel more than CFLFactor particle-radii.
type Manager struct {
	ParticleRadius float64
	CFLFactor      float64
	MinDt          float64
	MaxDt          float64

	dt float64
}

// NewManager builds a Manager seeded at MaxDt, the largest admissible
// step.
func NewManager(particleRadius, cflFactor, minDt, maxDt float64) *Manager {
	return &Manager{
		ParticleRadius: particleRadius,
		CFLFactor:      cflFactor,
		MinDt:          minDt,
		MaxDt:          maxDt,
		dt:             maxDt,
	}
}

// Dt returns the current step size.
func (m *Manager) Dt() float64 {
	return m.dt
}

// InvDt returns 1/Dt(), precomputed for callers that divide by dt in a
// hot loop.
func (m *Manager) InvDt() float64 {
	return 1.0 / m.dt
}

// Advance recomputes Dt from the fastest current particle velocity
// across every fluid, then clamps to [MinDt, MaxDt].
func (m *Manager) Advance(fluids []*object.Fluid) {
	maxSpeedSq := 0.0
	for _, fluid := range fluids {
		for _, v := range fluid.Velocities {
			if s := v.NormSq(); s > maxSpeedSq {
				maxSpeedSq = s
			}
		}
	}

	if maxSpeedSq <= 0 {
		m.dt = m.MaxDt
		return
	}

	maxSpeed := math.Sqrt(maxSpeedSq)
	dt := m.CFLFactor * m.ParticleRadius / maxSpeed
	if dt > m.MaxDt {
		dt = m.MaxDt
	}
	if dt < m.MinDt {
		dt = m.MinDt
	}
	m.dt = dt
}
