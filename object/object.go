// Package object holds the external, per-particle state the pressure
// solver borrows each step: fluids and boundaries. Both are struct-of-
// arrays so a solver buffer's i-th slot always lines up with the i-th
// particle of the corresponding Fluid or Boundary (see pressure.Solver's
// buffer-lifecycle invariants).
package object

import (
	"math"
	"sync/atomic"

	"dfsph/contacts"
	"dfsph/vector"
)

// NonPressureForce is the uniform hook non-pressure force contributors
// (viscosity, surface tension, ...) implement. Gravity is not one of
// these — it is injected directly by the solver's step orchestrator.
type NonPressureForce interface {
	// Apply mutates fluid's accelerations in place. It receives both of
	// the fluid's contact families (fluid-fluid and fluid-boundary), the
	// boundary models those contacts reference, the fluid's current
	// per-particle density estimate (indexed the same as fluid's own
	// slices), and dt, so a contributor that needs boundary geometry or
	// a density-scaled coefficient has everything it needs without the
	// solver growing a bespoke hook per force.
	Apply(fluid *Fluid, fluidFluidContacts, fluidBoundaryContacts *contacts.List, boundaries []*Boundary, densities []float64, dt float64)
}

// Fluid is one phase of fluid particles: positions, velocities,
// acceleration accumulators, a shared rest density, a mass model, a
// deletion mask, and the non-pressure force contributors that act on it.
type Fluid struct {
	Positions     []vector.Vector
	Velocities    []vector.Vector
	Accelerations []vector.Vector

	// Density0 is the rest density shared by every particle of this fluid.
	Density0 float64

	// Masses holds per-particle mass. When UniformMass is true every
	// particle shares Masses[0] and ParticleMass ignores the index,
	// matching the spec's "may be uniform or per-particle" mass model.
	Masses      []float64
	UniformMass bool

	// Deleted marks particles logically removed between steps. The
	// solver's next InitWithFluids call compacts this Fluid's own
	// per-particle slices against the mask, resets it, and sizes its
	// buffers to the surviving particles.
	Deleted []bool

	NonPressureForces []NonPressureForce
}

// NumParticles returns the number of particles currently live in the
// fluid (len(Positions), not adjusted for Deleted — deletion only takes
// effect once the slices have been compacted, e.g. by the pressure
// solver's InitWithFluids).
func (f *Fluid) NumParticles() int {
	return len(f.Positions)
}

// ParticleMass returns the mass of particle i, honoring the uniform-mass
// shortcut.
func (f *Fluid) ParticleMass(i int) float64 {
	if f.UniformMass {
		return f.Masses[0]
	}
	return f.Masses[i]
}

// NumDeletedParticles counts how many entries of Deleted are set.
func (f *Fluid) NumDeletedParticles() int {
	n := 0
	for _, d := range f.Deleted {
		if d {
			n++
		}
	}
	return n
}

// Boundary is a set of static or externally driven boundary particles:
// positions, velocities, the kernel-sum volume the solver computes each
// step, and a thread-safe force sink fluid particles deposit into.
type Boundary struct {
	Positions  []vector.Vector
	Velocities []vector.Vector
	Volumes    []float64

	forceBits [][]uint64 // per-particle, per-component atomic float64 bit patterns
}

// NewBoundary allocates a Boundary with n particles, all fields zeroed.
func NewBoundary(n int) *Boundary {
	fb := make([][]uint64, n)
	for i := range fb {
		fb[i] = make([]uint64, vector.DIM)
	}
	return &Boundary{
		Positions:  make([]vector.Vector, n),
		Velocities: make([]vector.Vector, n),
		Volumes:    make([]float64, n),
		forceBits:  fb,
	}
}

// NumParticles returns the number of boundary particles.
func (b *Boundary) NumParticles() int {
	return len(b.Positions)
}

// ApplyForce atomically adds f to the accumulated force on boundary
// particle j. It is the only cross-fluid write target and the only
// source of real contention during the pressure and divergence solves,
// so every component is added with its own compare-and-swap retry loop
// (Go has no atomic.AddFloat64).
func (b *Boundary) ApplyForce(j int, f vector.Vector) {
	bits := b.forceBits[j]
	for c := 0; c < vector.DIM; c++ {
		atomicAddFloat64(&bits[c], f[c])
	}
}

// AccumulatedForce returns the force accumulated on boundary particle j
// since the last ResetForces call.
func (b *Boundary) AccumulatedForce(j int) vector.Vector {
	out := vector.Zero()
	for c := 0; c < vector.DIM; c++ {
		out[c] = math.Float64frombits(atomic.LoadUint64(&b.forceBits[j][c]))
	}
	return out
}

// ResetForces zeroes every particle's accumulated force. Callers invoke
// this once per step before the solves begin depositing new forces.
func (b *Boundary) ResetForces() {
	for j := range b.forceBits {
		for c := 0; c < vector.DIM; c++ {
			atomic.StoreUint64(&b.forceBits[j][c], 0)
		}
	}
}

func atomicAddFloat64(val *uint64, delta float64) {
	for {
		old := atomic.LoadUint64(val)
		newBits := math.Float64bits(math.Float64frombits(old) + delta)
		if atomic.CompareAndSwapUint64(val, old, newBits) {
			return
		}
	}
}
