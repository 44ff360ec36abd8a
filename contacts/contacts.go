// Package contacts models the read-only neighbor adjacency the pressure
// solver consumes each step: for every particle, its fluid neighbors and
// boundary neighbors, each carrying a kernel weight and gradient.
// Building neighbor lists and evaluating kernel weights/gradients is an
// external-collaborator concern — package contacts only defines the
// shape; package spatial and package kernel populate it.
package contacts

import (
	"sync"

	"dfsph/vector"
)

// Contact is one neighbor relation: particle (IModel, I) sees particle
// (JModel, J) with precomputed kernel weight and gradient (pointing from
// i toward j).
type Contact struct {
	IModel, I int
	JModel, J int
	Weight    float64
	Gradient  vector.Vector
}

// List holds, for a single fluid (or boundary) model, the neighbor
// contacts of every one of its particles. It is read concurrently by
// every solver phase and rebuilt wholesale once per step by
// EvaluateKernels, so a simple RWMutex (rather than per-particle locks)
// matches the actual access pattern: many readers during a phase, one
// writer between phases.
type List struct {
	mu       sync.RWMutex
	byParticle [][]Contact
}

// NewList allocates a List sized for n particles, all with empty contact
// sets.
func NewList(n int) *List {
	return &List{byParticle: make([][]Contact, n)}
}

// Reset replaces the contact set for every particle. Called once per step
// by the kernel-evaluation collaborator; safe to call concurrently with
// Read (but not with another Reset).
func (l *List) Reset(byParticle [][]Contact) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byParticle = byParticle
}

// Read returns the contact snapshot for particle i. The returned slice
// must not be mutated by the caller; it is shared across readers.
func (l *List) Read(i int) []Contact {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.byParticle) {
		return nil
	}
	return l.byParticle[i]
}

// Len reports how many particles this list has contact sets for.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byParticle)
}

// Manager bundles the three contact families the solver needs:
// fluid-fluid and fluid-boundary per fluid model, and boundary-boundary
// per boundary model (used only to derive boundary volumes).
type Manager struct {
	FluidFluid       []*List // indexed by fluid model id
	FluidBoundary    []*List // indexed by fluid model id
	BoundaryBoundary []*List // indexed by boundary model id
}

// NewManager allocates a Manager with nFluids fluid-indexed lists and
// nBoundaries boundary-indexed lists, each initially empty (0 particles);
// EvaluateKernels is responsible for resizing/populating them to match
// current particle counts.
func NewManager(nFluids, nBoundaries int) *Manager {
	m := &Manager{
		FluidFluid:       make([]*List, nFluids),
		FluidBoundary:    make([]*List, nFluids),
		BoundaryBoundary: make([]*List, nBoundaries),
	}
	for i := range m.FluidFluid {
		m.FluidFluid[i] = NewList(0)
		m.FluidBoundary[i] = NewList(0)
	}
	for i := range m.BoundaryBoundary {
		m.BoundaryBoundary[i] = NewList(0)
	}
	return m
}
