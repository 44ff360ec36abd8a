// Package spatial is the reference neighbor-search collaborator: a
// uniform grid that buckets fluid and boundary particles by cell and,
// given a kernel, populates a contacts.Manager each step. Building
// neighbor lists is out of scope for the pressure-solver core itself;
// this package is what plays that role for the demo CLI and tests.
package spatial

import (
	"math"
	"strconv"
	"strings"

	"dfsph/contacts"
	"dfsph/kernel"
	"dfsph/object"
	"dfsph/vector"
)

type particleRef struct {
	model int
	index int
}

// grid is a single uniform spatial hash over one category of particles
// (fluids, or boundaries).
type grid struct {
	cellSize float64
	cells    map[string][]particleRef
}

func newGrid(cellSize float64) *grid {
	return &grid{cellSize: cellSize, cells: make(map[string][]particleRef)}
}

func (g *grid) cellKey(pos vector.Vector) string {
	var b strings.Builder
	for c, v := range pos {
		if c > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v / g.cellSize)))
	}
	return b.String()
}

func (g *grid) insert(model, index int, pos vector.Vector) {
	key := g.cellKey(pos)
	g.cells[key] = append(g.cells[key], particleRef{model: model, index: index})
}

// neighborCells enumerates every occupied cell within one cell-radius of
// pos's own cell: a 3x3 block in 2D, 3x3x3 in 3D, generalized to DIM
// dimensions via a recursive offset walk.
func (g *grid) neighborCells(pos vector.Vector) [][]particleRef {
	base := make([]int, len(pos))
	for c, v := range pos {
		base[c] = int(v / g.cellSize)
	}

	var out [][]particleRef
	offset := make([]int, len(pos))
	var walk func(dim int)
	walk = func(dim int) {
		if dim == len(pos) {
			var b strings.Builder
			for c := 0; c < len(pos); c++ {
				if c > 0 {
					b.WriteByte(',')
				}
				b.WriteString(strconv.Itoa(base[c] + offset[c]))
			}
			if refs, ok := g.cells[b.String()]; ok {
				out = append(out, refs)
			}
			return
		}
		for d := -1; d <= 1; d++ {
			offset[dim] = d
			walk(dim + 1)
		}
	}
	walk(0)
	return out
}

// Searcher is the spatial neighbor-search reference collaborator. It
// owns one grid for fluid particles and one for boundary particles,
// both rebuilt from scratch every EvaluateKernels call: a full rebuild
// is simpler and cheap enough relative to the O(n) force evaluation it
// feeds.
type Searcher struct {
	Kernel       kernel.Kernel
	fluidGrid    *grid
	boundaryGrid *grid
}

// NewSearcher builds a Searcher using the given kernel (defaults to
// kernel.Default if nil).
func NewSearcher(k kernel.Kernel) *Searcher {
	if k == nil {
		k = kernel.Default
	}
	return &Searcher{Kernel: k}
}

// EvaluateKernels rebuilds the grids from current particle positions and
// refreshes every contact list in cm.
func (s *Searcher) EvaluateKernels(
	kernelRadius float64,
	cm *contacts.Manager,
	fluids []*object.Fluid,
	boundaries []*object.Boundary,
) {
	s.fluidGrid = newGrid(kernelRadius)
	s.boundaryGrid = newGrid(kernelRadius)

	for a, fluid := range fluids {
		for i, pos := range fluid.Positions {
			s.fluidGrid.insert(a, i, pos)
		}
	}
	for beta, boundary := range boundaries {
		for j, pos := range boundary.Positions {
			s.boundaryGrid.insert(beta, j, pos)
		}
	}

	for a, fluid := range fluids {
		ff := make([][]contacts.Contact, fluid.NumParticles())
		fb := make([][]contacts.Contact, fluid.NumParticles())
		for i, posI := range fluid.Positions {
			ff[i] = s.collect(a, i, posI, fluids, s.fluidGrid, kernelRadius, true)
			fb[i] = s.collectBoundary(a, i, posI, boundaries, kernelRadius)
		}
		cm.FluidFluid[a].Reset(ff)
		cm.FluidBoundary[a].Reset(fb)
	}

	for beta, boundary := range boundaries {
		bb := make([][]contacts.Contact, boundary.NumParticles())
		for j, posJ := range boundary.Positions {
			bb[j] = s.collectBoundaryBoundary(beta, j, posJ, boundaries, kernelRadius)
		}
		cm.BoundaryBoundary[beta].Reset(bb)
	}
}

func (s *Searcher) collect(
	modelA, i int,
	posI vector.Vector,
	fluids []*object.Fluid,
	g *grid,
	radius float64,
	excludeSelf bool,
) []contacts.Contact {
	var out []contacts.Contact
	for _, cell := range g.neighborCells(posI) {
		for _, ref := range cell {
			if excludeSelf && ref.model == modelA && ref.index == i {
				continue
			}
			posJ := fluids[ref.model].Positions[ref.index]
			rij := posI.Sub(posJ)
			r := math.Sqrt(rij.NormSq())
			if r >= radius {
				continue
			}
			out = append(out, contacts.Contact{
				IModel: modelA, I: i,
				JModel: ref.model, J: ref.index,
				Weight:   s.Kernel.Weight(r, radius),
				Gradient: s.Kernel.Gradient(rij, r, radius),
			})
		}
	}
	return out
}

func (s *Searcher) collectBoundary(
	modelA, i int,
	posI vector.Vector,
	boundaries []*object.Boundary,
	radius float64,
) []contacts.Contact {
	var out []contacts.Contact
	for _, cell := range s.boundaryGrid.neighborCells(posI) {
		for _, ref := range cell {
			posJ := boundaries[ref.model].Positions[ref.index]
			rij := posI.Sub(posJ)
			r := math.Sqrt(rij.NormSq())
			if r >= radius {
				continue
			}
			out = append(out, contacts.Contact{
				IModel: modelA, I: i,
				JModel: ref.model, J: ref.index,
				Weight:   s.Kernel.Weight(r, radius),
				Gradient: s.Kernel.Gradient(rij, r, radius),
			})
		}
	}
	return out
}

// collectBoundaryBoundary includes the particle itself: a boundary
// particle's own kernel-sum volume must be computable even when it has
// no other boundary neighbor, and self-distance zero contributes the
// kernel's peak weight like any other sample.
func (s *Searcher) collectBoundaryBoundary(
	modelBeta, j int,
	posJ vector.Vector,
	boundaries []*object.Boundary,
	radius float64,
) []contacts.Contact {
	var out []contacts.Contact
	for _, cell := range s.boundaryGrid.neighborCells(posJ) {
		for _, ref := range cell {
			posC := boundaries[ref.model].Positions[ref.index]
			rij := posJ.Sub(posC)
			r := math.Sqrt(rij.NormSq())
			if r >= radius {
				continue
			}
			out = append(out, contacts.Contact{
				IModel: modelBeta, I: j,
				JModel: ref.model, J: ref.index,
				Weight:   s.Kernel.Weight(r, radius),
				Gradient: s.Kernel.Gradient(rij, r, radius),
			})
		}
	}
	return out
}
