package cmd

import (
	"dfsph/object"
	"dfsph/vector"
)

// scene bundles everything a run needs to drive pressure.Solver.Step in
// a loop: the fluid/boundary state plus the geometric constants the
// kernel radius and timestep manager are derived from.
type scene struct {
	Name           string
	Fluids         []*object.Fluid
	Boundaries     []*object.Boundary
	ParticleRadius float64
	KernelRadius   float64
	Gravity        vector.Vector
}

// gridPositions lays out a rows*cols grid of 2D points with the given
// spacing, the lower-left corner at origin.
func gridPositions(rows, cols int, spacing float64, origin vector.Vector) []vector.Vector {
	out := make([]vector.Vector, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, vector.Vector{
				origin[0] + float64(c)*spacing,
				origin[1] + float64(r)*spacing,
			})
		}
	}
	return out
}

// newFluidBlock builds a single fluid phase occupying a rows*cols grid,
// at rest (zero velocity/acceleration), with uniform particle mass
// derived from rest density and particle spacing (mass = rho0 *
// spacing^2 in 2D, the standard SPH initial-sampling convention).
func newFluidBlock(rows, cols int, spacing, density0 float64, origin vector.Vector) *object.Fluid {
	positions := gridPositions(rows, cols, spacing, origin)
	n := len(positions)
	mass := density0 * spacing * spacing

	return &object.Fluid{
		Positions:     positions,
		Velocities:    make([]vector.Vector, n),
		Accelerations: make([]vector.Vector, n),
		Density0:      density0,
		Masses:        []float64{mass},
		UniformMass:   true,
		Deleted:       make([]bool, n),
	}
}

// newLayeredBoundary builds a multi-row boundary strip (layers deep, at
// spacing) starting at origin and extending cols particles wide, used
// for floors and walls. Kernel-support requires at least two or three
// rows so a fluid particle resting on the surface sees enough boundary
// mass to sample a correct density.
func newLayeredBoundary(layers, cols int, spacing float64, origin vector.Vector) *object.Boundary {
	positions := gridPositions(layers, cols, spacing, origin)
	b := object.NewBoundary(len(positions))
	b.Positions = positions
	return b
}

// hydrostaticColumn builds a 10x10 fluid grid resting on a floor
// boundary under gravity: a settling scenario that should converge to
// near-zero kinetic energy.
func hydrostaticColumn() scene {
	const (
		rows, cols     = 10, 10
		particleRadius = 0.05
		density0       = 1000.0
	)
	spacing := 2 * particleRadius
	kernelRadius := 4 * particleRadius

	origin := vector.Vector{0, float64(3) * spacing}
	fluid := newFluidBlock(rows, cols, spacing, density0, origin)

	floorOrigin := vector.Vector{-2 * spacing, -2 * spacing}
	floor := newLayeredBoundary(3, cols+4, spacing, floorOrigin)

	return scene{
		Name:           "hydrostatic-column",
		Fluids:         []*object.Fluid{fluid},
		Boundaries:     []*object.Boundary{floor},
		ParticleRadius: particleRadius,
		KernelRadius:   kernelRadius,
		Gravity:        vector.Vector{0, -9.81},
	}
}

// damBreak builds a 20x40 fluid block at one side of a 200x60 basin
// (floor plus two side walls): a more turbulent scenario exercising the
// boundary-handling and divergence-free solve under larger velocities.
func damBreak() scene {
	const (
		blockRows, blockCols = 40, 20
		basinCols            = 200
		basinRows            = 60
		particleRadius       = 0.05
		density0             = 1000.0
	)
	spacing := 2 * particleRadius
	kernelRadius := 4 * particleRadius

	origin := vector.Vector{2 * spacing, 3 * spacing}
	fluid := newFluidBlock(blockRows, blockCols, spacing, density0, origin)

	floorOrigin := vector.Vector{-2 * spacing, -2 * spacing}
	floor := newLayeredBoundary(3, basinCols+4, spacing, floorOrigin)

	leftWallOrigin := vector.Vector{-2 * spacing, 0}
	leftWall := newLayeredBoundary(basinRows, 3, spacing, leftWallOrigin)

	rightWallOrigin := vector.Vector{float64(basinCols) * spacing, 0}
	rightWall := newLayeredBoundary(basinRows, 3, spacing, rightWallOrigin)

	return scene{
		Name:           "dam-break",
		Fluids:         []*object.Fluid{fluid},
		Boundaries:     []*object.Boundary{floor, leftWall, rightWall},
		ParticleRadius: particleRadius,
		KernelRadius:   kernelRadius,
		Gravity:        vector.Vector{0, -9.81},
	}
}

func buildScene(name string) (scene, bool) {
	switch name {
	case "hydrostatic", "hydrostatic-column":
		return hydrostaticColumn(), true
	case "dambreak", "dam-break":
		return damBreak(), true
	default:
		return scene{}, false
	}
}
