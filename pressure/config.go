package pressure

import "dfsph/vector"

// Config holds the pressure solver's tunables: a plain struct plus a
// constructor returning documented defaults.
type Config struct {
	// MinPressureIter is the lower bound on constant-density iterations.
	MinPressureIter int
	// MaxPressureIter is the hard cap on constant-density iterations.
	MaxPressureIter int
	// MaxDensityError is the fractional density error tolerance (already
	// unitless, e.g. 0.05 for 5%).
	MaxDensityError float64

	// MinDivergenceIter is the lower bound on divergence iterations.
	MinDivergenceIter int
	// MaxDivergenceIter is the hard cap on divergence iterations.
	MaxDivergenceIter int
	// MaxDivergenceError is a PERCENT error tolerance (converted to a
	// fraction internally via a 0.01 factor in divergenceSolve).
	MaxDivergenceError float64

	// NMinDivergence is the minimum neighbor count (fluid + boundary) a
	// particle needs before it participates in the divergence solve.
	NMinDivergence int
}

// DefaultConfig returns reasonable defaults, with NMinDivergence chosen
// from vector.DIM: a 2D simulation needs far fewer neighbors to trust
// the divergence estimate than a 3D one.
func DefaultConfig() Config {
	nMin := 20
	if vector.DIM == 2 {
		nMin = 6
	}
	return Config{
		MinPressureIter:    1,
		MaxPressureIter:    50,
		MaxDensityError:    0.05,
		MinDivergenceIter:  1,
		MaxDivergenceIter:  50,
		MaxDivergenceError: 0.1,
		NMinDivergence:     nMin,
	}
}
