package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dfsph/contacts"
	"dfsph/counters"
	"dfsph/kernel"
	"dfsph/object"
	"dfsph/pressure"
	"dfsph/spatial"
	"dfsph/timestep"
	"dfsph/vector"
)

var (
	scenarioName string
	numSteps     int
	initialDt    float64
	maxDt        float64
	cflFactor    float64
	logEvery     int
	serial       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reference scenario through the DFSPH pressure solver.",
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringVar(&scenarioName, "scenario", "hydrostatic", "scenario to run: hydrostatic, dambreak")
	runCmd.Flags().IntVar(&numSteps, "steps", 200, "number of simulation steps")
	runCmd.Flags().Float64Var(&initialDt, "dt", 1e-3, "minimum timestep (the run starts at --max-dt)")
	runCmd.Flags().Float64Var(&maxDt, "max-dt", 1e-3, "maximum timestep (equal to --dt for a fixed step size)")
	runCmd.Flags().Float64Var(&cflFactor, "cfl", 0.4, "CFL factor bounding the adaptive timestep")
	runCmd.Flags().IntVar(&logEvery, "log-every", 20, "log progress every N steps (0 disables progress logging)")
	runCmd.Flags().BoolVar(&serial, "serial", false, "force the serial particle-loop fallback instead of the worker-pool pipeline")
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, ok := buildScene(scenarioName)
	if !ok {
		return fmt.Errorf("unknown scenario %q (want hydrostatic or dambreak)", scenarioName)
	}

	pressure.Parallel = !serial

	solver := pressure.NewSolver(pressure.DefaultConfig())
	solver.InitWithFluids(sc.Fluids)
	solver.InitWithBoundaries(sc.Boundaries)

	searcher := spatial.NewSearcher(kernel.Default)
	ts := timestep.NewManager(sc.ParticleRadius, cflFactor, initialDt, maxDt)
	c := counters.New()
	cm := contacts.NewManager(len(sc.Fluids), len(sc.Boundaries))

	log.WithFields(logrus.Fields{
		"scenario":      sc.Name,
		"fluids":        len(sc.Fluids),
		"boundaries":    len(sc.Boundaries),
		"steps":         numSteps,
		"particles":     totalFluidParticles(sc.Fluids),
		"kernel_radius": sc.KernelRadius,
	}).Info("starting run")

	for step := 0; step < numSteps; step++ {
		for _, b := range sc.Boundaries {
			b.ResetForces()
		}

		solver.Step(c, searcher, ts, sc.Gravity, cm, sc.KernelRadius, sc.Fluids, sc.Boundaries)

		if logEvery > 0 && (step%logEvery == 0 || step == numSteps-1) {
			log.WithFields(logrus.Fields{
				"step":       step,
				"dt":         ts.Dt(),
				"mean_ke":    meanKineticEnergy(sc.Fluids),
				"max_penetr": maxBoundaryPenetration(sc.Fluids, sc.Boundaries, sc.KernelRadius),
			}).Info("step complete")
		}
	}

	log.WithFields(logrus.Fields{
		"scenario":               sc.Name,
		"pressure_resolution_ms": c.PressureResolutionTime.Total().Seconds() * 1000,
		"divergence_solve_ms":    c.Custom.Total().Seconds() * 1000,
		"mean_ke":                meanKineticEnergy(sc.Fluids),
	}).Info("run complete")

	return nil
}

func totalFluidParticles(fluids []*object.Fluid) int {
	n := 0
	for _, f := range fluids {
		n += f.NumParticles()
	}
	return n
}

// meanKineticEnergy reports the mean per-particle kinetic energy across
// every fluid, a diagnostic for settling scenarios: a resting fluid
// column should show mean kinetic energy many orders of magnitude below
// its initial potential energy.
func meanKineticEnergy(fluids []*object.Fluid) float64 {
	total := 0.0
	count := 0
	for _, fluid := range fluids {
		for i, v := range fluid.Velocities {
			total += 0.5 * fluid.ParticleMass(i) * v.NormSq()
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// maxBoundaryPenetration reports the smallest fluid-to-boundary
// separation seen across every fluid/boundary pair, a diagnostic for
// boundary handling: a correctly repelled fluid should never approach a
// boundary much closer than the kernel radius.
func maxBoundaryPenetration(fluids []*object.Fluid, boundaries []*object.Boundary, kernelRadius float64) float64 {
	min := kernelRadius
	for _, fluid := range fluids {
		for _, fp := range fluid.Positions {
			for _, boundary := range boundaries {
				for _, bp := range boundary.Positions {
					d := distance(fp, bp)
					if d < min {
						min = d
					}
				}
			}
		}
	}
	return min
}

func distance(a, b vector.Vector) float64 {
	return math.Sqrt(a.Sub(b).NormSq())
}
