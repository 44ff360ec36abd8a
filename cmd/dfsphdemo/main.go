// Command dfsphdemo is a headless runner that exercises the DFSPH
// pressure-solver core end to end against a couple of reference
// scenarios. The core itself has no CLI, scene loader, or renderer, so
// this command wires package spatial, package kernel, and package
// timestep around package pressure into a runnable simulation loop. No
// non-pressure force contributor is registered; gravity is the only
// external force.
package main

import "dfsph/cmd/dfsphdemo/cmd"

func main() {
	cmd.Execute()
}
