package pressure

import "sync"

// Parallel switches every phase that runs through parallelFor (boundary
// volumes, densities, alphas, and both solves' per-particle passes)
// between a worker-pool fan-out and a plain serial loop; the velocity
// commit, advection, integration and position phases are always serial. Jacobi relaxation
// writes are owned per-particle, so no phase here needs locking across
// goroutines; the switch exists so a caller can fall back to serial
// execution for debugging or deterministic profiling.
var Parallel = true

// parallelFor calls fn(i) once for each i in [0, n), either concurrently
// across a worker pool or, when Parallel is false, in a plain serial
// loop.
func parallelFor(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	if !Parallel || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := 8
	if n < workers {
		workers = n
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
