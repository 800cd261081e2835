package domain

import (
	"runtime"
	"sync"

	underway "voyage-tracker/internal/features/underway/domain"
)

// tagParallelThreshold is the slice size below which tagging stays on one
// goroutine. Spawning workers for small inputs costs more than it saves.
const tagParallelThreshold = 4096

// TagAll assigns each observation the tag from Catalog.Detect. Tags are
// positionally aligned with the input; each observation is tagged
// independently of its neighbors. Large inputs are split into chunks
// tagged concurrently, with results written by index so order is
// preserved.
func TagAll(catalog *Catalog, observations []underway.Observation) []string {
	tags := make([]string, len(observations))

	if len(observations) < tagParallelThreshold {
		for i, o := range observations {
			tags[i] = catalog.Detect(o.Lat, o.Lon)
		}
		return tags
	}

	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	chunk := (len(observations) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(observations); start += chunk {
		end := min(start+chunk, len(observations))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				tags[i] = catalog.Detect(observations[i].Lat, observations[i].Lon)
			}
		}(start, end)
	}
	wg.Wait()

	return tags
}
