package kmeans

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Reducer runs the maximization step: it folds block partials into
// global per-centroid sums and counts.
type Reducer struct {
	numThreads int
}

// NewReducer creates a reducer that processes up to numThreads
// centroids at once.
func NewReducer(numThreads int) *Reducer {
	return &Reducer{numThreads: max(numThreads, 1)}
}

// Reduce overwrites sums and counts with the totals over all partials.
//
// Partials are always added in block order, which keeps the result
// independent of how blocks were spread over workers. Centroids are
// independent, so each one is reduced by its own goroutine.
func (r *Reducer) Reduce(partials []*partial, sums [][]float64, counts []int) {
	var g errgroup.Group
	g.SetLimit(r.numThreads)

	for c := range sums {
		g.Go(func() error {
			sum := sums[c]
			clear(sum)
			count := 0
			for _, p := range partials {
				floats.Add(sum, p.sums[c])
				count += p.counts[c]
			}
			counts[c] = count
			return nil
		})
	}
	_ = g.Wait()
}

// totals returns the changed-assignment count and inertia over partials.
func totals(partials []*partial) (changed int, inertia float64) {
	for _, p := range partials {
		changed += p.changed
		inertia += p.inertia
	}
	return changed, inertia
}
