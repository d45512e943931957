package kmeans

import (
	"cmp"
	"slices"

	"github.com/hupe1980/kmeans/distance"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// DefaultBlockSize is the number of consecutive points that share one
// partial aggregate.
const DefaultBlockSize = 1024

// partial is the aggregate one block of points contributes to the
// update step. Each partial is written by exactly one worker.
type partial struct {
	sums    [][]float64
	counts  []int
	changed int
	inertia float64
}

func newPartials(blocks, k, dim int) []*partial {
	out := make([]*partial, blocks)
	for b := range out {
		p := &partial{
			sums:   make([][]float64, k),
			counts: make([]int, k),
		}
		backing := make([]float64, k*dim)
		for c := range p.sums {
			p.sums[c] = backing[c*dim : (c+1)*dim]
		}
		out[b] = p
	}
	return out
}

func (p *partial) reset() {
	for c := range p.sums {
		clear(p.sums[c])
	}
	clear(p.counts)
	p.changed = 0
	p.inertia = 0
}

// Assigner runs the expectation step across a fixed number of workers.
type Assigner struct {
	compare    distance.Func
	numThreads int
	blockSize  int
}

// NewAssigner creates an assigner that ranks centroids with compare.
func NewAssigner(compare distance.Func, numThreads, blockSize int) *Assigner {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Assigner{
		compare:    compare,
		numThreads: max(numThreads, 1),
		blockSize:  blockSize,
	}
}

func (a *Assigner) numBlocks(n int) int {
	return (n + a.blockSize - 1) / a.blockSize
}

// Assign writes the nearest centroid of every point into assignments.
//
// Blocks are split into contiguous shards, one per worker, and Assign
// returns once every shard is done. If partials is non-nil it must hold
// numBlocks(len(points)) entries; block b then receives the sums, counts,
// changed-assignment count and inertia of its points.
func (a *Assigner) Assign(points, centroids [][]float64, assignments []int, partials []*partial) {
	blocks := a.numBlocks(len(points))
	workers := min(a.numThreads, blocks)

	var g errgroup.Group
	for w := range workers {
		first, last := w*blocks/workers, (w+1)*blocks/workers
		g.Go(func() error {
			for b := first; b < last; b++ {
				start := b * a.blockSize
				end := min(start+a.blockSize, len(points))
				if partials == nil {
					a.assignBlock(points, centroids, assignments, start, end)
					continue
				}
				a.accumulateBlock(points, centroids, assignments, start, end, partials[b])
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (a *Assigner) assignBlock(points, centroids [][]float64, assignments []int, start, end int) {
	for i := start; i < end; i++ {
		assignments[i], _ = Nearest(points[i], centroids, a.compare)
	}
}

func (a *Assigner) accumulateBlock(points, centroids [][]float64, assignments []int, start, end int, p *partial) {
	p.reset()
	for i := start; i < end; i++ {
		best, d := Nearest(points[i], centroids, a.compare)
		if assignments[i] != best {
			assignments[i] = best
			p.changed++
		}
		floats.Add(p.sums[best], points[i])
		p.counts[best]++
		p.inertia += d
	}
}

// Nearest returns the index of the centroid closest to vec and its
// comparator value. Ties go to the lowest index.
func Nearest(vec []float64, centroids [][]float64, compare distance.Func) (int, float64) {
	best := 0
	minDist := compare(vec, centroids[0])
	for j := 1; j < len(centroids); j++ {
		if d := compare(vec, centroids[j]); d < minDist {
			minDist = d
			best = j
		}
	}
	return best, minDist
}

type centroidDist struct {
	id   int
	dist float64
}

// NearestN returns the indices of the n closest centroids to vec,
// closest first. Equal distances keep index order.
func NearestN(vec []float64, centroids [][]float64, n int, compare distance.Func) []int {
	n = min(n, len(centroids))
	if n <= 0 {
		return nil
	}

	dists := make([]centroidDist, len(centroids))
	for i, c := range centroids {
		dists[i] = centroidDist{id: i, dist: compare(vec, c)}
	}
	slices.SortStableFunc(dists, func(x, y centroidDist) int {
		return cmp.Compare(x.dist, y.dist)
	})

	result := make([]int, n)
	for i := range n {
		result[i] = dists[i].id
	}
	return result
}
