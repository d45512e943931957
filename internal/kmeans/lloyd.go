package kmeans

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/kmeans/distance"
)

// State is the state of the convergence controller.
type State int

const (
	StateRunning State = iota
	StateConverged
	StateMaxIterations
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateConverged:
		return "Converged"
	case StateMaxIterations:
		return "MaxIterations"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// IterationStats describes one assignment/update round.
type IterationStats struct {
	Iteration     int // 1-based round number
	Changed       int // points whose centroid changed in this round
	EmptyClusters int // centroids that kept their position for lack of points
	Inertia       float64
	Duration      time.Duration
}

// Config configures a training run.
type Config struct {
	K             int
	MaxIterations int
	NumThreads    int
	Metric        distance.Metric
	Seed          int64
	Init          Initialization

	// OnIteration, if set, is called after every round from the
	// training goroutine.
	OnIteration func(IterationStats)

	// BlockSize overrides DefaultBlockSize. Zero means default.
	BlockSize int
}

// Validate checks cfg against the given points. It never starts a worker.
func (cfg Config) Validate(points [][]float64) error {
	if len(points) == 0 {
		return ErrEmptyDataset
	}
	if cfg.K < 1 || cfg.K > len(points) {
		return fmt.Errorf("%w: k=%d with %d points", ErrInvalidK, cfg.K, len(points))
	}
	if cfg.MaxIterations < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxIterations, cfg.MaxIterations)
	}
	if cfg.NumThreads < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidNumThreads, cfg.NumThreads)
	}
	if cfg.Init != InitRandom && cfg.Init != InitPlusPlus {
		return fmt.Errorf("%w: %v", ErrInvalidInitialization, cfg.Init)
	}
	dim := len(points[0])
	if dim == 0 {
		return ErrInvalidDimension
	}
	for _, p := range points[1:] {
		if len(p) != dim {
			return &distance.ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
	}
	return nil
}

// Result is the outcome of a training run.
type Result struct {
	Centroids  [][]float64
	Iterations int // completed update rounds
	State      State
}

// controller drives the run: Running until either no point changes
// cluster (Converged) or MaxIterations updates have been applied.
type controller struct {
	maxIterations int
	iteration     int
	state         State
}

func (c *controller) observeAssignment(changed int) {
	if c.iteration > 0 && changed == 0 {
		c.state = StateConverged
	}
}

func (c *controller) observeUpdate() {
	c.iteration++
	if c.iteration >= c.maxIterations {
		c.state = StateMaxIterations
	}
}

// Train runs Lloyd's algorithm over points.
//
// The context is checked between rounds; a cancelled run returns the
// context error and no result.
func Train(ctx context.Context, points [][]float64, cfg Config) (*Result, error) {
	if err := cfg.Validate(points); err != nil {
		return nil, err
	}
	compare, err := distance.Comparator(cfg.Metric)
	if err != nil {
		return nil, err
	}
	store, err := Initialize(cfg.K, cfg.Seed, points, cfg.Init, cfg.Metric)
	if err != nil {
		return nil, err
	}

	n, k, dim := len(points), store.K(), store.Dim()
	assigner := NewAssigner(compare, cfg.NumThreads, cfg.BlockSize)
	reducer := NewReducer(cfg.NumThreads)
	partials := newPartials(assigner.numBlocks(n), k, dim)

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	counts := make([]int, k)

	ctrl := controller{maxIterations: cfg.MaxIterations, state: StateRunning}
	for ctrl.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()

		assigner.Assign(points, store.Centroids(), assignments, partials)
		changed, inertia := totals(partials)

		stats := IterationStats{
			Iteration: ctrl.iteration + 1,
			Changed:   changed,
			Inertia:   inertia,
		}

		ctrl.observeAssignment(changed)
		if ctrl.state == StateRunning {
			reducer.Reduce(partials, sums, counts)
			stats.EmptyClusters = store.ApplyUpdate(sums, counts)
			ctrl.observeUpdate()
		}

		if cfg.OnIteration != nil {
			stats.Duration = time.Since(start)
			cfg.OnIteration(stats)
		}
	}

	return &Result{
		Centroids:  store.Snapshot(),
		Iterations: ctrl.iteration,
		State:      ctrl.state,
	}, nil
}
