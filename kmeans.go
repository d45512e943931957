package kmeans

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/eval"
	lloyd "github.com/hupe1980/kmeans/internal/kmeans"
)

// Metric represents the distance metric used for vector comparison.
type Metric = distance.Metric

const (
	MetricEuclidean = distance.MetricEuclidean
	MetricL1        = distance.MetricL1
	MetricCosine    = distance.MetricCosine
)

// ParseMetric parses a metric name such as "euclidean", "l1" or "cosine".
func ParseMetric(s string) (Metric, error) {
	m, err := distance.ParseMetric(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return m, nil
}

// State reports how a training run ended.
type State = lloyd.State

const (
	// StateConverged means the last round moved no point to another cluster.
	StateConverged = lloyd.StateConverged
	// StateMaxIterations means the iteration cap was reached first.
	StateMaxIterations = lloyd.StateMaxIterations
)

// Trainer fits a clustering model to a dataset.
type Trainer interface {
	Train(ctx context.Context, ds *Dataset) (*Model, error)
}

// Predictor assigns points to clusters.
type Predictor interface {
	Predict(ctx context.Context, ds *Dataset) ([]int, error)
}

var (
	_ Trainer   = (*KMeansTrainer)(nil)
	_ Predictor = (*Model)(nil)
)

// KMeansTrainer trains k-means models with a fixed configuration.
type KMeansTrainer struct {
	k    int
	opts options
}

// NewTrainer creates a trainer for k clusters. Options are validated
// when Train is called.
func NewTrainer(k int, optFns ...Option) *KMeansTrainer {
	return &KMeansTrainer{k: k, opts: applyOptions(optFns)}
}

// Train implements Trainer.
func (t *KMeansTrainer) Train(ctx context.Context, ds *Dataset) (*Model, error) {
	return train(ctx, ds, t.k, t.opts)
}

// Train clusters ds into k clusters.
//
// It fails with ErrInvalidArgument if k is outside [1, ds.Len()] or if the
// iteration cap or thread count is below 1. All validation happens before
// any worker starts. Cancelling ctx aborts the run between iterations.
func Train(ctx context.Context, ds *Dataset, k int, optFns ...Option) (*Model, error) {
	return train(ctx, ds, k, applyOptions(optFns))
}

func train(ctx context.Context, ds *Dataset, k int, o options) (*Model, error) {
	start := time.Now()
	logger := o.logger.WithK(k)
	if ds != nil {
		logger = logger.WithDimension(ds.Dim())
	}

	model, err := fit(ctx, ds, k, o, logger)
	if err != nil {
		o.metricsCollector.RecordTrain(0, false, time.Since(start), err)
		logger.LogTrain(ctx, k, 0, lloyd.StateRunning, time.Since(start), err)
		return nil, err
	}

	o.metricsCollector.RecordTrain(model.iterations, model.Converged(), time.Since(start), nil)
	logger.LogTrain(ctx, k, model.iterations, model.state, time.Since(start), nil)
	return model, nil
}

func fit(ctx context.Context, ds *Dataset, k int, o options, logger *Logger) (*Model, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: dataset is nil", ErrInvalidArgument)
	}
	compare, err := distance.Comparator(o.metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	var inertia float64
	cfg := lloyd.Config{
		K:             k,
		MaxIterations: o.maxIterations,
		NumThreads:    o.numThreads,
		Metric:        o.metric,
		Seed:          o.seed,
		Init:          o.init,
		BlockSize:     o.blockSize,
		OnIteration: func(s lloyd.IterationStats) {
			inertia = s.Inertia
			o.metricsCollector.RecordIteration(s.Changed, s.EmptyClusters, s.Duration)
			logger.LogIteration(ctx, s.Iteration, s.Changed, s.EmptyClusters, s.Inertia)
		},
	}

	res, err := lloyd.Train(ctx, ds.points, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, translateError(err)
	}

	return &Model{
		centroids:        res.Centroids,
		metric:           o.metric,
		compare:          compare,
		numThreads:       o.numThreads,
		iterations:       res.Iterations,
		state:            res.State,
		inertia:          inertia,
		logger:           logger,
		metricsCollector: o.metricsCollector,
	}, nil
}

// Model is a trained, immutable set of centroids.
// It is safe for concurrent use.
type Model struct {
	centroids  [][]float64
	metric     distance.Metric
	compare    distance.Func
	numThreads int
	iterations int
	state      State
	inertia    float64

	logger           *Logger
	metricsCollector MetricsCollector
}

// K returns the number of clusters.
func (m *Model) K() int { return len(m.centroids) }

// Dim returns the centroid dimensionality.
func (m *Model) Dim() int { return len(m.centroids[0]) }

// Metric returns the distance metric the model was trained with.
func (m *Model) Metric() Metric { return m.metric }

// Iterations returns the number of completed update rounds.
func (m *Model) Iterations() int { return m.iterations }

// State returns how training ended.
func (m *Model) State() State { return m.state }

// Inertia returns the summed point-to-centroid comparator value of the
// last assignment round. For MetricEuclidean this is the squared distance.
func (m *Model) Inertia() float64 { return m.inertia }

// Converged reports whether training stopped because assignments were stable.
func (m *Model) Converged() bool { return m.state == StateConverged }

// Centroids returns a deep copy of the centroids. Index i is cluster i.
func (m *Model) Centroids() [][]float64 {
	out := make([][]float64, len(m.centroids))
	for i, c := range m.centroids {
		out[i] = slices.Clone(c)
	}
	return out
}

// Predict returns the nearest centroid index for every point in ds.
// Ties go to the lowest index.
func (m *Model) Predict(ctx context.Context, ds *Dataset) ([]int, error) {
	start := time.Now()
	out, err := m.predict(ctx, ds)

	points := 0
	if ds != nil {
		points = ds.Len()
	}
	m.metricsCollector.RecordPredict(points, time.Since(start), err)
	m.logger.LogPredict(ctx, points, err)
	return out, err
}

func (m *Model) predict(ctx context.Context, ds *Dataset) ([]int, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: dataset is nil", ErrInvalidArgument)
	}
	if ds.Dim() != m.Dim() {
		return nil, &ErrDimensionMismatch{Expected: m.Dim(), Actual: ds.Dim()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]int, ds.Len())
	lloyd.NewAssigner(m.compare, m.numThreads, 0).Assign(ds.points, m.centroids, out, nil)
	return out, nil
}

// PredictPoint returns the nearest centroid index for a single point.
func (m *Model) PredictPoint(point []float64) (int, error) {
	if len(point) != m.Dim() {
		return -1, &ErrDimensionMismatch{Expected: m.Dim(), Actual: len(point)}
	}
	idx, _ := lloyd.Nearest(point, m.centroids, m.compare)
	return idx, nil
}

// Nearest returns the indices of the n centroids closest to point,
// closest first.
func (m *Model) Nearest(point []float64, n int) ([]int, error) {
	if len(point) != m.Dim() {
		return nil, &ErrDimensionMismatch{Expected: m.Dim(), Actual: len(point)}
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidArgument, n)
	}
	return lloyd.NearestN(point, m.centroids, n, m.compare), nil
}

// Partition predicts ds and groups its point indices by cluster.
func (m *Model) Partition(ctx context.Context, ds *Dataset) (*Partition, error) {
	assignments, err := m.Predict(ctx, ds)
	if err != nil {
		return nil, err
	}
	return NewPartition(assignments, m.K())
}

// Evaluate predicts ds with model and scores the result against the
// dataset's reference labels with NMI and AMI. Failures are recorded
// once, as an evaluation error.
func Evaluate(ctx context.Context, model *Model, ds *Dataset, optFns ...eval.Option) (*eval.Report, error) {
	start := time.Now()
	report, err := evaluate(ctx, model, ds, optFns)

	if model != nil {
		model.metricsCollector.RecordEvaluate(time.Since(start), err)
		if err != nil {
			model.logger.LogEvaluate(ctx, 0, 0, err)
		} else {
			model.logger.LogEvaluate(ctx, report.NMI, report.AMI, nil)
		}
	}
	return report, err
}

func evaluate(ctx context.Context, model *Model, ds *Dataset, optFns []eval.Option) (*eval.Report, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrInvalidArgument)
	}
	if ds != nil && !ds.HasLabels() {
		return nil, fmt.Errorf("%w: dataset has no labels", ErrInvalidArgument)
	}
	predicted, err := model.predict(ctx, ds)
	if err != nil {
		return nil, err
	}
	report, err := eval.Evaluate(predicted, ds.labels, optFns...)
	if err != nil {
		return nil, translateError(err)
	}
	return report, nil
}
