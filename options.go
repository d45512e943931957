package kmeans

import (
	"log/slog"

	"github.com/hupe1980/kmeans/distance"
	lloyd "github.com/hupe1980/kmeans/internal/kmeans"
)

const (
	// DefaultMaxIterations is the iteration cap used when none is configured.
	DefaultMaxIterations = 10
	// DefaultNumThreads is the worker count used when none is configured.
	DefaultNumThreads = 1
	// DefaultSeed seeds centroid initialization when no seed is configured.
	DefaultSeed int64 = 1
)

// Initialization selects how the first centroids are chosen.
type Initialization = lloyd.Initialization

const (
	// InitRandom samples K distinct points uniformly at random.
	InitRandom = lloyd.InitRandom
	// InitPlusPlus uses k-means++ seeding.
	InitPlusPlus = lloyd.InitPlusPlus
)

type options struct {
	maxIterations    int
	metric           distance.Metric
	numThreads       int
	seed             int64
	init             Initialization
	blockSize        int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures training.
type Option func(*options)

// WithMaxIterations caps the number of assignment/update rounds.
// Training stops earlier if no point changes cluster.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithMetric sets the distance metric used to find the nearest centroid.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithNumThreads sets how many workers share the assignment and update
// steps. Results do not depend on this value.
func WithNumThreads(n int) Option {
	return func(o *options) {
		o.numThreads = n
	}
}

// WithSeed seeds centroid initialization. Runs with the same seed and
// data produce the same model.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithInitialization selects the centroid seeding strategy.
func WithInitialization(strategy Initialization) Option {
	return func(o *options) {
		o.init = strategy
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeans.BasicMetricsCollector{}
//	model, _ := kmeans.Train(ctx, ds, 5, kmeans.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d\n", stats.IterationCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans.NewJSONLogger(slog.LevelInfo)
//	model, _ := kmeans.Train(ctx, ds, 5, kmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// withBlockSize overrides the number of points per partial aggregate.
func withBlockSize(n int) Option {
	return func(o *options) {
		o.blockSize = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxIterations:    DefaultMaxIterations,
		metric:           distance.MetricEuclidean,
		numThreads:       DefaultNumThreads,
		seed:             DefaultSeed,
		init:             InitRandom,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
