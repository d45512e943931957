package kmeans

import "errors"

var (
	// ErrInvalidK is returned when k is outside [1, number of points].
	ErrInvalidK = errors.New("k must be between 1 and the number of points")
	// ErrInvalidMaxIterations is returned when the iteration cap is not positive.
	ErrInvalidMaxIterations = errors.New("max iterations must be positive")
	// ErrInvalidNumThreads is returned when the worker count is not positive.
	ErrInvalidNumThreads = errors.New("num threads must be positive")
	// ErrInvalidDimension is returned for zero-dimensional points.
	ErrInvalidDimension = errors.New("points must have at least one dimension")
	// ErrInvalidInitialization is returned for an unknown seeding strategy.
	ErrInvalidInitialization = errors.New("unsupported initialization")
	// ErrEmptyDataset is returned when there are no points to cluster.
	ErrEmptyDataset = errors.New("dataset is empty")
)
