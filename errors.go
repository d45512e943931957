package kmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/eval"
	lloyd "github.com/hupe1980/kmeans/internal/kmeans"
)

var (
	// ErrInvalidArgument is returned for a bad k, iteration cap, thread
	// count, metric or dataset shape.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLengthMismatch is returned when two parallel sequences differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrEmptyInput is returned when there is nothing to train on or evaluate.
	ErrEmptyInput = errors.New("empty input")
)

// ErrDimensionMismatch indicates a vector dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Dimension normalization.
	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	// Argument normalization.
	switch {
	case errors.Is(err, lloyd.ErrInvalidK),
		errors.Is(err, lloyd.ErrInvalidMaxIterations),
		errors.Is(err, lloyd.ErrInvalidNumThreads),
		errors.Is(err, lloyd.ErrInvalidDimension),
		errors.Is(err, lloyd.ErrInvalidInitialization):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case errors.Is(err, lloyd.ErrEmptyDataset), errors.Is(err, eval.ErrEmptyInput):
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	case errors.Is(err, eval.ErrLengthMismatch):
		return fmt.Errorf("%w: %w", ErrLengthMismatch, err)
	}

	return err
}
