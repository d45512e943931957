// Package distance provides public API for vector distance calculations.
package distance

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch indicates that two vectors have different lengths.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricL1
	MetricCosine
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricL1:
		return "L1"
	case MetricCosine:
		return "Cosine"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseMetric returns the metric named by s (case-insensitive).
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean", "l2":
		return MetricEuclidean, nil
	case "l1", "manhattan":
		return MetricL1, nil
	case "cosine":
		return MetricCosine, nil
	default:
		return 0, fmt.Errorf("unknown metric: %q", s)
	}
}

// Func is a function type for distance calculation.
// Assumes vectors are the same length (caller's responsibility).
type Func func(a, b []float64) float64

// Euclidean calculates the L2 distance between two vectors.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// SquaredEuclidean calculates the squared L2 distance between two vectors.
// It orders points exactly like Euclidean without the square root.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L1 calculates the Manhattan distance between two vectors.
func L1(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// Cosine calculates 1 - cos(a, b).
// If either vector has zero norm the distance is 1.
func Cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	sim := floats.Dot(a, b) / (na * nb)
	// Clamp rounding noise so identical directions give exactly 0.
	sim = math.Max(-1, math.Min(1, sim))
	return 1 - sim
}

// Provider returns the true distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricL1:
		return L1, nil
	case MetricCosine:
		return Cosine, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// Comparator returns a function that orders distances the same way as the
// metric but may be cheaper to evaluate. It is what nearest-centroid
// searches use; the values it returns are not true distances for
// MetricEuclidean.
func Comparator(m Metric) (Func, error) {
	if m == MetricEuclidean {
		return SquaredEuclidean, nil
	}
	return Provider(m)
}

// Distance returns the true distance between a and b under metric m.
func Distance(a, b []float64, m Metric) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	fn, err := Provider(m)
	if err != nil {
		return 0, err
	}
	return fn(a, b), nil
}
