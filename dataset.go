package kmeans

import (
	"fmt"
	"slices"
)

// Dataset is an ordered set of points with optional reference labels.
// All points share one dimensionality. A Dataset is immutable.
type Dataset struct {
	points [][]float64
	labels []int
	dim    int
}

// NewDataset copies points (and labels, if non-nil) into a new Dataset.
//
// labels may be nil for unlabelled data; otherwise it must have one
// entry per point.
func NewDataset(points [][]float64, labels []int) (*Dataset, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: dataset has no points", ErrEmptyInput)
	}
	dim := len(points[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: points must have at least one dimension", ErrInvalidArgument)
	}
	if labels != nil && len(labels) != len(points) {
		return nil, fmt.Errorf("%w: %d points, %d labels", ErrLengthMismatch, len(points), len(labels))
	}

	data := make([]float64, len(points)*dim)
	ds := &Dataset{
		points: make([][]float64, len(points)),
		labels: slices.Clone(labels),
		dim:    dim,
	}
	for i, p := range points {
		if len(p) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(p)}
		}
		vec := data[i*dim : (i+1)*dim]
		copy(vec, p)
		ds.points[i] = vec
	}
	return ds, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// Dim returns the point dimensionality.
func (d *Dataset) Dim() int { return d.dim }

// Point returns point i. Callers must not modify it.
func (d *Dataset) Point(i int) []float64 { return d.points[i] }

// HasLabels reports whether the dataset carries reference labels.
func (d *Dataset) HasLabels() bool { return d.labels != nil }

// Labels returns a copy of the reference labels, or nil.
func (d *Dataset) Labels() []int { return slices.Clone(d.labels) }
