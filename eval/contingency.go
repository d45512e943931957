package eval

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrLengthMismatch is returned when the two labelings differ in length.
	ErrLengthMismatch = errors.New("label sequences differ in length")
	// ErrEmptyInput is returned when there are no labels to compare.
	ErrEmptyInput = errors.New("label sequences are empty")
)

// Cell addresses one entry of a contingency table.
type Cell struct {
	Predicted int
	Truth     int
}

// ContingencyTable counts how often each (predicted, truth) label pair
// occurs. Only non-zero cells are stored. It is read-only once built.
type ContingencyTable struct {
	cells     map[Cell]int
	predicted map[int]int // a_i
	truth     map[int]int // b_j
	n         int

	predLabels  []int // sorted
	truthLabels []int // sorted
}

// NewContingencyTable builds the table for two labelings of the same points.
// The inputs are not modified.
func NewContingencyTable(predicted, truth []int) (*ContingencyTable, error) {
	if len(predicted) != len(truth) {
		return nil, fmt.Errorf("%w: %d predicted, %d truth", ErrLengthMismatch, len(predicted), len(truth))
	}
	if len(predicted) == 0 {
		return nil, ErrEmptyInput
	}

	ct := &ContingencyTable{
		cells:     make(map[Cell]int),
		predicted: make(map[int]int),
		truth:     make(map[int]int),
		n:         len(predicted),
	}
	for i, p := range predicted {
		ct.cells[Cell{Predicted: p, Truth: truth[i]}]++
		ct.predicted[p]++
		ct.truth[truth[i]]++
	}

	ct.predLabels = sortedKeys(ct.predicted)
	ct.truthLabels = sortedKeys(ct.truth)
	return ct, nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// N returns the number of points.
func (ct *ContingencyTable) N() int { return ct.n }

// Count returns n_ij for the given label pair.
func (ct *ContingencyTable) Count(predicted, truth int) int {
	return ct.cells[Cell{Predicted: predicted, Truth: truth}]
}

// PredictedCount returns the marginal a_i.
func (ct *ContingencyTable) PredictedCount(label int) int { return ct.predicted[label] }

// TruthCount returns the marginal b_j.
func (ct *ContingencyTable) TruthCount(label int) int { return ct.truth[label] }

// PredictedLabels returns the distinct predicted labels in ascending order.
func (ct *ContingencyTable) PredictedLabels() []int { return slices.Clone(ct.predLabels) }

// TruthLabels returns the distinct truth labels in ascending order.
func (ct *ContingencyTable) TruthLabels() []int { return slices.Clone(ct.truthLabels) }

// NumCells returns the number of non-zero cells.
func (ct *ContingencyTable) NumCells() int { return len(ct.cells) }

// Cells returns the non-zero cells ordered by predicted, then truth label.
func (ct *ContingencyTable) Cells() []Cell {
	cells := make([]Cell, 0, len(ct.cells))
	for c := range ct.cells {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Predicted != b.Predicted {
			return a.Predicted - b.Predicted
		}
		return a.Truth - b.Truth
	})
	return cells
}
