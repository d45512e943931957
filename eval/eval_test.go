package eval

import (
	"math"
	"testing"

	"github.com/hupe1980/kmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContingencyTable(t *testing.T) {
	pred := []int{0, 0, 1, 1, 1, 2}
	truth := []int{5, 5, 5, 6, 6, 6}

	ct, err := NewContingencyTable(pred, truth)
	require.NoError(t, err)

	assert.Equal(t, 6, ct.N())
	assert.Equal(t, 2, ct.Count(0, 5))
	assert.Equal(t, 1, ct.Count(1, 5))
	assert.Equal(t, 2, ct.Count(1, 6))
	assert.Equal(t, 1, ct.Count(2, 6))
	assert.Equal(t, 0, ct.Count(0, 6))
	assert.Equal(t, 3, ct.PredictedCount(1))
	assert.Equal(t, 3, ct.TruthCount(6))
	assert.Equal(t, []int{0, 1, 2}, ct.PredictedLabels())
	assert.Equal(t, []int{5, 6}, ct.TruthLabels())
	assert.Equal(t, 4, ct.NumCells())
	assert.Equal(t, []Cell{{0, 5}, {1, 5}, {1, 6}, {2, 6}}, ct.Cells())

	// Inputs are untouched.
	assert.Equal(t, []int{0, 0, 1, 1, 1, 2}, pred)
	assert.Equal(t, []int{5, 5, 5, 6, 6, 6}, truth)
}

func TestContingencyTable_Errors(t *testing.T) {
	_, err := NewContingencyTable([]int{0, 1}, []int{0})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewContingencyTable(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Evaluate([]int{}, []int{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Evaluate([]int{1}, []int{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEvaluate_Identical(t *testing.T) {
	tests := []struct {
		name        string
		pred, truth []int
	}{
		{"Same", []int{0, 0, 1, 1, 2, 2}, []int{0, 0, 1, 1, 2, 2}},
		{"Relabeled", []int{7, 7, 3, 3, 5, 5, 5}, []int{0, 0, 1, 1, 2, 2, 2}},
		{"Unbalanced", []int{1, 0, 0, 0, 0, 0, 0, 0}, []int{9, 4, 4, 4, 4, 4, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, norm := range []Normalization{NormArithmetic, NormGeometric, NormMin, NormMax} {
				r, err := Evaluate(tt.pred, tt.truth, WithNormalization(norm))
				require.NoError(t, err)
				assert.InDelta(t, 1.0, r.NMI, 1e-9, norm.String())
				assert.InDelta(t, 1.0, r.AMI, 1e-9, norm.String())
			}
		})
	}
}

func TestEvaluate_SingleCluster(t *testing.T) {
	truth := []int{0, 0, 1, 1, 2, 2, 3}
	pred := make([]int, len(truth))

	r, err := Evaluate(pred, truth)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.NMI)
	assert.InDelta(t, 0.0, r.AMI, 1e-12)
	assert.Equal(t, 1, r.PredictedClusters)
	assert.Equal(t, 4, r.TruthClusters)

	// Both sides degenerate: nothing to divide by.
	r, err = Evaluate([]int{3, 3, 3}, []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.NMI)
	assert.Equal(t, 0.0, r.AMI)
	assert.False(t, math.IsNaN(r.NMI))
}

func TestEvaluate_Independent(t *testing.T) {
	// Every cell holds exactly one point: MI is 0 and E[MI] is ln2/3,
	// so AMI = -(ln2/3) / (ln2 - ln2/3) = -0.5.
	r, err := Evaluate([]int{0, 0, 1, 1}, []int{0, 1, 0, 1})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, r.MI, 1e-12)
	assert.InDelta(t, math.Ln2/3, r.EMI, 1e-12)
	assert.InDelta(t, 0.0, r.NMI, 1e-12)
	assert.InDelta(t, -0.5, r.AMI, 1e-12)
}

func TestEvaluate_KnownValues(t *testing.T) {
	pred := []int{0, 0, 1, 1}
	truth := []int{0, 0, 1, 2}

	r, err := Evaluate(pred, truth)
	require.NoError(t, err)

	// MI = H(pred) = ln2 because pred is a coarsening of truth.
	assert.InDelta(t, math.Ln2, r.MI, 1e-12)
	assert.InDelta(t, math.Ln2, r.PredictedEntropy, 1e-12)
	assert.InDelta(t, 1.5*math.Ln2, r.TruthEntropy, 1e-12)
	assert.InDelta(t, math.Ln2/(1.25*math.Ln2), r.NMI, 1e-12)

	r, err = Evaluate(pred, truth, WithNormalization(NormMin))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.NMI, 1e-12)

	r, err = Evaluate(pred, truth, WithNormalization(NormMax))
	require.NoError(t, err)
	assert.InDelta(t, 1/1.5, r.NMI, 1e-12)

	r, err = Evaluate(pred, truth, WithNormalization(NormGeometric))
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(1.5), r.NMI, 1e-12)
}

func TestMutualInformationIdentity(t *testing.T) {
	rng := testutil.NewRNG(17)
	pred := rng.Labels(300, 6)
	truth := rng.Labels(300, 4)

	ct, err := NewContingencyTable(pred, truth)
	require.NoError(t, err)

	// MI = H(pred) + H(truth) - H(pred, truth)
	var joint float64
	for _, c := range ct.Cells() {
		p := float64(ct.Count(c.Predicted, c.Truth)) / float64(ct.N())
		joint -= p * math.Log(p)
	}
	want := PredictedEntropy(ct) + TruthEntropy(ct) - joint
	assert.InDelta(t, want, MutualInformation(ct), 1e-9)
}

func TestEvaluate_Symmetric(t *testing.T) {
	rng := testutil.NewRNG(3)
	a := rng.Labels(120, 3)
	b := rng.Labels(120, 5)

	ab, err := Evaluate(a, b)
	require.NoError(t, err)
	ba, err := Evaluate(b, a)
	require.NoError(t, err)

	assert.InDelta(t, ab.NMI, ba.NMI, 1e-12)
	assert.InDelta(t, ab.AMI, ba.AMI, 1e-12)
}

func TestEvaluate_RandomLabelsAMINearZero(t *testing.T) {
	rng := testutil.NewRNG(2024)

	const trials = 200
	var sum float64
	for range trials {
		truth := rng.Labels(100, 4)
		pred := rng.Labels(100, 5)
		ami, err := AMI(pred, truth)
		require.NoError(t, err)
		sum += ami
	}

	assert.InDelta(t, 0.0, sum/trials, 0.02)
}

func TestShortcuts(t *testing.T) {
	nmi, err := NMI([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, nmi, 1e-12)

	_, err = NMI(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = AMI([]int{0}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestReport(t *testing.T) {
	r := &Report{NMI: 0.8123456789, AMI: 0.8}

	assert.Equal(t, "Clustering Evaluation\nNormalized MI = 0.812346\nAdjusted MI = 0.800000", r.String())
	assert.Equal(t, "Clustering Evaluation\nNormalized MI = 0.8123\nAdjusted MI = 0.8000", r.Format(4))
}

func TestNormalization_String(t *testing.T) {
	assert.Equal(t, "Arithmetic", NormArithmetic.String())
	assert.Equal(t, "Geometric", NormGeometric.String())
	assert.Equal(t, "Min", NormMin.String())
	assert.Equal(t, "Max", NormMax.String())
	assert.Equal(t, "Unknown(9)", Normalization(9).String())
}
