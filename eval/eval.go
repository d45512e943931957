package eval

import (
	"fmt"
	"math"
	"strings"
)

// degenerateEpsilon bounds denominators treated as zero.
const degenerateEpsilon = 1e-12

// Normalization selects how the two entropies are combined into the
// NMI and AMI denominators.
type Normalization int

const (
	// NormArithmetic uses (H(pred)+H(truth))/2.
	NormArithmetic Normalization = iota
	// NormGeometric uses sqrt(H(pred)·H(truth)).
	NormGeometric
	// NormMin uses min(H(pred), H(truth)).
	NormMin
	// NormMax uses max(H(pred), H(truth)).
	NormMax
)

func (n Normalization) String() string {
	switch n {
	case NormArithmetic:
		return "Arithmetic"
	case NormGeometric:
		return "Geometric"
	case NormMin:
		return "Min"
	case NormMax:
		return "Max"
	default:
		return fmt.Sprintf("Unknown(%d)", n)
	}
}

func (n Normalization) combine(hp, ht float64) float64 {
	switch n {
	case NormGeometric:
		return math.Sqrt(hp * ht)
	case NormMin:
		return math.Min(hp, ht)
	case NormMax:
		return math.Max(hp, ht)
	default:
		return (hp + ht) / 2
	}
}

type options struct {
	normalization Normalization
}

// Option configures Evaluate.
type Option func(*options)

// WithNormalization selects the entropy normalization. The default is
// NormArithmetic.
func WithNormalization(n Normalization) Option {
	return func(o *options) {
		o.normalization = n
	}
}

// Report holds the scores of one evaluation. It is read-only.
type Report struct {
	NMI float64
	AMI float64

	MI               float64
	EMI              float64
	PredictedEntropy float64
	TruthEntropy     float64

	N                 int
	PredictedClusters int
	TruthClusters     int
	Normalization     Normalization
}

// String renders both scores with six decimals.
func (r *Report) String() string {
	return r.Format(6)
}

// Format renders both scores with the given number of decimals.
func (r *Report) Format(precision int) string {
	var sb strings.Builder
	fmt.Fprintln(&sb, "Clustering Evaluation")
	fmt.Fprintf(&sb, "Normalized MI = %.*f\n", precision, r.NMI)
	fmt.Fprintf(&sb, "Adjusted MI = %.*f", precision, r.AMI)
	return sb.String()
}

// Evaluate scores predicted cluster labels against reference labels.
//
// Labels are compared only through mutual information, so any bijective
// relabeling of either side gives the same scores. Degenerate cases fall
// back to 0 instead of dividing by zero: NMI is 0 when the combined
// entropy is 0, and AMI is 0 when its denominator is within 1e-12 of 0.
// AMI may be negative.
func Evaluate(predicted, truth []int, optFns ...Option) (*Report, error) {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	ct, err := NewContingencyTable(predicted, truth)
	if err != nil {
		return nil, err
	}

	r := &Report{
		MI:                MutualInformation(ct),
		EMI:               ExpectedMutualInformation(ct),
		PredictedEntropy:  PredictedEntropy(ct),
		TruthEntropy:      TruthEntropy(ct),
		N:                 ct.N(),
		PredictedClusters: len(ct.predLabels),
		TruthClusters:     len(ct.truthLabels),
		Normalization:     o.normalization,
	}

	norm := o.normalization.combine(r.PredictedEntropy, r.TruthEntropy)
	if norm > degenerateEpsilon {
		r.NMI = r.MI / norm
	}
	if den := norm - r.EMI; math.Abs(den) > degenerateEpsilon {
		r.AMI = (r.MI - r.EMI) / den
	}

	return r, nil
}

// NMI is a shortcut for Evaluate(...).NMI with arithmetic normalization.
func NMI(predicted, truth []int) (float64, error) {
	r, err := Evaluate(predicted, truth)
	if err != nil {
		return 0, err
	}
	return r.NMI, nil
}

// AMI is a shortcut for Evaluate(...).AMI with arithmetic normalization.
func AMI(predicted, truth []int) (float64, error) {
	r, err := Evaluate(predicted, truth)
	if err != nil {
		return 0, err
	}
	return r.AMI, nil
}
