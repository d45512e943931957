package eval

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MutualInformation returns MI(pred, truth) in nats:
//
//	MI = Σ_ij (n_ij/N) log(N n_ij / (a_i b_j))
func MutualInformation(ct *ContingencyTable) float64 {
	n := float64(ct.n)
	var mi float64
	for _, c := range ct.Cells() {
		nij := float64(ct.cells[c])
		a := float64(ct.predicted[c.Predicted])
		b := float64(ct.truth[c.Truth])
		mi += nij / n * math.Log(n*nij/(a*b))
	}
	// Clamp tiny negative rounding noise.
	return math.Max(mi, 0)
}

// PredictedEntropy returns H(pred) in nats.
func PredictedEntropy(ct *ContingencyTable) float64 {
	return entropy(ct.predLabels, ct.predicted, ct.n)
}

// TruthEntropy returns H(truth) in nats.
func TruthEntropy(ct *ContingencyTable) float64 {
	return entropy(ct.truthLabels, ct.truth, ct.n)
}

func entropy(labels []int, counts map[int]int, n int) float64 {
	p := make([]float64, len(labels))
	for i, l := range labels {
		p[i] = float64(counts[l]) / float64(n)
	}
	return stat.Entropy(p)
}

// ExpectedMutualInformation returns E[MI] over all labelings with the
// same marginals as ct, using the hypergeometric model of n_ij:
//
//	E[MI] = Σ_ij Σ_nij (nij/N) log(N nij/(a_i b_j)) P(nij | a_i, b_j, N)
//
// with nij running from max(1, a_i+b_j-N) to min(a_i, b_j).
func ExpectedMutualInformation(ct *ContingencyTable) float64 {
	n := ct.n
	nf := float64(n)

	// lgf[x] = log(x!)
	lgf := make([]float64, n+1)
	for x := range lgf {
		lgf[x], _ = math.Lgamma(float64(x) + 1)
	}

	var emi float64
	for _, pl := range ct.predLabels {
		a := ct.predicted[pl]
		for _, tl := range ct.truthLabels {
			b := ct.truth[tl]

			// log of the hypergeometric terms shared by every nij
			base := lgf[a] + lgf[b] + lgf[n-a] + lgf[n-b] - lgf[n]
			ab := float64(a) * float64(b)

			for nij := max(1, a+b-n); nij <= min(a, b); nij++ {
				lp := base - lgf[nij] - lgf[a-nij] - lgf[b-nij] - lgf[n-a-b+nij]
				f := float64(nij)
				emi += f / nf * math.Log(nf*f/ab) * math.Exp(lp)
			}
		}
	}
	return emi
}
