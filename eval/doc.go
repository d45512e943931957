// Package eval scores a clustering against reference labels.
//
// Cluster indices carry no meaning across runs, so every score here is
// built from mutual information over a contingency table rather than
// from label equality.
//
//	r, err := eval.Evaluate(predicted, truth)
//	fmt.Println(r) // NMI and AMI, six decimals
//
// # Scores
//
//   - NMI: MI / norm(H(pred), H(truth))
//   - AMI: (MI - E[MI]) / (norm(H(pred), H(truth)) - E[MI])
//
// norm is the arithmetic mean unless WithNormalization says otherwise.
// All logarithms are natural.
package eval
