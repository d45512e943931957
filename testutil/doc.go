// Package testutil provides testing utilities for the clustering packages.
//
// This package is intended for use in tests, examples and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.GaussianVectors(1000, 8) // standard normal
//	labels := rng.Labels(1000, 5)        // uniform in [0, 5)
//
// # Gaussian Mixtures
//
//	points, truth, err := rng.Sample(testutil.FiveGaussians(), 500)
package testutil
