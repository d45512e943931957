// Package kmeans implements parallel Lloyd k-means clustering.
//
// A run initializes a centroid Store, then alternates a sharded
// assignment step (expectation) with a per-centroid reduction step
// (maximization) until no point changes cluster or the iteration cap is
// reached.
//
// Partial sums are kept per fixed-size block of points and reduced in
// block order, so trained centroids are bit-identical for every worker
// count.
package kmeans
