// Package distance provides vector distance calculations for clustering.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default)
//   - MetricL1: Manhattan distance
//   - MetricCosine: 1 - cosine similarity
//
// # Usage
//
//	d, err := distance.Distance(a, b, distance.MetricEuclidean)
//	cmp, _ := distance.Comparator(distance.MetricEuclidean) // squared L2 for ranking
package distance
