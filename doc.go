// Package kmeans provides parallel K-Means clustering for Go.
//
// Training runs Lloyd's algorithm: every round assigns each point to its
// nearest centroid, then moves each centroid to the mean of its points.
// It stops once a round leaves every assignment unchanged, or after the
// configured number of rounds.
//
// # Quick Start
//
//	ctx := context.Background()
//	ds, _ := kmeans.NewDataset(points, nil)
//	model, _ := kmeans.Train(ctx, ds, 5,
//	    kmeans.WithMaxIterations(10),
//	    kmeans.WithNumThreads(4),
//	)
//	labels, _ := model.Predict(ctx, ds)
//
// # Determinism
//
// Initial centroids come from a seeded generator (WithSeed), so the same
// data and options always produce the same model. Both the assignment and
// the update step are split across WithNumThreads workers, and partial sums
// are combined in a fixed order, so the thread count never changes the
// resulting centroids.
//
// # Empty Clusters
//
// A centroid that receives no points in a round keeps its previous
// position. Such rounds are logged at warn level and counted by the
// metrics collector.
//
// # Evaluation
//
// Datasets built with reference labels can be scored with Evaluate, which
// reports Normalized and Adjusted Mutual Information:
//
//	ds, _ := kmeans.NewDataset(points, labels)
//	report, _ := kmeans.Evaluate(ctx, model, ds)
//	fmt.Println(report)
//
// The eval package computes the same scores for any pair of label slices.
//
// # Observability
//
// Use WithLogger for structured logging (log/slog) and WithMetricsCollector
// to feed per-operation metrics into a monitoring system. Both default
// to no-ops.
package kmeans
