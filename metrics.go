package kmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordTrain is called after each training run.
	// iterations is the number of completed update rounds, err is nil if successful.
	RecordTrain(iterations int, converged bool, duration time.Duration, err error)

	// RecordIteration is called after each assignment/update round.
	RecordIteration(changed, emptyClusters int, duration time.Duration)

	// RecordPredict is called after each inference call.
	RecordPredict(points int, duration time.Duration, err error)

	// RecordEvaluate is called after each evaluation.
	RecordEvaluate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTrain(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, int, time.Duration)     {}
func (NoopMetricsCollector) RecordPredict(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordEvaluate(time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TrainCount          atomic.Int64
	TrainErrors         atomic.Int64
	TrainConverged      atomic.Int64
	TrainTotalNanos     atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	EmptyClusters       atomic.Int64
	PredictCount        atomic.Int64
	PredictErrors       atomic.Int64
	PredictPoints       atomic.Int64
	EvaluateCount       atomic.Int64
	EvaluateErrors      atomic.Int64
}

// RecordTrain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrain(iterations int, converged bool, duration time.Duration, err error) {
	b.TrainCount.Add(1)
	b.TrainTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.TrainErrors.Add(1)
		return
	}
	if converged {
		b.TrainConverged.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(changed, emptyClusters int, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.EmptyClusters.Add(int64(emptyClusters))
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(points int, duration time.Duration, err error) {
	b.PredictCount.Add(1)
	if err != nil {
		b.PredictErrors.Add(1)
		return
	}
	b.PredictPoints.Add(int64(points))
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(duration time.Duration, err error) {
	b.EvaluateCount.Add(1)
	if err != nil {
		b.EvaluateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		TrainCount:        b.TrainCount.Load(),
		TrainErrors:       b.TrainErrors.Load(),
		TrainConverged:    b.TrainConverged.Load(),
		TrainAvgNanos:     avg(b.TrainTotalNanos.Load(), b.TrainCount.Load()),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		EmptyClusters:     b.EmptyClusters.Load(),
		PredictCount:      b.PredictCount.Load(),
		PredictErrors:     b.PredictErrors.Load(),
		PredictPoints:     b.PredictPoints.Load(),
		EvaluateCount:     b.EvaluateCount.Load(),
		EvaluateErrors:    b.EvaluateErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TrainCount        int64
	TrainErrors       int64
	TrainConverged    int64
	TrainAvgNanos     int64
	IterationCount    int64
	IterationAvgNanos int64
	EmptyClusters     int64
	PredictCount      int64
	PredictErrors     int64
	PredictPoints     int64
	EvaluateCount     int64
	EvaluateErrors    int64
}
