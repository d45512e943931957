package kmeans

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Store holds the K centroids of a training run.
// Centroid i keeps index i for the whole run.
type Store struct {
	centroids [][]float64
	dim       int
}

// NewStore creates a store from a copy of the given centroids.
func NewStore(centroids [][]float64) *Store {
	s := &Store{centroids: make([][]float64, len(centroids))}
	for i, c := range centroids {
		s.centroids[i] = slices.Clone(c)
	}
	if len(centroids) > 0 {
		s.dim = len(centroids[0])
	}
	return s
}

// K returns the number of centroids.
func (s *Store) K() int { return len(s.centroids) }

// Dim returns the centroid dimensionality.
func (s *Store) Dim() int { return s.dim }

// Centroids returns the current centroids. Callers must not modify them.
func (s *Store) Centroids() [][]float64 { return s.centroids }

// Snapshot returns a deep copy of the current centroids.
func (s *Store) Snapshot() [][]float64 {
	out := make([][]float64, len(s.centroids))
	for i, c := range s.centroids {
		out[i] = slices.Clone(c)
	}
	return out
}

// ApplyUpdate replaces every centroid with sums[i]/counts[i].
//
// A centroid with a zero count keeps its previous position; it is never
// re-seeded. The number of such empty clusters is returned.
func (s *Store) ApplyUpdate(sums [][]float64, counts []int) int {
	empty := 0
	for i, c := range s.centroids {
		if counts[i] == 0 {
			empty++
			continue
		}
		copy(c, sums[i])
		floats.Scale(1/float64(counts[i]), c)
	}
	return empty
}
