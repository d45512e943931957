package kmeans

import (
	"fmt"
	"math/rand"

	"github.com/hupe1980/kmeans/distance"
)

// Initialization selects how the first centroids are chosen.
type Initialization int

const (
	// InitRandom samples K distinct points uniformly at random.
	InitRandom Initialization = iota
	// InitPlusPlus uses k-means++ D² sampling.
	InitPlusPlus
)

func (i Initialization) String() string {
	switch i {
	case InitRandom:
		return "Random"
	case InitPlusPlus:
		return "PlusPlus"
	default:
		return fmt.Sprintf("Unknown(%d)", i)
	}
}

// Initialize seeds a Store with k centroids drawn from points.
// The same seed always yields the same centroids.
func Initialize(k int, seed int64, points [][]float64, strategy Initialization, metric distance.Metric) (*Store, error) {
	if k < 1 || k > len(points) {
		return nil, fmt.Errorf("%w: k=%d with %d points", ErrInvalidK, k, len(points))
	}
	rng := rand.New(rand.NewSource(seed))

	switch strategy {
	case InitRandom:
		perm := rng.Perm(len(points))
		centroids := make([][]float64, k)
		for i := range k {
			centroids[i] = points[perm[i]]
		}
		return NewStore(centroids), nil
	case InitPlusPlus:
		distFunc, err := distance.Provider(metric)
		if err != nil {
			return nil, err
		}
		return NewStore(plusPlus(rng, k, points, distFunc)), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitialization, strategy)
	}
}

func plusPlus(rng *rand.Rand, k int, points [][]float64, distFunc distance.Func) [][]float64 {
	n := len(points)
	chosen := make([]bool, n)
	centroids := make([][]float64, 0, k)

	first := rng.Intn(n)
	chosen[first] = true
	centroids = append(centroids, points[first])

	// weights[i] is the squared distance to the closest chosen centroid.
	weights := make([]float64, n)
	for i, p := range points {
		d := distFunc(p, points[first])
		weights[i] = d * d
	}

	for len(centroids) < k {
		var total float64
		for i, w := range weights {
			if !chosen[i] {
				total += w
			}
		}

		next := -1
		if total > 0 {
			r := rng.Float64() * total
			var cum float64
			for i, w := range weights {
				if chosen[i] || w == 0 {
					continue
				}
				cum += w
				next = i
				if cum > r {
					break
				}
			}
		} else {
			// Every remaining point coincides with a centroid.
			free := make([]int, 0, n-len(centroids))
			for i := range points {
				if !chosen[i] {
					free = append(free, i)
				}
			}
			next = free[rng.Intn(len(free))]
		}

		chosen[next] = true
		centroids = append(centroids, points[next])
		for i, p := range points {
			d := distFunc(p, points[next])
			if d2 := d * d; d2 < weights[i] {
				weights[i] = d2
			}
		}
	}

	return centroids
}
