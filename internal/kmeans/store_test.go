package kmeans

import (
	"testing"

	"github.com/hupe1980/kmeans/distance"
	"github.com/hupe1980/kmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ApplyUpdate(t *testing.T) {
	s := NewStore([][]float64{{0, 0}, {5, 5}, {100, 100}})
	require.Equal(t, 3, s.K())
	require.Equal(t, 2, s.Dim())

	empty := s.ApplyUpdate(
		[][]float64{{2, 4}, {30, 60}, {0, 0}},
		[]int{2, 10, 0},
	)

	assert.Equal(t, 1, empty)
	assert.Equal(t, [][]float64{{1, 2}, {3, 6}, {100, 100}}, s.Centroids())
}

func TestStore_Snapshot(t *testing.T) {
	src := [][]float64{{1, 2}}
	s := NewStore(src)

	// The store owns a copy of its input.
	src[0][0] = 42
	assert.Equal(t, 1.0, s.Centroids()[0][0])

	snap := s.Snapshot()
	snap[0][1] = 42
	assert.Equal(t, 2.0, s.Centroids()[0][1])
}

func TestInitialize(t *testing.T) {
	points := testutil.NewRNG(3).UniformVectors(50, 3)

	for _, strategy := range []Initialization{InitRandom, InitPlusPlus} {
		t.Run(strategy.String(), func(t *testing.T) {
			s1, err := Initialize(10, 7, points, strategy, distance.MetricEuclidean)
			require.NoError(t, err)
			s2, err := Initialize(10, 7, points, strategy, distance.MetricEuclidean)
			require.NoError(t, err)

			assert.Equal(t, s1.Centroids(), s2.Centroids(), "same seed, same centroids")

			// Every centroid is a distinct data point.
			seen := map[int]bool{}
			for _, c := range s1.Centroids() {
				idx := -1
				for i, p := range points {
					if assert.ObjectsAreEqual(p, c) {
						idx = i
						break
					}
				}
				require.NotEqual(t, -1, idx)
				assert.False(t, seen[idx])
				seen[idx] = true
			}
		})
	}

	t.Run("DifferentSeeds", func(t *testing.T) {
		s1, err := Initialize(5, 1, points, InitRandom, distance.MetricEuclidean)
		require.NoError(t, err)
		s2, err := Initialize(5, 2, points, InitRandom, distance.MetricEuclidean)
		require.NoError(t, err)
		assert.NotEqual(t, s1.Centroids(), s2.Centroids())
	})

	t.Run("PlusPlusDuplicates", func(t *testing.T) {
		dup := [][]float64{{1, 1}, {1, 1}, {1, 1}}
		s, err := Initialize(3, 1, dup, InitPlusPlus, distance.MetricEuclidean)
		require.NoError(t, err)
		assert.Equal(t, 3, s.K())
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := Initialize(0, 1, points, InitRandom, distance.MetricEuclidean)
		assert.ErrorIs(t, err, ErrInvalidK)

		_, err = Initialize(51, 1, points, InitRandom, distance.MetricEuclidean)
		assert.ErrorIs(t, err, ErrInvalidK)

		_, err = Initialize(2, 1, points, Initialization(9), distance.MetricEuclidean)
		assert.Error(t, err)

		_, err = Initialize(2, 1, points, InitPlusPlus, distance.Metric(9))
		assert.Error(t, err)
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Random", InitRandom.String())
		assert.Equal(t, "PlusPlus", InitPlusPlus.String())
		assert.Equal(t, "Unknown(9)", Initialization(9).String())
	})
}

func TestNearest(t *testing.T) {
	centroids := [][]float64{
		{0, 0},   // 0
		{10, 10}, // 1
		{20, 20}, // 2
		{0, 0},   // 3, duplicate of 0
	}

	idx, d := Nearest([]float64{1, 1}, centroids, distance.SquaredEuclidean)
	assert.Equal(t, 0, idx, "ties go to the lowest index")
	assert.InDelta(t, 2.0, d, 1e-12)

	idx, _ = Nearest([]float64{5, 5}, centroids[:2], distance.SquaredEuclidean)
	assert.Equal(t, 0, idx, "equidistant point goes to the lowest index")

	idx, _ = Nearest([]float64{19, 19}, centroids, distance.SquaredEuclidean)
	assert.Equal(t, 2, idx)
}

func TestNearestN(t *testing.T) {
	centroids := [][]float64{
		{0, 0},   // 0
		{10, 10}, // 1
		{20, 20}, // 2
	}

	res := NearestN([]float64{1, 1}, centroids, 2, distance.SquaredEuclidean)
	assert.Equal(t, []int{0, 1}, res)

	res = NearestN([]float64{19, 19}, centroids, 1, distance.SquaredEuclidean)
	assert.Equal(t, []int{2}, res)

	res = NearestN([]float64{19, 19}, centroids, 10, distance.SquaredEuclidean)
	assert.Equal(t, []int{2, 1, 0}, res)

	assert.Nil(t, NearestN([]float64{0, 0}, centroids, 0, distance.SquaredEuclidean))
}

func TestAssigner(t *testing.T) {
	points := testutil.NewRNG(11).UniformVectors(100, 2)
	centroids := [][]float64{{0, 0}, {1, 1}, {0, 1}}

	want := make([]int, len(points))
	NewAssigner(distance.SquaredEuclidean, 1, 0).Assign(points, centroids, want, nil)

	for _, threads := range []int{2, 5, 200} {
		a := NewAssigner(distance.SquaredEuclidean, threads, 7)
		got := make([]int, len(points))
		for i := range got {
			got[i] = -1
		}
		partials := newPartials(a.numBlocks(len(points)), len(centroids), 2)
		a.Assign(points, centroids, got, partials)
		assert.Equal(t, want, got, "threads=%d", threads)

		changed, _ := totals(partials)
		assert.Equal(t, len(points), changed)

		sums := [][]float64{make([]float64, 2), make([]float64, 2), make([]float64, 2)}
		counts := make([]int, 3)
		NewReducer(threads).Reduce(partials, sums, counts)
		assert.Equal(t, len(points), counts[0]+counts[1]+counts[2])
	}
}
