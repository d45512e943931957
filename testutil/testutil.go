package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// GaussianVectors generates random vectors with values from a standard normal distribution.
func (r *RNG) GaussianVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}

	return vectors
}

// Labels returns num labels drawn uniformly from [0, k).
func (r *RNG) Labels(num, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels := make([]int, num)
	for i := range labels {
		labels[i] = r.rand.Intn(k)
	}
	return labels
}

// Component is one Gaussian of a mixture.
type Component struct {
	Mean []float64
	// Covariance is the row-major dim x dim covariance matrix.
	Covariance []float64
	Weight     float64
}

// Mixture is a weighted set of Gaussians with a shared dimensionality.
type Mixture struct {
	Components []Component
}

// FiveGaussians returns the two-dimensional mixture used throughout the
// clustering tests: centres (0,0), (5,5), (2.5,2.5), (10,0) and (-1,0).
func FiveGaussians() Mixture {
	return Mixture{Components: []Component{
		{Mean: []float64{0, 0}, Covariance: []float64{1, 0, 0, 1}, Weight: 0.1},
		{Mean: []float64{5, 5}, Covariance: []float64{1, 0.5, 0.5, 1}, Weight: 0.35},
		{Mean: []float64{2.5, 2.5}, Covariance: []float64{0.1, 0, 0, 0.1}, Weight: 0.05},
		{Mean: []float64{10, 0}, Covariance: []float64{1, 0, 0, 1}, Weight: 0.25},
		{Mean: []float64{-1, 0}, Covariance: []float64{1, 0, 0, 1}, Weight: 0.25},
	}}
}

// Sample draws num points from m. The returned labels hold the index of
// the component each point came from.
func (r *RNG) Sample(m Mixture, num int) ([][]float64, []int, error) {
	if len(m.Components) == 0 {
		return nil, nil, fmt.Errorf("mixture has no components")
	}
	dim := len(m.Components[0].Mean)

	factors := make([]*mat.TriDense, len(m.Components))
	var totalWeight float64
	for c, comp := range m.Components {
		if len(comp.Mean) != dim || len(comp.Covariance) != dim*dim {
			return nil, nil, fmt.Errorf("component %d: shape does not match dimension %d", c, dim)
		}
		var chol mat.Cholesky
		if ok := chol.Factorize(mat.NewSymDense(dim, comp.Covariance)); !ok {
			return nil, nil, fmt.Errorf("component %d: covariance is not positive definite", c)
		}
		var l mat.TriDense
		chol.LTo(&l)
		factors[c] = &l
		totalWeight += comp.Weight
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	labels := make([]int, num)
	z := make([]float64, dim)

	for i := range num {
		c := pick(m.Components, r.rand.Float64()*totalWeight)
		for j := range z {
			z[j] = r.rand.NormFloat64()
		}

		// x = mean + L z
		vec := data[i*dim : (i+1)*dim]
		l := factors[c]
		for row := range dim {
			v := m.Components[c].Mean[row]
			for col := 0; col <= row; col++ {
				v += l.At(row, col) * z[col]
			}
			vec[row] = v
		}
		points[i] = vec
		labels[i] = c
	}

	return points, labels, nil
}

func pick(components []Component, target float64) int {
	var cum float64
	for c, comp := range components {
		cum += comp.Weight
		if target < cum {
			return c
		}
	}
	return len(components) - 1
}
