package kmeans

import (
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// Members is the set of point indices assigned to one cluster.
// It wraps a 32-bit Roaring Bitmap.
type Members struct {
	rb *roaring.Bitmap
}

func newMembers() *Members {
	return &Members{
		rb: roaring.New(),
	}
}

// Contains checks if point i belongs to the cluster.
func (m *Members) Contains(i int) bool {
	return m.rb.Contains(uint32(i))
}

// IsEmpty returns true if the cluster has no points.
func (m *Members) IsEmpty() bool {
	return m.rb.IsEmpty()
}

// Cardinality returns the number of points in the cluster.
func (m *Members) Cardinality() int {
	return int(m.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (m *Members) Clone() *Members {
	return &Members{
		rb: m.rb.Clone(),
	}
}

// Iterator returns the point indices in ascending order.
func (m *Members) Iterator() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// ToSlice returns the point indices in ascending order.
func (m *Members) ToSlice() []int {
	out := make([]int, 0, m.rb.GetCardinality())
	for i := range m.Iterator() {
		out = append(out, i)
	}
	return out
}

// And intersects m with other in place.
func (m *Members) And(other *Members) {
	m.rb.And(other.rb)
}

// Or unions other into m in place.
func (m *Members) Or(other *Members) {
	m.rb.Or(other.rb)
}

// IntersectionCount returns |m ∩ other| without materializing it.
func (m *Members) IntersectionCount(other *Members) int {
	return int(m.rb.AndCardinality(other.rb))
}

// maxMembers is the largest point count a 32-bit bitmap can index.
var maxMembers uint64 = math.MaxUint32

// Partition groups point indices by cluster.
type Partition struct {
	members []*Members
}

// NewPartition builds a partition of k clusters from per-point labels.
// Every label must lie in [0, k).
func NewPartition(assignments []int, k int) (*Partition, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidArgument, k)
	}
	if uint64(len(assignments)) > maxMembers {
		return nil, fmt.Errorf("%w: %d points exceed the partition limit of %d", ErrInvalidArgument, len(assignments), maxMembers)
	}
	p := &Partition{members: make([]*Members, k)}
	for c := range p.members {
		p.members[c] = newMembers()
	}
	for i, c := range assignments {
		if c < 0 || c >= k {
			return nil, fmt.Errorf("%w: point %d has label %d outside [0, %d)", ErrInvalidArgument, i, c, k)
		}
		p.members[c].rb.Add(uint32(i))
	}
	return p, nil
}

// K returns the number of clusters.
func (p *Partition) K() int { return len(p.members) }

// Members returns the members of cluster c. Callers must not modify it.
func (p *Partition) Members(c int) *Members { return p.members[c] }

// Sizes returns the number of points in each cluster.
func (p *Partition) Sizes() []int {
	sizes := make([]int, len(p.members))
	for c, m := range p.members {
		sizes[c] = m.Cardinality()
	}
	return sizes
}

// Empty returns the indices of clusters without points.
func (p *Partition) Empty() []int {
	var out []int
	for c, m := range p.members {
		if m.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}
