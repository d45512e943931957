package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	p, err := NewPartition([]int{0, 2, 0, 2, 2}, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, p.K())
	assert.Equal(t, []int{2, 0, 3, 0}, p.Sizes())
	assert.Equal(t, []int{1, 3}, p.Empty())
	assert.Equal(t, []int{0, 2}, p.Members(0).ToSlice())
	assert.Equal(t, []int{1, 3, 4}, p.Members(2).ToSlice())

	_, err = NewPartition([]int{0, 4}, 4)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPartition([]int{-1}, 4)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPartition(nil, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMembers(t *testing.T) {
	p, err := NewPartition([]int{0, 1, 0, 1, 0}, 2)
	require.NoError(t, err)

	a := p.Members(0)
	assert.True(t, a.Contains(0))
	assert.False(t, a.Contains(1))
	assert.Equal(t, 3, a.Cardinality())
	assert.False(t, a.IsEmpty())

	b := p.Members(1)
	assert.Equal(t, 0, a.IntersectionCount(b))

	union := a.Clone()
	union.Or(b)
	assert.Equal(t, 5, union.Cardinality())
	assert.Equal(t, 3, a.Cardinality())

	union.And(b)
	assert.Equal(t, []int{1, 3}, union.ToSlice())

	var first []int
	for i := range a.Iterator() {
		first = append(first, i)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 2}, first)
}

func TestPartition_TooManyPoints(t *testing.T) {
	old := maxMembers
	maxMembers = 3
	t.Cleanup(func() { maxMembers = old })

	_, err := NewPartition([]int{0, 1, 0, 1}, 2)
	require.ErrorIs(t, err, ErrInvalidArgument)

	p, err := NewPartition([]int{0, 1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, p.Sizes())
}
