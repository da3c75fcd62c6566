package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	assert.True(t, s.IsEmpty(), "new set should be empty")
	assert.False(t, s.Contains(0), "empty set should not contain 0")

	assert.True(t, s.Insert(5), "first insert should return true")
	assert.True(t, s.Contains(5))
	assert.False(t, s.Insert(5), "duplicate insert should return false")
	assert.Equal(t, 1, s.Len())

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	assert.Equal(t, 4, s.Len())

	s.Clear()
	assert.True(t, s.IsEmpty(), "set should be empty after clear")
	assert.False(t, s.Contains(5))
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	for _, v := range []uint32{5, 2, 8, 1} {
		s.Insert(v)
	}
	assert.Equal(t, []uint32{5, 2, 8, 1}, s.Values())
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	assert.False(t, s.Contains(4))
	assert.False(t, s.Contains(1<<31))
	assert.Panics(t, func() { s.Insert(4) })
}

func TestSparseSet_CrossValidation(t *testing.T) {
	// Stale sparse entries left by Clear must not produce false positives.
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(10)
	s.Clear()

	assert.False(t, s.Contains(5))
	assert.False(t, s.Contains(10))

	s.Insert(3)
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(5))
	assert.False(t, s.Contains(10))
}

func TestSparseSet_ClearPreservesCapacity(t *testing.T) {
	s := NewSparseSet(100)
	for i := uint32(0); i < 50; i++ {
		s.Insert(i)
	}
	s.Clear()
	for i := uint32(0); i < 50; i++ {
		s.Insert(i)
	}
	assert.Equal(t, 50, s.Len())
	assert.Equal(t, 100, s.Capacity())
}

func TestSparseSet_Resize(t *testing.T) {
	s := NewSparseSet(10)
	s.Insert(5)
	s.Insert(7)

	s.Resize(100)
	require.Equal(t, 100, s.Capacity())
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(7))
	assert.True(t, s.Insert(99))

	s.Resize(100)
	assert.Equal(t, 3, s.Len(), "same capacity keeps elements")

	s.Resize(50)
	assert.Equal(t, 0, s.Len(), "shrink should clear")
	assert.Equal(t, 50, s.Capacity())
}

func BenchmarkSparseSet_Insert(b *testing.B) {
	s := NewSparseSet(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		for j := uint32(0); j < 100; j++ {
			s.Insert(j)
		}
	}
}
