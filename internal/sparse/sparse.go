// Package sparse provides a sparse set of program counters.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its elements in insertion order. The PikeVM keeps
// one set per input position; insertion order is the order in which threads
// were reached, which keeps the simulation deterministic.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
// The sparse array maps values to indices in the dense array; stale entries
// left behind by Clear are rejected by the cross-check in Contains.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // members, in insertion order
}

// NewSparseSet creates a new sparse set for values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was newly added.
// Panics if value >= capacity.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity <= MaxUint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty returns true if the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the exclusive upper bound on storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}

// Resize changes the capacity. Growing keeps the elements; shrinking clears
// the set because existing members may no longer fit.
func (s *SparseSet) Resize(capacity uint32) {
	if int(capacity) <= len(s.sparse) {
		if int(capacity) < len(s.sparse) {
			s.sparse = s.sparse[:capacity]
			s.dense = s.dense[:0]
		}
		return
	}
	sparse := make([]uint32, capacity)
	copy(sparse, s.sparse)
	dense := make([]uint32, len(s.dense), capacity)
	copy(dense, s.dense)
	s.sparse = sparse
	s.dense = dense
}
