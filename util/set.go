package util

import "sort"

// IndexedSet mirrors the original's IndexedSet<false, T> (insertion-order
// vector with a seen-bitmap, used by DataStructures/Container in the
// original for reachedRoutes/stopsToUpdate): membership test is O(1) and
// iteration follows insertion order, but unlike a map the backing storage
// is reused across clear() calls with no reallocation.
type IndexedSet[T Ordinal] struct {
	seen   []bool
	values List[T]
}

// Ordinal is satisfied by any of this module's dense id newtypes.
type Ordinal interface {
	~int32
}

func NewIndexedSet[T Ordinal](universeSize int) IndexedSet[T] {
	return IndexedSet[T]{
		seen:   make([]bool, universeSize),
		values: NewList[T](universeSize / 8),
	}
}

func (self *IndexedSet[T]) Insert(value T) {
	if self.seen[int32(value)] {
		return
	}
	self.seen[int32(value)] = true
	self.values.Add(value)
}

func (self *IndexedSet[T]) Contains(value T) bool {
	return self.seen[int32(value)]
}

func (self *IndexedSet[T]) Values() List[T] {
	return self.values
}

func (self *IndexedSet[T]) Clear() {
	for _, v := range self.values {
		self.seen[int32(v)] = false
	}
	self.values.Clear()
}

func (self *IndexedSet[T]) Sort(less func(a, b T) bool) {
	sort.Slice(self.values, func(i, j int) bool {
		return less(self.values[i], self.values[j])
	})
}
