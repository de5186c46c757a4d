package util

import "container/heap"

// PriorityQueue is a thin generic wrapper around container/heap, grounded
// on the teacher's NewPriorityQueue[TransitItem, int32] usage in
// algorithm/transit_dijkstra.go. Not used on the Trip-Based round-scan hot
// path (that uses a plain slice sorted per round, per spec.md §4.4); used by
// profile.CollectDepartures to merge each touched route's departures into
// one DepTime-ascending stream.
type PriorityQueue[T any, P int32 | int | int64] struct {
	items *pqItems[T, P]
}

func NewPriorityQueue[T any, P int32 | int | int64](capacity int) PriorityQueue[T, P] {
	items := make(pqItems[T, P], 0, capacity)
	h := &items
	heap.Init(h)
	return PriorityQueue[T, P]{items: h}
}

func (self *PriorityQueue[T, P]) Enqueue(value T, priority P) {
	heap.Push(self.items, pqEntry[T, P]{value: value, priority: priority})
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if self.items.Len() == 0 {
		var zero T
		return zero, false
	}
	entry := heap.Pop(self.items).(pqEntry[T, P])
	return entry.value, true
}

func (self *PriorityQueue[T, P]) Len() int {
	return self.items.Len()
}

type pqEntry[T any, P int32 | int | int64] struct {
	value    T
	priority P
}

type pqItems[T any, P int32 | int | int64] []pqEntry[T, P]

func (self pqItems[T, P]) Len() int            { return len(self) }
func (self pqItems[T, P]) Less(i, j int) bool  { return self[i].priority < self[j].priority }
func (self pqItems[T, P]) Swap(i, j int)       { self[i], self[j] = self[j], self[i] }
func (self *pqItems[T, P]) Push(x interface{}) { *self = append(*self, x.(pqEntry[T, P])) }
func (self *pqItems[T, P]) Pop() interface{} {
	old := *self
	n := len(old)
	item := old[n-1]
	*self = old[:n-1]
	return item
}
