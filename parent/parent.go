// Package parent stores per-round parent tuples for journey unwinding,
// generalizing DataStructures/Container/Parent.h (_examples/original_source)
// from a vector-of-vectors of a single packed integer into a Go generic
// dense value store: round x element -> T, fill-on-demand rather than
// pre-filled per round.
package parent

import "github.com/transitcore/tripbased/util"

// Store holds one T per (round, element) where element ranges over a dense
// id space (TripId or StopId depending on use). Rounds are allocated
// lazily: a round only grows storage the first time it's touched, mirroring
// the original's per-round vector push.
type Store[T any] struct {
	numElements int
	rounds      []util.Array[T] // rounds[n] is nil until first touched
}

func New[T any](numElements int) *Store[T] {
	return &Store[T]{numElements: numElements}
}

func (self *Store[T]) ensure(round int) util.Array[T] {
	for len(self.rounds) <= round {
		self.rounds = append(self.rounds, nil)
	}
	if self.rounds[round] == nil {
		self.rounds[round] = util.NewArray[T](self.numElements)
	}
	return self.rounds[round]
}

// Set records the parent value of element at round.
func (self *Store[T]) Set(round int, element int, value T) {
	self.ensure(round)[element] = value
}

// Get returns the parent value of element at round. The round must have
// been touched by a prior Set — callers only read rounds their own search
// has written, per the DAG structure of parent chains (spec.md §9).
func (self *Store[T]) Get(round int, element int) T {
	return self.rounds[round][element]
}

// IsValid reports whether round has been touched at all.
func (self *Store[T]) IsValid(round int) bool {
	return round < len(self.rounds) && self.rounds[round] != nil
}

// Clear truncates the round list to zero length; the old rounds' backing
// arrays are reallocated when those rounds are next touched. Called once per
// source-stop run start (spec.md §4.5 step 1).
func (self *Store[T]) Clear() {
	self.rounds = self.rounds[:0]
}
