// Package reached implements the two reached-index stores of spec.md §4.2:
// runReachedIndex (current departure-time group, reset by each group's
// Search.clear) and
// profileReachedIndex (per round, persists for the whole source-stop run).
// Grounded on the original's DataStructures/TripBased/ReachedIndex.h
// conventions as referenced from CanonicalOneToAllProfileTB.h
// (_examples/original_source), generalized into Go using this module's
// util.Array in place of std::vector<uint16_t>.
package reached

import (
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// RunIndex tracks, for each trip, the smallest stop-index already reached
// while scanning the current departure-time group; it is not reset between
// rounds of that group. The sentinel value is the trip's route length
// (one past the last valid stop-index), meaning "not reached".
type RunIndex struct {
	stopIndex    util.Array[transit.StopIndex]
	routeLength  util.Array[transit.StopIndex] // stop count of the trip's route, indexed by trip
}

func NewRunIndex(data *transit.Data) *RunIndex {
	n := data.NumberOfTrips()
	self := &RunIndex{
		stopIndex:   util.NewArray[transit.StopIndex](n),
		routeLength: routeLengths(data, n),
	}
	self.Clear()
	return self
}

func routeLengths(data *transit.Data, numTrips int) util.Array[transit.StopIndex] {
	out := util.NewArray[transit.StopIndex](numTrips)
	for t := 0; t < numTrips; t++ {
		out[t] = transit.StopIndex(data.Route(data.RouteOfTrip(transit.TripId(t))).StopCount())
	}
	return out
}

func (self *RunIndex) AlreadyReached(trip transit.TripId, idx transit.StopIndex) bool {
	return self.stopIndex[trip] <= idx
}

func (self *RunIndex) Update(trip transit.TripId, idx transit.StopIndex) {
	if idx < self.stopIndex[trip] {
		self.stopIndex[trip] = idx
	}
}

func (self *RunIndex) Get(trip transit.TripId) transit.StopIndex {
	return self.stopIndex[trip]
}

func (self *RunIndex) Clear() {
	for t := range self.stopIndex {
		self.stopIndex[t] = self.routeLength[t]
	}
}

// profileColumns is one wider than transit.MaxRounds: the round-scan writes
// and (unconditionally) reads round n+1 for n up to transit.MaxRounds-1, so
// round 0..transit.MaxRounds is addressable, not just 0..transit.MaxRounds-1.
// CanonicalOneToAllProfileTB.h's profileReachedIndex is dimensioned the same
// way — one column past MAX_ROUNDS — for exactly this reason.
const profileColumns = transit.MaxRounds + 1

// ProfileIndex tracks, per trip and per round 0..MAX_ROUNDS, the smallest
// stop-index reached in that round across the whole profile sweep for one
// source stop. Laid out row-major by trip (spec.md §9's SIMD note: each
// trip's columns are contiguous, fit for batched comparisons even without
// explicit SIMD intrinsics).
type ProfileIndex struct {
	stopIndex   util.Array[transit.StopIndex] // [trip*profileColumns + round]
	routeLength util.Array[transit.StopIndex]
	numTrips    int
}

func NewProfileIndex(data *transit.Data) *ProfileIndex {
	n := data.NumberOfTrips()
	self := &ProfileIndex{
		stopIndex:   util.NewArray[transit.StopIndex](n * profileColumns),
		routeLength: routeLengths(data, n),
		numTrips:    n,
	}
	self.Clear()
	return self
}

func (self *ProfileIndex) AlreadyReached(trip transit.TripId, idx transit.StopIndex, round int) bool {
	return self.stopIndex[int(trip)*profileColumns+round] <= idx
}

func (self *ProfileIndex) Update(trip transit.TripId, idx transit.StopIndex, round int) {
	slot := int(trip)*profileColumns + round
	if idx < self.stopIndex[slot] {
		self.stopIndex[slot] = idx
	}
}

func (self *ProfileIndex) Get(trip transit.TripId, round int) transit.StopIndex {
	return self.stopIndex[int(trip)*profileColumns+round]
}

// Clear resets every (trip, round) cell to "not reached" — called once per
// source-stop run (spec.md §4.5 step 1), never per departure-time group.
func (self *ProfileIndex) Clear() {
	for t := 0; t < self.numTrips; t++ {
		for round := 0; round < profileColumns; round++ {
			self.stopIndex[t*profileColumns+round] = self.routeLength[t]
		}
	}
}
