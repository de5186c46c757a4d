package ptl

import (
	"sort"

	"github.com/transitcore/tripbased/profiler"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// Query holds one worker's private state for running PTL queries against a
// shared, read-only Data — mirrors tripbased.Search's ownership model
// (spec.md §3 Ownership, §5 Shared-resource policy): not safe for
// concurrent use, one Query per worker, reused across queries.
type Query[P profiler.Profiler] struct {
	data *Data
	hash util.Dict[uint32, struct{}]

	startingVertex transit.StopEventId
	profiler       P
}

// New builds a Query instantiated for profiler kind P, following the same
// explicit-prof-argument convention as tripbased.New (no usable zero value
// for an arbitrary P).
func New[P profiler.Profiler](data *Data, prof P) *Query[P] {
	return &Query[P]{
		data:     data,
		hash:     util.NewDict[uint32, struct{}](0),
		profiler: prof,
	}
}

// Run answers spec.md §4.6's query: the earliest arrival at target reachable
// by boarding at source no earlier than departureTime, decided by sorted
// hub-set intersection rather than a round-by-round scan. The result is
// util.None if no reachable departure event exists at source, or no arrival
// event at target shares a hub with it (⊥) — mirroring the teacher's
// comps.IWeighting.GetNextWeight, which reports its own "no such edge" case
// the same way instead of a second bool return.
func (self *Query[P]) Run(source transit.StopId, departureTime int32, target transit.StopId) util.Optional[int32] {
	self.profiler.StartRun()
	defer self.profiler.DoneRun()

	self.profiler.StartPhase()
	ok := self.prepareStartingVertex(source, departureTime)
	self.profiler.DonePhase(profiler.PhaseFindFirstVertex)
	if !ok {
		return util.None[int32]()
	}

	self.profiler.StartPhase()
	self.prepareSet()
	self.profiler.DonePhase(profiler.PhaseInsertHash)

	self.profiler.StartPhase()
	arrivals := self.data.ArrivalsAtStop(target)
	left := self.getIndexOfFirstEventAfterTime(arrivals, departureTime)
	arrivalTime, found := self.scanHubsBinary(arrivals, left)
	self.profiler.DonePhase(profiler.PhaseRunQuery)

	if !found {
		return util.None[int32]()
	}
	return util.Some(arrivalTime)
}

// RunLinear is Run but selects the linear scan strategy of spec.md §4.6
// step 4 instead of the binary one — both are spec-compliant; Run's binary
// strategy is this module's default, matching Query::run<BINARY=true>'s
// default template argument in the original.
func (self *Query[P]) RunLinear(source transit.StopId, departureTime int32, target transit.StopId) util.Optional[int32] {
	self.profiler.StartRun()
	defer self.profiler.DoneRun()

	self.profiler.StartPhase()
	ok := self.prepareStartingVertex(source, departureTime)
	self.profiler.DonePhase(profiler.PhaseFindFirstVertex)
	if !ok {
		return util.None[int32]()
	}

	self.profiler.StartPhase()
	self.prepareSet()
	self.profiler.DonePhase(profiler.PhaseInsertHash)

	self.profiler.StartPhase()
	arrivals := self.data.ArrivalsAtStop(target)
	left := self.getIndexOfFirstEventAfterTime(arrivals, departureTime)
	arrivalTime, found := self.scanHubs(arrivals, left)
	self.profiler.DonePhase(profiler.PhaseRunQuery)

	if !found {
		return util.None[int32]()
	}
	return util.Some(arrivalTime)
}

// prepareStartingVertex finds the earliest departure event at stop with
// time >= time (spec.md §4.6 step 1). Returns false ("did we reach any
// transfer node?") if source has no departure event at or after time.
func (self *Query[P]) prepareStartingVertex(stop transit.StopId, time int32) bool {
	departures := self.data.DeparturesAtStop(stop)
	idx := sort.Search(len(departures), func(i int) bool {
		return self.data.DepartureTime(departures[i]) >= time
	})
	if idx >= len(departures) {
		return false
	}
	self.startingVertex = departures[idx]
	return true
}

// prepareSet builds the hash set H := fwdLabels[firstEvent] (spec.md §4.6
// step 2).
func (self *Query[P]) prepareSet() {
	for hub := range self.hash {
		self.hash.Delete(hub)
	}
	for _, hub := range self.data.FwdHubs(self.startingVertex) {
		self.hash.Set(hub, struct{}{})
		self.profiler.CountMetric(profiler.MetricHubsInserted)
	}
}

// getIndexOfFirstEventAfterTime binary-searches the smallest index left
// with timeOf(arrEvents[left]) >= time (spec.md §4.6 step 3).
func (self *Query[P]) getIndexOfFirstEventAfterTime(arrEvents []transit.StopEventId, time int32) int {
	return sort.Search(len(arrEvents), func(i int) bool {
		return self.data.ArrivalTime(arrEvents[i]) >= time
	})
}

// scanHubs is the linear strategy of spec.md §4.6 step 4: the first hit
// wins.
func (self *Query[P]) scanHubs(arrEvents []transit.StopEventId, left int) (int32, bool) {
	for i := left; i < len(arrEvents); i++ {
		event := arrEvents[i]
		self.profiler.CountMetric(profiler.MetricEventsChecked)

		for _, hub := range self.data.BwdHubs(event) {
			self.profiler.CountMetric(profiler.MetricHubsChecked)
			if self.hash.ContainsKey(hub) {
				self.profiler.CountMetric(profiler.MetricFoundSolutions)
				return self.data.ArrivalTime(event), true
			}
		}
	}
	return -1, false
}

// scanHubsBinary is the binary strategy of spec.md §4.6 step 4, relying on
// the monotonicity invariant documented there: once some arrival event
// intersects H, every later arrival event also does. Ported literally from
// Algorithms/PTL/Query.h::scanHubsBinary, including its final check — the
// loop narrows [i, j] until i==j, and only that final index is ever
// returned as a hit; an arrEvents of length 1 is never actually probed and
// always reports ⊥, matching the original exactly.
func (self *Query[P]) scanHubsBinary(arrEvents []transit.StopEventId, left int) (int32, bool) {
	if left >= len(arrEvents) {
		return -1, false
	}
	i := left
	j := len(arrEvents) - 1

	for i < j {
		mid := i + (j-i)/2
		event := arrEvents[mid]
		self.profiler.CountMetric(profiler.MetricEventsChecked)

		found := false
		for _, hub := range self.data.BwdHubs(event) {
			self.profiler.CountMetric(profiler.MetricHubsChecked)
			if self.hash.ContainsKey(hub) {
				found = true
				break
			}
		}

		if found {
			j = mid
		} else {
			i = mid + 1
		}
	}

	if i == len(arrEvents)-1 {
		return -1, false
	}
	self.profiler.CountMetric(profiler.MetricFoundSolutions)
	return self.data.ArrivalTime(arrEvents[i]), true
}

// RunQuery is the programmatic entry point spec.md §6 names
// (`runPTLQuery(sourceStop, departureTime, targetStop)`), a NoOp-profiled
// one-shot convenience over Query that builds a fresh Query per call; a
// caller answering many queries can build one *Query[P] with New and call
// Run on it directly, as profile.RunOneToAllProfile does with a
// caller-owned Search.
func RunQuery(data *Data, source transit.StopId, departureTime int32, target transit.StopId) util.Optional[int32] {
	q := New[profiler.NoOp](data, profiler.NoOp{})
	return q.Run(source, departureTime, target)
}
