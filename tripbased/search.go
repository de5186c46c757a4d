// Package tripbased implements the round-by-round Trip-Based search core of
// spec.md §4.3/§4.4 (component 6), plus the per-source-stop run loop that
// drives it across a source stop's departure anchors (the orchestration
// half of component 7 — package profile owns only departure collection and
// the public entry point, since in the original these are all methods of
// one class sharing one mutable struct). Grounded directly on
// Algorithms/TripBased/Preprocessing/CanonicalOneToAllProfileTB.h
// (_examples/original_source), generalized into Go with the search made
// generic over a profiler.Profiler type parameter per spec.md §9's
// monomorphised-profiler design note.
package tripbased

import (
	"sort"

	"github.com/transitcore/tripbased/edgeflags"
	"github.com/transitcore/tripbased/label"
	"github.com/transitcore/tripbased/parent"
	"github.com/transitcore/tripbased/profiler"
	"github.com/transitcore/tripbased/reached"
	"github.com/transitcore/tripbased/splitgraph"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// Search holds one worker's private state for processing one source stop
// at a time (spec.md §3 Ownership, §5 Shared-resource policy). Not safe for
// concurrent use by multiple goroutines; the orchestrator gives each worker
// its own Search.
type Search[P profiler.Profiler] struct {
	data        *transit.Data
	split       *splitgraph.SplitStopEventGraph
	routeLabels []transit.RouteLabel
	edgeLabels  []edgeLabel

	runIndex     *reached.RunIndex
	profileIndex *reached.ProfileIndex
	targets      *label.Table
	parentOfTrip *parent.Store[parent.TripParent]
	parentOfStop *parent.Store[parent.StopParent]

	queue      []TripLabel
	roundBegin int
	roundEnd   int

	transferFromSource util.Array[int32]
	touchedFromSource   util.List[transit.StopId]
	lastSource          transit.StopId
	sourceStop          transit.StopId

	stopsToUpdate util.IndexedSet[transit.StopId]

	flags *edgeflags.Matrix

	profiler P

	// roundCap bounds scanTrips' round loop; reached.ProfileIndex is always
	// sized for transit.MaxRounds+1 columns regardless of this value, since
	// the array's width is a structural property of the algorithm (spec.md
	// §9), not a runtime tuning knob.
	roundCap int
}

// New builds a Search over a shared, read-only dataset and split graph.
// numPartitions sizes the private edge-flag matrix this worker accumulates
// into before the orchestrator merges it into the shared matrix. roundCap
// bounds how many Trip-Based rounds a profile sweep runs before giving up
// on improving a target (config.PreprocessingOptions.RoundCap); roundCap
// <= 0 defaults to transit.MaxRounds. prof is the initial profiler instance
// (profiler.NoOp{} on the hot query path, a fresh *profiler.Aggregating on
// a diagnostics path) — required explicitly because Go generics give no
// way to default-construct an arbitrary P, and *Aggregating's zero value
// is a nil pointer unusable via its methods.
func New[P profiler.Profiler](data *transit.Data, split *splitgraph.SplitStopEventGraph,
	routeLabels []transit.RouteLabel, numPartitions int, roundCap int, prof P) *Search[P] {

	if roundCap <= 0 {
		roundCap = transit.MaxRounds
	}

	self := &Search[P]{
		data:        data,
		split:       split,
		routeLabels: routeLabels,
		edgeLabels:  buildEdgeLabels(data, split),

		runIndex:     reached.NewRunIndex(data),
		profileIndex: reached.NewProfileIndex(data),
		targets:      label.New(data.NumberOfStops()),
		parentOfTrip: parent.New[parent.TripParent](data.NumberOfTrips()),
		parentOfStop: parent.New[parent.StopParent](data.NumberOfStops()),

		transferFromSource: util.NewArray[int32](data.NumberOfStops()),
		touchedFromSource: util.NewList[transit.StopId](8),
		lastSource:        0, // matches the original's lastSource(StopId(0)); harmless first-touch reset
		sourceStop:        transit.NoStop,

		stopsToUpdate: util.NewIndexedSet[transit.StopId](data.NumberOfStops()),

		flags: edgeflags.New(split.NumLocalEdges+split.NumTransferEdges, numPartitions),

		profiler: prof,
		roundCap: roundCap,
	}
	for i := range self.transferFromSource {
		self.transferFromSource[i] = transit.Never
	}
	return self
}

// buildEdgeLabels precomputes the boarding stop-event for every split-graph
// edge, local edges first then transfer edges at the numLocalEdges offset —
// matching the original's constructor loop exactly.
func buildEdgeLabels(data *transit.Data, split *splitgraph.SplitStopEventGraph) []edgeLabel {
	out := make([]edgeLabel, split.NumLocalEdges+split.NumTransferEdges)
	for i := 0; i < split.NumLocalEdges; i++ {
		toVertex := split.ToLocalVertex[i]
		trip := data.TripOfStopEvent(toVertex)
		out[i] = edgeLabel{
			stopEvent:  toVertex + 1,
			trip:       trip,
			firstEvent: data.FirstStopEventOfTrip(trip),
		}
	}
	offset := split.NumLocalEdges
	for i := 0; i < split.NumTransferEdges; i++ {
		toVertex := split.ToTransferVertex[i]
		trip := data.TripOfStopEvent(toVertex)
		out[offset+i] = edgeLabel{
			stopEvent:  toVertex + 1,
			trip:       trip,
			firstEvent: data.FirstStopEventOfTrip(trip),
		}
	}
	return out
}

func (self *Search[P]) FlagMatrix() *edgeflags.Matrix { return self.flags }
func (self *Search[P]) Profiler() *P                  { return &self.profiler }

// Run executes spec.md §4.5's full canonical one-to-all profile protocol
// for one source stop: reset, compute initial transfers, the midnight
// roll-over EA query, then one scanTrips per group of departures sharing
// the same depTime. departures must be sorted by DepTime ascending
// (spec.md's "Inputs per source stop" contract) — see CollectDepartures.
func (self *Search[P]) Run(source transit.StopId, departures []TripStopIndex) {
	self.profiler.StartRun()
	defer self.profiler.DoneRun()

	self.sourceStop = source
	self.reset()
	self.computeInitialAndFinalTransfers()
	self.performOneEAQueryAtMidnight()

	i := 0
	for i < len(departures) {
		self.clear()
		depTime := departures[i].DepTime
		j := i
		for j < len(departures) && departures[j].DepTime == depTime {
			self.enqueueInitial(departures[j].Trip, departures[j].StopIndex+1)
			j++
		}
		self.scanTrips(depTime)
		self.unwindUpdatedStops()
		i = j
	}
}

func (self *Search[P]) performOneEAQueryAtMidnight() {
	self.evaluateInitialTransfersAtMidnight()
	self.scanTrips(midnightRollover)
	self.unwindUpdatedStops()
}

func (self *Search[P]) unwindUpdatedStops() {
	for _, stop := range self.stopsToUpdate.Values() {
		self.unwindJourneys(stop)
	}
}

// reset clears everything scoped to a whole source-stop run (spec.md §4.5
// step 1): profileReachedIndex and target labels persist across departure
// groups within a run but not across runs.
func (self *Search[P]) reset() {
	self.profileIndex.Clear()
	self.targets.Reset()
	self.clear()
}

// clear resets the per-departure-group transient state (spec.md §4.5 step
// 4): queue, runReachedIndex, change-bits, stopsToUpdate — explicitly not
// profileReachedIndex nor target labels.
func (self *Search[P]) clear() {
	self.queue = self.queue[:0]
	self.roundBegin = 0
	self.roundEnd = 0
	self.runIndex.Clear()
	self.targets.ClearChangeBits()
	self.stopsToUpdate.Clear()
}

// computeInitialAndFinalTransfers resets only the transferFromSource
// entries touched by the previous source, then repopulates them for the
// new source stop (spec.md §4.3 step 1).
func (self *Search[P]) computeInitialAndFinalTransfers() {
	self.transferFromSource[self.lastSource] = transit.Never
	for _, stop := range self.touchedFromSource {
		self.transferFromSource[stop] = transit.Never
	}
	self.touchedFromSource.Clear()

	self.transferFromSource[self.sourceStop] = 0
	self.data.Raptor.TransferGraph.ForEdgesFrom(int32(self.sourceStop), func(to int32, weight int32) {
		self.transferFromSource[to] = weight
		self.touchedFromSource.Add(transit.StopId(to))
	})
	self.lastSource = self.sourceStop
}

// evaluateInitialTransfersAtMidnight implements spec.md §4.3's route-label
// lower-bound search, anchored at 24:00:00 (the only caller that needs the
// general route-scanning expansion; all other departure anchors arrive
// pre-collected via CollectDepartures/TripStopIndex).
func (self *Search[P]) evaluateInitialTransfersAtMidnight() {
	routes := self.collectTouchedRoutes()

	for _, r := range routes {
		self.profiler.CountMetric(profiler.MetricRoutesScanned)
		routeLabel := &self.routeLabels[r]
		route := self.data.Route(r)
		end := routeLabel.End()
		numTrips := int(routeLabel.NumTrips)
		firstTrip := route.FirstTrip

		tripIndex := -1 // sentinel: "no candidate chosen yet", mirrors noTripId
		for stopIndex := transit.StopIndex(0); stopIndex < end; stopIndex++ {
			stop := route.Stops[stopIndex]
			timeFromSource := self.transferFromSource[stop]
			if timeFromSource == transit.Never {
				continue
			}
			stopDepartureTime := midnightRollover + timeFromSource
			base := int(stopIndex) * numTrips

			if tripIndex < 0 || tripIndex >= numTrips {
				tripIndex = lowerBoundTrip(routeLabel.DepartureTimes[base:base+numTrips], stopDepartureTime)
				if tripIndex >= numTrips {
					continue
				}
			} else {
				if routeLabel.DepartureTimes[base+tripIndex-1] < stopDepartureTime {
					continue
				}
				tripIndex--
				for tripIndex > 0 && routeLabel.DepartureTimes[base+tripIndex-1] >= stopDepartureTime {
					tripIndex--
				}
			}

			self.enqueueInitial(firstTrip+transit.TripId(tripIndex), stopIndex+1)
			if tripIndex == 0 {
				break
			}
		}
	}
}

func lowerBoundTrip(departureTimes []int32, target int32) int {
	return sort.Search(len(departureTimes), func(i int) bool {
		return departureTimes[i] >= target
	})
}

// collectTouchedRoutes gathers the routes reachable from the source stop
// itself and from every stop reachable via one transfer-graph edge,
// deduplicated and sorted by RouteId for cache-friendly iteration order
// (spec.md §4.3 step 2).
func (self *Search[P]) collectTouchedRoutes() []transit.RouteId {
	seen := util.NewIndexedSet[transit.RouteId](self.data.NumberOfRoutes())
	for _, seg := range self.data.Raptor.RoutesContainingStop(self.sourceStop) {
		seen.Insert(seg.RouteId)
	}
	for _, stop := range self.touchedFromSource {
		for _, seg := range self.data.Raptor.RoutesContainingStop(stop) {
			seen.Insert(seg.RouteId)
		}
	}
	seen.Sort(func(a, b transit.RouteId) bool { return a < b })
	return seen.Values()
}

// scanTrips implements spec.md §4.4's round scan.
func (self *Search[P]) scanTrips(departureTime int32) {
	self.roundBegin = 0
	self.roundEnd = len(self.queue)

	for n := 1; self.roundBegin < self.roundEnd && n < self.roundCap; n++ {
		self.profiler.StartPhase()
		self.sortRoundSegment()
		self.scanArrivalsNoFootpath(n, departureTime)
		self.scanArrivalsWithFootpath(n, departureTime)
		self.scanLocalTransfers(n)
		self.scanFootpathTransfers(n)
		self.profiler.DonePhase(profiler.PhaseScanTrips)

		self.roundBegin = self.roundEnd
		self.roundEnd = len(self.queue)
	}
}

func (self *Search[P]) sortRoundSegment() {
	segment := self.queue[self.roundBegin:self.roundEnd]
	sort.SliceStable(segment, func(i, j int) bool {
		if segment[i].Begin != segment[j].Begin {
			return segment[i].Begin < segment[j].Begin
		}
		return segment[i].End < segment[j].End
	})
}

func (self *Search[P]) scanArrivalsNoFootpath(n int, departureTime int32) {
	for i := self.roundBegin; i < self.roundEnd; i++ {
		tl := self.queue[i]
		self.profiler.CountMetric(profiler.MetricTripsScanned)
		trip := self.data.TripOfStopEvent(tl.Begin)
		for j := tl.Begin; j < tl.End; j++ {
			ev := self.data.ArrivalEvents(j)
			self.addArrival(ev.Stop, ev.ArrivalTime, departureTime, n, trip, j)
		}
	}
}

func (self *Search[P]) scanArrivalsWithFootpath(n int, departureTime int32) {
	transferGraph := &self.data.Raptor.TransferGraph
	for i := self.roundBegin; i < self.roundEnd; i++ {
		tl := self.queue[i]
		trip := self.data.TripOfStopEvent(tl.Begin)
		for j := tl.Begin; j < tl.End; j++ {
			ev := self.data.ArrivalEvents(j)
			transferGraph.ForEdgesFrom(int32(ev.Stop), func(to int32, weight int32) {
				self.addArrival(transit.StopId(to), ev.ArrivalTime+weight, departureTime, n, trip, j)
			})
		}
	}
}

func (self *Search[P]) scanLocalTransfers(n int) {
	for i := self.roundBegin; i < self.roundEnd; i++ {
		tl := self.queue[i]
		for j := tl.Begin; j < tl.End; j++ {
			ev := self.data.ArrivalEvents(j)
			if ev.ArrivalTime > self.targets.Get(ev.Stop, n).ArrivalTime {
				continue
			}
			begin := self.split.BeginLocalEdgeFrom(int32(j))
			end := self.split.BeginLocalEdgeFrom(int32(j) + 1)
			for e := begin; e < end; e++ {
				self.enqueueFromEdge(int(e), n, j)
			}
		}
	}
}

func (self *Search[P]) scanFootpathTransfers(n int) {
	offset := self.split.NumLocalEdges
	for i := self.roundBegin; i < self.roundEnd; i++ {
		tl := self.queue[i]
		for j := tl.Begin; j < tl.End; j++ {
			ev := self.data.ArrivalEvents(j)
			if ev.ArrivalTime > self.targets.Get(ev.Stop, n).ArrivalTime {
				continue
			}
			begin := self.split.BeginTransferEdgeFrom(int32(j))
			end := self.split.BeginTransferEdgeFrom(int32(j) + 1)
			for e := begin; e < end; e++ {
				toStopEvent := self.split.ToTransferVertex[e]
				transferTime := self.split.TransferTime[e]
				toStop := self.data.GetStopOfStopEvent(toStopEvent)
				if ev.ArrivalTime+transferTime > self.targets.Get(toStop, n).ArrivalTime {
					continue
				}
				self.enqueueFromEdge(offset+int(e), n, j)
			}
		}
	}
}

// discard implements spec.md §4.4's four-condition prune test.
func (self *Search[P]) discard(trip transit.TripId, idx transit.StopIndex, n int) bool {
	if self.runIndex.AlreadyReached(trip, idx) {
		return true
	}
	if self.profileIndex.Get(trip, 1) < idx {
		return true
	}
	if n > 1 && self.profileIndex.AlreadyReached(trip, idx, n) {
		return true
	}
	prev := self.data.PreviousTrip(trip)
	if prev != trip && self.profileIndex.AlreadyReached(prev, idx, n+1) {
		return true
	}
	return false
}

// enqueueInitial is the general single-trip enqueue used for every
// pre-collected departure anchor and for every boarding found by
// evaluateInitialTransfersAtMidnight — always round 1 (spec.md §4.3's
// "Enqueue (trip, stopIndex+1) for the first round").
func (self *Search[P]) enqueueInitial(trip transit.TripId, idx transit.StopIndex) {
	if self.discard(trip, idx, 1) {
		return
	}
	firstEvent := self.data.FirstStopEventOfTrip(trip)
	oldReached := self.runIndex.Get(trip)

	self.queue = append(self.queue, TripLabel{
		Begin: firstEvent + transit.StopEventId(idx),
		End:   firstEvent + transit.StopEventId(oldReached),
	})
	self.profiler.CountMetric(profiler.MetricEnqueues)
	self.runIndex.Update(trip, idx)
	self.profileIndex.Update(trip, idx, 1)

	boardedAt := self.data.GetStopOfStopEvent(firstEvent + transit.StopEventId(idx) - 1)
	self.parentOfTrip.Set(1, int(trip), parent.TripParent{FromStop: boardedAt, Edge: int32(transit.NoEdge), IsLocal: false})
}

// enqueueFromEdge implements the templated enqueue<IS_LOCAL_TRANSFER> of
// the original: edge indexes into the combined edgeLabels space (local
// edges first, transfer edges at the numLocalEdges offset — isLocal is
// derived from that, not passed separately). The discard test runs at the
// CURRENT round n (the round being scanned), but the resulting TripLabel,
// both reached-index updates, and the parent record all belong to round
// n+1 — the round this trip segment will actually be scanned in.
func (self *Search[P]) enqueueFromEdge(edge int, n int, fromStopEventId transit.StopEventId) {
	lbl := &self.edgeLabels[edge]
	idx := transit.StopIndex(lbl.stopEvent - lbl.firstEvent)

	if self.discard(lbl.trip, idx, n) {
		return
	}

	oldReached := self.runIndex.Get(lbl.trip)
	self.queue = append(self.queue, TripLabel{
		Begin: lbl.stopEvent,
		End:   lbl.firstEvent + transit.StopEventId(oldReached),
	})
	self.profiler.CountMetric(profiler.MetricEnqueues)
	self.runIndex.Update(lbl.trip, idx)
	self.profileIndex.Update(lbl.trip, idx, n+1)

	fromStop := self.data.GetStopOfStopEvent(fromStopEventId)
	isLocal := edge < self.split.NumLocalEdges
	self.parentOfTrip.Set(n+1, int(lbl.trip), parent.TripParent{FromStop: fromStop, Edge: int32(edge), IsLocal: isLocal})
}

// addArrival implements spec.md §4.4's dominance-checked label update.
func (self *Search[P]) addArrival(stop transit.StopId, newArrival, newDeparture int32, n int,
	trip transit.TripId, j transit.StopEventId) bool {

	improved := self.targets.Improve(stop, n, label.Label{ArrivalTime: newArrival, DepartureTime: newDeparture})
	if !improved {
		return false
	}

	self.stopsToUpdate.Insert(stop)

	reachIdx := self.runIndex.Get(trip) - 1
	eventIdx := self.data.IndexOfStopEvent(j)
	self.parentOfStop.Set(n, int(stop), parent.StopParent{Trip: trip, ReachIdx: reachIdx, EventIdx: eventIdx})
	return true
}

// unwindJourneys implements spec.md §4.5's "Journey unwind and flagging":
// for target, rounds are walked in ascending order and every round whose
// change-bit is set and whose arrival is strictly earlier than that of
// every earlier changed round is unwound and flagged; changed rounds that
// do not improve on an earlier one are skipped.
func (self *Search[P]) unwindJourneys(target transit.StopId) {
	bestArrival := transit.Never
	cell := self.data.GetPartitionCell(target)

	for n := 0; n < transit.MaxRounds; n++ {
		if !self.targets.Changed(target, n) {
			continue
		}
		lbl := self.targets.Get(target, n)
		if lbl.ArrivalTime >= bestArrival {
			continue
		}
		bestArrival = lbl.ArrivalTime
		if n > 0 {
			self.getJourneyAndUnwind(target, n, cell)
		}
	}
}

// getJourneyAndUnwind walks parentOfStop/parentOfTrip back to round 1,
// flagging every split-graph edge used (invariant 6: terminates within
// MaxRounds-1 iterations).
func (self *Search[P]) getJourneyAndUnwind(target transit.StopId, n int, cell int) {
	stop := target
	for n > 1 {
		sp := self.parentOfStop.Get(n, int(stop))
		tp := self.parentOfTrip.Get(n, int(sp.Trip))
		self.flags.Set(tp.Edge, cell)
		stop = tp.FromStop
		n--
	}
}
