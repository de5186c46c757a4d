package tripbased

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/tripbased/label"
	"github.com/transitcore/tripbased/profiler"
	"github.com/transitcore/tripbased/splitgraph"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// directFixture reproduces the A/B/C, two-trip, single-local-edge scenario
// used across this module's test suites, with times chosen so trip0's own
// arrival at C dominates any continuation onto trip1 — exercising the
// discard/enqueue machinery without a transfer ever winning.
func directFixture() (*transit.Data, *splitgraph.SplitStopEventGraph, []transit.RouteLabel) {
	stopEvents := util.ArrayOf(
		transit.StopEvent{Stop: 0, ArrivalTime: 0, DepartureTime: 0},
		transit.StopEvent{Stop: 1, ArrivalTime: 300, DepartureTime: 360},
		transit.StopEvent{Stop: 2, ArrivalTime: 600, DepartureTime: 600},
		transit.StopEvent{Stop: 0, ArrivalTime: 600, DepartureTime: 600},
		transit.StopEvent{Stop: 1, ArrivalTime: 900, DepartureTime: 960},
		transit.StopEvent{Stop: 2, ArrivalTime: 1200, DepartureTime: 1200},
	)
	routes := []transit.Route{
		{Stops: []transit.StopId{0, 1, 2}, FirstTrip: 0, NumTrips: 2},
	}
	data := transit.NewData(3, routes, stopEvents,
		util.ArrayOf[transit.StopEventId](0, 3, 6),
		util.ArrayOf[transit.TripId](0, 2),
		util.ArrayOf[transit.TripId](0, 0, 0, 1, 1, 1),
		util.ArrayOf[transit.StopIndex](0, 1, 2, 0, 1, 2),
		transit.BuildAdjacencyCSR(6, []transit.WeightedEdge{{From: 1, To: 4, Weight: 0}}),
		transit.BuildAdjacencyCSR(3, nil),
		util.ArrayOf[int16](0, 0, 1), 2)

	return data, splitgraph.Build(data), transit.BuildRouteLabels(data)
}

// transferWinsFixture is identical in shape but with trip1's leg from B to
// C fast enough that continuing onto trip1 via the local platform transfer
// at B beats riding trip0 straight through to C.
func transferWinsFixture() (*transit.Data, *splitgraph.SplitStopEventGraph, []transit.RouteLabel) {
	stopEvents := util.ArrayOf(
		transit.StopEvent{Stop: 0, ArrivalTime: 0, DepartureTime: 0},
		transit.StopEvent{Stop: 1, ArrivalTime: 300, DepartureTime: 310},
		transit.StopEvent{Stop: 2, ArrivalTime: 1000, DepartureTime: 1000},
		transit.StopEvent{Stop: 0, ArrivalTime: 0, DepartureTime: 0},
		transit.StopEvent{Stop: 1, ArrivalTime: 300, DepartureTime: 320},
		transit.StopEvent{Stop: 2, ArrivalTime: 500, DepartureTime: 500},
	)
	routes := []transit.Route{
		{Stops: []transit.StopId{0, 1, 2}, FirstTrip: 0, NumTrips: 2},
	}
	data := transit.NewData(3, routes, stopEvents,
		util.ArrayOf[transit.StopEventId](0, 3, 6),
		util.ArrayOf[transit.TripId](0, 2),
		util.ArrayOf[transit.TripId](0, 0, 0, 1, 1, 1),
		util.ArrayOf[transit.StopIndex](0, 1, 2, 0, 1, 2),
		transit.BuildAdjacencyCSR(6, []transit.WeightedEdge{{From: 1, To: 4, Weight: 0}}),
		transit.BuildAdjacencyCSR(3, nil),
		util.ArrayOf[int16](0, 0, 1), 2)

	return data, splitgraph.Build(data), transit.BuildRouteLabels(data)
}

func newSearch(data *transit.Data, split *splitgraph.SplitStopEventGraph, labels []transit.RouteLabel) *Search[profiler.NoOp] {
	return New[profiler.NoOp](data, split, labels, 2, transit.MaxRounds, profiler.NoOp{})
}

func TestDiscardRejectsAlreadyReachedInRun(t *testing.T) {
	data, split, labels := directFixture()
	s := newSearch(data, split, labels)
	s.sourceStop = 0
	s.reset()

	s.runIndex.Update(0, 1)
	require.True(t, s.discard(0, 2, 1), "condition 1: a weaker stop-index than runReachedIndex must be discarded")
	require.True(t, s.discard(0, 1, 1), "the exact reached index itself is discardable too (<=, not <)")
	require.False(t, s.discard(0, 0, 1), "a strictly better stop-index survives condition 1")
}

func TestDiscardRejectsBelowProfileIndexRoundOne(t *testing.T) {
	data, split, labels := directFixture()
	s := newSearch(data, split, labels)
	s.sourceStop = 0
	s.reset()

	s.profileIndex.Update(0, 1, 1)
	require.True(t, s.discard(0, 2, 5), "condition 2: round-1 profile index bounds every later round's boarding too")
}

func TestEnqueueInitialRecordsRoundOneParentWithNoEdge(t *testing.T) {
	data, split, labels := directFixture()
	s := newSearch(data, split, labels)
	s.sourceStop = 0
	s.reset()

	s.enqueueInitial(0, 1)
	require.Len(t, s.queue, 1)
	require.Equal(t, TripLabel{Begin: 1, End: 3}, s.queue[0])

	tp := s.parentOfTrip.Get(1, 0)
	require.Equal(t, transit.StopId(0), tp.FromStop)
	require.Equal(t, int32(transit.NoEdge), tp.Edge)
}

func TestRunOnDirectFixtureLeavesFlagMatrixEmpty(t *testing.T) {
	data, split, labels := directFixture()
	s := newSearch(data, split, labels)

	s.Run(0, []TripStopIndex{{Trip: 0, StopIndex: 0, DepTime: 0}})

	require.Equal(t, int32(300), s.targets.Get(1, 1).ArrivalTime, "B reached directly by trip0")
	require.Equal(t, int32(600), s.targets.Get(2, 1).ArrivalTime, "C reached directly by trip0, beating the transfer onto trip1")

	for cell := 0; cell < s.flags.NumCells(); cell++ {
		require.False(t, s.flags.Get(0, cell), "no journey here benefits from the local transfer, so it must stay unflagged")
	}
}

func TestRunFlagsLocalTransferEdgeWhenItWinsTheJourney(t *testing.T) {
	data, split, labels := transferWinsFixture()
	s := newSearch(data, split, labels)

	s.Run(0, []TripStopIndex{{Trip: 0, StopIndex: 0, DepTime: 0}})

	require.Equal(t, int32(1000), s.targets.Get(2, 1).ArrivalTime, "round 1: riding trip0 straight through")
	require.Equal(t, int32(500), s.targets.Get(2, 2).ArrivalTime, "round 2: continuing onto trip1 via the local transfer beats it")

	targetCell := data.GetPartitionCell(2)
	require.True(t, s.flags.Get(0, targetCell), "invariant 5/6: the local edge used by the winning journey must be flagged for C's cell")
}

// A Run against a real Aggregating profiler must leave its routes/trips/
// enqueues metrics non-zero — those three are counted from inside Search
// itself (evaluateInitialTransfersAtMidnight, scanArrivalsNoFootpath,
// enqueueInitial/enqueueFromEdge), not left to report a permanent zero the
// way an uninstrumented diagnostics path would.
func TestRunCountsRoutesTripsAndEnqueuesOnAnAggregatingProfiler(t *testing.T) {
	data, split, labels := directFixture()
	agg := profiler.NewAggregating()
	s := New[*profiler.Aggregating](data, split, labels, 2, transit.MaxRounds, agg)

	s.Run(0, []TripStopIndex{{Trip: 0, StopIndex: 0, DepTime: 0}})

	stats := agg.PrintStatistics()
	require.NotContains(t, stats, "routes=0 trips=0 enqueues=0")
}

// A roundCap of 2 lets scanTrips run exactly one round-scan iteration (n=1):
// enough to record trip0's direct round-1 arrival at C, but the local
// transfer onto trip1 it enqueues for round 2 is never scanned, so round 2
// only holds round 1's 1000 propagated forward, with no change bit, instead
// of the better round-2 label this fixture otherwise produces.
func TestRoundCapBoundsHowManyRoundsScanTripsRuns(t *testing.T) {
	data, split, labels := transferWinsFixture()
	s := New[profiler.NoOp](data, split, labels, 2, 2, profiler.NoOp{})

	s.Run(0, []TripStopIndex{{Trip: 0, StopIndex: 0, DepTime: 0}})

	require.Equal(t, int32(1000), s.targets.Get(2, 1).ArrivalTime, "round 1 still runs under the cap")
	require.False(t, s.targets.Changed(2, 2), "round 2 never runs, so the transfer's better arrival is never recorded")
}

func TestClearPreservesTargetLabelsAcrossDepartureGroups(t *testing.T) {
	data, split, labels := directFixture()
	s := newSearch(data, split, labels)
	s.sourceStop = 0
	s.reset()
	s.targets.Improve(1, 1, label.Label{ArrivalTime: 300, DepartureTime: 0})

	s.clear()
	require.False(t, s.targets.Changed(1, 1), "clear() resets change-bits but not label values")
	require.Equal(t, int32(300), s.targets.Get(1, 1).ArrivalTime, "reset() not clear() wipes labels; clear() is per-departure-group only")
}
