package splitgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/tripbased/splitgraph"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// fixture reproduces spec.md §8's worked example: stops A,B,C; one route
// R0=[A,B,C]; trips T0=[dep A 00:00, arr B 00:05/dep 00:06, arr C 00:10],
// T1=[dep A 00:10, arr B 00:15/dep 00:16, arr C 00:20]; a single local
// stop-event-graph edge e1->e4 modelling the platform transfer at B from
// T0 to T1.
func fixture() *transit.Data {
	stopEvents := util.ArrayOf(
		transit.StopEvent{Stop: 0, ArrivalTime: 0, DepartureTime: 0},      // e0: A dep T0
		transit.StopEvent{Stop: 1, ArrivalTime: 300, DepartureTime: 360},  // e1: B T0
		transit.StopEvent{Stop: 2, ArrivalTime: 600, DepartureTime: 600},  // e2: C T0
		transit.StopEvent{Stop: 0, ArrivalTime: 600, DepartureTime: 600},  // e3: A dep T1
		transit.StopEvent{Stop: 1, ArrivalTime: 900, DepartureTime: 960}, // e4: B T1
		transit.StopEvent{Stop: 2, ArrivalTime: 1200, DepartureTime: 1200}, // e5: C T1
	)
	routes := []transit.Route{
		{Stops: []transit.StopId{0, 1, 2}, FirstTrip: 0, NumTrips: 2},
	}
	firstStopEventOfTrip := util.ArrayOf[transit.StopEventId](0, 3, 6)
	firstTripOfRoute := util.ArrayOf[transit.TripId](0, 2)
	tripOfStopEvent := util.ArrayOf[transit.TripId](0, 0, 0, 1, 1, 1)
	indexOfStopEvent := util.ArrayOf[transit.StopIndex](0, 1, 2, 0, 1, 2)

	stopEventGraph := transit.BuildAdjacencyCSR(6, []transit.WeightedEdge{
		{From: 1, To: 4, Weight: 0},
	})
	transferGraph := transit.BuildAdjacencyCSR(3, nil)
	partitionCell := util.ArrayOf[int16](0, 0, 1)

	return transit.NewData(3, routes, stopEvents,
		firstStopEventOfTrip, firstTripOfRoute, tripOfStopEvent, indexOfStopEvent,
		stopEventGraph, transferGraph, partitionCell, 2)
}

func TestBuildClassifiesLocalEdge(t *testing.T) {
	data := fixture()
	g := splitgraph.Build(data)

	require.Equal(t, 1, g.NumLocalEdges, "B->B edge must be classified local")
	require.Equal(t, 0, g.NumTransferEdges)
	require.Equal(t, transit.StopEventId(4), g.ToLocalVertex[0])
}

func TestBuildPartitionsEveryEdgeExactlyOnce(t *testing.T) {
	data := fixture()
	g := splitgraph.Build(data)

	require.Equal(t, data.StopEventGraph().NumEdges(), g.NumLocalEdges+g.NumTransferEdges,
		"invariant 1: toLocalVertex.size()+toTransferVertex.size()==|stopEventGraph.edges|")
}

func TestBuildClassifiesTransferEdge(t *testing.T) {
	// Replace the local B->B edge with a cross-stop edge B->C to exercise
	// the transfer-edge branch and its carried travel time.
	stopEventGraph := transit.BuildAdjacencyCSR(6, []transit.WeightedEdge{
		{From: 1, To: 5, Weight: 180},
	})
	data2 := transit.NewData(3, []transit.Route{{Stops: []transit.StopId{0, 1, 2}, FirstTrip: 0, NumTrips: 2}},
		util.ArrayOf(
			transit.StopEvent{Stop: 0}, transit.StopEvent{Stop: 1}, transit.StopEvent{Stop: 2},
			transit.StopEvent{Stop: 0}, transit.StopEvent{Stop: 1}, transit.StopEvent{Stop: 2},
		),
		util.ArrayOf[transit.StopEventId](0, 3, 6),
		util.ArrayOf[transit.TripId](0, 2),
		util.ArrayOf[transit.TripId](0, 0, 0, 1, 1, 1),
		util.ArrayOf[transit.StopIndex](0, 1, 2, 0, 1, 2),
		stopEventGraph, transit.BuildAdjacencyCSR(3, nil),
		util.ArrayOf[int16](0, 0, 1), 2)

	g := splitgraph.Build(data2)
	require.Equal(t, 0, g.NumLocalEdges)
	require.Equal(t, 1, g.NumTransferEdges)
	require.Equal(t, transit.StopEventId(5), g.ToTransferVertex[0])
	require.Equal(t, int32(180), g.TransferTime[0], "transfer edges must carry their travel time (spec.md §9 open question)")
}

func TestStoreLoadRoundTrip(t *testing.T) {
	data := fixture()
	g := splitgraph.Build(data)

	w := util.NewBufferWriter()
	g.Store(w)

	var loaded splitgraph.SplitStopEventGraph
	loaded.Load(util.NewBufferReader(w.Bytes()))

	require.Equal(t, g.NumVertices, loaded.NumVertices)
	require.Equal(t, g.NumLocalEdges, loaded.NumLocalEdges)
	require.Equal(t, g.ToLocalVertex, loaded.ToLocalVertex)
	require.Equal(t, g.BeginLocalEdgeFrom(1), loaded.BeginLocalEdgeFrom(1))
}
