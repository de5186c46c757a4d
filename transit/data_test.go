package transit_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// fixture mirrors the A/B/C, two-trip, single-local-edge scenario used
// throughout this module's test suites.
func fixture() *transit.Data {
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
	return transit.NewData(3, routes, stopEvents,
		util.ArrayOf[transit.StopEventId](0, 3, 6),
		util.ArrayOf[transit.TripId](0, 2),
		util.ArrayOf[transit.TripId](0, 0, 0, 1, 1, 1),
		util.ArrayOf[transit.StopIndex](0, 1, 2, 0, 1, 2),
		transit.BuildAdjacencyCSR(6, []transit.WeightedEdge{{From: 1, To: 4, Weight: 0}}),
		transit.BuildAdjacencyCSR(3, nil),
		util.ArrayOf[int16](0, 0, 1), 2)
}

func TestStoreLoadRoundTripPreservesTheDataset(t *testing.T) {
	data := fixture()

	path := filepath.Join(t.TempDir(), "transit.bin")
	require.NoError(t, data.Store(path))

	loaded, err := transit.LoadData(path)
	require.NoError(t, err)

	require.Equal(t, data.NumberOfStops(), loaded.NumberOfStops())
	require.Equal(t, data.NumberOfTrips(), loaded.NumberOfTrips())
	require.Equal(t, data.NumberOfRoutes(), loaded.NumberOfRoutes())
	require.Equal(t, data.NumberOfStopEvents(), loaded.NumberOfStopEvents())

	for r := 0; r < data.NumberOfRoutes(); r++ {
		require.Equal(t, data.StopArrayOfRoute(transit.RouteId(r)), loaded.StopArrayOfRoute(transit.RouteId(r)), "route %d stops", r)
		require.Equal(t, *data.Route(transit.RouteId(r)), *loaded.Route(transit.RouteId(r)), "route %d", r)
	}

	for e := 0; e < data.NumberOfStopEvents(); e++ {
		id := transit.StopEventId(e)
		require.Equal(t, data.ArrivalEvents(id), loaded.ArrivalEvents(id), "stop event %d", e)
		require.Equal(t, data.TripOfStopEvent(id), loaded.TripOfStopEvent(id), "trip of stop event %d", e)
		require.Equal(t, data.IndexOfStopEvent(id), loaded.IndexOfStopEvent(id), "stop index of stop event %d", e)
	}

	for t2 := 0; t2 < data.NumberOfTrips(); t2++ {
		id := transit.TripId(t2)
		require.Equal(t, data.FirstStopEventOfTrip(id), loaded.FirstStopEventOfTrip(id), "trip %d", t2)
	}

	for s := 0; s < data.NumberOfStops(); s++ {
		id := transit.StopId(s)
		require.Equal(t, data.GetPartitionCell(id), loaded.GetPartitionCell(id), "stop %d partition cell", s)
	}
	require.Equal(t, data.Raptor.NumberOfPartitions(), loaded.Raptor.NumberOfPartitions())

	require.Equal(t, data.StopEventGraph().Begin(1), loaded.StopEventGraph().Begin(1), "stop-event graph edges from vertex 1")
	require.Equal(t, data.StopEventGraph().NumEdges(), loaded.StopEventGraph().NumEdges())
	require.Equal(t, data.Raptor.TransferGraph.NumEdges(), loaded.Raptor.TransferGraph.NumEdges())
}
