package reached_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/tripbased/reached"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

func fixtureData() *transit.Data {
	stopEvents := util.ArrayOf(
		transit.StopEvent{Stop: 0}, transit.StopEvent{Stop: 1}, transit.StopEvent{Stop: 2},
		transit.StopEvent{Stop: 0}, transit.StopEvent{Stop: 1}, transit.StopEvent{Stop: 2},
	)
	routes := []transit.Route{{Stops: []transit.StopId{0, 1, 2}, FirstTrip: 0, NumTrips: 2}}
	return transit.NewData(3, routes, stopEvents,
		util.ArrayOf[transit.StopEventId](0, 3, 6),
		util.ArrayOf[transit.TripId](0, 2),
		util.ArrayOf[transit.TripId](0, 0, 0, 1, 1, 1),
		util.ArrayOf[transit.StopIndex](0, 1, 2, 0, 1, 2),
		transit.BuildAdjacencyCSR(6, nil), transit.BuildAdjacencyCSR(3, nil),
		util.ArrayOf[int16](0, 0, 1), 2)
}

// invariant 4: runReachedIndex(trip) is non-increasing during a round.
func TestRunIndexClampsDownwardOnly(t *testing.T) {
	data := fixtureData()
	idx := reached.NewRunIndex(data)

	idx.Update(0, 2)
	require.Equal(t, transit.StopIndex(2), idx.Get(0))

	idx.Update(0, 5) // weaker than current; must not move index up
	require.Equal(t, transit.StopIndex(2), idx.Get(0))

	idx.Update(0, 0)
	require.Equal(t, transit.StopIndex(0), idx.Get(0))
	require.True(t, idx.AlreadyReached(0, 1))
}

func TestRunIndexClearResetsToRouteLength(t *testing.T) {
	data := fixtureData()
	idx := reached.NewRunIndex(data)

	idx.Update(0, 0)
	idx.Clear()
	require.False(t, idx.AlreadyReached(0, 0), "after Clear, nothing should be reached")
}

// invariant 5: profileReachedIndex(trip, n) is non-increasing for the run.
func TestProfileIndexClampsDownwardPerRound(t *testing.T) {
	data := fixtureData()
	idx := reached.NewProfileIndex(data)

	idx.Update(1, 2, 1)
	idx.Update(1, 1, 2)
	require.Equal(t, transit.StopIndex(2), idx.Get(1, 1))
	require.Equal(t, transit.StopIndex(1), idx.Get(1, 2))

	idx.Update(1, 3, 1) // weaker; must not regress
	require.Equal(t, transit.StopIndex(2), idx.Get(1, 1))
}

func TestProfileIndexClearIsWholeSourceRunScoped(t *testing.T) {
	data := fixtureData()
	idx := reached.NewProfileIndex(data)
	idx.Update(0, 0, 1)
	idx.Clear()
	require.False(t, idx.AlreadyReached(0, 0, 1))
}

// enqueueFromEdge calls Update(trip, idx, n+1) for n up to transit.MaxRounds-1,
// so round transit.MaxRounds itself must be addressable — one column past
// MAX_ROUNDS, matching the original's implicit layout. This must hold for
// the dataset's last trip too, where an under-sized backing array would
// panic instead of silently corrupting a neighbour's round-0 cell.
func TestProfileIndexRoundBoundaryAtMaxRoundsIsAddressableForEveryTrip(t *testing.T) {
	data := fixtureData()
	idx := reached.NewProfileIndex(data)
	lastTrip := transit.TripId(data.NumberOfTrips() - 1)

	require.NotPanics(t, func() {
		idx.Update(lastTrip, 0, transit.MaxRounds)
	})
	require.Equal(t, transit.StopIndex(0), idx.Get(lastTrip, transit.MaxRounds))
	require.True(t, idx.AlreadyReached(lastTrip, 0, transit.MaxRounds))
}

// Writing round transit.MaxRounds for one trip must never bleed into round 0
// of the next trip's row — the symptom the under-sized layout produced
// before each trip's row was widened by one column.
func TestProfileIndexRoundBoundaryDoesNotCorruptTheNextTripsRound0(t *testing.T) {
	data := fixtureData()
	idx := reached.NewProfileIndex(data)

	idx.Update(0, 0, transit.MaxRounds)

	require.False(t, idx.AlreadyReached(1, 0, 0), "trip 1's round 0 must remain untouched by trip 0's boundary write")
}
