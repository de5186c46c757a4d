package parent_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/tripbased/parent"
	"github.com/transitcore/tripbased/transit"
)

func TestSetGetRoundTrip(t *testing.T) {
	store := parent.New[parent.StopParent](4)
	store.Set(3, 2, parent.StopParent{Trip: 7, ReachIdx: 1, EventIdx: 5})

	require.True(t, store.IsValid(3))
	require.Equal(t, parent.StopParent{Trip: 7, ReachIdx: 1, EventIdx: 5}, store.Get(3, 2))
}

func TestRoundsAreLazilyAllocated(t *testing.T) {
	store := parent.New[parent.TripParent](4)
	require.False(t, store.IsValid(0))
	require.False(t, store.IsValid(5))

	store.Set(5, 0, parent.TripParent{FromStop: transit.StopId(1), Edge: 9, IsLocal: true})
	require.True(t, store.IsValid(5))
	require.False(t, store.IsValid(0), "touching round 5 must not mark earlier rounds valid")
}

func TestClearDropsAllRounds(t *testing.T) {
	store := parent.New[parent.StopParent](4)
	store.Set(1, 0, parent.StopParent{Trip: 1})
	store.Clear()
	require.False(t, store.IsValid(1))
}
