package parent

import "github.com/transitcore/tripbased/transit"

// TripParent records, for a trip enqueued at some round, the stop it was
// boarded from and the split-graph edge that led to the boarding —
// grounded on CanonicalOneToAllProfileTB::parentOfTrip (originalLocalId /
// originalTransferId tuple, _examples/original_source).
type TripParent struct {
	FromStop transit.StopId
	Edge     int32
	IsLocal  bool
}

// StopParent records, for a stop improved at some round, the trip-segment
// that produced the improvement — grounded on
// CanonicalOneToAllProfileTB::parentOfStop.
type StopParent struct {
	Trip      transit.TripId
	ReachIdx  transit.StopIndex // R = runReachedIndex(trip)-1 when the arrival is recorded
	EventIdx  transit.StopIndex // J = indexOfStopEvent[j]
}
