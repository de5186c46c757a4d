package tripbased

import "github.com/transitcore/tripbased/transit"

// TripLabel is the transient per-queue-entry record of spec.md §3: the
// stop-event range [Begin, End) still to be scanned for one trip segment
// within the current round.
type TripLabel struct {
	Begin transit.StopEventId
	End   transit.StopEventId
}

// edgeLabel precomputes, for one split-graph edge (local or transfer, in
// the combined [0, numLocalEdges+numTransferEdges) id space), the boarding
// stop-event it leads to. Grounded directly on
// CanonicalOneToAllProfileTB::EdgeLabel / the constructor's "+1" offset
// convention (_examples/original_source): a split-graph edge target vertex
// w means "you may transfer here and board the trip whose stop-event
// occupies w+1" — one past the arrival vertex, i.e. the next stop on the
// boarded trip.
type edgeLabel struct {
	stopEvent  transit.StopEventId
	trip       transit.TripId
	firstEvent transit.StopEventId
}

// TripStopIndex is one entry of a source stop's pre-collected departure
// anchors (spec.md §4.5 "Inputs per source stop"): a trip boardable at
// stopIndex, at depTime.
type TripStopIndex struct {
	Trip      transit.TripId
	StopIndex transit.StopIndex
	DepTime   int32
}

const midnightRollover int32 = 24 * 60 * 60
