// Package profile implements spec.md §4.5/§6's canonical one-to-all
// profile sweep: collecting a source stop's departure anchors and driving
// one tripbased.Search run to completion so every split-graph edge used by
// an optimal journey from that stop ends up flagged. Grounded on
// Algorithms/TripBased/Preprocessing/CanonicalOneToAllProfileTB.h's
// run()/collectDepartures() pairing (_examples/original_source), split
// across packages per the component table: this package owns departure
// collection and the public entry point, tripbased.Search owns the
// round-scan mechanics itself.
package profile

import (
	"github.com/samber/lo"

	"github.com/transitcore/tripbased/edgeflags"
	"github.com/transitcore/tripbased/profiler"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/tripbased"
	"github.com/transitcore/tripbased/util"
)

// CollectDepartures enumerates every trip boardable from source, directly
// or via one transfer-graph edge, at every stop-index of every route that
// touches one of those stops — one TripStopIndex per (trip, stopIndex)
// pair, DepTime translated back to the source stop's own clock. The
// original leaves this enumeration to an external caller
// (CanonicalOneToAllProfileTB.h's run() has a commented-out
// "collectDepartures()" call); this module supplies it directly, reusing
// the same route/stop-touching scan tripbased.Search runs internally for
// the midnight roll-over query, but walking every trip of every touched
// route rather than only the earliest one at a single anchor time.
func CollectDepartures(data *transit.Data, routeLabels []transit.RouteLabel, source transit.StopId) []tripbased.TripStopIndex {
	transferFromSource := make([]int32, data.NumberOfStops())
	for i := range transferFromSource {
		transferFromSource[i] = transit.Never
	}
	transferFromSource[source] = 0
	touched := []transit.StopId{source}
	data.Raptor.TransferGraph.ForEdgesFrom(int32(source), func(to int32, weight int32) {
		transferFromSource[to] = weight
		touched = append(touched, transit.StopId(to))
	})

	routeIds := lo.Uniq(lo.FlatMap(touched, func(stop transit.StopId, _ int) []transit.RouteId {
		segments := data.Raptor.RoutesContainingStop(stop)
		return lo.Map(segments, func(seg transit.RouteSegment, _ int) transit.RouteId { return seg.RouteId })
	}))

	// Every touched route contributes its boardable (trip, stopIndex) pairs
	// in its own stop/trip order, not DepTime order — a heap merges these
	// heterogeneous sources into one DepTime-ascending stream, the exact
	// use util.PriorityQueue's doc comment names it for.
	pq := util.NewPriorityQueue[tripbased.TripStopIndex, int32](len(touched) * 4)
	for _, r := range routeIds {
		route := data.Route(r)
		routeLabel := &routeLabels[r]
		numTrips := int(routeLabel.NumTrips)
		end := routeLabel.End()

		for stopIndex := transit.StopIndex(0); stopIndex < end; stopIndex++ {
			stop := route.Stops[stopIndex]
			offset := transferFromSource[stop]
			if offset == transit.Never {
				continue
			}
			base := int(stopIndex) * numTrips
			for t := 0; t < numTrips; t++ {
				depTime := routeLabel.DepartureTimes[base+t] - offset
				pq.Enqueue(tripbased.TripStopIndex{
					Trip:      route.FirstTrip + transit.TripId(t),
					StopIndex: stopIndex,
					DepTime:   depTime,
				}, depTime)
			}
		}
	}

	out := make([]tripbased.TripStopIndex, 0, pq.Len())
	for {
		item, ok := pq.Dequeue()
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out
}

// RunOneToAllProfile drives search through spec.md §6's
// `runOneToAllProfile(sourceStop)` contract: collect source's departure
// anchors, run the full profile sweep, and return the worker's private
// edge-flag matrix for the orchestrator to merge. search is reusable
// across sources (spec.md §3 Ownership) — callers loop this per source
// stop assigned to their worker.
func RunOneToAllProfile[P profiler.Profiler](search *tripbased.Search[P], data *transit.Data,
	routeLabels []transit.RouteLabel, source transit.StopId) *edgeflags.Matrix {

	departures := CollectDepartures(data, routeLabels, source)
	search.Run(source, departures)
	return search.FlagMatrix()
}
