package transit

// Route is an equivalence class of trips sharing a stop sequence
// (spec.md §3). Stored densely: Stops is the ordered stop sequence shared
// by every trip of the route; FirstTrip/NumTrips give the ordered trip-id
// range, laid out
// so that departure times at any stop index are monotonically
// non-decreasing across trips (spec.md §3 invariant, enabling the
// lower-bound search used by initial-transfer expansion).
type Route struct {
	Stops     []StopId
	FirstTrip TripId
	NumTrips  int32
}

func (self *Route) StopCount() int {
	return len(self.Stops)
}

// Trip is one vehicle journey along a route; its stop-events occupy a
// contiguous StopEventId range of length Route.StopCount().
type Trip struct {
	Route RouteId
}

// StopEvent is one (arrive, depart) pair at a specific stop on a specific
// trip.
type StopEvent struct {
	Stop          StopId
	ArrivalTime   int32
	DepartureTime int32
}

// RouteSegment names a route together with the stop-index at which some
// stop of interest occurs on it — supplemented from the original's
// RAPTOR::RouteSegment (spec.md §6's routesContainingStop), not present in
// spec.md's own distillation but required to implement that accessor.
type RouteSegment struct {
	RouteId   RouteId
	StopIndex StopIndex
}

// RouteLabel is the flattened per-route departure-time matrix used by
// initial-transfer expansion (spec.md §3/§4.3): DepartureTimes is laid out
// as [stopIndex*NumTrips + tripIndex]; End() derives the stop-index bound
// from the slice length, matching the original's RouteLabel::end().
type RouteLabel struct {
	NumTrips       int32
	DepartureTimes []int32
}

func (self *RouteLabel) End() StopIndex {
	if self.NumTrips == 0 {
		return 0
	}
	return StopIndex(int32(len(self.DepartureTimes)) / self.NumTrips)
}

// BuildRouteLabels derives one RouteLabel per route from the dataset's
// stop-events, grounded directly on the original's RouteLabel usage in
// CanonicalOneToAllProfileTB (evaluateInitialTransfers): built once at
// load time, read-only for the lifetime of the dataset.
func BuildRouteLabels(d *Data) []RouteLabel {
	labels := make([]RouteLabel, len(d.routes))
	for r := range d.routes {
		route := &d.routes[r]
		n := route.StopCount()
		label := RouteLabel{
			NumTrips:       route.NumTrips,
			DepartureTimes: make([]int32, n*int(route.NumTrips)),
		}
		for t := int32(0); t < route.NumTrips; t++ {
			trip := TripId(route.FirstTrip) + TripId(t)
			first := d.firstStopEventOfTrip[trip]
			for s := 0; s < n; s++ {
				label.DepartureTimes[s*int(route.NumTrips)+int(t)] = d.stopEvents[int(first)+s].DepartureTime
			}
		}
		labels[r] = label
	}
	return labels
}
