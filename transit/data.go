package transit

import (
	"fmt"

	"github.com/transitcore/tripbased/util"
)

// RaptorData groups the transfer-graph / partition accessors spec.md §6
// names under the `raptorData.*` prefix — kept as a nested type so the
// accessor names on Data read exactly as spec.md's external-interface
// table lists them (`raptorData.transferGraph`, `raptorData.numberOfPartitions`).
type RaptorData struct {
	TransferGraph      AdjacencyCSR
	numberOfPartitions int
	partitionCell      util.Array[int16]
	routesContaining   [][]RouteSegment
}

func (self *RaptorData) NumberOfPartitions() int { return self.numberOfPartitions }

func (self *RaptorData) GetPartitionCell(stop StopId) int {
	return int(self.partitionCell[stop])
}

func (self *RaptorData) RoutesContainingStop(stop StopId) []RouteSegment {
	return self.routesContaining[stop]
}

// Data is the immutable, indexed transit dataset (spec.md §3/§6,
// component 1 of spec.md §2). It is built once (LoadData or a builder in
// package transitbuild, out of this module's scope per spec.md §1) and
// then shared read-only by every search worker.
type Data struct {
	stops      util.Array[struct{}] // presence only; stop ids are dense 0..NumberOfStops
	routes     []Route
	stopEvents util.Array[StopEvent]

	firstStopEventOfTrip util.Array[StopEventId] // len numTrips+1 (terminator closes the last trip's range)
	firstTripOfRoute     util.Array[TripId]      // len numRoutes+1
	tripOfStopEvent      util.Array[TripId]
	indexOfStopEvent      util.Array[StopIndex]

	stopEventGraph AdjacencyCSR // directed, stop-event to stop-event

	routeOfTrip util.Array[RouteId] // derived: dense trip -> owning route

	Raptor RaptorData
}

func NewData(numStops int, routes []Route, stopEvents util.Array[StopEvent],
	firstStopEventOfTrip util.Array[StopEventId], firstTripOfRoute util.Array[TripId],
	tripOfStopEvent util.Array[TripId], indexOfStopEvent util.Array[StopIndex],
	stopEventGraph AdjacencyCSR, transferGraph AdjacencyCSR,
	partitionCell util.Array[int16], numberOfPartitions int) *Data {

	d := &Data{
		stops:                 util.NewArray[struct{}](numStops),
		routes:                routes,
		stopEvents:            stopEvents,
		firstStopEventOfTrip:  firstStopEventOfTrip,
		firstTripOfRoute:      firstTripOfRoute,
		tripOfStopEvent:       tripOfStopEvent,
		indexOfStopEvent:      indexOfStopEvent,
		stopEventGraph:        stopEventGraph,
		Raptor: RaptorData{
			TransferGraph:      transferGraph,
			numberOfPartitions: numberOfPartitions,
			partitionCell:      partitionCell,
		},
	}
	d.Raptor.routesContaining = buildRoutesContainingStop(numStops, routes)
	d.routeOfTrip = buildRouteOfTrip(routes)
	return d
}

func buildRouteOfTrip(routes []Route) util.Array[RouteId] {
	numTrips := 0
	for r := range routes {
		numTrips += int(routes[r].NumTrips)
	}
	out := util.NewArray[RouteId](numTrips)
	for r := range routes {
		first := int(routes[r].FirstTrip)
		for t := 0; t < int(routes[r].NumTrips); t++ {
			out[first+t] = RouteId(r)
		}
	}
	return out
}

func buildRoutesContainingStop(numStops int, routes []Route) [][]RouteSegment {
	out := make([][]RouteSegment, numStops)
	for r := range routes {
		for idx, stop := range routes[r].Stops {
			out[stop] = append(out[stop], RouteSegment{RouteId: RouteId(r), StopIndex: StopIndex(idx)})
		}
	}
	return out
}

func (self *Data) NumberOfStops() int      { return self.stops.Length() }
func (self *Data) NumberOfTrips() int      { return self.firstStopEventOfTrip.Length() - 1 }
func (self *Data) NumberOfRoutes() int     { return len(self.routes) }
func (self *Data) NumberOfStopEvents() int { return self.stopEvents.Length() }

func (self *Data) IsStop(s StopId) bool      { return s >= 0 && int(s) < self.NumberOfStops() }
func (self *Data) IsTrip(t TripId) bool      { return t >= 0 && int(t) < self.NumberOfTrips() }
func (self *Data) IsRoute(r RouteId) bool    { return r >= 0 && int(r) < self.NumberOfRoutes() }

func (self *Data) FirstStopEventOfTrip(t TripId) StopEventId { return self.firstStopEventOfTrip[t] }
func (self *Data) FirstTripOfRoute(r RouteId) TripId          { return self.firstTripOfRoute[r] }

func (self *Data) TripsOfRoute(r RouteId) []TripId {
	first := self.firstTripOfRoute[r]
	last := self.firstTripOfRoute[r+1]
	out := make([]TripId, 0, int(last-first))
	for t := first; t < last; t++ {
		out = append(out, t)
	}
	return out
}

func (self *Data) StopArrayOfRoute(r RouteId) []StopId { return self.routes[r].Stops }
func (self *Data) Route(r RouteId) *Route              { return &self.routes[r] }
func (self *Data) RouteOfTrip(t TripId) RouteId        { return self.routeOfTrip[t] }

// PreviousTrip maps t to t-1 unless t is the first trip of its route, in
// which case it maps to itself (spec.md §4.4's discard test dependency).
func (self *Data) PreviousTrip(t TripId) TripId {
	route := self.routes[self.routeOfTrip[t]]
	if t == route.FirstTrip {
		return t
	}
	return t - 1
}

func (self *Data) TripOfStopEvent(e StopEventId) TripId     { return self.tripOfStopEvent[e] }
func (self *Data) IndexOfStopEvent(e StopEventId) StopIndex { return self.indexOfStopEvent[e] }
func (self *Data) ArrivalEvents(e StopEventId) StopEvent    { return self.stopEvents[e] }
func (self *Data) GetStopOfStopEvent(e StopEventId) StopId  { return self.stopEvents[e].Stop }

func (self *Data) StopEventGraph() *AdjacencyCSR { return &self.stopEventGraph }

func (self *Data) GetPartitionCell(s StopId) int { return self.Raptor.GetPartitionCell(s) }

func (self *Data) String() string {
	return fmt.Sprintf("Data{stops=%d trips=%d routes=%d stopEvents=%d}",
		self.NumberOfStops(), self.NumberOfTrips(), self.NumberOfRoutes(), self.NumberOfStopEvents())
}
