package transit

import (
	"os"

	"github.com/transitcore/tripbased/util"
)

// Store/LoadData follow the teacher's comps/*.go convention (see
// comps/ch.go, comps/transit.go): one opaque binary artifact per logical
// component, round-tripped losslessly (spec.md §8's round-trip law), no
// textual/JSON format for the dense arrays. encoding/binary happily
// encodes slices of this package's int32-based newtypes directly, so no
// conversion to plain int32 is needed before writing.
func (self *Data) Store(path string) error {
	w := util.NewBufferWriter()
	util.Write(w, int32(self.NumberOfStops()))
	util.Write(w, int32(len(self.routes)))
	for i := range self.routes {
		r := &self.routes[i]
		util.Write(w, int32(len(r.Stops)))
		for _, s := range r.Stops {
			util.Write(w, int32(s))
		}
		util.Write(w, int32(r.FirstTrip))
		util.Write(w, r.NumTrips)
	}
	util.WriteArray(w, self.stopEvents)
	util.WriteArray(w, self.firstStopEventOfTrip)
	util.WriteArray(w, self.firstTripOfRoute)
	util.WriteArray(w, self.tripOfStopEvent)
	util.WriteArray(w, self.indexOfStopEvent)
	self.stopEventGraph._Store(w)
	self.Raptor.TransferGraph._Store(w)
	util.WriteArray(w, self.Raptor.partitionCell)
	util.Write(w, int32(self.Raptor.numberOfPartitions))

	return os.WriteFile(path, w.Bytes(), 0o644)
}

func LoadData(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := util.NewBufferReader(raw)

	numStops := int(util.Read[int32](r))
	numRoutes := int(util.Read[int32](r))
	routes := make([]Route, numRoutes)
	for i := 0; i < numRoutes; i++ {
		n := int(util.Read[int32](r))
		stops := make([]StopId, n)
		for j := 0; j < n; j++ {
			stops[j] = StopId(util.Read[int32](r))
		}
		routes[i] = Route{
			Stops:     stops,
			FirstTrip: TripId(util.Read[int32](r)),
			NumTrips:  util.Read[int32](r),
		}
	}
	stopEvents := util.ReadArray[StopEvent](r)
	firstStopEventOfTrip := util.ReadArray[StopEventId](r)
	firstTripOfRoute := util.ReadArray[TripId](r)
	tripOfStopEvent := util.ReadArray[TripId](r)
	indexOfStopEvent := util.ReadArray[StopIndex](r)

	var stopEventGraph, transferGraph AdjacencyCSR
	stopEventGraph._Load(r)
	transferGraph._Load(r)

	partitionCell := util.ReadArray[int16](r)
	numberOfPartitions := int(util.Read[int32](r))

	d := NewData(numStops, routes, stopEvents,
		firstStopEventOfTrip, firstTripOfRoute, tripOfStopEvent, indexOfStopEvent,
		stopEventGraph, transferGraph, partitionCell, numberOfPartitions)
	return d, nil
}
