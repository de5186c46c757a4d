// Package ptl implements the PTL (Public-Transit Labelling) hub-label
// query of spec.md §4.6/§4.7 (component 8): a 2-hop reachability query over
// the same stop-event data the Trip-Based search uses, answered by sorted
// hub-id set intersection instead of a round-by-round scan. Grounded on
// Algorithms/PTL/Query.h and DataStructures/PTL/Data.h (_examples/original_source).
package ptl

import (
	"sort"

	"github.com/transitcore/tripbased/transit"
)

// Label is one event's sorted hub-id sequence (spec.md §3's PTL label set,
// "two arrays fwdLabels[event] and bwdLabels[event] of sorted hub ids").
type Label []uint32

// Data pairs a Trip-Based dataset with its PTL hub labels. The original
// keys fwdLabels/bwdLabels by a doubled time-expanded vertex space
// (departure vertex 2·se, arrival vertex 2·se+1, DataStructures/PTL/Data.h's
// getFwdLabel/getBwdLabel), introduced only because TE::Data models a stop
// event as two separate graph vertices; transit.Data already carries both
// the arrival and departure time on one StopEvent record, so this port
// keys both label arrays directly by transit.StopEventId and drops the
// doubled numbering entirely.
type Data struct {
	transit *transit.Data

	fwdLabels []Label // indexed by StopEventId: hubs reachable forward from this event's departure
	bwdLabels []Label // indexed by StopEventId: hubs reachable backward from this event's arrival

	departuresAtStop [][]transit.StopEventId // per stop, sorted by DepartureTime ascending
	arrivalsAtStop    [][]transit.StopEventId // per stop, sorted by ArrivalTime ascending
}

// NewData builds the per-stop departure/arrival event indexes
// prepareStartingVertex and getArrivalsOfStop rely on, and allocates empty
// label slots for every stop event — labels themselves are populated
// separately by LoadLabelsFromText or LoadData.
func NewData(data *transit.Data) *Data {
	n := data.NumberOfStopEvents()
	self := &Data{
		transit:           data,
		fwdLabels:         make([]Label, n),
		bwdLabels:         make([]Label, n),
		departuresAtStop:  make([][]transit.StopEventId, data.NumberOfStops()),
		arrivalsAtStop:    make([][]transit.StopEventId, data.NumberOfStops()),
	}
	for e := 0; e < n; e++ {
		self.fwdLabels[e] = Label{}
		self.bwdLabels[e] = Label{}
		ev := data.ArrivalEvents(transit.StopEventId(e))
		self.departuresAtStop[ev.Stop] = append(self.departuresAtStop[ev.Stop], transit.StopEventId(e))
		self.arrivalsAtStop[ev.Stop] = append(self.arrivalsAtStop[ev.Stop], transit.StopEventId(e))
	}
	for s := range self.departuresAtStop {
		events := self.departuresAtStop[s]
		sort.Slice(events, func(i, j int) bool {
			return data.ArrivalEvents(events[i]).DepartureTime < data.ArrivalEvents(events[j]).DepartureTime
		})
	}
	for s := range self.arrivalsAtStop {
		events := self.arrivalsAtStop[s]
		sort.Slice(events, func(i, j int) bool {
			return data.ArrivalEvents(events[i]).ArrivalTime < data.ArrivalEvents(events[j]).ArrivalTime
		})
	}
	return self
}

func (self *Data) TransitData() *transit.Data { return self.transit }

func (self *Data) NumberOfStopEvents() int { return len(self.fwdLabels) }

// FwdHubs and BwdHubs are named after Algorithms/PTL/Query.h's
// getFwdHubs/getBwdHubs calls, synonyms in the original for
// DataStructures/PTL/Data.h's getFwdLabel/getBwdLabel.
func (self *Data) FwdHubs(e transit.StopEventId) Label { return self.fwdLabels[e] }
func (self *Data) BwdHubs(e transit.StopEventId) Label { return self.bwdLabels[e] }

func (self *Data) SetFwdHubs(e transit.StopEventId, hubs Label) { self.fwdLabels[e] = hubs }
func (self *Data) SetBwdHubs(e transit.StopEventId, hubs Label) { self.bwdLabels[e] = hubs }

// DeparturesAtStop returns stop's departure events sorted by DepartureTime
// ascending, the sequence prepareStartingVertex's lower-bound search runs
// over.
func (self *Data) DeparturesAtStop(stop transit.StopId) []transit.StopEventId {
	return self.departuresAtStop[stop]
}

// ArrivalsAtStop returns stop's arrival events sorted by ArrivalTime
// ascending — spec.md §4.6 step 3's "sorted sequence A of arrival events
// at targetStop".
func (self *Data) ArrivalsAtStop(stop transit.StopId) []transit.StopEventId {
	return self.arrivalsAtStop[stop]
}

func (self *Data) ArrivalTime(e transit.StopEventId) int32 {
	return self.transit.ArrivalEvents(e).ArrivalTime
}

func (self *Data) DepartureTime(e transit.StopEventId) int32 {
	return self.transit.ArrivalEvents(e).DepartureTime
}

// Clear zeroes every per-event label individually, preserving the outer
// fwdLabels/bwdLabels length invariant (spec.md §9's Open Question
// decision, DESIGN.md) — unlike a naive port of the original's
// std::vector<Label>::clear() on the whole outer vector, which would lose
// that invariant.
func (self *Data) Clear() {
	for i := range self.fwdLabels {
		self.fwdLabels[i] = self.fwdLabels[i][:0]
	}
	for i := range self.bwdLabels {
		self.bwdLabels[i] = self.bwdLabels[i][:0]
	}
}
