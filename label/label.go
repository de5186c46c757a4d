// Package label implements the target-label table of spec.md §3/§4.4: a
// per-stop x per-round Pareto frontier of (arrivalTime, departureTime) with
// a change-bit per cell. Grounded on CanonicalOneToAllProfileTB's
// targetLabels/newTargetLabel bookkeeping (_examples/original_source), laid
// out row-major on stop per spec.md §9's design note to match addArrival's
// access pattern.
package label

import "github.com/transitcore/tripbased/transit"

// Label is one Pareto-frontier cell.
type Label struct {
	ArrivalTime   int32
	DepartureTime int32
}

// Table is the dense [stop*MaxRounds+round] target-label store plus its
// parallel change-bit array.
type Table struct {
	labels  []Label
	changed []bool
	numStops int
}

func New(numStops int) *Table {
	t := &Table{
		labels:   make([]Label, numStops*transit.MaxRounds),
		changed:  make([]bool, numStops*transit.MaxRounds),
		numStops: numStops,
	}
	t.Reset()
	return t
}

func slot(stop transit.StopId, round int) int {
	return int(stop)*transit.MaxRounds + round
}

func (self *Table) Get(stop transit.StopId, round int) Label {
	return self.labels[slot(stop, round)]
}

func (self *Table) Changed(stop transit.StopId, round int) bool {
	return self.changed[slot(stop, round)]
}

func (self *Table) MarkChanged(stop transit.StopId, round int) {
	self.changed[slot(stop, round)] = true
}

func (self *Table) ClearChangeBit(stop transit.StopId, round int) {
	self.changed[slot(stop, round)] = false
}

// Set overwrites the label at (stop, round) without touching the change-bit
// — used by the monotonisation propagation step in Improve, which sets
// weaker future rounds to the newly improved bound without itself counting
// as a fresh improvement at that round.
func (self *Table) Set(stop transit.StopId, round int, value Label) {
	self.labels[slot(stop, round)] = value
}

// Improve applies spec.md §4.4's addArrival dominance rule: update
// TargetLabel[stop, n] iff newArrival is strictly better than both the
// existing label at round n and the best label at round n-1 — except the
// exact-duplicate case (same arrival AND same departure already stored),
// which is pruned even though it isn't "strictly worse"; a same-arrival,
// later-departure candidate is NOT pruned by the arrival check and is
// accepted as a genuine profile improvement (a later departure with the
// same arrival dominates, since the rider waits less). On improvement it
// sets the change-bit and propagates the new bound forward to every round
// n+1..MaxRounds-1 still weaker than it, monotonising labels across rounds
// (invariant 3: targetLabels[stop,n].arrivalTime <=
// targetLabels[stop,n-1].arrivalTime whenever changed is set). Returns
// whether the label actually improved.
func (self *Table) Improve(stop transit.StopId, round int, value Label) bool {
	current := self.Get(stop, round)

	if value.ArrivalTime == current.ArrivalTime && value.DepartureTime == current.DepartureTime {
		return false
	}
	if value.ArrivalTime > current.ArrivalTime {
		return false
	}
	if round > 0 && value.ArrivalTime >= self.Get(stop, round-1).ArrivalTime {
		return false
	}

	self.Set(stop, round, value)
	self.MarkChanged(stop, round)

	for n := round + 1; n < transit.MaxRounds; n++ {
		if self.Get(stop, n).ArrivalTime > value.ArrivalTime {
			self.Set(stop, n, value)
		}
	}
	return true
}

// Reset sets every cell back to "unreached" and clears every change-bit —
// called once per source-stop run (spec.md §4.5 step 1).
func (self *Table) Reset() {
	for i := range self.labels {
		self.labels[i] = Label{ArrivalTime: transit.Never, DepartureTime: transit.Never}
		self.changed[i] = false
	}
}

// ClearChangeBits clears only the change-bits (and leaves the labels
// themselves intact) — called per departure-time group within a profile
// sweep (spec.md §4.5 step 4: "clear() transient state ... but NOT ...
// target labels").
func (self *Table) ClearChangeBits() {
	for i := range self.changed {
		self.changed[i] = false
	}
}

func (self *Table) NumStops() int { return self.numStops }
