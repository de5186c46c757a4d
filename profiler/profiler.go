// Package profiler implements the polymorphic profiler of spec.md §9,
// expressed as a compile-time type parameter rather than virtual dispatch
// on the hot path: search code is generic over a Profiler implementation,
// monomorphised by the Go compiler per instantiation exactly as the
// original's template parameter is by the C++ compiler. Grounded on
// Algorithms/PTL/Profiler.h (_examples/original_source).
package profiler

import (
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type Phase int

const (
	PhaseInitialTransfers Phase = iota
	PhaseScanTrips
	// PhaseFindFirstVertex, PhaseInsertHash and PhaseRunQuery mirror
	// PTL::Profiler's PHASE_FIND_FIRST_VERTEX/PHASE_INSERT_HASH/PHASE_RUN —
	// ptl.Query is generic over the same Profiler type as tripbased.Search,
	// so its phases share this one enum rather than getting their own.
	PhaseFindFirstVertex
	PhaseInsertHash
	PhaseRunQuery
	PhaseNumPhases
)

type Metric int

const (
	MetricRoutesScanned Metric = iota
	MetricTripsScanned
	MetricEnqueues
	// MetricHubsInserted, MetricEventsChecked, MetricHubsChecked and
	// MetricFoundSolutions mirror PTL::Profiler's METRIC_INSERTED_HUBS/
	// METRIC_CHECKED_ARR_EVENTS/METRIC_CHECKED_HUBS/METRIC_FOUND_SOLUTIONS,
	// counted inside ptl.Query.
	MetricHubsInserted
	MetricEventsChecked
	MetricHubsChecked
	MetricFoundSolutions
	MetricNumMetrics
)

// Profiler is implemented by NoOp (used on every production query/search
// path) and Aggregating (used for preprocessing diagnostics). NoOp is
// zero-cost to construct and its methods inline to nothing; NewAggregating
// allocates one counter per phase and per metric.
type Profiler interface {
	StartPhase()
	DonePhase(p Phase)
	CountMetric(m Metric)
	StartRun()
	DoneRun()
}

// NoOp satisfies Profiler with empty bodies — used when a search is
// instantiated generic[NoOp], the type parameter the hot round-scan and
// PTL query paths are built against.
type NoOp struct{}

func (NoOp) StartPhase()          {}
func (NoOp) DonePhase(Phase)      {}
func (NoOp) CountMetric(Metric)   {}
func (NoOp) StartRun()            {}
func (NoOp) DoneRun()             {}

// Aggregating accumulates wall-clock time per phase and counts per metric
// across every run, for diagnostics runs (orchestrate's workers use NoOp).
// Backed by xsync.Counter, a sharded counter striped across CPU cores, so
// several workers can increment the same *Aggregating's counters
// concurrently without contending on a single cache line
// the way a plain atomic.Int64 would under many cores (spec.md §9's
// diagnostics path is explicitly allowed to cost more than the hot query
// path, but a shared profiler still shouldn't become its own bottleneck).
type Aggregating struct {
	phaseStart  time.Time
	runStart    time.Time
	phaseTime   [PhaseNumPhases]*xsync.Counter
	metricValue [MetricNumMetrics]*xsync.Counter
	numQueries  *xsync.Counter
	totalTime   *xsync.Counter
}

func NewAggregating() *Aggregating {
	self := &Aggregating{
		numQueries: xsync.NewCounter(),
		totalTime:  xsync.NewCounter(),
	}
	for p := range self.phaseTime {
		self.phaseTime[p] = xsync.NewCounter()
	}
	for m := range self.metricValue {
		self.metricValue[m] = xsync.NewCounter()
	}
	return self
}

func (self *Aggregating) StartPhase() {
	self.phaseStart = time.Now()
}

func (self *Aggregating) DonePhase(p Phase) {
	self.phaseTime[p].Add(int64(time.Since(self.phaseStart)))
}

func (self *Aggregating) CountMetric(m Metric) {
	self.metricValue[m].Add(1)
}

func (self *Aggregating) StartRun() {
	self.runStart = time.Now()
}

func (self *Aggregating) DoneRun() {
	self.totalTime.Add(int64(time.Since(self.runStart)))
	self.numQueries.Add(1)
}

// Merge folds other's counters into self, combining per-worker
// Aggregating profilers into one.
func (self *Aggregating) Merge(other *Aggregating) {
	for p := range self.phaseTime {
		self.phaseTime[p].Add(other.phaseTime[p].Value())
	}
	for m := range self.metricValue {
		self.metricValue[m].Add(other.metricValue[m].Value())
	}
	self.numQueries.Add(other.numQueries.Value())
	self.totalTime.Add(other.totalTime.Value())
}

func (self *Aggregating) PrintStatistics() string {
	n := self.numQueries.Value()
	if n == 0 {
		return "profiler: no queries recorded"
	}
	avg := time.Duration(self.totalTime.Value() / n)
	return fmt.Sprintf("profiler: %d runs, avg %s, routes=%d trips=%d enqueues=%d hubs=%d events_checked=%d hubs_checked=%d solutions=%d",
		n, avg,
		self.metricValue[MetricRoutesScanned].Value(),
		self.metricValue[MetricTripsScanned].Value(),
		self.metricValue[MetricEnqueues].Value(),
		self.metricValue[MetricHubsInserted].Value(),
		self.metricValue[MetricEventsChecked].Value(),
		self.metricValue[MetricHubsChecked].Value(),
		self.metricValue[MetricFoundSolutions].Value())
}
