package profiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitcore/tripbased/profiler"
)

func genericUser[P profiler.Profiler](p P) {
	p.StartRun()
	p.CountMetric(profiler.MetricTripsScanned)
	p.DoneRun()
}

func TestNoOpSatisfiesProfilerGeneric(t *testing.T) {
	require.NotPanics(t, func() { genericUser[profiler.NoOp](profiler.NoOp{}) })
}

func TestAggregatingAccumulatesAcrossRuns(t *testing.T) {
	agg := profiler.NewAggregating()
	genericUser[*profiler.Aggregating](agg)
	genericUser[*profiler.Aggregating](agg)

	require.Contains(t, agg.PrintStatistics(), "2 runs")
}

func TestMergeCombinesTwoWorkersCounters(t *testing.T) {
	a := profiler.NewAggregating()
	b := profiler.NewAggregating()
	a.StartRun()
	a.CountMetric(profiler.MetricEnqueues)
	a.DoneRun()
	b.StartRun()
	b.CountMetric(profiler.MetricEnqueues)
	b.DoneRun()

	a.Merge(b)
	require.Contains(t, a.PrintStatistics(), "2 runs")
	require.Contains(t, a.PrintStatistics(), "enqueues=2")
}
