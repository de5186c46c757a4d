// Package orchestrate implements the parallel preprocessing sweep of
// spec.md §5/§9 (component 9): one tripbased.Search worker per goroutine,
// fed a shared stream of source stops, each accumulating into its own
// edgeflags.Matrix that is OR-merged into a shared one once every worker
// has drained the stream. Grounded on the teacher's matrix.go (a channel of
// work items drained by a fixed goroutine pool under a sync.WaitGroup),
// generalized to golang.org/x/sync/errgroup so the first worker error
// cancels the remaining workers instead of letting them run to completion
// regardless (spec.md §7: "preprocessing errors propagate to the
// orchestrator, which cancels its own sweep").
package orchestrate

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/transitcore/tripbased/edgeflags"
	"github.com/transitcore/tripbased/profile"
	"github.com/transitcore/tripbased/profiler"
	"github.com/transitcore/tripbased/splitgraph"
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/tripbased"
)

// Pool runs the one-to-all profile sweep over every stop of data, split
// runtime.GOMAXPROCS(0) ways by default. Each worker owns a private
// tripbased.Search and edgeflags.Matrix (spec.md §3 Ownership — a Search is
// never shared across goroutines); Run merges every worker's matrix into
// one shared result behind a single final barrier.
type Pool struct {
	data        *transit.Data
	split       *splitgraph.SplitStopEventGraph
	routeLabels []transit.RouteLabel
	numWorkers  int
	roundCap    int
}

// New builds a Pool over a shared, read-only dataset and split graph.
// numWorkers <= 0 defaults to runtime.GOMAXPROCS(0), one logical worker per
// available core — spec.md §9 notes true physical-core pinning is not
// portable in Go, so Pool only attempts best-effort affinity per worker via
// pinWorker, never a hard guarantee. roundCap <= 0 defaults to
// transit.MaxRounds (tripbased.New applies the same default, so passing 0
// here is always safe).
func New(data *transit.Data, split *splitgraph.SplitStopEventGraph, routeLabels []transit.RouteLabel, numWorkers, roundCap int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &Pool{data: data, split: split, routeLabels: routeLabels, numWorkers: numWorkers, roundCap: roundCap}
}

// Run sweeps every stop in sources through profile.RunOneToAllProfile and
// returns the merged edge-flag matrix. ctx cancellation (or the first
// worker error) stops dispatch of the remaining, not-yet-started sources;
// a source already in flight still runs to completion and its partial
// matrix is still merged, matching errgroup.Group's cooperative-cancellation
// contract rather than forcibly killing a worker mid-sweep.
func Run(ctx context.Context, pool *Pool, sources []transit.StopId) (*edgeflags.Matrix, error) {
	shared := edgeflags.New(pool.split.NumLocalEdges+pool.split.NumTransferEdges, pool.data.Raptor.NumberOfPartitions())

	work := make(chan transit.StopId)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for _, s := range sources {
			select {
			case work <- s:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < pool.numWorkers; w++ {
		worker := w
		g.Go(func() error {
			pinWorker(worker)
			search := tripbased.New[profiler.NoOp](pool.data, pool.split, pool.routeLabels,
				pool.data.Raptor.NumberOfPartitions(), pool.roundCap, profiler.NoOp{})
			defer shared.MergeOR(search.FlagMatrix())

			for {
				select {
				case source, ok := <-work:
					if !ok {
						return nil
					}
					profile.RunOneToAllProfile(search, pool.data, pool.routeLabels, source)
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return shared, err
	}
	return shared, nil
}
