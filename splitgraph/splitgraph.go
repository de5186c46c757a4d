// Package splitgraph reorganises the stop-event graph's out-edges into two
// CSR-parallel classes — same-stop ("local") and cross-stop ("transfer")
// — so the Trip-Based round scan can walk each class with a single
// contiguous range lookup instead of branching per edge. Grounded directly
// on the original's DataStructures/TripBased/SplitStopEventGraph.h
// (_examples/original_source), generalized from the teacher's CSR
// adjacency style (comps/graph_base.go's topology/accessor split).
package splitgraph

import (
	"github.com/transitcore/tripbased/transit"
	"github.com/transitcore/tripbased/util"
)

// SplitStopEventGraph holds the two CSR-parallel edge classes described in
// spec.md §4.1. Per spec.md §9's Open Question, the transferTime array is
// always carried for transfer edges — the reduced variant without it is
// never implemented, since the round-scan prune check depends on it.
type SplitStopEventGraph struct {
	NumVertices      int
	NumLocalEdges    int
	NumTransferEdges int

	toAdjLocal    util.Array[int32] // len NumVertices+1
	toAdjTransfer util.Array[int32] // len NumVertices+1

	ToLocalVertex    util.Array[transit.StopEventId]
	ToTransferVertex util.Array[transit.StopEventId]
	TransferTime     util.Array[int32]
}

// Build performs the single linear sweep described in spec.md §4.1:
// classify each out-edge of the stop-event graph by comparing the stops of
// source and destination stop-events, append into the appropriate
// destination list, and write per-vertex prefix sums as each vertex is
// visited. Edge order within a vertex is preserved (stable).
func Build(data *transit.Data) *SplitStopEventGraph {
	g := data.StopEventGraph()
	numVertices := g.NumVertices()
	numEdges := g.NumEdges()

	toAdjLocal := util.NewArray[int32](numVertices + 1)
	toAdjTransfer := util.NewArray[int32](numVertices + 1)
	toLocal := util.NewList[transit.StopEventId](numEdges)
	toTransfer := util.NewList[transit.StopEventId](numEdges)
	transferTime := util.NewList[int32](numEdges)

	var runningSumLocal, runningSumTransfer int32

	for from := int32(0); from < int32(numVertices); from++ {
		toAdjLocal[from] = runningSumLocal
		toAdjTransfer[from] = runningSumTransfer

		fromStop := data.GetStopOfStopEvent(transit.StopEventId(from))

		g.ForEdgesFrom(from, func(to int32, weight int32) {
			sameStop := fromStop == data.GetStopOfStopEvent(transit.StopEventId(to))
			if sameStop {
				toLocal.Add(transit.StopEventId(to))
				runningSumLocal++
			} else {
				toTransfer.Add(transit.StopEventId(to))
				transferTime.Add(weight)
				runningSumTransfer++
			}
		})
	}
	toAdjLocal[numVertices] = runningSumLocal
	toAdjTransfer[numVertices] = runningSumTransfer

	return &SplitStopEventGraph{
		NumVertices:      numVertices,
		NumLocalEdges:    int(runningSumLocal),
		NumTransferEdges: int(runningSumTransfer),
		toAdjLocal:       toAdjLocal,
		toAdjTransfer:    toAdjTransfer,
		ToLocalVertex:    util.Array[transit.StopEventId](toLocal),
		ToTransferVertex: util.Array[transit.StopEventId](toTransfer),
		TransferTime:     util.Array[int32](transferTime),
	}
}

func (self *SplitStopEventGraph) BeginLocalEdgeFrom(vertex int32) int32 {
	return self.toAdjLocal[vertex]
}

func (self *SplitStopEventGraph) BeginTransferEdgeFrom(vertex int32) int32 {
	return self.toAdjTransfer[vertex]
}

func (self *SplitStopEventGraph) NumberOfLocalEdgesAt(vertex int32) int32 {
	return self.toAdjLocal[vertex+1] - self.toAdjLocal[vertex]
}

func (self *SplitStopEventGraph) NumberOfTransferEdgesAt(vertex int32) int32 {
	return self.toAdjTransfer[vertex+1] - self.toAdjTransfer[vertex]
}

func (self *SplitStopEventGraph) IsVertex(vertex int32) bool {
	return vertex >= 0 && int(vertex) < self.NumVertices
}
