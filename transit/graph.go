package transit

import "github.com/transitcore/tripbased/util"

// AdjacencyCSR is a minimal CSR adjacency list: offsets[v]..offsets[v+1]
// indexes into to/weight. Grounded on the teacher's structs.AdjacencyArray
// (comps/graph_base.go uses it as `topology structs.AdjacencyArray` behind
// an accessor); this module inlines the CSR arrays directly since every
// consumer here (the stop-event graph, the transfer graph) needs only
// forward adjacency with a travel time, never the teacher's richer
// shortcut/CH edge types.
type AdjacencyCSR struct {
	Offsets util.Array[int32] // length numVertices+1
	To      util.Array[int32]
	Weight  util.Array[int32]
}

func BuildAdjacencyCSR(numVertices int, edges []WeightedEdge) AdjacencyCSR {
	offsets := util.NewArray[int32](numVertices + 1)
	for _, e := range edges {
		offsets[e.From+1]++
	}
	for v := 0; v < numVertices; v++ {
		offsets[v+1] += offsets[v]
	}
	to := util.NewArray[int32](len(edges))
	weight := util.NewArray[int32](len(edges))
	cursor := make([]int32, numVertices)
	copy(cursor, offsets[:numVertices])
	for _, e := range edges {
		pos := cursor[e.From]
		to[pos] = e.To
		weight[pos] = e.Weight
		cursor[e.From]++
	}
	return AdjacencyCSR{Offsets: offsets, To: to, Weight: weight}
}

type WeightedEdge struct {
	From, To int32
	Weight   int32
}

func (self *AdjacencyCSR) Begin(v int32) int32 { return self.Offsets[v] }
func (self *AdjacencyCSR) End(v int32) int32   { return self.Offsets[v+1] }

func (self *AdjacencyCSR) ForEdgesFrom(v int32, yield func(to int32, weight int32)) {
	for i := self.Begin(v); i < self.End(v); i++ {
		yield(self.To[i], self.Weight[i])
	}
}

func (self *AdjacencyCSR) Degree(v int32) int32 {
	return self.End(v) - self.Begin(v)
}

func (self *AdjacencyCSR) NumVertices() int {
	return self.Offsets.Length() - 1
}

func (self *AdjacencyCSR) NumEdges() int {
	return self.To.Length()
}

func (self *AdjacencyCSR) _Store(w util.BufferWriter) {
	util.WriteArray(w, self.Offsets)
	util.WriteArray(w, self.To)
	util.WriteArray(w, self.Weight)
}

func (self *AdjacencyCSR) _Load(r util.BufferReader) {
	self.Offsets = util.ReadArray[int32](r)
	self.To = util.ReadArray[int32](r)
	self.Weight = util.ReadArray[int32](r)
}
