package transit

// Dense, strongly typed indices into the arrays owned by Data. Grounded on
// the teacher's int32 node/edge ids (graph/structs.go) generalized to the
// seven id types declared below. Values outside the valid range are
// the sentinels below; all are immutable once a Data is built.
type (
	StopId      int32
	TripId      int32
	RouteId     int32
	StopEventId int32
	Edge        int32
	Vertex      int32
	StopIndex   int32
)

const (
	NoStop      StopId      = -1
	NoTrip      TripId      = -1
	NoRoute     RouteId     = -1
	NoStopEvent StopEventId = -1
	NoEdge      Edge        = -1
)

// Never is the sentinel "infinite" time used for an unreached label, large
// enough that Never - anyTravelTime never underflows into a real time of
// day. Mirrors the original's `never`/`INFTY` constant.
const Never int32 = 1 << 30

// MaxRounds bounds the number of vehicle trips in any journey this module
// considers (spec.md §4.2/§4.4). Chosen, per spec.md §9, so a trip's
// per-round reached indices fit one SIMD-width register — though this Go
// implementation does not use SIMD intrinsics, the layout is preserved.
const MaxRounds = 16
