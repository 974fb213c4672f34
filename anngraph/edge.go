package anngraph

// Edge is a directed edge carrying one scalar annotation and the rule that
// computes it.  IDs are zero-based and contiguous within a Graph, in input
// order -- rules reference edges by that numeric order, so it is load-bearing.
type Edge struct {
	ID     int32
	Source int32 // vertex ID
	Target int32 // vertex ID
	Attr   Attr
	Rule   Rule
}

func NewEdge(id, source, target int32) *Edge {
	return &Edge{
		ID:     id,
		Source: source,
		Target: target,
	}
}
