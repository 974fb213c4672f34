package anngraph

// Vertex is a graph vertex carrying one scalar annotation and the rule that
// computes it.  IDs are zero-based and contiguous within a Graph.
type Vertex struct {
	ID   int32
	Attr Attr
	Rule Rule

	// In and Out are non-owning back references to the edges arriving at and
	// leaving this vertex, in edge insertion order.
	In  []*Edge
	Out []*Edge
}

func NewVertex(id int32) *Vertex {
	return &Vertex{ID: id}
}

func (v *Vertex) addInEdge(e *Edge) {
	v.In = append(v.In, e)
}

func (v *Vertex) addOutEdge(e *Edge) {
	v.Out = append(v.Out, e)
}
