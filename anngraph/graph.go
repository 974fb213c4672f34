package anngraph

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/maps/hashmap"
)

// Graph owns the vertex and edge sequences of one annotated graph.
// Structure is fixed once loaded: the agent-function only ever writes Attr
// fields, never inserts or removes entities.
type Graph struct {
	vertices []*Vertex
	edges    []*Edge
	vtxByID  *hashmap.Map
}

// NewGraph returns an empty graph with capacity for the given entity counts.
func NewGraph(numVerts, numEdges int32) *Graph {
	return &Graph{
		vertices: make([]*Vertex, 0, numVerts),
		edges:    make([]*Edge, 0, numEdges),
		vtxByID:  hashmap.New(),
	}
}

func (G *Graph) NumVerts() int32 {
	return int32(len(G.vertices))
}

func (G *Graph) NumEdges() int32 {
	return int32(len(G.edges))
}

// Vertices returns the vertex sequence in ID order.
// The slice should be considered read-only.
func (G *Graph) Vertices() []*Vertex {
	return G.vertices
}

// Edges returns the edge sequence in ID (input) order.
// The slice should be considered read-only.
func (G *Graph) Edges() []*Edge {
	return G.edges
}

// AddVertex appends a vertex and indexes it by ID.
func (G *Graph) AddVertex(v *Vertex) error {
	if _, exists := G.vtxByID.Get(v.ID); exists {
		return fmt.Errorf("%w: %d", ErrDupVertexID, v.ID)
	}
	G.vertices = append(G.vertices, v)
	G.vtxByID.Put(v.ID, v)
	return nil
}

// AddEdge appends an edge and wires it into the adjacency of its endpoints
// (Out of the source, In of the target) in the same step.  Both endpoint
// vertices must already exist.
func (G *Graph) AddEdge(e *Edge) error {
	src, err := G.Vertex(e.Source)
	if err != nil {
		return fmt.Errorf("%w: edge %d source %d", ErrBadEdge, e.ID, e.Source)
	}
	tgt, err := G.Vertex(e.Target)
	if err != nil {
		return fmt.Errorf("%w: edge %d target %d", ErrBadEdge, e.ID, e.Target)
	}
	G.edges = append(G.edges, e)
	src.addOutEdge(e)
	tgt.addInEdge(e)
	return nil
}

// Vertex performs a bounds-checked vertex lookup.
func (G *Graph) Vertex(id int32) (*Vertex, error) {
	vi, exists := G.vtxByID.Get(id)
	if !exists {
		return nil, fmt.Errorf("%w: vertex %d", ErrInvalidRef, id)
	}
	return vi.(*Vertex), nil
}

// Edge performs a bounds-checked edge lookup.
func (G *Graph) Edge(id int32) (*Edge, error) {
	if id < 0 || id >= G.NumEdges() {
		return nil, fmt.Errorf("%w: edge %d", ErrInvalidRef, id)
	}
	return G.edges[id], nil
}

// PrintOpts specifies what is printed when printing a graph
type PrintOpts struct {
	Label string // Prefix label
	Rules bool   // If set, prints each entity's compiled rule
	Attrs bool   // If set, prints each entity's current attr state
}

// DefaultPrintOpts prints everything.
var DefaultPrintOpts = PrintOpts{
	Rules: true,
	Attrs: true,
}

func (G *Graph) Println(prefix string) {
	b := strings.Builder{}
	b.Grow(192)
	b.WriteString(prefix)
	G.WriteAsString(&b, DefaultPrintOpts)
	fmt.Println(b.String())
}

func (G *Graph) WriteAsString(out io.Writer, opts PrintOpts) {
	if len(opts.Label) > 0 {
		fmt.Fprintf(out, "%s,", opts.Label)
	}
	fmt.Fprintf(out, "nv=%d,ne=%d\n", G.NumVerts(), G.NumEdges())

	for _, v := range G.vertices {
		fmt.Fprintf(out, "  v%d", v.ID+1)
		if opts.Rules {
			fmt.Fprintf(out, " %q", v.Rule.String())
		}
		if opts.Attrs {
			out.Write([]byte{' '})
			out.Write([]byte(FormatAttr(v.Attr)))
		}
		out.Write(newline)
	}
	for _, e := range G.edges {
		fmt.Fprintf(out, "  e%d %d->%d", e.ID+1, e.Source+1, e.Target+1)
		if opts.Rules {
			fmt.Fprintf(out, " %q", e.Rule.String())
		}
		if opts.Attrs {
			out.Write([]byte{' '})
			out.Write([]byte(FormatAttr(e.Attr)))
		}
		out.Write(newline)
	}
}

var newline = []byte("\n")
