// Package agfile reads and writes the line-oriented annotated-graph text
// format.  It is a thin adapter: its only contract with the core is to
// produce a populated Graph and to emit one with final attr values.
//
// Input layout:
//
//	NV NE
//	<blank>
//	src tgt            (NE lines, one-based vertex IDs)
//	<blank>
//	vertex rules       (NV lines, ID order)
//	edge rules         (NE lines, ID order)
//
// Output layout: NV vertex attr lines then NE edge attr lines, ID order,
// with anngraph.UnresolvedMarker standing in for attrs that never resolved.
package agfile

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/annsys/go-anngraph/anngraph"
)

// ReadFile loads, validates, and compiles a graph from the given file.
// Any error means no graph: a partially read graph is never returned.
func ReadFile(pathname string) (*anngraph.Graph, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	G, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", pathname)
	}
	return G, nil
}

// Read parses the input format from in.  All structural and rule validation
// happens here, before any evaluation begins.
func Read(in io.Reader) (*anngraph.Graph, error) {
	lines := bufio.NewScanner(in)

	header, err := nextLine(lines)
	if err != nil {
		return nil, err
	}
	counts := strings.Fields(header)
	if len(counts) != 2 {
		return nil, errors.Wrapf(anngraph.ErrMalformedInput, "header %q: want \"NV NE\"", header)
	}
	numVerts, err := parseCount(counts[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := parseCount(counts[1])
	if err != nil {
		return nil, err
	}

	if err := skipBlank(lines); err != nil {
		return nil, err
	}

	G := anngraph.NewGraph(numVerts, numEdges)
	for vi := int32(0); vi < numVerts; vi++ {
		if err := G.AddVertex(anngraph.NewVertex(vi)); err != nil {
			return nil, err
		}
	}

	for ei := int32(0); ei < numEdges; ei++ {
		line, err := nextLine(lines)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Wrapf(anngraph.ErrMalformedInput, "edge %d: %q: want \"src tgt\"", ei+1, line)
		}
		src, err := parseEndpoint(fields[0], numVerts, ei)
		if err != nil {
			return nil, err
		}
		tgt, err := parseEndpoint(fields[1], numVerts, ei)
		if err != nil {
			return nil, err
		}
		if err := G.AddEdge(anngraph.NewEdge(ei, src-1, tgt-1)); err != nil {
			return nil, err
		}
	}

	if err := skipBlank(lines); err != nil {
		return nil, err
	}

	for _, v := range G.Vertices() {
		line, err := nextLine(lines)
		if err != nil {
			return nil, err
		}
		rule, err := anngraph.CompileRule(strings.TrimSpace(line), anngraph.VertexKind, numVerts, numEdges)
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d", v.ID+1)
		}
		v.Rule = rule
	}

	for _, e := range G.Edges() {
		line, err := nextLine(lines)
		if err != nil {
			return nil, err
		}
		rule, err := anngraph.CompileRule(strings.TrimSpace(line), anngraph.EdgeKind, numVerts, numEdges)
		if err != nil {
			return nil, errors.Wrapf(err, "edge %d", e.ID+1)
		}
		e.Rule = rule
	}

	return G, nil
}

// WriteFile emits the output format to the given file, truncating it.
func WriteFile(pathname string, G *anngraph.Graph) error {
	f, err := os.Create(pathname)
	if err != nil {
		return err
	}
	if err := Write(f, G); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %q", pathname)
	}
	return f.Close()
}

// Write emits every vertex attr then every edge attr, one per line, ID order.
func Write(out io.Writer, G *anngraph.Graph) error {
	w := bufio.NewWriter(out)
	for _, v := range G.Vertices() {
		w.WriteString(anngraph.FormatAttr(v.Attr))
		w.WriteByte('\n')
	}
	for _, e := range G.Edges() {
		w.WriteString(anngraph.FormatAttr(e.Attr))
		w.WriteByte('\n')
	}
	return w.Flush()
}

func nextLine(lines *bufio.Scanner) (string, error) {
	if !lines.Scan() {
		if err := lines.Err(); err != nil {
			return "", err
		}
		return "", errors.Wrap(anngraph.ErrMalformedInput, "unexpected end of input")
	}
	return lines.Text(), nil
}

func skipBlank(lines *bufio.Scanner) error {
	line, err := nextLine(lines)
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) != "" {
		return errors.Wrapf(anngraph.ErrMalformedInput, "want blank separator line, got %q", line)
	}
	return nil
}

func parseCount(field string) (int32, error) {
	n, err := strconv.ParseInt(field, 10, 32)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(anngraph.ErrMalformedInput, "bad entity count %q", field)
	}
	return int32(n), nil
}

func parseEndpoint(field string, numVerts, edgeID int32) (int32, error) {
	id, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(anngraph.ErrMalformedInput, "edge %d: bad vertex ID %q", edgeID+1, field)
	}
	if id < 1 || int32(id) > numVerts {
		return 0, errors.Wrapf(anngraph.ErrMalformedInput, "edge %d: vertex ID %d out of range 1..%d", edgeID+1, id, numVerts)
	}
	return int32(id), nil
}
