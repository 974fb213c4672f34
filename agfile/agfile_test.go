package agfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/annsys/go-anngraph/agfile"
	"github.com/annsys/go-anngraph/anngraph"
	"github.com/annsys/go-anngraph/anngraph/agent"
)

const scenarioA = `2 1

1 2

5
v 1
10
`

func TestReadGraph(t *testing.T) {
	G, err := agfile.Read(strings.NewReader(scenarioA))
	require.NoError(t, err)

	require.Equal(t, int32(2), G.NumVerts())
	require.Equal(t, int32(1), G.NumEdges())

	e0, err := G.Edge(0)
	require.NoError(t, err)
	require.Equal(t, int32(0), e0.Source)
	require.Equal(t, int32(1), e0.Target)

	v1, err := G.Vertex(1)
	require.NoError(t, err)
	require.Equal(t, anngraph.Rule{Kind: anngraph.RuleCopyVertex, Index: 0}, v1.Rule)
}

func TestRoundTrip(t *testing.T) {
	G, err := agfile.Read(strings.NewReader(scenarioA))
	require.NoError(t, err)

	_, err = agent.New(G).Execute()
	require.NoError(t, err)

	b := strings.Builder{}
	require.NoError(t, agfile.Write(&b, G))
	require.Equal(t, "5\n5\n10\n", b.String())
}

func TestWriteMarksUnresolved(t *testing.T) {
	// Scenario D: a mutual copy cycle leaves both vertices unresolved, and
	// the output says so explicitly instead of inventing a value.
	in := "2 0\n\n\nv 2\nv 1\n"
	G, err := agfile.Read(strings.NewReader(in))
	require.NoError(t, err)

	_, err = agent.New(G).Execute()
	var nc *agent.NonConvergence
	require.ErrorAs(t, err, &nc)

	b := strings.Builder{}
	require.NoError(t, agfile.Write(&b, G))
	require.Equal(t, "unresolved\nunresolved\n", b.String())
}

func TestReadRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", anngraph.ErrMalformedInput},
		{"header short", "2\n", anngraph.ErrMalformedInput},
		{"header junk", "two 1\n", anngraph.ErrMalformedInput},
		{"negative count", "-1 0\n", anngraph.ErrMalformedInput},
		{"missing separator", "2 1\n1 2\n", anngraph.ErrMalformedInput},
		{"edge junk", "2 1\n\nx y\n", anngraph.ErrMalformedInput},
		{"edge arity", "2 1\n\n1\n", anngraph.ErrMalformedInput},
		{"endpoint zero", "2 1\n\n0 2\n", anngraph.ErrMalformedInput},
		{"endpoint high", "2 1\n\n1 3\n", anngraph.ErrMalformedInput},
		{"missing rules", "2 1\n\n1 2\n\n5\n", anngraph.ErrMalformedInput},
		{"bad rule", "2 1\n\n1 2\n\nfoo 3\nv 1\n10\n", anngraph.ErrRuleParse},
		{"rule out of range", "2 1\n\n1 2\n\nv 9\nv 1\n10\n", anngraph.ErrInvalidRef},
		{"keyword on wrong kind", "2 1\n\n1 2\n\n*\nv 1\n10\n", anngraph.ErrRuleParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agfile.Read(strings.NewReader(tt.in))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadFileWriteFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "input_file.txt")
	outPath := filepath.Join(dir, "output_file.txt")
	require.NoError(t, os.WriteFile(inPath, []byte(scenarioA), 0o644))

	G, err := agfile.ReadFile(inPath)
	require.NoError(t, err)

	_, err = agent.New(G).Execute()
	require.NoError(t, err)

	require.NoError(t, agfile.WriteFile(outPath, G))
	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "5\n5\n10\n", string(out))
}

func TestReadFileMissing(t *testing.T) {
	_, err := agfile.ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
