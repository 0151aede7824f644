package mcp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/adapters/csvseq"
	"nanodesign/internal/adapters/filesystem"
	"nanodesign/internal/adapters/topology"
	"nanodesign/internal/domain"
	"nanodesign/internal/ports"
)

// writeDesign stores a one-helix honeycomb design with a scaffold 0[0]..0[20]
// and a color 5 staple running back over it, and returns its path
func writeDesign(t *testing.T) string {
	t.Helper()
	const n = 21
	h := domain.DesignHelix{
		Scaffold:     make([]domain.BaseSlot, n),
		Staple:       make([]domain.BaseSlot, n),
		StapleColors: []domain.StapleColor{{Pos: n - 1, Color: 5}},
	}
	for p := range n {
		h.Scaffold[p] = domain.BaseSlot{Prev: domain.Link{Pos: p - 1}, Next: domain.Link{Pos: p + 1}}
		h.Staple[p] = domain.BaseSlot{Prev: domain.Link{Pos: p + 1}, Next: domain.Link{Pos: p - 1}}
	}
	h.Scaffold[0].Prev = domain.NoLink
	h.Scaffold[n-1].Next = domain.NoLink
	h.Staple[n-1].Prev = domain.NoLink
	h.Staple[0].Next = domain.NoLink
	d := &domain.Design{Name: "helix", Lattice: domain.LatticeHoneycomb, Helices: []domain.DesignHelix{h}}

	s, err := domain.Build(d, domain.DefaultParameters(), false, testr.New(t))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, cadnano.NewWriter().Write(&buf, s))
	path := filepath.Join(t.TempDir(), "helix.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func newToolkit(t *testing.T) *Toolkit {
	lib := filesystem.NewLibrary(t.TempDir(), testr.New(t))
	lib.Register("poly", strings.Repeat("ACGT", 6))
	return &Toolkit{
		Reader:    cadnano.NewReader(),
		Library:   lib,
		Sequences: csvseq.NewReader(),
		Writers:   []ports.StructureWriter{topology.NewWriter(false), cadnano.NewWriter(), csvseq.NewWriter()},
		Params:    domain.DefaultParameters(),
		Log:       testr.New(t),
	}
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestSummarizeDesign(t *testing.T) {
	k := newToolkit(t)

	out, isErr := call(t, summarizeHandler(k), map[string]any{"path": writeDesign(t)})

	assert.False(t, isErr, out)
	assert.Contains(t, out, "lattice: honeycomb")
	assert.Contains(t, out, "bases: 42 (21 scaffold, 42 paired)")
	assert.Contains(t, out, "staple colors: #000005")
}

func TestListStrands(t *testing.T) {
	k := newToolkit(t)
	path := writeDesign(t)

	out, isErr := call(t, listStrandsHandler(k), map[string]any{"path": path, "role": "staple", "sequence": "poly"})

	assert.False(t, isErr, out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "staple 1 #000005 0[20]->0[0]")

	out, isErr = call(t, listStrandsHandler(k), map[string]any{"path": path, "colors": "9"})
	assert.False(t, isErr)
	assert.Equal(t, "No results.", out)
}

func TestStaplesByColor(t *testing.T) {
	k := newToolkit(t)
	path := writeDesign(t)

	out, isErr := call(t, staplesByColorHandler(k), map[string]any{"path": path, "colors": "5"})
	assert.False(t, isErr, out)
	assert.Contains(t, out, "staple 1 #000005")

	_, isErr = call(t, staplesByColorHandler(k), map[string]any{"path": path})
	assert.True(t, isErr)
}

func TestStrandSequence(t *testing.T) {
	k := newToolkit(t)
	path := writeDesign(t)

	out, isErr := call(t, strandSequenceHandler(k), map[string]any{"path": path, "strand_id": 0, "sequence": "poly"})
	assert.False(t, isErr, out)
	assert.Equal(t, strings.Repeat("ACGT", 6)[:21], out)

	out, isErr = call(t, strandSequenceHandler(k), map[string]any{"path": path, "strand_id": 7})
	assert.True(t, isErr)
	assert.Contains(t, out, "7")
}

func TestSearchStrands(t *testing.T) {
	k := newToolkit(t)

	out, isErr := call(t, searchHandler(k), map[string]any{"path": writeDesign(t), "query": "scaffold"})

	assert.False(t, isErr, out)
	assert.Contains(t, out, "scaffold 0")
}

func TestConvertDesign(t *testing.T) {
	k := newToolkit(t)
	output := filepath.Join(t.TempDir(), "helix.csv")

	out, isErr := call(t, convertHandler(k), map[string]any{
		"path":    writeDesign(t),
		"output":  output,
		"format":  "csv",
		"staples": "maximal_set",
	})

	assert.False(t, isErr, out)
	assert.Contains(t, out, "Wrote "+output)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#888888")
}

func TestToolErrors(t *testing.T) {
	k := newToolkit(t)
	path := writeDesign(t)

	tests := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
	}{
		{"missing path", summarizeHandler(k), map[string]any{}},
		{"missing design file", summarizeHandler(k), map[string]any{"path": filepath.Join(t.TempDir(), "nope.json")}},
		{"unknown sequence", summarizeHandler(k), map[string]any{"path": path, "sequence": "no_such_scaffold"}},
		{"bad directive", summarizeHandler(k), map[string]any{"path": path, "staples": "shuffle"}},
		{"bad colors", listStrandsHandler(k), map[string]any{"path": path, "colors": "red"}},
		{"unknown format", convertHandler(k), map[string]any{"path": path, "output": filepath.Join(t.TempDir(), "x"), "format": "pdb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isErr := call(t, tt.handler, tt.args)
			assert.True(t, isErr)
		})
	}
}

type memoryStore struct {
	saved *domain.Structure
}

func (m *memoryStore) Save(_ context.Context, s *domain.Structure) error {
	m.saved = s
	return nil
}

func (m *memoryStore) Summary(_ context.Context) (*ports.StoredSummary, error) {
	return &ports.StoredSummary{Name: m.saved.Name, Strands: len(m.saved.Strands), Bases: len(m.saved.Bases)}, nil
}

func (m *memoryStore) Close() error { return nil }

func TestSaveStructure(t *testing.T) {
	k := newToolkit(t)
	store := &memoryStore{}
	open := func(_ context.Context, name string) (ports.StructureStore, error) {
		assert.Equal(t, "helix", name)
		return store, nil
	}

	out, isErr := call(t, saveHandler(k, open), map[string]any{"path": writeDesign(t)})

	assert.False(t, isErr, out)
	assert.Equal(t, "Saved helix: 2 strands, 42 bases, 0 sequenced", out)
	require.NotNil(t, store.saved)
}
