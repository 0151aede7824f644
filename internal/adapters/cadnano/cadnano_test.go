package cadnano

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/domain"
)

func blankVStrand(num, row, col, size int) vstrand {
	v := vstrand{
		Row:        row,
		Col:        col,
		Num:        num,
		Scaf:       make([][]int, size),
		Stap:       make([][]int, size),
		Loop:       make([]int, size),
		Skip:       make([]int, size),
		ScafLoop:   []int{},
		StapLoop:   []int{},
		StapColors: [][]int{},
	}
	for i := range size {
		v.Scaf[i] = emptyEntry
		v.Stap[i] = emptyEntry
	}
	return v
}

func span(helix, from, to int) []domain.Link {
	var out []domain.Link
	step := 1
	if to < from {
		step = -1
	}
	for p := from; ; p += step {
		out = append(out, domain.Link{Helix: helix, Pos: p})
		if p == to {
			return out
		}
	}
}

// connect writes a 5'->3' chain of loci into a track of the document
func connect(doc *file, track domain.Track, loci []domain.Link) {
	entry := func(l domain.Link) []int {
		v := &doc.VStrands[l.Helix]
		entries := v.Scaf
		if track == domain.TrackStaple {
			entries = v.Stap
		}
		entries[l.Pos] = slices.Clone(entries[l.Pos])
		return entries[l.Pos]
	}
	for i := 0; i+1 < len(loci); i++ {
		from, to := loci[i], loci[i+1]
		e := entry(from)
		e[2], e[3] = to.Helix, to.Pos
		e = entry(to)
		e[0], e[1] = from.Helix, from.Pos
	}
}

// pairDoc is a honeycomb design of two 21-position helices joined by one
// scaffold crossover, with three colored staples, a deletion at 0[3] and an
// insertion at 1[5]
func pairDoc() *file {
	doc := &file{
		Name:     "pair.json",
		VStrands: []vstrand{blankVStrand(0, 0, 0, 21), blankVStrand(1, 0, 1, 21)},
	}
	connect(doc, domain.TrackScaffold, append(span(0, 0, 20), span(1, 20, 0)...))
	connect(doc, domain.TrackStaple, span(0, 20, 11))
	connect(doc, domain.TrackStaple, span(0, 10, 0))
	connect(doc, domain.TrackStaple, span(1, 0, 20))
	doc.VStrands[0].Skip[3] = -1
	doc.VStrands[1].Loop[5] = 1
	doc.VStrands[0].StapColors = [][]int{{20, 0xcc0000}, {10, 0x00cc00}}
	doc.VStrands[1].StapColors = [][]int{{0, 0x0066cc}}
	return doc
}

func encode(t *testing.T, doc *file) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestDecode(t *testing.T) {
	d, err := Decode(bytes.NewReader(encode(t, pairDoc())), "fallback")

	require.NoError(t, err)
	assert.Equal(t, "pair", d.Name)
	assert.Equal(t, domain.LatticeHoneycomb, d.Lattice)
	require.Len(t, d.Helices, 2)

	h0 := d.Helices[0]
	assert.Equal(t, 21, h0.Size())
	assert.Equal(t, domain.NoLink, h0.Scaffold[0].Prev)
	assert.Equal(t, domain.Link{Helix: 0, Pos: 1}, h0.Scaffold[0].Next)
	assert.Equal(t, domain.Link{Helix: 1, Pos: 20}, h0.Scaffold[20].Next)
	assert.Equal(t, -1, h0.Scaffold[3].Modifier)
	assert.Equal(t, -1, h0.Staple[3].Modifier)
	assert.Equal(t, 1, d.Helices[1].Staple[5].Modifier)
	assert.Equal(t, []domain.StapleColor{{Pos: 20, Color: 0xcc0000}, {Pos: 10, Color: 0x00cc00}}, h0.StapleColors)
	assert.Equal(t, 84, d.SlotCount())
}

func TestReadDesign(t *testing.T) {
	doc := pairDoc()
	doc.Name = ""
	path := filepath.Join(t.TempDir(), "crossover.json")
	require.NoError(t, os.WriteFile(path, encode(t, doc), 0o644))

	d, err := NewReader().ReadDesign(path)

	require.NoError(t, err)
	assert.Equal(t, "crossover", d.Name)

	_, err = NewReader().ReadDesign(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInferLattice(t *testing.T) {
	tests := []struct {
		size    int
		want    domain.Lattice
		wantErr bool
	}{
		{size: 21, want: domain.LatticeHoneycomb},
		{size: 42, want: domain.LatticeHoneycomb},
		{size: 32, want: domain.LatticeSquare},
		{size: 64, want: domain.LatticeSquare},
		{size: 672, want: domain.LatticeHoneycomb},
		{size: 10, wantErr: true},
		{size: 0, wantErr: true},
	}

	for _, tt := range tests {
		got, err := inferLattice(tt.size)
		if tt.wantErr {
			assert.Error(t, err, "size %d", tt.size)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "size %d", tt.size)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *file)
		errMsg string
	}{
		{"no helices", func(doc *file) { doc.VStrands = nil }, "no virtual helices"},
		{"short entry", func(doc *file) { doc.VStrands[0].Scaf[4] = []int{0, 3, 0} }, "expected 4 link values"},
		{"track sizes differ", func(doc *file) { doc.VStrands[1].Stap = doc.VStrands[1].Stap[:20] }, "stap has 20"},
		{"bad color entry", func(doc *file) { doc.VStrands[0].StapColors = [][]int{{1}} }, "stap_colors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := pairDoc()
			tt.mutate(doc)

			_, err := Decode(bytes.NewReader(encode(t, doc)), "x")

			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	_, err := Decode(bytes.NewReader([]byte("{")), "x")
	assert.ErrorContains(t, err, "decode")
}

func TestWriter_RoundTrip(t *testing.T) {
	for _, modify := range []bool{false, true} {
		original, err := Decode(bytes.NewReader(encode(t, pairDoc())), "x")
		require.NoError(t, err)
		s, err := domain.Build(original, domain.DefaultParameters(), modify, testr.New(t))
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, NewWriter().Write(&out, s))
		again, err := Decode(&out, "x")
		require.NoError(t, err)

		assert.Equal(t, original.Name, again.Name)
		assert.Equal(t, original.Lattice, again.Lattice)
		require.Len(t, again.Helices, len(original.Helices))
		for i := range original.Helices {
			want, got := original.Helices[i], again.Helices[i]
			assert.Equal(t, want.Num, got.Num)
			assert.Equal(t, want.Scaffold, got.Scaffold, "modify=%v helix %d scaffold", modify, want.Num)
			assert.Equal(t, want.Staple, got.Staple, "modify=%v helix %d staple", modify, want.Num)
			assert.ElementsMatch(t, want.StapleColors, got.StapleColors)
		}
	}
}

func TestWriter_GeneratedStaples(t *testing.T) {
	original, err := Decode(bytes.NewReader(encode(t, pairDoc())), "x")
	require.NoError(t, err)
	s, err := domain.Build(original, domain.DefaultParameters(), false, testr.New(t))
	require.NoError(t, err)
	domain.GenerateMaximalStapleSet(s, nil, testr.New(t))

	var out bytes.Buffer
	require.NoError(t, NewWriter().Write(&out, s))
	again, err := Decode(&out, "x")
	require.NoError(t, err)

	rebuilt, err := domain.Build(again, domain.DefaultParameters(), false, testr.New(t))
	require.NoError(t, err)
	assert.Len(t, rebuilt.Staples(), 2)
	for _, st := range rebuilt.Staples() {
		assert.Equal(t, domain.GeneratedStapleColor, st.Color)
		assert.Equal(t, 21, st.Len())
	}
	assert.Equal(t, "cadnano", NewWriter().Format())
}
