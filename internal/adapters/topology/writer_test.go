package topology

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/domain"
)

// hairpin has one square helix of 3 positions holding a scaffold 0[0..2]
// paired with a staple 0[2..0]
func hairpin() *domain.Design {
	h := domain.DesignHelix{Num: 0, Scaffold: make([]domain.BaseSlot, 3), Staple: make([]domain.BaseSlot, 3)}
	for p := range 3 {
		h.Scaffold[p], h.Staple[p] = domain.EmptySlot, domain.EmptySlot
	}
	for p := 0; p < 2; p++ {
		h.Scaffold[p].Next = domain.Link{Helix: 0, Pos: p + 1}
		h.Scaffold[p+1].Prev = domain.Link{Helix: 0, Pos: p}
		h.Staple[p+1].Next = domain.Link{Helix: 0, Pos: p}
		h.Staple[p].Prev = domain.Link{Helix: 0, Pos: p + 1}
	}
	return &domain.Design{Name: "hairpin", Lattice: domain.LatticeSquare, Helices: []domain.DesignHelix{h}}
}

func TestWriter(t *testing.T) {
	s, err := domain.Build(hairpin(), domain.DefaultParameters(), false, testr.New(t))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewWriter(true).Write(&out, s))

	var doc Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "hairpin", doc.Name)
	assert.Equal(t, "square", doc.Lattice)
	require.Len(t, doc.Bases, 6)
	require.Len(t, doc.Strands, 2)

	first := doc.Bases[0]
	assert.Equal(t, "scaffold", first.Track)
	assert.Equal(t, -1, first.Prev)
	assert.Equal(t, 1, first.Next)
	assert.Equal(t, "N", first.Seq)
	partner := doc.Bases[first.Across]
	assert.Equal(t, "staple", partner.Track)
	assert.Equal(t, first.Pos, partner.Pos)

	assert.Equal(t, [2]int{0, 2}, doc.Strands[0].Bases)
	assert.Equal(t, []Domain{{Helix: 0, First: 0, Last: 2}}, doc.Strands[0].Domains)
	assert.Equal(t, domain.NoColor, doc.Strands[1].Color)
	assert.Equal(t, "topology", NewWriter(false).Format())
}
