package cadnano

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"nanodesign/internal/domain"
)

// Writer implements ports.StructureWriter producing caDNAno JSON
type Writer struct{}

// NewWriter creates a new caDNAno writer
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns the writer's format name
func (w *Writer) Format() string {
	return "cadnano"
}

// Write encodes the structure as a caDNAno design. Helices keep their load
// order; insertion and deletion markers are written back as loop/skip values,
// and under a modified structure links are re-threaded through deleted slots.
func (w *Writer) Write(out io.Writer, s *domain.Structure) error {
	doc := file{Name: s.Name + ".json"}
	index := make(map[int]int, len(s.Helices))
	for i := range s.Helices {
		h := &s.Helices[i]
		index[h.Num] = i
		doc.VStrands = append(doc.VStrands, newVStrand(h))
	}

	for i := range s.Bases {
		b := &s.Bases[i]
		if b.Locus.Offset > 0 {
			continue
		}
		next := slotNext(s, b)
		if next == nil {
			continue
		}
		if err := threadLink(s, doc.VStrands, index, b.Track, b.Locus, next.Locus); err != nil {
			return err
		}
	}
	for _, st := range s.Staples() {
		if st.Color == domain.NoColor || st.Len() == 0 {
			continue
		}
		head := s.Bases[st.Start].Locus
		v := &doc.VStrands[index[head.Helix]]
		v.StapColors = append(v.StapColors, []int{head.Pos, st.Color})
	}
	for i := range doc.VStrands {
		slices.SortFunc(doc.VStrands[i].StapColors, func(a, b []int) int { return a[0] - b[0] })
	}

	if err := json.NewEncoder(out).Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode caDNAno JSON: %w", err)
	}
	return nil
}

func newVStrand(h *domain.Helix) vstrand {
	v := vstrand{
		Row:        h.Row,
		Col:        h.Col,
		Num:        h.Num,
		Scaf:       make([][]int, h.Size),
		Stap:       make([][]int, h.Size),
		Loop:       make([]int, h.Size),
		Skip:       make([]int, h.Size),
		ScafLoop:   []int{},
		StapLoop:   []int{},
		StapColors: [][]int{},
	}
	for pos := range h.Size {
		v.Scaf[pos] = emptyEntry
		v.Stap[pos] = emptyEntry
		if pos < len(h.Modifiers) {
			v.Loop[pos] = max(h.Modifiers[pos], 0)
			v.Skip[pos] = min(h.Modifiers[pos], 0)
		}
	}
	return v
}

func trackEntries(v *vstrand, track domain.Track) [][]int {
	if track == domain.TrackStaple {
		return v.Stap
	}
	return v.Scaf
}

// slotNext returns the first base of the next slot, skipping bases inserted
// at the same slot
func slotNext(s *domain.Structure, b *domain.Base) *domain.Base {
	cur := b
	for range len(s.Bases) {
		if cur.Next == domain.NoBase {
			return nil
		}
		next := &s.Bases[cur.Next]
		if next.Locus.Helix != b.Locus.Helix || next.Locus.Pos != b.Locus.Pos {
			return next
		}
		if next.ID == b.ID {
			return nil
		}
		cur = next
	}
	return nil
}

// threadLink writes the link from one slot to the next, passing through
// deleted slots that lie between them on the same helix
func threadLink(s *domain.Structure, vs []vstrand, index map[int]int, track domain.Track, from, to domain.Locus) error {
	fi, ok := index[from.Helix]
	if !ok {
		return fmt.Errorf("base references unknown helix %d", from.Helix)
	}
	if _, ok := index[to.Helix]; !ok {
		return fmt.Errorf("base references unknown helix %d", to.Helix)
	}

	path := []domain.Link{{Helix: from.Helix, Pos: from.Pos}}
	if s.Modified && from.Helix == to.Helix {
		path = append(path, deletedBetween(&s.Helices[fi], from.Pos, to.Pos)...)
	}
	path = append(path, domain.Link{Helix: to.Helix, Pos: to.Pos})

	for i := range path {
		entries := trackEntries(&vs[index[path[i].Helix]], track)
		entry := slices.Clone(entries[path[i].Pos])
		if i > 0 {
			entry[0], entry[1] = path[i-1].Helix, path[i-1].Pos
		}
		if i+1 < len(path) {
			entry[2], entry[3] = path[i+1].Helix, path[i+1].Pos
		}
		entries[path[i].Pos] = entry
	}
	return nil
}

// deletedBetween lists the positions strictly between from and to when every
// one of them carries a deletion marker
func deletedBetween(h *domain.Helix, from, to int) []domain.Link {
	step := 1
	if to < from {
		step = -1
	}
	var out []domain.Link
	for p := from + step; p != to; p += step {
		if p < 0 || p >= len(h.Modifiers) || h.Modifiers[p] >= 0 {
			return nil
		}
		out = append(out, domain.Link{Helix: h.Num, Pos: p})
	}
	return out
}
