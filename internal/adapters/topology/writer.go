// Package topology writes a structure as a JSON connectivity and geometry dump.
package topology

import (
	"encoding/json"
	"fmt"
	"io"

	"nanodesign/internal/domain"
)

// Document is the topology file layout
type Document struct {
	Name     string   `json:"name"`
	Lattice  string   `json:"lattice"`
	Modified bool     `json:"modified"`
	Helices  []Helix  `json:"helices"`
	Strands  []Strand `json:"strands"`
	Bases    []Base   `json:"bases"`
}

// Helix is one virtual helix with its axis frame
type Helix struct {
	Num       int        `json:"num"`
	Row       int        `json:"row"`
	Col       int        `json:"col"`
	Size      int        `json:"size"`
	Origin    [3]float64 `json:"origin"`
	Axis      [3]float64 `json:"axis"`
	Modifiers []int      `json:"modifiers"`
}

// Strand lists a strand's role and its domains as base id ranges
type Strand struct {
	ID       int      `json:"id"`
	Scaffold bool     `json:"scaffold"`
	Circular bool     `json:"circular"`
	Color    int      `json:"color"`
	Bases    [2]int   `json:"bases"` // [first, last] base ids
	Domains  []Domain `json:"domains"`
}

// Domain is a run of a strand on one helix
type Domain struct {
	Helix int `json:"helix"`
	First int `json:"first"`
	Last  int `json:"last"`
}

// Base is one nucleotide with its neighbours; -1 marks no neighbour
type Base struct {
	ID     int        `json:"id"`
	Helix  int        `json:"helix"`
	Pos    int        `json:"pos"`
	Offset int        `json:"offset"`
	Track  string     `json:"track"`
	Strand int        `json:"strand"`
	Prev   int        `json:"prev"`
	Next   int        `json:"next"`
	Across int        `json:"across"`
	Seq    string     `json:"seq"`
	Coord  [3]float64 `json:"xyz"`
}

// Writer implements ports.StructureWriter for the topology format
type Writer struct {
	Indent bool
}

// NewWriter creates a new topology writer
func NewWriter(indent bool) *Writer {
	return &Writer{Indent: indent}
}

// Format returns the writer's format name
func (w *Writer) Format() string {
	return "topology"
}

// Write encodes the structure
func (w *Writer) Write(out io.Writer, s *domain.Structure) error {
	enc := json.NewEncoder(out)
	if w.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("failed to encode topology: %w", err)
	}
	return nil
}

// NewDocument converts a structure into its topology document
func NewDocument(s *domain.Structure) *Document {
	doc := &Document{
		Name:     s.Name,
		Lattice:  s.Lattice.String(),
		Modified: s.Modified,
		Helices:  make([]Helix, 0, len(s.Helices)),
		Strands:  make([]Strand, 0, len(s.Strands)),
		Bases:    make([]Base, 0, len(s.Bases)),
	}
	for _, h := range s.Helices {
		doc.Helices = append(doc.Helices, Helix{
			Num:       h.Num,
			Row:       h.Row,
			Col:       h.Col,
			Size:      h.Size,
			Origin:    [3]float64{h.Origin.X, h.Origin.Y, h.Origin.Z},
			Axis:      [3]float64{h.Axis.X, h.Axis.Y, h.Axis.Z},
			Modifiers: h.Modifiers,
		})
	}
	for _, st := range s.Strands {
		out := Strand{
			ID:       int(st.ID),
			Scaffold: st.Scaffold,
			Circular: st.Circular,
			Color:    st.Color,
			Bases:    [2]int{st.Start, st.End - 1},
		}
		for _, d := range st.Domains {
			out.Domains = append(out.Domains, Domain{Helix: d.Helix, First: d.Start, Last: d.End - 1})
		}
		doc.Strands = append(doc.Strands, out)
	}
	for _, b := range s.Bases {
		doc.Bases = append(doc.Bases, Base{
			ID:     int(b.ID),
			Helix:  b.Locus.Helix,
			Pos:    b.Locus.Pos,
			Offset: b.Locus.Offset,
			Track:  b.Track.String(),
			Strand: int(b.Strand),
			Prev:   int(b.Prev),
			Next:   int(b.Next),
			Across: int(b.Across),
			Seq:    b.Seq.String(),
			Coord:  [3]float64{b.Coord.X, b.Coord.Y, b.Coord.Z},
		})
	}
	return doc
}
