package cadnano

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nanodesign/internal/domain"
)

// Reader implements ports.DesignReader for caDNAno JSON files
type Reader struct{}

// NewReader creates a new caDNAno reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadDesign parses the caDNAno file at path
func (r *Reader) ReadDesign(path string) (*domain.Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open design: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Decode(f, name)
}

// Decode parses a caDNAno document. fallbackName is used when the document
// carries no name of its own.
func Decode(in io.Reader, fallbackName string) (*domain.Design, error) {
	var doc file
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode caDNAno JSON: %w", err)
	}
	if len(doc.VStrands) == 0 {
		return nil, fmt.Errorf("caDNAno design has no virtual helices")
	}

	lattice, err := inferLattice(len(doc.VStrands[0].Scaf))
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(doc.Name, ".json")
	if name == "" {
		name = fallbackName
	}
	d := &domain.Design{Name: name, Lattice: lattice}
	for i := range doc.VStrands {
		h, err := decodeHelix(&doc.VStrands[i])
		if err != nil {
			return nil, err
		}
		d.Helices = append(d.Helices, h)
	}
	return d, nil
}

// inferLattice follows caDNAno: honeycomb helices grow in steps of 21
// positions, square helices in steps of 32
func inferLattice(size int) (domain.Lattice, error) {
	switch {
	case size > 0 && size%honeycombStep == 0:
		return domain.LatticeHoneycomb, nil
	case size > 0 && size%squareStep == 0:
		return domain.LatticeSquare, nil
	default:
		return 0, fmt.Errorf("cannot infer lattice from helix size %d", size)
	}
}

func decodeHelix(v *vstrand) (domain.DesignHelix, error) {
	if len(v.Scaf) != len(v.Stap) {
		return domain.DesignHelix{}, fmt.Errorf("helix %d: scaf has %d positions, stap has %d", v.Num, len(v.Scaf), len(v.Stap))
	}
	h := domain.DesignHelix{
		Num:      v.Num,
		Row:      v.Row,
		Col:      v.Col,
		Scaffold: make([]domain.BaseSlot, len(v.Scaf)),
		Staple:   make([]domain.BaseSlot, len(v.Stap)),
	}
	for pos := range v.Scaf {
		scaf, err := decodeSlot(v.Num, pos, v.Scaf[pos])
		if err != nil {
			return domain.DesignHelix{}, err
		}
		stap, err := decodeSlot(v.Num, pos, v.Stap[pos])
		if err != nil {
			return domain.DesignHelix{}, err
		}
		mod := modifierAt(v.Loop, pos) + modifierAt(v.Skip, pos)
		scaf.Modifier, stap.Modifier = mod, mod
		h.Scaffold[pos], h.Staple[pos] = scaf, stap
	}
	for _, c := range v.StapColors {
		if len(c) != 2 {
			return domain.DesignHelix{}, fmt.Errorf("helix %d: malformed stap_colors entry %v", v.Num, c)
		}
		h.StapleColors = append(h.StapleColors, domain.StapleColor{Pos: c[0], Color: c[1]})
	}
	return h, nil
}

func decodeSlot(num, pos int, entry []int) (domain.BaseSlot, error) {
	if len(entry) != 4 {
		return domain.BaseSlot{}, fmt.Errorf("helix %d position %d: expected 4 link values, got %d", num, pos, len(entry))
	}
	return domain.BaseSlot{
		Prev: link(entry[0], entry[1]),
		Next: link(entry[2], entry[3]),
	}, nil
}

func link(helix, pos int) domain.Link {
	if helix < 0 || pos < 0 {
		return domain.NoLink
	}
	return domain.Link{Helix: helix, Pos: pos}
}

func modifierAt(values []int, pos int) int {
	if pos < len(values) {
		return values[pos]
	}
	return 0
}
