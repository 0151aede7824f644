package application

import (
	"fmt"
	"slices"

	"nanodesign/internal/domain"
)

// Re-export domain types for use by adapters
type (
	Design         = domain.Design
	Structure      = domain.Structure
	Strand         = domain.Strand
	StrandID       = domain.StrandID
	Parameters     = domain.Parameters
	StapleSequence = domain.StapleSequence
)

// Summary is a read-only digest of a structure, shared by the CLI, the MCP
// server and the SQLite store.
type Summary struct {
	Name          string `json:"name"`
	Lattice       string `json:"lattice"`
	Modified      bool   `json:"modified"`
	Helices       int    `json:"helices"`
	Bases         int    `json:"bases"`
	Scaffolds     int    `json:"scaffolds"`
	Staples       int    `json:"staples"`
	ScaffoldBases int    `json:"scaffold_bases"`
	PairedBases   int    `json:"paired_bases"`
	StapleColors  []int  `json:"staple_colors"`
}

// Summarize counts helices, strands and base pairing of a structure
func Summarize(s *domain.Structure) Summary {
	sum := Summary{
		Name:     s.Name,
		Lattice:  s.Lattice.String(),
		Modified: s.Modified,
		Helices:  len(s.Helices),
		Bases:    len(s.Bases),
	}
	colors := make(map[int]bool)
	for _, st := range s.Strands {
		if st.Scaffold {
			sum.Scaffolds++
			sum.ScaffoldBases += st.Len()
			continue
		}
		sum.Staples++
		if !colors[st.Color] {
			colors[st.Color] = true
			sum.StapleColors = append(sum.StapleColors, st.Color)
		}
	}
	for i := range s.Bases {
		if s.Bases[i].Paired() {
			sum.PairedBases++
		}
	}
	slices.Sort(sum.StapleColors)
	return sum
}

// Role labels a strand for display
func Role(st *domain.Strand) string {
	if st.Scaffold {
		return "scaffold"
	}
	return "staple"
}

// FormatColor renders a staple color as #rrggbb, or "-" when untagged
func FormatColor(c int) string {
	if c == domain.NoColor {
		return "-"
	}
	return fmt.Sprintf("#%06x", c)
}
