package domain

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Track selects the scaffold or staple half of a virtual helix
type Track int

const (
	TrackScaffold Track = iota
	TrackStaple
)

func (t Track) String() string {
	if t == TrackStaple {
		return "staple"
	}
	return "scaffold"
}

// BaseID is an index into the base arena of a Structure
type BaseID int

// NoBase marks a missing neighbour or partner
const NoBase BaseID = -1

// StrandID identifies a strand. IDs stay stable across staple operations.
type StrandID int

// NoColor tags staples without a color entry in the design
const NoColor = -1

// GeneratedStapleColor tags staples created by GenerateMaximalStapleSet
const GeneratedStapleColor = 0x888888

// Locus addresses a base by helix number, lattice position and insertion offset
type Locus struct {
	Helix  int
	Pos    int
	Offset int // 0 for the slot base, 1..n for inserted bases
}

// Base is one modification-resolved nucleotide of the structure
type Base struct {
	ID     BaseID
	Locus  Locus
	Track  Track
	Strand StrandID
	Prev   BaseID // 5' neighbour
	Next   BaseID // 3' neighbour
	Across BaseID // paired base on the other track
	Seq    Nucleotide
	Coord  r3.Vec
}

// Paired reports whether the base has a partner
func (b *Base) Paired() bool {
	return b.Across != NoBase
}

// Helix is a virtual helix with its axis frame
type Helix struct {
	Num       int
	Row       int
	Col       int
	LoadOrder int
	Size      int
	Modifiers []int  // per-position deletion (<0) / insertion (>0) markers
	Origin    r3.Vec // axis point at position 0
	Axis      r3.Vec // unit vector of increasing position
	Reference r3.Vec // unit vector at twist angle zero
}

// Domain is a maximal run of a strand's bases on one helix
type Domain struct {
	Strand StrandID
	Helix  int
	Start  int // arena range [Start, End)
	End    int
}

// Len returns the number of bases in the domain
func (d Domain) Len() int {
	return d.End - d.Start
}

// Strand is a contiguous range of the arena in 5'->3' order
type Strand struct {
	ID       StrandID
	Scaffold bool
	Color    int
	Circular bool
	Start    int // arena range [Start, End)
	End      int
	Domains  []Domain
}

// Len returns the number of bases in the strand
func (s *Strand) Len() int {
	return s.End - s.Start
}

// Track returns the track the strand runs on
func (s *Strand) Track() Track {
	if s.Scaffold {
		return TrackScaffold
	}
	return TrackStaple
}

type baseKey struct {
	track Track
	locus Locus
}

// Structure is the connectivity and geometry model of a DNA design.
// Bases live in a single arena; strands and domains are index ranges into it.
type Structure struct {
	Name     string
	Lattice  Lattice
	Params   Parameters
	Modified bool // built with insertions/deletions applied
	Helices  []Helix
	Bases    []Base
	Strands  []Strand // ordered by ID

	helixIndex   map[int]int
	baseIndex    map[baseKey]BaseID
	nextStrandID StrandID
}

// Helix returns the helix with the given number
func (s *Structure) Helix(num int) (*Helix, bool) {
	i, ok := s.helixIndex[num]
	if !ok {
		return nil, false
	}
	return &s.Helices[i], true
}

// Base returns the base with the given id
func (s *Structure) Base(id BaseID) *Base {
	return &s.Bases[id]
}

// BaseAt looks up a base by track and locus
func (s *Structure) BaseAt(track Track, locus Locus) (BaseID, bool) {
	id, ok := s.baseIndex[baseKey{track: track, locus: locus}]
	return id, ok
}

// Strand returns the strand with the given id
func (s *Structure) Strand(id StrandID) (*Strand, bool) {
	i, ok := slices.BinarySearchFunc(s.Strands, id, func(st Strand, id StrandID) int {
		return int(st.ID) - int(id)
	})
	if !ok {
		return nil, false
	}
	return &s.Strands[i], true
}

// StrandBases returns the strand's bases in 5'->3' order
func (s *Structure) StrandBases(st *Strand) []Base {
	return s.Bases[st.Start:st.End]
}

// DomainBases returns the domain's bases in 5'->3' order
func (s *Structure) DomainBases(d Domain) []Base {
	return s.Bases[d.Start:d.End]
}

// Sequence renders the strand sequence, N for unassigned bases
func (s *Structure) Sequence(st *Strand) string {
	seq := make([]Nucleotide, 0, st.Len())
	for _, b := range s.StrandBases(st) {
		seq = append(seq, b.Seq)
	}
	return FormatSequence(seq)
}

// Scaffolds returns the scaffold strands
func (s *Structure) Scaffolds() []*Strand {
	return s.strandsWhere(func(st *Strand) bool { return st.Scaffold })
}

// Staples returns the staple strands
func (s *Structure) Staples() []*Strand {
	return s.strandsWhere(func(st *Strand) bool { return !st.Scaffold })
}

func (s *Structure) strandsWhere(keep func(*Strand) bool) []*Strand {
	var out []*Strand
	for i := range s.Strands {
		if keep(&s.Strands[i]) {
			out = append(out, &s.Strands[i])
		}
	}
	return out
}

// strandPlan describes one strand of a new arena layout
type strandPlan struct {
	id       StrandID
	scaffold bool
	color    int
	circular bool
	bases    []BaseID // ids in the current arena, 5'->3'
}

// relayout rebuilds the arena so each planned strand occupies a contiguous
// range in plan order. Bases not referenced by any plan are released and
// partners pointing at them are cleared. Prev/Next are re-derived from plan
// order, then the lookup index and domains are recomputed.
func (s *Structure) relayout(plans []strandPlan) {
	remap := make([]BaseID, len(s.Bases))
	for i := range remap {
		remap[i] = NoBase
	}
	total := 0
	for _, p := range plans {
		total += len(p.bases)
	}

	bases := make([]Base, 0, total)
	strands := make([]Strand, 0, len(plans))
	for _, p := range plans {
		start := len(bases)
		for _, old := range p.bases {
			b := s.Bases[old]
			b.ID = BaseID(len(bases))
			b.Strand = p.id
			remap[old] = b.ID
			bases = append(bases, b)
		}
		end := len(bases)
		for i := start; i < end; i++ {
			bases[i].Prev, bases[i].Next = BaseID(i-1), BaseID(i+1)
		}
		if end > start {
			bases[start].Prev, bases[end-1].Next = NoBase, NoBase
			if p.circular {
				bases[start].Prev, bases[end-1].Next = BaseID(end-1), BaseID(start)
			}
		}
		strands = append(strands, Strand{
			ID:       p.id,
			Scaffold: p.scaffold,
			Color:    p.color,
			Circular: p.circular,
			Start:    start,
			End:      end,
		})
		if p.id >= s.nextStrandID {
			s.nextStrandID = p.id + 1
		}
	}
	for i := range bases {
		if a := bases[i].Across; a != NoBase {
			bases[i].Across = remap[a]
		}
	}

	slices.SortFunc(strands, func(a, b Strand) int { return int(a.ID) - int(b.ID) })
	s.Bases = bases
	s.Strands = strands
	s.reindex()
	s.recomputeDomains()
}

// plans returns the current layout, used as the starting point for edits
func (s *Structure) plans() []strandPlan {
	out := make([]strandPlan, 0, len(s.Strands))
	for _, st := range s.Strands {
		p := strandPlan{
			id:       st.ID,
			scaffold: st.Scaffold,
			color:    st.Color,
			circular: st.Circular,
			bases:    make([]BaseID, 0, st.Len()),
		}
		for i := st.Start; i < st.End; i++ {
			p.bases = append(p.bases, BaseID(i))
		}
		out = append(out, p)
	}
	return out
}

func (s *Structure) reindex() {
	s.baseIndex = make(map[baseKey]BaseID, len(s.Bases))
	for i := range s.Bases {
		b := &s.Bases[i]
		s.baseIndex[baseKey{track: b.Track, locus: b.Locus}] = b.ID
	}
	s.helixIndex = make(map[int]int, len(s.Helices))
	for i := range s.Helices {
		s.helixIndex[s.Helices[i].Num] = i
	}
}

// recomputeDomains cuts every strand wherever consecutive bases change helix
func (s *Structure) recomputeDomains() {
	for i := range s.Strands {
		st := &s.Strands[i]
		st.Domains = st.Domains[:0]
		start := st.Start
		for j := st.Start + 1; j <= st.End; j++ {
			if j == st.End || s.Bases[j].Locus.Helix != s.Bases[j-1].Locus.Helix {
				st.Domains = append(st.Domains, Domain{
					Strand: st.ID,
					Helix:  s.Bases[start].Locus.Helix,
					Start:  start,
					End:    j,
				})
				start = j
			}
		}
	}
}
