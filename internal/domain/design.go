package domain

import "fmt"

// Lattice identifies the helix packing of a caDNAno design
type Lattice int

const (
	LatticeHoneycomb Lattice = iota
	LatticeSquare
)

func (l Lattice) String() string {
	switch l {
	case LatticeHoneycomb:
		return "honeycomb"
	case LatticeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// ParseLattice converts a lattice name into a Lattice
func ParseLattice(name string) (Lattice, error) {
	switch name {
	case "honeycomb":
		return LatticeHoneycomb, nil
	case "square":
		return LatticeSquare, nil
	default:
		return 0, fmt.Errorf("unknown lattice type: %q", name)
	}
}

// Link references a base slot by helix number and position.
// caDNAno encodes a missing link as (-1, -1).
type Link struct {
	Helix int
	Pos   int
}

// NoLink marks the end of a strand
var NoLink = Link{Helix: -1, Pos: -1}

// Valid reports whether the link points at a slot
func (l Link) Valid() bool {
	return l.Helix >= 0 && l.Pos >= 0
}

func (l Link) String() string {
	return fmt.Sprintf("%d[%d]", l.Helix, l.Pos)
}

// BaseSlot is one lattice position of a helix track
type BaseSlot struct {
	Prev     Link // 5' neighbour
	Next     Link // 3' neighbour
	Modifier int  // <0 deleted, >0 number of inserted bases, 0 normal
}

// EmptySlot is an unoccupied lattice position
var EmptySlot = BaseSlot{Prev: NoLink, Next: NoLink}

// Occupied reports whether a strand passes through the slot
func (s BaseSlot) Occupied() bool {
	return s.Prev.Valid() || s.Next.Valid()
}

// Deleted reports whether the slot carries a deletion marker
func (s BaseSlot) Deleted() bool {
	return s.Modifier < 0
}

// Insertions returns the number of extra bases inserted at the slot
func (s BaseSlot) Insertions() int {
	return max(s.Modifier, 0)
}

// StapleColor tags the staple whose 5' end sits at Pos
type StapleColor struct {
	Pos   int
	Color int
}

// DesignHelix is one virtual helix as read from a design file
type DesignHelix struct {
	Num          int // caDNAno helix number, unique per design
	Row          int
	Col          int
	Scaffold     []BaseSlot
	Staple       []BaseSlot
	StapleColors []StapleColor
}

// Size returns the number of lattice positions of the helix
func (h *DesignHelix) Size() int {
	return max(len(h.Scaffold), len(h.Staple))
}

// Slot returns the slot of a track at pos, or EmptySlot when out of range
func (h *DesignHelix) Slot(track Track, pos int) BaseSlot {
	slots := h.Scaffold
	if track == TrackStaple {
		slots = h.Staple
	}
	if pos < 0 || pos >= len(slots) {
		return EmptySlot
	}
	return slots[pos]
}

// Design is the in-memory record of a caDNAno design file
type Design struct {
	Name    string
	Lattice Lattice
	Helices []DesignHelix // in file (load) order
}

// HelixByNum returns the helix with the given caDNAno number
func (d *Design) HelixByNum(num int) (*DesignHelix, bool) {
	for i := range d.Helices {
		if d.Helices[i].Num == num {
			return &d.Helices[i], true
		}
	}
	return nil, false
}

// SlotCount returns the number of occupied slots over both tracks
func (d *Design) SlotCount() int {
	n := 0
	for i := range d.Helices {
		h := &d.Helices[i]
		for _, s := range h.Scaffold {
			if s.Occupied() {
				n++
			}
		}
		for _, s := range h.Staple {
			if s.Occupied() {
				n++
			}
		}
	}
	return n
}
