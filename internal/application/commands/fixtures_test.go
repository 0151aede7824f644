package commands

import (
	"errors"

	"nanodesign/internal/domain"
)

// run links slots of one helix track 5'->3' from one position to another
func run(slots []domain.BaseSlot, helix, from, to int) {
	step := 1
	if to < from {
		step = -1
	}
	for p := from; p != to; p += step {
		slots[p].Next = domain.Link{Helix: helix, Pos: p + step}
		slots[p+step].Prev = domain.Link{Helix: helix, Pos: p}
	}
}

func emptySlots(n int) []domain.BaseSlot {
	out := make([]domain.BaseSlot, n)
	for i := range out {
		out[i] = domain.EmptySlot
	}
	return out
}

// testDesign has two square-lattice helices of 4 positions, each with its own
// scaffold and one staple: color 5 on helix 0, color 7 on helix 1
func testDesign() *domain.Design {
	d := &domain.Design{Name: "pair", Lattice: domain.LatticeSquare}
	for num := range 2 {
		h := domain.DesignHelix{Num: num, Row: 0, Col: num, Scaffold: emptySlots(4), Staple: emptySlots(4)}
		if num == 0 {
			run(h.Scaffold, num, 0, 3)
			run(h.Staple, num, 3, 0)
			h.StapleColors = []domain.StapleColor{{Pos: 3, Color: 5}}
		} else {
			run(h.Scaffold, num, 3, 0)
			run(h.Staple, num, 0, 3)
			h.StapleColors = []domain.StapleColor{{Pos: 0, Color: 7}}
		}
		d.Helices = append(d.Helices, h)
	}
	return d
}

var errNoDesign = errors.New("no such design")

// fakeReader serves designs by path
type fakeReader map[string]*domain.Design

func (f fakeReader) ReadDesign(path string) (*domain.Design, error) {
	d, ok := f[path]
	if !ok {
		return nil, errNoDesign
	}
	return d, nil
}

// fakeSequences serves staple rows by path
type fakeSequences map[string][]domain.StapleSequence

func (f fakeSequences) ReadStapleSequences(path string) ([]domain.StapleSequence, error) {
	rows, ok := f[path]
	if !ok {
		return nil, errNoDesign
	}
	return rows, nil
}

func testLibrary() *domain.Library {
	lib := domain.NewLibrary()
	lib.Register("tiny", "ACGTACGT")
	return lib
}
