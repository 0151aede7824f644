package domain

// newTestHelix returns a helix with every slot empty
func newTestHelix(num, row, col, size int) DesignHelix {
	h := DesignHelix{
		Num:      num,
		Row:      row,
		Col:      col,
		Scaffold: make([]BaseSlot, size),
		Staple:   make([]BaseSlot, size),
	}
	for i := range size {
		h.Scaffold[i] = EmptySlot
		h.Staple[i] = EmptySlot
	}
	return h
}

// span lists the loci of one helix from one position to another, inclusive,
// in either direction
func span(helix, from, to int) []Link {
	var out []Link
	step := 1
	if to < from {
		step = -1
	}
	for p := from; ; p += step {
		out = append(out, Link{Helix: helix, Pos: p})
		if p == to {
			break
		}
	}
	return out
}

func concat(parts ...[]Link) []Link {
	var out []Link
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// chain links the loci of a track 5'->3'
func chain(d *Design, track Track, loci []Link) {
	for i := 0; i+1 < len(loci); i++ {
		from, to := loci[i], loci[i+1]
		fh, _ := d.HelixByNum(from.Helix)
		th, _ := d.HelixByNum(to.Helix)
		trackSlots(fh, track)[from.Pos].Next = to
		trackSlots(th, track)[to.Pos].Prev = from
	}
}

// close links the last locus of a chain back to the first
func closeChain(d *Design, track Track, loci []Link) {
	chain(d, track, []Link{loci[len(loci)-1], loci[0]})
}

func trackSlots(h *DesignHelix, track Track) []BaseSlot {
	if track == TrackStaple {
		return h.Staple
	}
	return h.Scaffold
}

// setModifier marks a position of a helix on both tracks, the way caDNAno
// loop/skip arrays apply to the whole helix
func setModifier(d *Design, helix, pos, modifier int) {
	h, _ := d.HelixByNum(helix)
	h.Scaffold[pos].Modifier = modifier
	h.Staple[pos].Modifier = modifier
}

// crossoverDesign builds two honeycomb helices of 8 positions. The scaffold
// runs 0[0]..0[7], crosses to 1[7] and runs back to 1[0]. Staples:
// 0[7]..0[4] color 5, 0[3]..0[0] color 5, 1[0]..1[7] color 7.
func crossoverDesign() *Design {
	d := &Design{
		Name:    "crossover",
		Lattice: LatticeHoneycomb,
		Helices: []DesignHelix{
			newTestHelix(0, 0, 0, 8),
			newTestHelix(1, 0, 1, 8),
		},
	}
	chain(d, TrackScaffold, concat(span(0, 0, 7), span(1, 7, 0)))
	chain(d, TrackStaple, span(0, 7, 4))
	chain(d, TrackStaple, span(0, 3, 0))
	chain(d, TrackStaple, span(1, 0, 7))
	d.Helices[0].StapleColors = []StapleColor{{Pos: 7, Color: 5}, {Pos: 3, Color: 5}}
	d.Helices[1].StapleColors = []StapleColor{{Pos: 0, Color: 7}}
	return d
}

// circularDesign builds a circular scaffold over two square-lattice helices:
// 0[7]..0[0], 1[0]..1[7] and back to 0[7]. Its strand starts at 0[0], so the
// helix 0 run wraps around the strand origin. A single staple covers helix 1.
func circularDesign() *Design {
	d := &Design{
		Name:    "circular",
		Lattice: LatticeSquare,
		Helices: []DesignHelix{
			newTestHelix(0, 0, 0, 8),
			newTestHelix(1, 0, 1, 8),
		},
	}
	loop := concat(span(0, 7, 0), span(1, 0, 7))
	chain(d, TrackScaffold, loop)
	closeChain(d, TrackScaffold, loop)
	chain(d, TrackStaple, span(1, 7, 0))
	return d
}
