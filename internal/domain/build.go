package domain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateHelix is returned when two design helices share a number
var ErrDuplicateHelix = errors.New("duplicate helix number")

type slotKey struct {
	track Track
	helix int
	pos   int
}

// slotSpan is the run of bases created for one slot
type slotSpan struct {
	first, last BaseID
}

// builder holds the transient state of one Build call
type builder struct {
	design  *Design
	params  Parameters
	modify  bool
	log     logr.Logger
	s       *Structure
	helices map[int]*DesignHelix
	spans   map[slotKey]slotSpan
}

// Build converts a design into a Structure. With modify false every occupied
// slot yields exactly one base and insertion/deletion markers are kept only as
// annotations; with modify true deleted slots yield no base and inserted slots
// yield 1+n bases. Construction aborts on the first structural error.
func Build(design *Design, params Parameters, modify bool, log logr.Logger) (*Structure, error) {
	log = log.WithName("builder")
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		design:  design,
		params:  params,
		modify:  modify,
		log:     log,
		helices: make(map[int]*DesignHelix, len(design.Helices)),
		spans:   make(map[slotKey]slotSpan),
		s: &Structure{
			Name:     design.Name,
			Lattice:  design.Lattice,
			Params:   params,
			Modified: modify,
		},
	}
	for i := range design.Helices {
		h := &design.Helices[i]
		if _, dup := b.helices[h.Num]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateHelix, h.Num)
		}
		b.helices[h.Num] = h
	}

	if err := b.buildHelices(); err != nil {
		return nil, err
	}
	if err := b.validateLinks(); err != nil {
		return nil, err
	}
	b.expandBases()
	if err := b.linkBases(); err != nil {
		return nil, err
	}
	b.pairBases()
	plans, err := b.assembleStrands()
	if err != nil {
		return nil, err
	}
	b.s.relayout(plans)

	log.Info("structure built",
		"design", design.Name,
		"lattice", design.Lattice.String(),
		"modify", modify,
		"helices", len(b.s.Helices),
		"bases", len(b.s.Bases),
		"strands", len(b.s.Strands))
	return b.s, nil
}

// buildHelices computes helix frames; helices share no state so each runs in its own goroutine
func (b *builder) buildHelices() error {
	helices := make([]Helix, len(b.design.Helices))
	var g errgroup.Group
	for i := range b.design.Helices {
		g.Go(func() error {
			h, err := newHelix(&b.design.Helices[i], i, b.design.Lattice, b.params)
			if err != nil {
				return err
			}
			helices[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.s.Helices = helices
	b.s.reindex()
	return nil
}

// validateLinks checks that every link of an occupied slot lands on an
// occupied slot of a known helix whose reverse link points back.
func (b *builder) validateLinks() error {
	for i := range b.design.Helices {
		h := &b.design.Helices[i]
		for _, track := range []Track{TrackScaffold, TrackStaple} {
			for pos := range h.Size() {
				slot := h.Slot(track, pos)
				if !slot.Occupied() {
					continue
				}
				from := Link{Helix: h.Num, Pos: pos}
				if err := b.checkLink(track, from, slot.Next, true); err != nil {
					return err
				}
				if err := b.checkLink(track, from, slot.Prev, false); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (b *builder) checkLink(track Track, from, to Link, forward bool) error {
	if !to.Valid() {
		return nil
	}
	target, ok := b.helices[to.Helix]
	if !ok {
		return &UnknownHelixError{From: from, Track: track, Helix: to.Helix}
	}
	if to.Pos >= target.Size() {
		return &ConnectivityError{At: from, Track: track, Reason: fmt.Sprintf("link to %s is out of range", to)}
	}
	slot := target.Slot(track, to.Pos)
	if !slot.Occupied() {
		return &ConnectivityError{At: from, Track: track, Reason: fmt.Sprintf("dangling link to empty slot %s", to)}
	}
	back := slot.Prev
	if !forward {
		back = slot.Next
	}
	if back != from {
		return &ConnectivityError{At: from, Track: track, Reason: fmt.Sprintf("link to %s is not reciprocated (points back to %s)", to, back)}
	}
	return nil
}

// baseCount returns how many bases a slot expands to
func (b *builder) baseCount(slot BaseSlot) int {
	if !slot.Occupied() {
		return 0
	}
	if !b.modify {
		return 1
	}
	if slot.Deleted() {
		return 0
	}
	return 1 + slot.Insertions()
}

// expandBases creates the arena in slot order: helices in load order,
// scaffold before staple, ascending position.
func (b *builder) expandBases() {
	for i := range b.design.Helices {
		dh := &b.design.Helices[i]
		helix := &b.s.Helices[i]
		for _, track := range []Track{TrackScaffold, TrackStaple} {
			for pos := range dh.Size() {
				count := b.baseCount(dh.Slot(track, pos))
				if count == 0 {
					continue
				}
				first := BaseID(len(b.s.Bases))
				for offset := range count {
					id := BaseID(len(b.s.Bases))
					base := Base{
						ID:     id,
						Locus:  Locus{Helix: dh.Num, Pos: pos, Offset: offset},
						Track:  track,
						Strand: -1,
						Prev:   NoBase,
						Next:   NoBase,
						Across: NoBase,
						Coord:  helix.BasePosition(b.params, b.design.Lattice, track, pos, offset, count),
					}
					if offset > 0 {
						base.Prev = id - 1
						b.s.Bases[id-1].Next = id
					}
					b.s.Bases = append(b.s.Bases, base)
				}
				b.spans[slotKey{track: track, helix: dh.Num, pos: pos}] = slotSpan{
					first: first,
					last:  BaseID(len(b.s.Bases) - 1),
				}
			}
		}
	}
	b.log.V(1).Info("bases expanded", "bases", len(b.s.Bases), "slots", b.design.SlotCount())
}

// linkBases joins the last base of each slot to the first base of the slot its
// Next link resolves to, passing through slots that expanded to no base.
func (b *builder) linkBases() error {
	limit := b.design.SlotCount()
	for key, span := range b.spans {
		slot := b.helices[key.helix].Slot(key.track, key.pos)
		to := slot.Next
		for steps := 0; to.Valid(); steps++ {
			if steps > limit {
				return &ConnectivityError{
					At:     Link{Helix: key.helix, Pos: key.pos},
					Track:  key.track,
					Reason: "chain through deleted slots does not terminate",
				}
			}
			if next, ok := b.spans[slotKey{track: key.track, helix: to.Helix, pos: to.Pos}]; ok {
				b.s.Bases[span.last].Next = next.first
				b.s.Bases[next.first].Prev = span.last
				break
			}
			to = b.helices[to.Helix].Slot(key.track, to.Pos).Next
		}
	}
	return nil
}

// pairBases sets the across partner of bases sharing a locus on opposite tracks
func (b *builder) pairBases() {
	for key, span := range b.spans {
		if key.track != TrackScaffold {
			continue
		}
		partner, ok := b.spans[slotKey{track: TrackStaple, helix: key.helix, pos: key.pos}]
		if !ok {
			continue
		}
		for id := span.first; id <= span.last; id++ {
			offset := b.s.Bases[id].Locus.Offset
			other := partner.first + BaseID(offset)
			if other > partner.last {
				continue
			}
			b.s.Bases[id].Across = other
			b.s.Bases[other].Across = id
		}
	}
}

// assembleStrands walks the arena into strands. Each unvisited base is traced
// back to its 5' end (or around its cycle) and then forward; both walks are
// bounded by the arena size.
func (b *builder) assembleStrands() ([]strandPlan, error) {
	bases := b.s.Bases
	total := len(bases)
	visited := make([]bool, total)
	var plans []strandPlan

	for id := range bases {
		if visited[id] {
			continue
		}
		start := BaseID(id)
		head, circular := start, false
		for steps, cur := 0, bases[start].Prev; cur != NoBase; cur = bases[cur].Prev {
			if cur == start {
				circular = true
				break
			}
			if steps++; steps > total {
				return nil, b.malformed(start, "strand does not terminate or return to its start")
			}
			head = cur
		}
		if circular {
			head = start
		}

		var walk []BaseID
		for cur := head; ; {
			if visited[cur] {
				return nil, b.malformed(cur, "strand branches into an already assigned base")
			}
			visited[cur] = true
			walk = append(walk, cur)
			if len(walk) > total {
				return nil, b.malformed(head, "strand does not terminate or return to its start")
			}
			next := bases[cur].Next
			if next == NoBase || (circular && next == head) {
				break
			}
			cur = next
		}

		first := bases[head]
		plan := strandPlan{
			id:       StrandID(len(plans)),
			scaffold: first.Track == TrackScaffold,
			color:    NoColor,
			circular: circular,
			bases:    walk,
		}
		if !plan.scaffold {
			plan.color = b.stapleColor(first.Locus)
		}
		plans = append(plans, plan)
	}

	b.log.V(1).Info("strands assembled", "strands", len(plans))
	return plans, nil
}

// stapleColor finds the color entry at the staple's design 5' slot, which may
// lie behind slots that expanded to no base.
func (b *builder) stapleColor(l Locus) int {
	at := Link{Helix: l.Helix, Pos: l.Pos}
	for steps := 0; steps <= len(b.spans); steps++ {
		prev := b.helices[at.Helix].Slot(TrackStaple, at.Pos).Prev
		if !prev.Valid() {
			break
		}
		if _, ok := b.spans[slotKey{track: TrackStaple, helix: prev.Helix, pos: prev.Pos}]; ok {
			break
		}
		at = prev
	}
	h := b.helices[at.Helix]
	i := slices.IndexFunc(h.StapleColors, func(c StapleColor) bool { return c.Pos == at.Pos })
	if i < 0 {
		return NoColor
	}
	return h.StapleColors[i].Color
}

func (b *builder) malformed(id BaseID, reason string) error {
	base := b.s.Bases[id]
	return &ConnectivityError{
		At:     Link{Helix: base.Locus.Helix, Pos: base.Locus.Pos},
		Track:  base.Track,
		Reason: reason,
	}
}
