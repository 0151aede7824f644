package domain

import (
	"slices"

	"github.com/go-logr/logr"
)

// StaplesByColor returns the ids of every staple whose color is in colors.
// The result is sorted by id; an empty color set yields no strands.
func StaplesByColor(s *Structure, colors []int) []StrandID {
	if len(colors) == 0 {
		return nil
	}
	want := make(map[int]bool, len(colors))
	for _, c := range colors {
		want[c] = true
	}
	var out []StrandID
	for _, st := range s.Staples() {
		if want[st.Color] {
			out = append(out, st.ID)
		}
	}
	return out
}

// RemoveStaples deletes every staple strand not listed in retain and releases
// its bases. Scaffold strands are never removed. It returns the number of
// staples removed.
func RemoveStaples(s *Structure, retain []StrandID, log logr.Logger) int {
	log = log.WithName("staples")
	keep := make(map[StrandID]bool, len(retain))
	for _, id := range retain {
		keep[id] = true
	}

	plans := s.plans()
	kept := plans[:0]
	removed := 0
	for _, p := range plans {
		if p.scaffold || keep[p.id] {
			kept = append(kept, p)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.relayout(kept)
	}
	log.V(1).Info("staples removed", "removed", removed, "retained", len(s.Staples()))
	return removed
}

// GenerateMaximalStapleSet replaces the staple set with the retained staples
// plus one new staple for every maximal run of unpaired scaffold bases that
// stays on a single helix. Generated staples never cross between helices, so
// a run always continues along the current helix and ends where the scaffold
// crosses over or reaches a paired base. Scaffolds are visited in id order and
// their bases 5'->3', which makes the result deterministic. It returns the
// number of staples generated.
func GenerateMaximalStapleSet(s *Structure, retain []StrandID, log logr.Logger) int {
	log = log.WithName("staples")
	RemoveStaples(s, retain, log)

	plans := s.plans()
	generated := 0
	for _, sc := range s.Scaffolds() {
		for _, run := range s.unpairedRuns(sc) {
			plans = append(plans, s.complementRun(run))
			generated++
		}
	}
	if generated > 0 {
		s.relayout(plans)
	}
	log.Info("maximal staple set generated", "generated", generated, "retained", len(retain), "staples", len(s.Staples()))
	return generated
}

// unpairedRuns splits a scaffold into maximal single-helix runs of unpaired
// bases. A circular scaffold whose first and last runs meet across the strand
// origin yields them as one run.
func (s *Structure) unpairedRuns(sc *Strand) [][]BaseID {
	var runs [][]BaseID
	var cur []BaseID
	for i := sc.Start; i < sc.End; i++ {
		b := &s.Bases[i]
		if b.Paired() {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		if len(cur) > 0 && s.Bases[cur[len(cur)-1]].Locus.Helix != b.Locus.Helix {
			runs = append(runs, cur)
			cur = nil
		}
		cur = append(cur, b.ID)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}

	if sc.Circular && len(runs) > 1 {
		first, last := runs[0], runs[len(runs)-1]
		wraps := first[0] == BaseID(sc.Start) &&
			last[len(last)-1] == BaseID(sc.End-1) &&
			s.Bases[first[0]].Locus.Helix == s.Bases[last[0]].Locus.Helix
		if wraps {
			runs[0] = append(slices.Clone(last), first...)
			runs = runs[:len(runs)-1]
		}
	}
	return runs
}

// complementRun appends staple bases antiparallel to a scaffold run and
// returns the plan of the new strand. Letters already assigned to the
// scaffold are complemented onto the new bases.
func (s *Structure) complementRun(run []BaseID) strandPlan {
	plan := strandPlan{
		id:       s.nextStrandID,
		scaffold: false,
		color:    GeneratedStapleColor,
	}
	s.nextStrandID++

	for i := len(run) - 1; i >= 0; i-- {
		sc := &s.Bases[run[i]]
		helix, _ := s.Helix(sc.Locus.Helix)
		count := 1
		if s.Modified && sc.Locus.Pos < len(helix.Modifiers) {
			count += max(helix.Modifiers[sc.Locus.Pos], 0)
		}
		id := BaseID(len(s.Bases))
		staple := Base{
			ID:     id,
			Locus:  sc.Locus,
			Track:  TrackStaple,
			Strand: plan.id,
			Prev:   NoBase,
			Next:   NoBase,
			Across: sc.ID,
			Seq:    sc.Seq.Complement(),
			Coord:  helix.BasePosition(s.Params, s.Lattice, TrackStaple, sc.Locus.Pos, sc.Locus.Offset, count),
		}
		s.Bases = append(s.Bases, staple)
		// sc may have moved with the append
		s.Bases[run[i]].Across = id
		plan.bases = append(plan.bases, id)
	}
	return plan
}
