package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-logr/logr"
)

// SequenceTable maps staple loci to nucleotide letters
type SequenceTable map[Locus]Nucleotide

// StapleSequence is one row of a caDNAno staple sequence export
type StapleSequence struct {
	Start    Link
	End      Link
	Sequence string
	Color    int
}

// SequenceLookup resolves reference sequences by name
type SequenceLookup interface {
	Lookup(name string) (string, bool)
}

// Library is a fixed set of named reference sequences (scaffolds)
type Library struct {
	seqs map[string]string
}

// NewLibrary creates an empty library
func NewLibrary() *Library {
	return &Library{seqs: make(map[string]string)}
}

// Register adds or replaces a named sequence
func (l *Library) Register(name, seq string) {
	l.seqs[name] = strings.ToUpper(seq)
}

// Lookup returns the sequence registered under name
func (l *Library) Lookup(name string) (string, bool) {
	seq, ok := l.seqs[name]
	return seq, ok
}

// Names returns the registered names in sorted order
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.seqs))
	for name := range l.seqs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered sequences
func (l *Library) Len() int {
	return len(l.seqs)
}

// AssignFromTable writes table letters onto staple bases and their complements
// onto the paired scaffold bases. Bases without a table entry are left as they
// are. onModified must match the modify flag the structure was built with;
// when false only the slot base (offset 0) of each locus is considered.
// It returns the number of staple bases assigned.
func AssignFromTable(s *Structure, onModified bool, table SequenceTable, log logr.Logger) int {
	log = log.WithName("sequence")
	assigned := 0
	for _, st := range s.Staples() {
		for i := st.Start; i < st.End; i++ {
			b := &s.Bases[i]
			if !onModified && b.Locus.Offset > 0 {
				continue
			}
			letter, ok := table[b.Locus]
			if !ok {
				continue
			}
			s.setLetter(b.ID, letter)
			assigned++
		}
	}
	log.V(1).Info("sequence assigned from table", "entries", len(table), "assigned", assigned)
	return assigned
}

// AssignFromName resolves name in lib and writes it along every scaffold
// strand 5'->3', complementing the paired staple bases. Scaffold bases past
// the end of the sequence stay unassigned. The structure is not modified when
// the name is unknown or the sequence holds invalid letters.
func AssignFromName(s *Structure, onModified bool, name string, lib SequenceLookup, log logr.Logger) error {
	log = log.WithName("sequence")
	raw, ok := lib.Lookup(name)
	if !ok {
		log.Error(ErrUnknownSequenceName, "sequence lookup failed", "name", name)
		return &SequenceNameError{Name: name}
	}
	seq, err := ParseSequence(raw)
	if err != nil {
		return fmt.Errorf("sequence %s: %w", name, err)
	}

	for _, st := range s.Scaffolds() {
		next := 0
		for i := st.Start; i < st.End; i++ {
			b := &s.Bases[i]
			if !onModified && b.Locus.Offset > 0 {
				continue
			}
			if next >= len(seq) {
				break
			}
			s.setLetter(b.ID, seq[next])
			next++
		}
		if next < st.Len() && next == len(seq) {
			log.Info("scaffold longer than sequence", "strand", st.ID, "bases", st.Len(), "sequence", name, "length", len(seq))
		}
	}
	log.V(1).Info("sequence assigned from name", "name", name, "length", len(seq))
	return nil
}

// StapleTable expands caDNAno staple rows into a locus table by walking the
// staple strand that starts at each row's 5' locus. Rows with no matching
// staple are skipped and returned.
func StapleTable(s *Structure, rows []StapleSequence, log logr.Logger) (SequenceTable, []StapleSequence) {
	log = log.WithName("sequence")
	table := make(SequenceTable)
	var unmatched []StapleSequence
	for _, row := range rows {
		id, ok := s.BaseAt(TrackStaple, Locus{Helix: row.Start.Helix, Pos: row.Start.Pos})
		if !ok {
			unmatched = append(unmatched, row)
			continue
		}
		st, _ := s.Strand(s.Bases[id].Strand)
		if BaseID(st.Start) != id {
			unmatched = append(unmatched, row)
			continue
		}
		seq, err := ParseSequence(row.Sequence)
		if err != nil {
			log.Info("skipping staple row with invalid sequence", "start", row.Start.String(), "error", err.Error())
			unmatched = append(unmatched, row)
			continue
		}
		for i, b := range s.StrandBases(st) {
			if i >= len(seq) {
				break
			}
			table[b.Locus] = seq[i]
		}
	}
	if len(unmatched) > 0 {
		log.Info("staple rows without a matching strand", "count", len(unmatched))
	}
	return table, unmatched
}

func (s *Structure) setLetter(id BaseID, n Nucleotide) {
	b := &s.Bases[id]
	b.Seq = n
	if b.Across != NoBase {
		s.Bases[b.Across].Seq = n.Complement()
	}
}
