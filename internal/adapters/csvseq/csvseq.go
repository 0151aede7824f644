// Package csvseq reads and writes caDNAno staple sequence exports:
// rows of Start,End,Sequence,Length,Color with h[p] loci and #rrggbb colors.
package csvseq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"nanodesign/internal/domain"
)

var header = []string{"Start", "End", "Sequence", "Length", "Color"}

var locusRegex = regexp.MustCompile(`^(\d+)\[(\d+)\]$`)

// Reader implements ports.SequenceReader
type Reader struct{}

// NewReader creates a new staple CSV reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadStapleSequences parses the CSV file at path
func (r *Reader) ReadStapleSequences(path string) ([]domain.StapleSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staple sequences: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses staple rows. A header row is skipped when present; blank
// lines are ignored.
func Decode(in io.Reader) ([]domain.StapleSequence, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []domain.StapleSequence
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read staple sequences: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), header[0]) {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 fields, got %d", line, len(rec))
		}
		row, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(rec []string) (domain.StapleSequence, error) {
	start, err := ParseLocus(rec[0])
	if err != nil {
		return domain.StapleSequence{}, err
	}
	end, err := ParseLocus(rec[1])
	if err != nil {
		return domain.StapleSequence{}, err
	}
	row := domain.StapleSequence{
		Start:    start,
		End:      end,
		Sequence: strings.ToUpper(strings.TrimSpace(rec[2])),
		Color:    domain.NoColor,
	}
	if len(rec) >= 5 && strings.TrimSpace(rec[4]) != "" {
		c, err := ParseColor(rec[4])
		if err != nil {
			return domain.StapleSequence{}, err
		}
		row.Color = c
	}
	return row, nil
}

// ParseLocus parses "h[p]"
func ParseLocus(s string) (domain.Link, error) {
	m := locusRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return domain.NoLink, fmt.Errorf("invalid locus %q: expected helix[position]", s)
	}
	h, _ := strconv.Atoi(m[1])
	p, _ := strconv.Atoi(m[2])
	return domain.Link{Helix: h, Pos: p}, nil
}

// ParseColor parses "#rrggbb"
func ParseColor(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c, err := strconv.ParseInt(s, 16, 32)
	if err != nil || len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	return int(c), nil
}

// Writer implements ports.StructureWriter exporting staple sequences
type Writer struct{}

// NewWriter creates a new staple CSV writer
func NewWriter() *Writer {
	return &Writer{}
}

// Format returns the writer's format name
func (w *Writer) Format() string {
	return "csv"
}

// Write emits one row per staple strand in id order
func (w *Writer) Write(out io.Writer, s *domain.Structure) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, st := range s.Staples() {
		bases := s.StrandBases(st)
		if len(bases) == 0 {
			continue
		}
		first, last := bases[0].Locus, bases[len(bases)-1].Locus
		color := ""
		if st.Color != domain.NoColor {
			color = fmt.Sprintf("#%06x", st.Color)
		}
		rec := []string{
			fmt.Sprintf("%d[%d]", first.Helix, first.Pos),
			fmt.Sprintf("%d[%d]", last.Helix, last.Pos),
			s.Sequence(st),
			strconv.Itoa(st.Len()),
			color,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
