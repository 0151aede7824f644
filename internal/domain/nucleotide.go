package domain

import (
	"fmt"
	"strings"
)

// Nucleotide is a single DNA base letter. The zero value is unassigned.
type Nucleotide byte

const (
	Unassigned Nucleotide = 0
	Adenine    Nucleotide = 'A'
	Cytosine   Nucleotide = 'C'
	Guanine    Nucleotide = 'G'
	Thymine    Nucleotide = 'T'
)

// ParseNucleotide accepts A/C/G/T in either case
func ParseNucleotide(r rune) (Nucleotide, error) {
	switch r {
	case 'A', 'a':
		return Adenine, nil
	case 'C', 'c':
		return Cytosine, nil
	case 'G', 'g':
		return Guanine, nil
	case 'T', 't':
		return Thymine, nil
	default:
		return Unassigned, fmt.Errorf("%w %q", ErrInvalidNucleotide, r)
	}
}

// Assigned reports whether the nucleotide carries a letter
func (n Nucleotide) Assigned() bool {
	return n != Unassigned
}

// Complement returns the Watson-Crick partner (A-T, C-G)
func (n Nucleotide) Complement() Nucleotide {
	switch n {
	case Adenine:
		return Thymine
	case Thymine:
		return Adenine
	case Cytosine:
		return Guanine
	case Guanine:
		return Cytosine
	default:
		return Unassigned
	}
}

// String renders unassigned bases as N
func (n Nucleotide) String() string {
	if n == Unassigned {
		return "N"
	}
	return string(rune(n))
}

// ParseSequence converts a letter string into nucleotides, ignoring whitespace
func ParseSequence(s string) ([]Nucleotide, error) {
	out := make([]Nucleotide, 0, len(s))
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		n, err := ParseNucleotide(r)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// FormatSequence renders nucleotides as a string
func FormatSequence(seq []Nucleotide) string {
	var sb strings.Builder
	sb.Grow(len(seq))
	for _, n := range seq {
		sb.WriteString(n.String())
	}
	return sb.String()
}
