package ports

import "nanodesign/internal/domain"

// SequenceReader loads staple sequence rows exported by a design tool
type SequenceReader interface {
	ReadStapleSequences(path string) ([]domain.StapleSequence, error)
}

// SequenceLibrary resolves named reference sequences
type SequenceLibrary interface {
	Lookup(name string) (string, bool)
	Names() []string
}
