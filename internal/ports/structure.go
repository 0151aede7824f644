package ports

import (
	"context"
	"io"

	"nanodesign/internal/domain"
)

// StructureWriter serializes a structure to an output format
type StructureWriter interface {
	// Format returns the short name used to select the writer (e.g. "topology")
	Format() string
	Write(w io.Writer, s *domain.Structure) error
}

// StoredSummary describes a structure snapshot held by a StructureStore
type StoredSummary struct {
	Name      string
	Lattice   string
	Modified  bool
	Version   string
	Helices   int
	Strands   int
	Staples   int
	Bases     int
	Paired    int
	Sequenced int
}

// StructureStore persists structure snapshots
type StructureStore interface {
	// Save replaces the stored snapshot with s
	Save(ctx context.Context, s *domain.Structure) error

	// Summary reads the counts of the stored snapshot back
	Summary(ctx context.Context) (*StoredSummary, error)

	Close() error
}
