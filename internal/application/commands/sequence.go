package commands

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
	"nanodesign/internal/metrics"
	"nanodesign/internal/ports"
)

// AssignSequenceResult contains the outcome of a sequence assignment
type AssignSequenceResult struct {
	Assigned  int
	Unmatched []domain.StapleSequence
	Message   string
}

// AssignSequenceCommand assigns a scaffold sequence by library name or staple
// sequences from a CSV export
type AssignSequenceCommand struct {
	library   ports.SequenceLibrary
	sequences ports.SequenceReader
	structure *domain.Structure
	log       logr.Logger

	Name       string
	CSVPath    string
	OnModified bool
}

// NewAssignSequenceCommand creates a new AssignSequenceCommand
func NewAssignSequenceCommand(library ports.SequenceLibrary, sequences ports.SequenceReader, s *domain.Structure, log logr.Logger) *AssignSequenceCommand {
	return &AssignSequenceCommand{
		library:   library,
		sequences: sequences,
		structure: s,
		log:       log,
	}
}

// Validate checks if the assignment is valid
func (c *AssignSequenceCommand) Validate() error {
	if c.structure == nil {
		return application.ErrNoStructure
	}

	if c.Name == "" && c.CSVPath == "" {
		return &application.ValidationError{
			Field:   "sequence",
			Message: "sequence name or sequence file is required",
		}
	}

	if c.Name != "" && c.CSVPath != "" {
		return &application.ValidationError{
			Field:   "sequence",
			Message: "sequence name and sequence file are mutually exclusive",
		}
	}

	if c.Name != "" && c.library == nil {
		return &application.ValidationError{
			Field:   "library",
			Message: "no sequence library configured",
		}
	}

	if c.CSVPath != "" && c.sequences == nil {
		return &application.ValidationError{
			Field:   "sequences",
			Message: "no sequence reader configured",
		}
	}

	return nil
}

// Execute runs the sequence assignment
func (c *AssignSequenceCommand) Execute(ctx context.Context) (*AssignSequenceResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Name != "" {
		if err := domain.AssignFromName(c.structure, c.OnModified, c.Name, c.library, c.log); err != nil {
			return nil, err
		}
		metrics.ObserveSequenceAssignment("name")
		assigned := 0
		for _, sc := range c.structure.Scaffolds() {
			for _, b := range c.structure.StrandBases(sc) {
				if b.Seq.Assigned() {
					assigned++
				}
			}
		}
		return &AssignSequenceResult{
			Assigned: assigned,
			Message:  fmt.Sprintf("Assigned %s to %d scaffold bases", c.Name, assigned),
		}, nil
	}

	rows, err := c.sequences.ReadStapleSequences(c.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read staple sequences: %w", err)
	}
	table, unmatched := domain.StapleTable(c.structure, rows, c.log)
	assigned := domain.AssignFromTable(c.structure, c.OnModified, table, c.log)
	metrics.ObserveSequenceAssignment("table")

	return &AssignSequenceResult{
		Assigned:  assigned,
		Unmatched: unmatched,
		Message:   fmt.Sprintf("Assigned %d staple bases from %d rows (%d unmatched)", assigned, len(rows), len(unmatched)),
	}, nil
}
