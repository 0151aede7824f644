package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
	"nanodesign/internal/metrics"
	"nanodesign/internal/ports"
)

// ConvertResult contains the structure produced by a conversion
type ConvertResult struct {
	Structure *domain.Structure
	Removed   int
	Generated int
	Message   string
}

// ConvertCommand reads a design, builds its structure, then applies the
// optional sequence assignment and staple directive in that order
type ConvertCommand struct {
	reader    ports.DesignReader
	library   ports.SequenceLibrary
	sequences ports.SequenceReader
	log       logr.Logger

	DesignPath   string
	Design       *domain.Design // used instead of DesignPath when set
	Params       domain.Parameters
	Modify       bool
	SequenceName string
	SequenceCSV  string
	Staples      string
}

// NewConvertCommand creates a new ConvertCommand
func NewConvertCommand(reader ports.DesignReader, library ports.SequenceLibrary, sequences ports.SequenceReader, log logr.Logger) *ConvertCommand {
	return &ConvertCommand{
		reader:    reader,
		library:   library,
		sequences: sequences,
		log:       log,
		Params:    domain.DefaultParameters(),
	}
}

// Validate checks if the conversion request is complete
func (c *ConvertCommand) Validate() error {
	if c.Design == nil && c.DesignPath == "" {
		return &application.ValidationError{
			Field:   "design",
			Message: "design file is required",
		}
	}

	if c.SequenceName != "" && c.SequenceCSV != "" {
		return &application.ValidationError{
			Field:   "sequence",
			Message: "sequence name and sequence file are mutually exclusive",
		}
	}

	if c.SequenceName != "" && c.library == nil {
		return &application.ValidationError{
			Field:   "sequence",
			Message: "no sequence library configured",
		}
	}

	if err := c.Params.Validate(); err != nil {
		return &application.ValidationError{
			Field:   "params",
			Message: err.Error(),
		}
	}

	if _, err := application.ParseStapleDirective(c.Staples); err != nil {
		return err
	}

	return nil
}

// Execute runs the conversion pipeline
func (c *ConvertCommand) Execute(ctx context.Context) (*ConvertResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := c.log.WithName("convert")

	design := c.Design
	if design == nil {
		if c.reader == nil {
			return nil, fmt.Errorf("%w: no design reader configured", application.ErrInvalidOperation)
		}
		d, err := c.reader.ReadDesign(c.DesignPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read design: %w", err)
		}
		design = d
	}

	start := time.Now()
	s, err := domain.Build(design, c.Params, c.Modify, c.log)
	if err != nil {
		metrics.ObserveBuildError(buildErrorReason(err))
		return nil, fmt.Errorf("failed to build structure: %w", err)
	}
	metrics.ObserveBuild(s.Lattice.String(), len(s.Bases), len(s.Scaffolds()), len(s.Staples()), time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.SequenceName != "" || c.SequenceCSV != "" {
		assign := NewAssignSequenceCommand(c.library, c.sequences, s, c.log)
		assign.Name = c.SequenceName
		assign.CSVPath = c.SequenceCSV
		assign.OnModified = c.Modify
		if _, err := assign.Execute(ctx); err != nil {
			return nil, err
		}
	}

	result := &ConvertResult{Structure: s}
	if c.Staples != "" {
		op := NewStapleOperationCommand(s, c.Staples, c.log)
		res, err := op.Execute(ctx)
		if err != nil {
			return nil, err
		}
		result.Removed = res.Removed
		result.Generated = res.Generated
	}

	result.Message = fmt.Sprintf("Built %s: %d helices, %d bases, %d scaffolds, %d staples",
		design.Name, len(s.Helices), len(s.Bases), len(s.Scaffolds()), len(s.Staples()))
	log.Info("conversion finished", "design", design.Name, "removed", result.Removed, "generated", result.Generated)
	return result, nil
}

func buildErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownHelixReference):
		return "unknown_helix_reference"
	case errors.Is(err, domain.ErrMalformedConnectivity):
		return "malformed_connectivity"
	case errors.Is(err, domain.ErrDuplicateHelix):
		return "duplicate_helix"
	default:
		return "other"
	}
}
