package commands

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
	"nanodesign/internal/metrics"
)

// StapleOperationResult contains the outcome of a staple edit
type StapleOperationResult struct {
	Directive application.StapleDirective
	Retained  []domain.StrandID
	Removed   int
	Generated int
	Message   string
}

// StapleOperationCommand applies a staple directive to a structure
type StapleOperationCommand struct {
	structure *domain.Structure
	log       logr.Logger
	Directive string
}

// NewStapleOperationCommand creates a new StapleOperationCommand
func NewStapleOperationCommand(s *domain.Structure, directive string, log logr.Logger) *StapleOperationCommand {
	return &StapleOperationCommand{
		structure: s,
		log:       log,
		Directive: directive,
	}
}

// Validate checks if the directive can be applied
func (c *StapleOperationCommand) Validate() error {
	if c.structure == nil {
		return application.ErrNoStructure
	}

	if c.Directive == "" {
		return &application.ValidationError{
			Field:   "staples",
			Message: "staple directive is required",
		}
	}

	_, err := application.ParseStapleDirective(c.Directive)
	return err
}

// Execute runs the staple operation
func (c *StapleOperationCommand) Execute(ctx context.Context) (*StapleOperationResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d, _ := application.ParseStapleDirective(c.Directive)

	retain := domain.StaplesByColor(c.structure, d.RetainColors)
	res := &StapleOperationResult{Directive: d, Retained: retain}

	switch d.Operation {
	case application.StapleOperationDelete:
		res.Removed = domain.RemoveStaples(c.structure, retain, c.log)
		res.Message = fmt.Sprintf("Removed %d staples, retained %d", res.Removed, len(retain))
	case application.StapleOperationMaximalSet:
		before := len(c.structure.Staples())
		res.Generated = domain.GenerateMaximalStapleSet(c.structure, retain, c.log)
		res.Removed = before - len(retain)
		res.Message = fmt.Sprintf("Removed %d staples, generated %d, retained %d", res.Removed, res.Generated, len(retain))
	}

	metrics.ObserveStapleOperation(res.Removed, res.Generated)
	return res, nil
}
