package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidDirective = errors.New("invalid staple directive")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNoStructure      = errors.New("no structure loaded")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DirectiveError represents a staple directive that cannot be parsed
type DirectiveError struct {
	Directive string
	Reason    string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("staple directive %q: %s", e.Directive, e.Reason)
}

func (e *DirectiveError) Is(target error) bool {
	return target == ErrInvalidDirective
}

// StrandError represents a lookup of a strand that is not in the structure
type StrandError struct {
	ID     int
	Reason string
}

func (e *StrandError) Error() string {
	return fmt.Sprintf("strand %d: %s", e.ID, e.Reason)
}

func (e *StrandError) Is(target error) bool {
	return target == ErrNotFound
}
