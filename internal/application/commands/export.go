package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
	"nanodesign/internal/ports"
)

// ExportCommand writes a structure through one of the registered writers
type ExportCommand struct {
	writers   map[string]ports.StructureWriter
	structure *domain.Structure
	Format    string
	Out       io.Writer
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(s *domain.Structure, out io.Writer, format string, writers ...ports.StructureWriter) *ExportCommand {
	byFormat := make(map[string]ports.StructureWriter, len(writers))
	for _, w := range writers {
		byFormat[w.Format()] = w
	}
	return &ExportCommand{
		writers:   byFormat,
		structure: s,
		Format:    format,
		Out:       out,
	}
}

// Validate checks that the format is known
func (c *ExportCommand) Validate() error {
	if c.structure == nil {
		return application.ErrNoStructure
	}

	if c.Out == nil {
		return &application.ValidationError{
			Field:   "out",
			Message: "output is required",
		}
	}

	if _, ok := c.writers[c.Format]; !ok {
		return &application.ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown output format %q", c.Format),
		}
	}

	return nil
}

// Execute renders the structure into memory first so a failing writer leaves
// the output untouched
func (c *ExportCommand) Execute(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.writers[c.Format].Write(&buf, c.structure); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Format, err)
	}
	if _, err := buf.WriteTo(c.Out); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Format, err)
	}
	return nil
}

// SaveCommand persists a structure snapshot in a store
type SaveCommand struct {
	store     ports.StructureStore
	structure *domain.Structure
}

// NewSaveCommand creates a new SaveCommand
func NewSaveCommand(store ports.StructureStore, s *domain.Structure) *SaveCommand {
	return &SaveCommand{store: store, structure: s}
}

// Execute saves the snapshot and reads its summary back
func (c *SaveCommand) Execute(ctx context.Context) (*ports.StoredSummary, error) {
	if c.structure == nil {
		return nil, application.ErrNoStructure
	}
	if err := c.store.Save(ctx, c.structure); err != nil {
		return nil, fmt.Errorf("failed to save structure: %w", err)
	}
	return c.store.Summary(ctx)
}
