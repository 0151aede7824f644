package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"

	"nanodesign/internal/application"
	"nanodesign/internal/application/commands"
	"nanodesign/internal/domain"
	"nanodesign/internal/ports"
)

// Toolkit carries the adapters every tool builds structures with
type Toolkit struct {
	Reader    ports.DesignReader
	Library   ports.SequenceLibrary
	Sequences ports.SequenceReader
	Writers   []ports.StructureWriter
	Params    domain.Parameters
	Log       logr.Logger
}

// designArgs are the tool options shared by every tool that loads a design
func designArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("path",
			mcp.Description("Path to the caDNAno design file (.json)"),
			mcp.Required(),
		),
		mcp.WithBoolean("modify",
			mcp.Description("Apply insertions and deletions when building the structure"),
		),
		mcp.WithString("sequence",
			mcp.Description("Name of a scaffold sequence from the library to assign"),
		),
		mcp.WithString("sequence_csv",
			mcp.Description("Path to a staple sequence CSV to assign"),
		),
		mcp.WithString("staples",
			mcp.Description("Staple directive: delete or maximal_set, optionally with retain=<c1>:<c2>"),
		),
	}
}

// build runs the conversion pipeline with the design arguments of a request
func (k *Toolkit) build(ctx context.Context, req mcp.CallToolRequest) (*commands.ConvertResult, error) {
	path := req.GetString("path", "")
	if err := application.ValidateRequired("path", path); err != nil {
		return nil, err
	}

	cmd := commands.NewConvertCommand(k.Reader, k.Library, k.Sequences, k.Log)
	cmd.DesignPath = path
	cmd.Params = k.Params
	cmd.Modify = req.GetBool("modify", false)
	cmd.SequenceName = req.GetString("sequence", "")
	cmd.SequenceCSV = req.GetString("sequence_csv", "")
	cmd.Staples = req.GetString("staples", "")
	return cmd.Execute(ctx)
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatStrand(s commands.StrandInfo) string {
	return fmt.Sprintf("%s  %d nt  %s", s.Label(), s.Length, s.Sequence)
}
