package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nanodesign/internal/application/commands"
	"nanodesign/internal/ports"
)

// StoreOpener opens the snapshot store for a design name
type StoreOpener func(ctx context.Context, name string) (ports.StructureStore, error)

// RegisterWriteTools adds the tools that write structures to disk.
func RegisterWriteTools(s *server.MCPServer, k *Toolkit, open StoreOpener) {
	s.AddTool(convertTool(k), convertHandler(k))
	if open != nil {
		s.AddTool(saveTool(), saveHandler(k, open))
	}
}

// --- convert_design ---

func convertTool(k *Toolkit) mcp.Tool {
	formats := make([]string, len(k.Writers))
	for i, w := range k.Writers {
		formats[i] = w.Format()
	}
	return mcp.NewTool("convert_design",
		append([]mcp.ToolOption{
			mcp.WithDescription("Build a caDNAno design, apply the optional sequence and staple directive, and write the structure to a file."),
			mcp.WithString("output",
				mcp.Description("Path of the file to write"),
				mcp.Required(),
			),
			mcp.WithString("format",
				mcp.Description("Output format"),
				mcp.Enum(formats...),
				mcp.Required(),
			),
		}, designArgs()...)...,
	)
}

func convertHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		output := req.GetString("output", "")
		if output == "" {
			return toolError(fmt.Errorf("output is required"))
		}
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}

		f, err := os.Create(output)
		if err != nil {
			return toolError(fmt.Errorf("creating output: %w", err))
		}
		defer f.Close()

		export := commands.NewExportCommand(result.Structure, f, req.GetString("format", ""), k.Writers...)
		if err := export.Execute(ctx); err != nil {
			return toolError(err)
		}
		if err := f.Close(); err != nil {
			return toolError(fmt.Errorf("closing output: %w", err))
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\nWrote %s", result.Message, output)), nil
	}
}

// --- save_structure ---

func saveTool() mcp.Tool {
	return mcp.NewTool("save_structure",
		append([]mcp.ToolOption{
			mcp.WithDescription("Build a caDNAno design and store the structure snapshot in the local database."),
		}, designArgs()...)...,
	)
}

func saveHandler(k *Toolkit, open StoreOpener) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}

		store, err := open(ctx, result.Structure.Name)
		if err != nil {
			return toolError(err)
		}
		defer store.Close()

		sum, err := commands.NewSaveCommand(store, result.Structure).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Saved %s: %d strands, %d bases, %d sequenced",
			sum.Name, sum.Strands, sum.Bases, sum.Sequenced)), nil
	}
}
