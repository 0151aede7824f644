package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nanodesign/internal/application"
	"nanodesign/internal/application/commands"
	"nanodesign/internal/domain"
)

// RegisterReadTools adds the tools that inspect a design without writing files.
func RegisterReadTools(s *server.MCPServer, k *Toolkit) {
	s.AddTool(summarizeTool(), summarizeHandler(k))
	s.AddTool(listStrandsTool(), listStrandsHandler(k))
	s.AddTool(staplesByColorTool(), staplesByColorHandler(k))
	s.AddTool(strandSequenceTool(), strandSequenceHandler(k))
	s.AddTool(searchTool(), searchHandler(k))
	s.AddTool(sequencesTool(), sequencesHandler(k))
}

// --- summarize_design ---

func summarizeTool() mcp.Tool {
	return mcp.NewTool("summarize_design",
		append([]mcp.ToolOption{
			mcp.WithDescription("Build a caDNAno design and report its lattice, helix, base and strand counts."),
		}, designArgs()...)...,
	)
}

func summarizeHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}
		sum := application.Summarize(result.Structure)

		var sb strings.Builder
		fmt.Fprintf(&sb, "name: %s\n", sum.Name)
		fmt.Fprintf(&sb, "lattice: %s\n", sum.Lattice)
		fmt.Fprintf(&sb, "modified: %t\n", sum.Modified)
		fmt.Fprintf(&sb, "helices: %d\n", sum.Helices)
		fmt.Fprintf(&sb, "bases: %d (%d scaffold, %d paired)\n", sum.Bases, sum.ScaffoldBases, sum.PairedBases)
		fmt.Fprintf(&sb, "scaffolds: %d\n", sum.Scaffolds)
		fmt.Fprintf(&sb, "staples: %d\n", sum.Staples)
		colors := make([]string, len(sum.StapleColors))
		for i, c := range sum.StapleColors {
			colors[i] = application.FormatColor(c)
		}
		fmt.Fprintf(&sb, "staple colors: %s\n", strings.Join(colors, " "))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_strands ---

func listStrandsTool() mcp.Tool {
	return mcp.NewTool("list_strands",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the strands of a design with their ends, length and sequence."),
			mcp.WithString("role",
				mcp.Description("Only list strands of this role"),
				mcp.Enum("scaffold", "staple"),
			),
			mcp.WithString("colors",
				mcp.Description("Only list staples of these decimal colors (e.g. 5:7)"),
			),
		}, designArgs()...)...,
	)
}

func listStrandsHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		colors, err := application.ParseColorList(req.GetString("colors", ""))
		if err != nil {
			return toolError(err)
		}
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewListStrandsCommand(result.Structure)
		cmd.Role = req.GetString("role", "")
		cmd.Colors = colors
		strands, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(strands, formatStrand)
	}
}

// --- staples_by_color ---

func staplesByColorTool() mcp.Tool {
	return mcp.NewTool("staples_by_color",
		append([]mcp.ToolOption{
			mcp.WithDescription("List the staples whose color is in the given set."),
			mcp.WithString("colors",
				mcp.Description("Decimal staple colors separated by ':' or ',' (e.g. 5:7)"),
				mcp.Required(),
			),
		}, designArgs()...)...,
	)
}

func staplesByColorHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		colors, err := application.ParseColorList(req.GetString("colors", ""))
		if err != nil {
			return toolError(err)
		}
		if len(colors) == 0 {
			return toolError(fmt.Errorf("colors is required"))
		}
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewListStrandsCommand(result.Structure)
		cmd.Role = "staple"
		cmd.Colors = colors
		strands, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(strands, formatStrand)
	}
}

// --- strand_sequence ---

func strandSequenceTool() mcp.Tool {
	return mcp.NewTool("strand_sequence",
		append([]mcp.ToolOption{
			mcp.WithDescription("Return the 5'->3' sequence of one strand. Unassigned bases read as N."),
			mcp.WithNumber("strand_id",
				mcp.Description("Strand id as shown by list_strands"),
				mcp.Required(),
			),
		}, designArgs()...)...,
	)
}

func strandSequenceHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetInt("strand_id", -1)
		if id < 0 {
			return toolError(fmt.Errorf("strand_id is required"))
		}
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}

		info, err := commands.NewGetStrandCommand(result.Structure, domain.StrandID(id)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(info.Sequence), nil
	}
}

// --- search_strands ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_strands",
		append([]mcp.ToolOption{
			mcp.WithDescription("Fuzzy search strands by label (role, id, color, ends) or sequence fragment."),
			mcp.WithString("query",
				mcp.Description("Search query"),
				mcp.Required(),
			),
		}, designArgs()...)...,
	)
}

func searchHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		result, err := k.build(ctx, req)
		if err != nil {
			return toolError(err)
		}

		results, err := commands.NewSearchStrandsCommand(result.Structure, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  score %d\n", r.Label(), r.Score)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_sequences ---

func sequencesTool() mcp.Tool {
	return mcp.NewTool("list_sequences",
		mcp.WithDescription("List the scaffold sequence names available in the library."),
	)
}

func sequencesHandler(k *Toolkit) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if k.Library == nil {
			return mcp.NewToolResultText("No results."), nil
		}
		return formatEntities(k.Library.Names(), func(n string) string { return n })
	}
}
