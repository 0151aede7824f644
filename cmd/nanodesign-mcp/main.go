package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/adapters/csvseq"
	"nanodesign/internal/adapters/filesystem"
	mcpadapter "nanodesign/internal/adapters/mcp"
	"nanodesign/internal/adapters/sqlite"
	"nanodesign/internal/adapters/topology"
	"nanodesign/internal/config"
	"nanodesign/internal/logging"
	"nanodesign/internal/ports"
)

func main() {
	configFile := flag.String("config", "", "config file")
	flag.Parse()

	cfg, err := config.Load(config.New(), *configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanodesign-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr
	log, flush, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanodesign-mcp: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	library := filesystem.NewLibrary(cfg.SequenceDir, log)
	if err := library.Load(); err != nil {
		log.Error(err, "failed to load sequence library")
		os.Exit(1)
	}

	kit := &mcpadapter.Toolkit{
		Reader:    cadnano.NewReader(),
		Library:   library,
		Sequences: csvseq.NewReader(),
		Writers: []ports.StructureWriter{
			topology.NewWriter(true),
			cadnano.NewWriter(),
			csvseq.NewWriter(),
		},
		Params: cfg.Params,
		Log:    log,
	}

	openStore := func(ctx context.Context, name string) (ports.StructureStore, error) {
		path := cfg.StorePath
		if path == "" {
			path = sqlite.DefaultPath(name)
		}
		return sqlite.Open(ctx, path, config.Version, log)
	}

	mcpServer := server.NewMCPServer(
		"nanodesign-mcp",
		config.Version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, kit)
	mcpadapter.RegisterWriteTools(mcpServer, kit, openStore)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error(err, "server stopped")
		flush()
		os.Exit(1)
	}
}
