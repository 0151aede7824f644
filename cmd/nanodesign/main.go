package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/adapters/csvseq"
	"nanodesign/internal/adapters/editor"
	"nanodesign/internal/adapters/filesystem"
	"nanodesign/internal/adapters/tui"
	"nanodesign/internal/application/commands"
	"nanodesign/internal/config"
	"nanodesign/internal/domain"
	"nanodesign/internal/logging"
)

func main() {
	configFile := flag.String("config", "", "config file")
	logFile := flag.String("log", "", "write logs to this file (the terminal is taken by the UI)")
	modify := flag.Bool("modify", false, "apply insertions and deletions")
	sequence := flag.String("sequence", "", "scaffold sequence name to assign")
	staples := flag.String("staples", "", "staple directive, e.g. maximal_set,retain=26316")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanodesign [flags] <design.json>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	designPath := flag.Arg(0)

	cfg, err := config.Load(config.New(), *configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, flush := logr.Discard(), func() {}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log, flush, err = logging.NewWithSink(cfg.Log, zapcore.AddSync(f))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer flush()

	// Initialize adapters
	library := filesystem.NewLibrary(cfg.SequenceDir, log)
	if err := library.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	load := func(ctx context.Context) (*domain.Structure, error) {
		convert := commands.NewConvertCommand(cadnano.NewReader(), library, csvseq.NewReader(), log)
		convert.DesignPath = designPath
		convert.Params = cfg.Params
		convert.Modify = cfg.Modify || *modify
		convert.SequenceName = *sequence
		convert.Staples = *staples
		result, err := convert.Execute(ctx)
		if err != nil {
			return nil, err
		}
		return result.Structure, nil
	}

	// Create and run TUI app
	app := tui.NewApp(load, designPath, editor.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
