package cmd

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"nanodesign/internal/adapters/filesystem"
	"nanodesign/internal/config"
	"nanodesign/internal/logging"
	"nanodesign/internal/metrics"
)

var (
	configFile string
	v          = config.New()
	cfg        config.Config
	log        = logr.Discard()
	flush      = func() {}
	library    *filesystem.Library
)

var rootCmd = &cobra.Command{
	Use:   "nanodesign-cli",
	Short: "Convert caDNAno DNA origami designs into structure models",
	Long: `nanodesign-cli reads caDNAno design files and builds the DNA structure
they describe: helix geometry, strands, domains and base pairing.

It can assign scaffold sequences, delete staples or generate a maximal
staple set, and write the result as caDNAno JSON, topology JSON, a staple
CSV or a SQLite snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer flush()
		if cfg.MetricsFile == "" {
			return nil
		}
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		return nil
	},
}

// setup loads the configuration, the logger and the sequence library
func setup() error {
	var err error
	cfg, err = config.Load(v, configFile)
	if err != nil {
		return err
	}

	log, flush, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}

	library = filesystem.NewLibrary(cfg.SequenceDir, log)
	if err := library.Load(); err != nil {
		return fmt.Errorf("failed to load sequence library: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default: nanodesign.yaml in . or $XDG_CONFIG_HOME/nanodesign)")
	flags.String("sequence-dir", config.DefaultSequenceDir, "directory of FASTA scaffold sequences")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.StringSlice("debug-modules", nil, "component loggers to log at debug level (e.g. builder,store)")
	flags.String("metrics-file", "", "write Prometheus metrics to this file after the run")

	for key, name := range map[string]string{
		"sequence_dir":      "sequence-dir",
		"log.level":         "log-level",
		"log.format":        "log-format",
		"log.debug_modules": "debug-modules",
		"metrics_file":      "metrics-file",
	} {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(name)))
	}
}
