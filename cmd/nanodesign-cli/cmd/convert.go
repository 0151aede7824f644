package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/adapters/csvseq"
	"nanodesign/internal/adapters/sqlite"
	"nanodesign/internal/adapters/topology"
	"nanodesign/internal/application/commands"
	"nanodesign/internal/config"
	"nanodesign/internal/domain"
	"nanodesign/internal/ports"
)

const formatSQLite = "sqlite"

var (
	convertFlags  buildFlags
	convertFormat string
	convertOut    string
	convertIndent bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <design.json>",
	Short: "Build a structure from a caDNAno design and write it out",
	Long: `Build the DNA structure described by a caDNAno design, optionally assign
sequences and edit the staple set, then write the result.

Formats:
  topology  strands, domains and bases with coordinates (JSON)
  cadnano   caDNAno 2 design (JSON)
  csv       staple list with sequences
  sqlite    snapshot database (--out, store_path, or one per design)

Examples:
  nanodesign-cli convert design.json
  nanodesign-cli convert design.json -s m13mp18 --format csv -o staples.csv
  nanodesign-cli convert design.json --staples maximal_set,retain=26316 --format cadnano
  nanodesign-cli convert design.json --modify --format sqlite`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := convertFlags.build(cmd, args[0])
		if err != nil {
			return err
		}

		if convertFormat == formatSQLite {
			return saveSnapshot(cmd, result.Structure)
		}

		if err := export(cmd, result.Structure); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
		return nil
	},
}

func writers() []ports.StructureWriter {
	return []ports.StructureWriter{
		topology.NewWriter(convertIndent),
		cadnano.NewWriter(),
		csvseq.NewWriter(),
	}
}

// export writes the structure to --out or stdout. A failed export removes the
// partially written file.
func export(cmd *cobra.Command, s *domain.Structure) (err error) {
	if convertOut == "" {
		return commands.NewExportCommand(s, cmd.OutOrStdout(), convertFormat, writers()...).Execute(cmd.Context())
	}

	f, err := os.Create(convertOut)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
		if err != nil {
			os.Remove(convertOut)
		}
	}()

	return commands.NewExportCommand(s, f, convertFormat, writers()...).Execute(cmd.Context())
}

// saveSnapshot writes the structure to the SQLite store
func saveSnapshot(cmd *cobra.Command, s *domain.Structure) error {
	path := convertOut
	if path == "" {
		path = cfg.StorePath
	}
	if path == "" {
		path = sqlite.DefaultPath(s.Name)
	}

	store, err := sqlite.Open(cmd.Context(), path, config.Version, log)
	if err != nil {
		return err
	}
	defer store.Close()

	sum, err := commands.NewSaveCommand(store, s).Execute(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s: %d strands, %d bases, %d sequenced\n",
		sum.Name, store.Path(), sum.Strands, sum.Bases, sum.Sequenced)
	return nil
}

func init() {
	convertFlags.register(convertCmd)
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "topology", "output format (topology, cadnano, csv, sqlite)")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file (default stdout)")
	convertCmd.Flags().BoolVar(&convertIndent, "indent", true, "indent topology JSON")
	rootCmd.AddCommand(convertCmd)
}
