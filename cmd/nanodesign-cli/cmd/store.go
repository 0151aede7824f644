package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"nanodesign/internal/adapters/sqlite"
	"nanodesign/internal/config"
	"nanodesign/internal/domain"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect saved structure snapshots",
	Long: `Inspect SQLite snapshots written by "convert --format sqlite".

Examples:
  nanodesign-cli store summary ~/.local/share/nanodesign/crossover.db
  nanodesign-cli store sequence ~/.local/share/nanodesign/crossover.db 3`,
}

var storeSummaryCmd = &cobra.Command{
	Use:   "summary <store.db>",
	Short: "Show what a snapshot contains",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openExisting(cmd, args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		sum, err := store.Summary(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:      %s\n", sum.Name)
		fmt.Fprintf(out, "Lattice:   %s\n", sum.Lattice)
		fmt.Fprintf(out, "Modified:  %t\n", sum.Modified)
		fmt.Fprintf(out, "Version:   %s\n", sum.Version)
		fmt.Fprintf(out, "Helices:   %d\n", sum.Helices)
		fmt.Fprintf(out, "Strands:   %d (%d staples)\n", sum.Strands, sum.Staples)
		fmt.Fprintf(out, "Bases:     %d (%d paired, %d sequenced)\n", sum.Bases, sum.Paired, sum.Sequenced)
		return nil
	},
}

var storeSequenceCmd = &cobra.Command{
	Use:   "sequence <store.db> <strand-id>",
	Short: "Print the sequence of a saved strand",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid strand id %q: %w", args[1], err)
		}
		store, err := openExisting(cmd, args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		seq, err := store.StrandSequence(cmd.Context(), domain.StrandID(id))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), seq)
		return nil
	},
}

// openExisting opens a snapshot without creating a new database
func openExisting(cmd *cobra.Command, path string) (*sqlite.Store, error) {
	path = config.ExpandHome(path)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	return sqlite.Open(cmd.Context(), path, config.Version, log)
}

func init() {
	storeCmd.AddCommand(storeSummaryCmd)
	storeCmd.AddCommand(storeSequenceCmd)
	rootCmd.AddCommand(storeCmd)
}
