package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sequencesCmd = &cobra.Command{
	Use:   "sequences",
	Short: "List the scaffold sequences in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := library.Names()
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No sequences in %s\n", library.Dir())
			return nil
		}
		for _, name := range names {
			seq, _ := library.Lookup(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d nt\n", name, len(seq))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sequencesCmd)
}
