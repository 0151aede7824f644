package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nanodesign/internal/application"
)

var (
	infoFlags buildFlags
	infoJSON  bool
)

var infoCmd = &cobra.Command{
	Use:   "info <design.json>",
	Short: "Summarize the structure of a design",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := infoFlags.build(cmd, args[0])
		if err != nil {
			return err
		}

		sum := application.Summarize(result.Structure)
		out := cmd.OutOrStdout()
		if infoJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}

		colors := make([]string, 0, len(sum.StapleColors))
		for _, c := range sum.StapleColors {
			colors = append(colors, application.FormatColor(c))
		}
		fmt.Fprintf(out, "Name:          %s\n", sum.Name)
		fmt.Fprintf(out, "Lattice:       %s\n", sum.Lattice)
		fmt.Fprintf(out, "Modified:      %t\n", sum.Modified)
		fmt.Fprintf(out, "Helices:       %d\n", sum.Helices)
		fmt.Fprintf(out, "Bases:         %d (%d paired)\n", sum.Bases, sum.PairedBases)
		fmt.Fprintf(out, "Scaffolds:     %d (%d nt)\n", sum.Scaffolds, sum.ScaffoldBases)
		fmt.Fprintf(out, "Staples:       %d\n", sum.Staples)
		fmt.Fprintf(out, "Staple colors: %s\n", strings.Join(colors, " "))
		return nil
	},
}

func init() {
	infoFlags.register(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(infoCmd)
}
