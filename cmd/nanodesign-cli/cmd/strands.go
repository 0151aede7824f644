package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nanodesign/internal/application"
	"nanodesign/internal/application/commands"
)

var (
	strandsFlags  buildFlags
	strandsRole   string
	strandsColors string
)

var strandsCmd = &cobra.Command{
	Use:   "strands <design.json>",
	Short: "List the strands of a design",
	Long: `List scaffold and staple strands with their 5' and 3' ends, length and
sequence.

Examples:
  nanodesign-cli strands design.json
  nanodesign-cli strands design.json --role staple --colors 26316,16204552
  nanodesign-cli strands design.json -s m13mp18`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colors, err := application.ParseColorList(strandsColors)
		if err != nil {
			return err
		}
		result, err := strandsFlags.build(cmd, args[0])
		if err != nil {
			return err
		}

		list := commands.NewListStrandsCommand(result.Structure)
		list.Role = strandsRole
		list.Colors = colors
		strands, err := list.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range strands {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d nt %s\n", s.Label(), s.Length, s.Sequence)
		}
		return nil
	},
}

var (
	staplesFlags  buildFlags
	staplesColors string
)

var staplesCmd = &cobra.Command{
	Use:   "staples <design.json>",
	Short: "List staples by color",
	Long: `List the staple strands whose color is in --colors, or every staple when
--colors is empty.

Examples:
  nanodesign-cli staples design.json --colors 26316
  nanodesign-cli staples design.json --staples maximal_set,retain=26316 --colors 8947848`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colors, err := application.ParseColorList(staplesColors)
		if err != nil {
			return err
		}
		result, err := staplesFlags.build(cmd, args[0])
		if err != nil {
			return err
		}

		list := commands.NewListStrandsCommand(result.Structure)
		list.Role = "staple"
		list.Colors = colors
		staples, err := list.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range staples {
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s %d[%d] %d[%d] %d %s\n", s.ID, application.FormatColor(s.Color),
				s.Start.Helix, s.Start.Pos, s.End.Helix, s.End.Pos, s.Length, s.Sequence)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d staples\n", len(staples))
		return nil
	},
}

var searchFlags buildFlags

var searchCmd = &cobra.Command{
	Use:   "search <design.json> <query>",
	Short: "Fuzzy search strands by label or sequence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := searchFlags.build(cmd, args[0])
		if err != nil {
			return err
		}

		results, err := commands.NewSearchStrandsCommand(result.Structure, args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No strands found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d nt (score %d)\n", r.Label(), r.Length, r.Score)
		}
		return nil
	},
}

func init() {
	strandsFlags.register(strandsCmd)
	strandsCmd.Flags().StringVar(&strandsRole, "role", "", "only list scaffold or staple strands")
	strandsCmd.Flags().StringVar(&strandsColors, "colors", "", "only list staples of these decimal colors (e.g. 26316:16204552)")
	rootCmd.AddCommand(strandsCmd)

	staplesFlags.register(staplesCmd)
	staplesCmd.Flags().StringVar(&staplesColors, "colors", "", "decimal staple colors (e.g. 26316:16204552)")
	rootCmd.AddCommand(staplesCmd)

	searchFlags.register(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
