package cmd

import (
	"github.com/spf13/cobra"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/adapters/csvseq"
	"nanodesign/internal/application/commands"
)

// buildFlags are shared by every command that builds a structure from a design
type buildFlags struct {
	modify       bool
	sequenceName string
	sequenceCSV  string
	staples      string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.modify, "modify", false, "apply insertions and deletions (default from config)")
	cmd.Flags().StringVarP(&f.sequenceName, "sequence-name", "s", "", "assign a named scaffold sequence from the library")
	cmd.Flags().StringVar(&f.sequenceCSV, "sequence-csv", "", "assign staple sequences from a CSV file")
	cmd.Flags().StringVar(&f.staples, "staples", "", `staple directive: delete or maximal_set, optionally with ,retain=<c1>:<c2>`)
}

// build runs the conversion pipeline on a design file
func (f *buildFlags) build(cmd *cobra.Command, path string) (*commands.ConvertResult, error) {
	convert := commands.NewConvertCommand(cadnano.NewReader(), library, csvseq.NewReader(), log)
	convert.DesignPath = path
	convert.Params = cfg.Params
	convert.Modify = cfg.Modify
	if cmd.Flags().Changed("modify") {
		convert.Modify = f.modify
	}
	convert.SequenceName = f.sequenceName
	convert.SequenceCSV = f.sequenceCSV
	convert.Staples = f.staples
	return convert.Execute(cmd.Context())
}
