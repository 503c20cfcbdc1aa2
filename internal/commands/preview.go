package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPreviewCommand(global *globalOptions) *cobra.Command {
	opts := &stageOptions{}
	var format string

	cmd := &cobra.Command{
		Use:   "preview <file|->",
		Short: "Show the candidate transactions in a statement without importing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			rt, err := loadRuntime(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			text, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			s, cats, err := rt.stage(cmd.Context(), text, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatCSV {
				return writeCandidates(out, format, s.Candidates(), cats)
			}

			writeMapping(out, s.Mapping)
			fmt.Fprintln(out)
			if err := writeCandidates(out, format, s.Candidates(), cats); err != nil {
				return err
			}
			writeWarnings(out, s.Validate(cats))

			counts := s.Counts()
			fmt.Fprintf(out, "\n%d rows, %d selected, %d edited, %d invalid\n",
				counts.Total, counts.Selected, counts.Edited, counts.Invalid)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or csv")

	return cmd
}
