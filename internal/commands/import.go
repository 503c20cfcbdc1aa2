package commands

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtimport/internal/ledger"
)

func newImportCommand(global *globalOptions) *cobra.Command {
	opts := &stageOptions{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import the selected transactions of a statement into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			text, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s, cats, err := rt.stage(ctx, text, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			selected := s.Selected()
			writeWarnings(out, s.ValidateSelected(cats))

			if dryRun {
				if err := writeCandidates(out, formatTable, selected, cats); err != nil {
					return err
				}
				fmt.Fprintf(out, "\ndry run: %d of %d rows would be imported\n", len(selected), s.Len())
				return nil
			}
			if len(selected) == 0 {
				fmt.Fprintln(out, "nothing selected, nothing imported")
				return nil
			}

			d := ledger.NewDispatcher(rt.ledger, ledger.DispatchOptions{
				Concurrency: rt.cfg.Import.Concurrency,
				RateLimit:   rt.cfg.Import.RateLimit,
				Burst:       rt.cfg.Import.Burst,
				Logger:      rt.logger,
			})
			summary := d.Commit(ctx, s.Candidates())

			fmt.Fprintf(out, "Imported %d of %d selected rows (%s)\n", summary.Imported, len(selected), summary)
			for _, r := range summary.ByStatus(ledger.StatusFailed) {
				c, _ := s.At(r.Ordinal)
				fmt.Fprintf(out, "  failed  row %d %q: %v\n", r.Ordinal, c.Description, r.Err)
			}
			for _, r := range summary.ByStatus(ledger.StatusSkipped) {
				c, _ := s.At(r.Ordinal)
				fmt.Fprintf(out, "  skipped row %d %q\n", r.Ordinal, c.Description)
			}

			if summary.Failed > 0 || summary.Skipped > 0 {
				return fmt.Errorf("%d of %d selected rows were not imported", summary.Failed+summary.Skipped, len(selected))
			}
			s.Reset()
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without contacting the ledger")

	return cmd
}
