package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtimport/internal/catalog"
)

func newCategoriesCommand(global *globalOptions) *cobra.Command {
	var format string
	var catalogPath string
	var offline bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			rt, err := loadRuntime(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cats, err := rt.loadCatalog(cmd.Context(), catalogPath, offline)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatCSV {
				return catalog.WriteCategories(out, cats.All())
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tICON\tCOLOR\t")
			for _, c := range cats.All() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", c.ID, c.Name, c.Icon, c.Color)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or csv")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "category catalog CSV (id,name,icon,color)")
	cmd.Flags().BoolVar(&offline, "offline", false, "show the built-in categories")

	return cmd
}
