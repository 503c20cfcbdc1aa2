package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cleared-dev/stmtimport/internal/catalog"
	"github.com/cleared-dev/stmtimport/internal/model"
	"github.com/cleared-dev/stmtimport/internal/staging"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

func checkFormat(format string) error {
	if format != formatTable && format != formatCSV {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatTable, formatCSV)
	}
	return nil
}

func writeCandidates(w io.Writer, format string, cands []model.Candidate, cats *catalog.Service) error {
	if format == formatCSV {
		return staging.WriteCandidates(w, cands)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tSEL\tDATE\tDESCRIPTION\tAMOUNT\tTYPE\tCATEGORY\t")
	for _, c := range cands {
		sel := "[ ]"
		if c.Selected {
			sel = "[x]"
		}
		amount := c.Amount.StringFixed(2)
		if c.AmountErr != nil {
			amount = strconv.Quote(c.RawAmount) + " (invalid)"
		}
		desc := c.Description
		if c.Edited {
			desc += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			c.Ordinal, sel, c.Date, desc, amount, c.Kind, categoryName(c.CategoryID, cats))
	}
	return tw.Flush()
}

func categoryName(catID *int, cats *catalog.Service) string {
	if catID == nil {
		return "-"
	}
	if cat, ok := cats.Get(*catID); ok {
		return cat.Name
	}
	return fmt.Sprintf("#%d", *catID)
}

func writeMapping(w io.Writer, m model.ColumnMapping) {
	fmt.Fprint(w, "Mapping:")
	for _, role := range model.Roles {
		col := m.Column(role)
		if col == "" {
			col = "-"
		}
		fmt.Fprintf(w, " %s=%q", role, col)
	}
	fmt.Fprintln(w)
}

func writeWarnings(w io.Writer, warnings []staging.ValidationError) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d warning(s):\n", len(warnings))
	for _, ve := range warnings {
		fmt.Fprintf(w, "  %s\n", ve.Error())
	}
}
