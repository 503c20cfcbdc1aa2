package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtimport/internal/catalog"
	"github.com/cleared-dev/stmtimport/internal/importer"
	"github.com/cleared-dev/stmtimport/internal/model"
	"github.com/cleared-dev/stmtimport/internal/staging"
)

// stageOptions are the flags shared by preview and import.
type stageOptions struct {
	mapping     model.ColumnMapping
	catalogPath string
	offline     bool
	exclude     []int
	include     []int
	toggleAll   bool
	edits       []string
}

func (o *stageOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.mapping.Date, "date", "", "column holding the date")
	f.StringVar(&o.mapping.Description, "description", "", "column holding the description")
	f.StringVar(&o.mapping.Amount, "amount", "", "column holding the amount")
	f.StringVar(&o.mapping.Type, "type", "", "column holding the transaction type")
	f.StringVar(&o.catalogPath, "catalog", "", "category catalog CSV (id,name,icon,color)")
	f.BoolVar(&o.offline, "offline", false, "use the built-in categories instead of asking the ledger")
	f.IntSliceVar(&o.exclude, "exclude", nil, "row numbers to deselect, e.g. 3,7")
	f.IntSliceVar(&o.include, "include", nil, "row numbers to select, e.g. 6")
	f.BoolVar(&o.toggleAll, "toggle-all", false, "flip select-all before applying --exclude/--include")
	f.StringArrayVar(&o.edits, "edit", nil, "edit a row, ROW:FIELD=VALUE (fields: date, description, amount, type, category)")
}

// readInput reads the statement from path, or from stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// stage runs the pipeline up to the review step: parse, map, normalize,
// then apply the selection and edit flags.
func (rt *runtime) stage(ctx context.Context, text string, opts *stageOptions) (*staging.Session, *catalog.Service, error) {
	delim, err := rt.cfg.Import.DelimiterRune()
	if err != nil {
		return nil, nil, err
	}
	table, err := importer.NewParser(delim).Parse(text)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing statement: %w", err)
	}
	rt.logger.Debug("parsed statement", "headers", strings.Join(table.Headers, "|"), "header_line", table.HeaderLine, "rows", len(table.Rows))

	mapping := importer.Classify(table.Headers)
	for _, role := range model.Roles {
		if col := opts.mapping.Column(role); col != "" {
			mapping.Set(role, col)
		}
	}
	rt.logger.Debug("column mapping", "date", mapping.Date, "description", mapping.Description, "amount", mapping.Amount, "type", mapping.Type)

	cats, err := rt.loadCatalog(ctx, opts.catalogPath, opts.offline)
	if err != nil {
		return nil, nil, err
	}

	s, err := staging.Build(table, mapping, cats)
	if err != nil {
		return nil, nil, err
	}

	if opts.toggleAll {
		s.ToggleAll()
	}
	if err := setSelected(s, opts.exclude, false); err != nil {
		return nil, nil, err
	}
	if err := setSelected(s, opts.include, true); err != nil {
		return nil, nil, err
	}
	for _, raw := range opts.edits {
		e, err := staging.ParseEdit(raw)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Apply(e); err != nil {
			return nil, nil, err
		}
	}

	counts := s.Counts()
	rt.logger.Info("staged statement", "rows", counts.Total, "selected", counts.Selected, "invalid", counts.Invalid, "edited", counts.Edited)
	return s, cats, nil
}

func setSelected(s *staging.Session, ordinals []int, selected bool) error {
	for _, ord := range ordinals {
		c, ok := s.At(ord)
		if !ok {
			return fmt.Errorf("%w: row %d", staging.ErrUnknownCandidate, ord)
		}
		if c.Selected != selected {
			if err := s.Toggle(c.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
