package model

// RawRow is one parsed data line keyed by header name. Rows are never modified
// after parsing.
type RawRow struct {
	Ordinal int // position among kept data rows, starting at 0
	Line    int // 1-based line number among non-blank lines
	Cells   map[string]string
}

// Get returns the cell for a column, or "" when the column is unset or absent.
func (r RawRow) Get(column string) string {
	if column == "" {
		return ""
	}
	return r.Cells[column]
}

// First returns the cell of the first header column.
func (r RawRow) First(headers []string) string {
	if len(headers) == 0 {
		return ""
	}
	return r.Cells[headers[0]]
}

// Table is the output of the delimited-text parser.
type Table struct {
	Headers    []string
	Rows       []RawRow
	HeaderLine int // index of the header among non-blank lines
}
