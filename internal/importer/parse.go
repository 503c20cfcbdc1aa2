package importer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// DefaultDelimiter separates fields when none is configured.
const DefaultDelimiter = ','

// Parser turns delimited statement text into a header row and data rows.
type Parser struct {
	Delimiter rune
}

// NewParser returns a Parser for delim, or for DefaultDelimiter when delim is 0.
func NewParser(delim rune) *Parser {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	return &Parser{Delimiter: delim}
}

// Parse parses comma-delimited text.
func Parse(text string) (*model.Table, error) {
	return NewParser(DefaultDelimiter).Parse(text)
}

// ParseReader reads all of r and parses it.
func (p *Parser) ParseReader(r io.Reader) (*model.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return p.Parse(string(data))
}

// Parse locates the header line, skipping bank preamble, and converts every
// following line into a RawRow keyed by header name. Summary and running
// balance rows are dropped.
func (p *Parser) Parse(text string) (*model.Table, error) {
	lines := nonBlankLines(text)
	if len(lines) < 2 {
		return nil, ErrEmptyInput
	}

	headerIdx := findHeaderLine(lines)

	var headers []string
	for _, h := range p.SplitLine(lines[headerIdx]) {
		headers = append(headers, cleanHeader(h))
	}

	var rows []model.RawRow
	for i := headerIdx + 1; i < len(lines); i++ {
		values := p.SplitLine(lines[i])
		cells := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(values) {
				cells[h] = values[j]
			} else {
				cells[h] = ""
			}
		}
		row := model.RawRow{Ordinal: len(rows), Line: i + 1, Cells: cells}
		if isSummaryRow(row.First(headers)) {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	return &model.Table{Headers: headers, Rows: rows, HeaderLine: headerIdx}, nil
}

// SplitLine tokenizes one line. A double quote toggles quoted mode and is
// dropped; the delimiter only ends a field outside quotes. Bytes that are not
// valid UTF-8 are copied through unchanged.
func (p *Parser) SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == p.Delimiter && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteString(line[i : i+size])
		}
		i += size
	}
	return append(fields, strings.TrimSpace(cur.String()))
}

func nonBlankLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// findHeaderLine returns the first line mentioning "date" together with
// "description" or "amount", or 0 when there is none.
func findHeaderLine(lines []string) int {
	for i, line := range lines {
		l := strings.ToLower(line)
		if strings.Contains(l, "date") && (strings.Contains(l, "description") || strings.Contains(l, "amount")) {
			return i
		}
	}
	return 0
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(h))
}

func isSummaryRow(first string) bool {
	if first == "" {
		return true
	}
	l := strings.ToLower(first)
	return strings.Contains(l, "balance") || strings.Contains(l, "total")
}
