package staging

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// Header is the CSV header for the candidate preview.
const Header = "id,selected,date,description,amount,type,category_id,raw_amount,edited,error"

const (
	numFields   = 10
	colID       = 0
	colSelected = 1
	colDate     = 2
	colDesc     = 3
	colAmount   = 4
	colKind     = 5
	colCategory = 6
	colRaw      = 7
	colEdited   = 8
	colError    = 9
)

// WriteCandidates writes candidates as CSV (including header).
func WriteCandidates(w io.Writer, candidates []model.Candidate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range candidates {
		if err := cw.Write(MarshalCandidate(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCandidate converts a Candidate to a CSV row.
func MarshalCandidate(c model.Candidate) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colSelected] = strconv.FormatBool(c.Selected)
	row[colDate] = c.Date
	row[colDesc] = c.Description
	if c.AmountErr == nil {
		row[colAmount] = c.Amount.StringFixed(2)
	}
	row[colKind] = string(c.Kind)
	if c.CategoryID != nil {
		row[colCategory] = strconv.Itoa(*c.CategoryID)
	}
	row[colRaw] = c.RawAmount
	row[colEdited] = strconv.FormatBool(c.Edited)
	if c.AmountErr != nil {
		row[colError] = c.AmountErr.Error()
	}
	return row
}
