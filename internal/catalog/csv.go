package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/stmtimport/internal/model"
)

const (
	numFields = 4
	colID     = 0
	colName   = 1
	colIcon   = 2
	colColor  = 3
)

// ReadCategories reads a category catalog CSV (id,name,icon,color).
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var categories []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// WriteCategories writes a category catalog CSV.
func WriteCategories(w io.Writer, categories []model.Category) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"id", "name", "icon", "color"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range categories {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(cat.ID)
	row[colName] = cat.Name
	row[colIcon] = cat.Icon
	row[colColor] = cat.Color
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}
	if record[colName] == "" {
		return model.Category{}, fmt.Errorf("category %d has no name", id)
	}

	return model.Category{
		ID:    id,
		Name:  record[colName],
		Icon:  record[colIcon],
		Color: record[colColor],
	}, nil
}
