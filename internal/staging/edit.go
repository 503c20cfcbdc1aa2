package staging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cleared-dev/stmtimport/internal/importer"
	"github.com/cleared-dev/stmtimport/internal/model"
)

// Field names a user-editable candidate field.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldKind        Field = "type"
	FieldCategory    Field = "category"
)

// Edit is one field change for one candidate, addressed by row ordinal.
type Edit struct {
	Ordinal int
	Field   Field
	Value   string
}

// ParseEdit parses "ORDINAL:FIELD=VALUE", e.g. "4:category=2" or
// "6:amount=12.50". An empty category value clears the category.
func ParseEdit(s string) (Edit, error) {
	head, value, ok := strings.Cut(s, "=")
	if !ok {
		return Edit{}, fmt.Errorf("edit %q: expected ORDINAL:FIELD=VALUE", s)
	}
	ordStr, field, ok := strings.Cut(head, ":")
	if !ok {
		return Edit{}, fmt.Errorf("edit %q: expected ORDINAL:FIELD=VALUE", s)
	}
	ordinal, err := strconv.Atoi(strings.TrimSpace(ordStr))
	if err != nil {
		return Edit{}, fmt.Errorf("edit %q: parsing ordinal: %w", s, err)
	}
	f := Field(strings.ToLower(strings.TrimSpace(field)))
	switch f {
	case FieldDate, FieldDescription, FieldAmount, FieldKind, FieldCategory:
	case "kind":
		f = FieldKind
	default:
		return Edit{}, fmt.Errorf("edit %q: unknown field %q", s, field)
	}
	return Edit{Ordinal: ordinal, Field: f, Value: value}, nil
}

// Apply changes one field of a candidate and marks it edited. Selection is
// left alone. A valid amount clears a previous amount error; negative values
// are stored as their absolute value.
func (s *Session) Apply(e Edit) error {
	if e.Ordinal < 0 || e.Ordinal >= len(s.candidates) {
		return fmt.Errorf("%w: row %d", ErrUnknownCandidate, e.Ordinal)
	}
	c := &s.candidates[e.Ordinal]

	switch e.Field {
	case FieldDate:
		c.Date = strings.TrimSpace(e.Value)
	case FieldDescription:
		c.Description = e.Value
	case FieldAmount:
		amt, err := importer.ParseAmount(e.Value)
		if err != nil {
			return fmt.Errorf("editing row %d: %w", e.Ordinal, err)
		}
		c.Amount = amt.Abs()
		c.RawAmount = e.Value
		c.AmountErr = nil
	case FieldKind:
		kind, ok := model.ParseKind(e.Value)
		if !ok {
			return fmt.Errorf("editing row %d: invalid type %q", e.Ordinal, e.Value)
		}
		c.Kind = kind
	case FieldCategory:
		if strings.TrimSpace(e.Value) == "" {
			c.CategoryID = nil
			break
		}
		catID, err := strconv.Atoi(strings.TrimSpace(e.Value))
		if err != nil {
			return fmt.Errorf("editing row %d: parsing category %q: %w", e.Ordinal, e.Value, err)
		}
		c.CategoryID = &catID
	default:
		return fmt.Errorf("editing row %d: unknown field %q", e.Ordinal, e.Field)
	}
	c.Edited = true
	return nil
}

// Edit applies a field change to the candidate with the given ID.
func (s *Session) Edit(candidateID string, field Field, value string) error {
	i, ok := s.index[candidateID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}
	return s.Apply(Edit{Ordinal: i, Field: field, Value: value})
}
