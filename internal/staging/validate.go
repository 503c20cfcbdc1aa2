package staging

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Check identifies a review warning.
type Check string

const (
	CheckAmount          Check = "amount"
	CheckDate            Check = "date"
	CheckDescription     Check = "description"
	CheckCategory        Check = "category"
	CheckDecimals        Check = "decimals"
	CheckMissingCategory Check = "no-category"
)

// ValidationError describes one problem with a staged candidate. None of
// them block a commit; they are shown so the user can fix the row first.
type ValidationError struct {
	Check       Check
	CandidateID string
	Ordinal     int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [row %d]: %s", e.Check, e.Ordinal, e.Description)
}

// CategoryChecker tests whether a category ID exists in the catalog.
type CategoryChecker interface {
	Exists(id int) bool
}

// Validate reports review warnings for every candidate. categories may be nil
// to skip the catalog check.
func (s *Session) Validate(categories CategoryChecker) []ValidationError {
	var errs []ValidationError
	hundred := decimal.NewFromInt(100)

	for _, c := range s.candidates {
		add := func(check Check, format string, args ...any) {
			errs = append(errs, ValidationError{
				Check:       check,
				CandidateID: c.ID,
				Ordinal:     c.Ordinal,
				Description: fmt.Sprintf(format, args...),
			})
		}

		if c.AmountErr != nil {
			add(CheckAmount, "amount %q is not a number", c.RawAmount)
		} else if !c.Amount.Mul(hundred).Equal(c.Amount.Mul(hundred).Floor()) {
			add(CheckDecimals, "amount %s has more than 2 decimal places", c.Amount)
		}

		if strings.TrimSpace(c.Date) == "" {
			add(CheckDate, "date is empty")
		}
		if strings.TrimSpace(c.Description) == "" {
			add(CheckDescription, "description is empty")
		}

		switch {
		case c.CategoryID == nil:
			add(CheckMissingCategory, "no category")
		case categories != nil && !categories.Exists(*c.CategoryID):
			add(CheckCategory, "unknown category %d", *c.CategoryID)
		}
	}
	return errs
}

// ValidateSelected is Validate restricted to selected candidates.
func (s *Session) ValidateSelected(categories CategoryChecker) []ValidationError {
	var out []ValidationError
	for _, ve := range s.Validate(categories) {
		if c, ok := s.At(ve.Ordinal); ok && c.Selected {
			out = append(out, ve)
		}
	}
	return out
}
