package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// DateFormat is the date layout the ledger stores.
const DateFormat = "2006-01-02"

// dateLayouts are tried in order when converting statement dates. Slash dates
// are read month first.
var dateLayouts = []string{
	DateFormat,
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2006/01/02",
	"01-02-2006",
	"02.01.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	time.RFC3339,
}

// Payload is the create-transaction request body. Session-only candidate
// fields are not part of it.
type Payload struct {
	Type        model.Kind
	Amount      decimal.Decimal
	Description string
	CategoryID  *int
	Date        string
}

type wirePayload struct {
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	CategoryID  *int        `json:"category_id"`
	Date        string      `json:"date"`
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePayload{
		Type:        string(p.Type),
		Amount:      json.Number(p.Amount.StringFixed(2)),
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Date:        p.Date,
	})
}

// NewPayload builds the request body for a candidate. today is used when the
// candidate has no date.
func NewPayload(c model.Candidate, today time.Time) Payload {
	return Payload{
		Type:        c.Kind,
		Amount:      c.Amount.Abs(),
		Description: c.Description,
		CategoryID:  c.CategoryID,
		Date:        NormalizeDate(c.Date, today),
	}
}

// NormalizeDate converts a statement date to DateFormat. Dates in an unknown
// layout are returned unchanged; an empty date becomes today.
func NormalizeDate(raw string, today time.Time) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return today.Format(DateFormat)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateFormat)
		}
	}
	return s
}
