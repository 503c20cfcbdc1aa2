package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money in or out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind accepts "income" or "expense" in any case.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, true
	case KindExpense:
		return KindExpense, true
	}
	return "", false
}

// Candidate is a provisional transaction derived from one RawRow.
type Candidate struct {
	ID          string
	Ordinal     int
	Date        string // source format until commit
	Description string
	Amount      decimal.Decimal // always >= 0; sign lives in Kind
	RawAmount   string
	Kind        Kind
	CategoryID  *int
	Selected    bool
	Edited      bool
	AmountErr   error // set when RawAmount could not be parsed
}

// CategoryRef returns a pointer to a copy of id.
func CategoryRef(id int) *int {
	return &id
}
