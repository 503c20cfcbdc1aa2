package importer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtimport/internal/catalog"
	"github.com/cleared-dev/stmtimport/internal/id"
	"github.com/cleared-dev/stmtimport/internal/model"
)

var (
	incomeTypeKeywords  = []string{"credit", "deposit", "income"}
	expenseTypeKeywords = []string{"debit", "withdrawal", "payment"}
	amountStripper      = strings.NewReplacer("$", "", ",", "")
)

// Normalizer converts raw rows into candidate transactions.
type Normalizer struct {
	Mapping    model.ColumnMapping
	Categories *catalog.Service
	Rules      []CategoryRule
	Session    uuid.UUID
}

// NewNormalizer validates mapping against headers and returns a Normalizer
// using DefaultRules.
func NewNormalizer(mapping model.ColumnMapping, headers []string, cats *catalog.Service, session uuid.UUID) (*Normalizer, error) {
	if err := mapping.Validate(headers); err != nil {
		return nil, err
	}
	return &Normalizer{
		Mapping:    mapping,
		Categories: cats,
		Rules:      DefaultRules(),
		Session:    session,
	}, nil
}

// NormalizeAll returns one candidate per row, in row order.
func (n *Normalizer) NormalizeAll(rows []model.RawRow) []model.Candidate {
	out := make([]model.Candidate, len(rows))
	for i, row := range rows {
		out[i] = n.Normalize(row)
	}
	return out
}

// Normalize builds the candidate for one row. Rows with an unparsable amount
// still produce a candidate, deselected, with AmountErr set.
func (n *Normalizer) Normalize(row model.RawRow) model.Candidate {
	rawAmount := row.Get(n.Mapping.Amount)
	description := row.Get(n.Mapping.Description)

	amount, err := ParseAmount(rawAmount)
	parsed := err == nil

	c := model.Candidate{
		ID:          id.FormatCandidateID(n.Session, row.Ordinal),
		Ordinal:     row.Ordinal,
		Date:        row.Get(n.Mapping.Date),
		Description: description,
		Amount:      amount.Abs(),
		RawAmount:   rawAmount,
		Kind:        InferKind(row.Get(n.Mapping.Type), amount, description, n.Rules),
		CategoryID:  Categorize(description, n.Rules, n.Categories),
		Selected:    parsed,
	}
	if !parsed {
		c.AmountErr = &UnparsableAmountError{Line: row.Line, Raw: rawAmount}
	}
	return c
}

// ParseAmount strips "$" and "," and parses a signed decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountStripper.Replace(raw))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &UnparsableAmountError{Raw: raw}
	}
	return d, nil
}

// InferKind decides income or expense: type column keywords first, then the
// amount sign, then income keywords in the description, else expense.
// amount is zero when the cell did not parse.
func InferKind(typeCell string, amount decimal.Decimal, description string, rules []CategoryRule) model.Kind {
	if t := strings.ToLower(strings.TrimSpace(typeCell)); t != "" {
		if containsAny(t, incomeTypeKeywords) {
			return model.KindIncome
		}
		if containsAny(t, expenseTypeKeywords) {
			return model.KindExpense
		}
	}

	switch amount.Sign() {
	case 1:
		return model.KindIncome
	case -1:
		return model.KindExpense
	}

	if containsAny(strings.ToLower(description), incomeKeywords(rules)) {
		return model.KindIncome
	}
	return model.KindExpense
}
