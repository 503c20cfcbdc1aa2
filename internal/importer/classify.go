package importer

import (
	"strings"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// UnsetThreshold is the highest score that still leaves a role unmapped.
const UnsetThreshold = 40

type matchMode int

const (
	matchEquals matchMode = iota
	matchContains
)

// scoreRule scores a normalized header for one role. Within a role, rules are
// tried in table order and the first match sets the score.
type scoreRule struct {
	role    model.Role
	mode    matchMode
	terms   []string
	exclude []string // header must contain none of these
	// descBelow, when non-zero, requires the header's description score to
	// be lower than it.
	descBelow int
	score     int
}

var scoreRules = []scoreRule{
	{role: model.RoleDate, mode: matchEquals, terms: []string{"date"}, score: 100},
	{role: model.RoleDate, mode: matchEquals, terms: []string{"trans date", "transaction date"}, score: 95},
	{role: model.RoleDate, mode: matchEquals, terms: []string{"post date", "posting date", "posted date"}, score: 90},
	{role: model.RoleDate, mode: matchContains, terms: []string{"date"}, score: 70},
	{role: model.RoleDate, mode: matchEquals, terms: []string{"time", "timestamp"}, score: 50},

	{role: model.RoleDescription, mode: matchEquals, terms: []string{"description"}, score: 100},
	{role: model.RoleDescription, mode: matchEquals, terms: []string{"memo", "details"}, score: 95},
	{role: model.RoleDescription, mode: matchEquals, terms: []string{"merchant", "payee"}, score: 90},
	{role: model.RoleDescription, mode: matchEquals, terms: []string{"name", "transaction"}, score: 85},
	{role: model.RoleDescription, mode: matchContains, terms: []string{"description", "merchant"}, score: 80},
	{role: model.RoleDescription, mode: matchContains, terms: []string{"memo", "detail"}, score: 75},
	{role: model.RoleDescription, mode: matchContains, terms: []string{"name"}, exclude: []string{"file", "user"}, score: 70},

	{role: model.RoleAmount, mode: matchEquals, terms: []string{"amount"}, score: 100},
	{role: model.RoleAmount, mode: matchEquals, terms: []string{"total", "sum"}, score: 95},
	{role: model.RoleAmount, mode: matchEquals, terms: []string{"value", "price"}, score: 90},
	{role: model.RoleAmount, mode: matchEquals, terms: []string{"debit", "withdrawal", "credit", "deposit"}, score: 85},
	{role: model.RoleAmount, mode: matchContains, terms: []string{"amount"}, score: 80},
	{role: model.RoleAmount, mode: matchContains, terms: []string{"total"}, score: 75},
	{role: model.RoleAmount, mode: matchContains, terms: []string{"balance"}, exclude: []string{"running"}, score: 60},

	{role: model.RoleType, mode: matchEquals, terms: []string{"type"}, score: 100},
	{role: model.RoleType, mode: matchEquals, terms: []string{"transaction type", "trans type"}, score: 95},
	{role: model.RoleType, mode: matchEquals, terms: []string{"category"}, descBelow: 50, score: 70},
	{role: model.RoleType, mode: matchContains, terms: []string{"type"}, score: 80},
}

// HeaderScore holds the per-role scores of one header.
type HeaderScore struct {
	Header string
	Scores map[model.Role]int
}

// Scores computes the score of every header for every role.
func Scores(headers []string) []HeaderScore {
	out := make([]HeaderScore, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		scores := make(map[model.Role]int, len(model.Roles))
		for _, role := range model.Roles {
			scores[role] = scoreFor(role, norm, scores)
		}
		out[i] = HeaderScore{Header: h, Scores: scores}
	}
	return out
}

// Classify proposes a column mapping. Each role takes its highest-scoring
// header, the first one on ties, and stays unset when the best score is at or
// below UnsetThreshold. One header may win several roles.
func Classify(headers []string) model.ColumnMapping {
	scores := Scores(headers)

	var m model.ColumnMapping
	for _, role := range model.Roles {
		best, bestScore := "", 0
		for _, hs := range scores {
			if hs.Scores[role] > bestScore {
				best, bestScore = hs.Header, hs.Scores[role]
			}
		}
		if bestScore > UnsetThreshold {
			m.Set(role, best)
		}
	}
	return m
}

// scoreFor relies on model.Roles listing description before type.
func scoreFor(role model.Role, norm string, sofar map[model.Role]int) int {
	for _, r := range scoreRules {
		if r.role != role || !r.matches(norm) {
			continue
		}
		if r.descBelow > 0 && sofar[model.RoleDescription] >= r.descBelow {
			continue
		}
		return r.score
	}
	return 0
}

func (r scoreRule) matches(norm string) bool {
	for _, ex := range r.exclude {
		if strings.Contains(norm, ex) {
			return false
		}
	}
	for _, term := range r.terms {
		switch r.mode {
		case matchEquals:
			if norm == term {
				return true
			}
		case matchContains:
			if strings.Contains(norm, term) {
				return true
			}
		}
	}
	return false
}
