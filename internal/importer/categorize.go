package importer

import (
	"strings"

	"github.com/cleared-dev/stmtimport/internal/catalog"
)

// CategoryRule maps description keywords to a category name in the catalog.
type CategoryRule struct {
	Category string
	Keywords []string
}

// IncomeCategory names the rule whose keywords also mark a description as
// income when neither the type column nor the amount sign decides it.
const IncomeCategory = "Income"

// DefaultRules returns the keyword table. Order matters: the first rule with
// a matching keyword wins.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{Category: "Food & Dining", Keywords: []string{"restaurant", "food", "grocery", "cafe", "coffee", "dining", "lunch", "dinner", "breakfast", "mcdonalds", "burger", "pizza", "starbucks", "supermarket", "market"}},
		{Category: "Transportation", Keywords: []string{"gas", "fuel", "uber", "lyft", "taxi", "parking", "transit", "bus", "train", "metro", "subway", "car", "vehicle"}},
		{Category: "Shopping", Keywords: []string{"amazon", "target", "walmart", "shop", "store", "retail", "purchase", "clothing", "shoes", "electronics"}},
		{Category: "Entertainment", Keywords: []string{"movie", "theater", "cinema", "netflix", "spotify", "game", "concert", "ticket", "entertainment", "hulu", "disney"}},
		{Category: "Bills & Utilities", Keywords: []string{"electric", "water", "gas bill", "internet", "phone", "utility", "bill", "insurance", "rent", "mortgage"}},
		{Category: "Healthcare", Keywords: []string{"doctor", "hospital", "pharmacy", "medical", "health", "clinic", "dental", "cvs", "walgreens", "medicine"}},
		{Category: IncomeCategory, Keywords: []string{"salary", "paycheck", "wage", "income", "deposit", "payment received", "refund"}},
	}
}

// MatchRule returns the first rule with a keyword contained in description.
func MatchRule(description string, rules []CategoryRule) (CategoryRule, bool) {
	lower := strings.ToLower(description)
	for _, rule := range rules {
		if containsAny(lower, rule.Keywords) {
			return rule, true
		}
	}
	return CategoryRule{}, false
}

// Categorize resolves a description to a catalog category ID. A matched rule
// whose category is missing from the catalog yields nil. Without a match the
// catalog fallback is used.
func Categorize(description string, rules []CategoryRule, cats *catalog.Service) *int {
	if cats == nil {
		return nil
	}
	if rule, ok := MatchRule(description, rules); ok {
		cat, found := cats.FindByName(rule.Category)
		if !found {
			return nil
		}
		return &cat.ID
	}
	if cat, ok := cats.Fallback(); ok {
		return &cat.ID
	}
	return nil
}

func incomeKeywords(rules []CategoryRule) []string {
	for _, rule := range rules {
		if rule.Category == IncomeCategory {
			return rule.Keywords
		}
	}
	return nil
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
