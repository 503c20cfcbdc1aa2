package catalog

import "github.com/cleared-dev/stmtimport/internal/model"

// DefaultCatalog returns the categories a fresh ledger is seeded with. It is
// used when neither the ledger nor a catalog file is available.
func DefaultCatalog() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Food & Dining", Icon: "🍔", Color: "#34d399"},
		{ID: 2, Name: "Transportation", Icon: "🚗", Color: "#3b82f6"},
		{ID: 3, Name: "Entertainment", Icon: "🎮", Color: "#ec4899"},
		{ID: 4, Name: "Bills & Utilities", Icon: "💡", Color: "#f59e0b"},
		{ID: 5, Name: "Shopping", Icon: "🛍️", Color: "#8b5cf6"},
		{ID: 6, Name: "Healthcare", Icon: "🏥", Color: "#ef4444"},
		{ID: 7, Name: "Debt", Icon: "💳", Color: "#ef4444"},
		{ID: 8, Name: "Income", Icon: "💰", Color: "#10b981"},
		{ID: 9, Name: "Other", Icon: "📦", Color: "#6b7280"},
	}
}
