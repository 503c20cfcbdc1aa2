package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/stmtimport/internal/model"
)

func TestClassify_Simple(t *testing.T) {
	got := Classify([]string{"Date", "Description", "Amount"})
	assert.Equal(t, model.ColumnMapping{Date: "Date", Description: "Description", Amount: "Amount"}, got)
}

func TestClassify_Chase(t *testing.T) {
	got := Classify([]string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"})
	assert.Equal(t, model.ColumnMapping{
		Date:        "Posting Date",
		Description: "Description",
		Amount:      "Amount",
		Type:        "Type",
	}, got)
}

func TestClassify_NearSynonyms(t *testing.T) {
	got := Classify([]string{"Transaction Date", "Payee", "Debit", "Trans Type"})
	assert.Equal(t, model.ColumnMapping{
		Date:        "Transaction Date",
		Description: "Payee",
		Amount:      "Debit",
		Type:        "Trans Type",
	}, got)
}

func TestClassify_TieGoesToFirstHeader(t *testing.T) {
	got := Classify([]string{"Debit", "Credit", "Date", "Memo"})
	assert.Equal(t, "Debit", got.Amount)
}

func TestClassify_BelowThresholdUnset(t *testing.T) {
	got := Classify([]string{"Foo", "Bar", "Running Balance"})
	assert.Equal(t, model.ColumnMapping{}, got)
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	// "time" scores 50 for date, above the threshold.
	got := Classify([]string{"Time", "Payee", "Value"})
	assert.Equal(t, "Time", got.Date)
}

func TestClassify_HeaderMayWinSeveralRoles(t *testing.T) {
	got := Classify([]string{"Transaction", "Date", "Amount"})
	assert.Equal(t, "Transaction", got.Description)
	// "transaction" contains no "type"; only exact category/type rules apply.
	assert.Equal(t, "", got.Type)

	got = Classify([]string{"Date", "Category", "Amount"})
	assert.Equal(t, "Category", got.Type)

	got = Classify([]string{"Date", "Type Description", "Amount"})
	assert.Equal(t, "Type Description", got.Description)
	assert.Equal(t, "Type Description", got.Type)
}

func TestClassify_Empty(t *testing.T) {
	assert.Equal(t, model.ColumnMapping{}, Classify(nil))
}

func TestScores(t *testing.T) {
	tests := []struct {
		header string
		role   model.Role
		want   int
	}{
		{"Date", model.RoleDate, 100},
		{" DATE ", model.RoleDate, 100},
		{"Trans Date", model.RoleDate, 95},
		{"Posted Date", model.RoleDate, 90},
		{"Value Date", model.RoleDate, 70},
		{"Timestamp", model.RoleDate, 50},
		{"Memo", model.RoleDescription, 95},
		{"Merchant", model.RoleDescription, 90},
		{"Name", model.RoleDescription, 85},
		{"Merchant Name", model.RoleDescription, 80},
		{"Extra Details", model.RoleDescription, 75},
		{"Account Name", model.RoleDescription, 70},
		{"File Name", model.RoleDescription, 0},
		{"User Name", model.RoleDescription, 0},
		{"Total", model.RoleAmount, 95},
		{"Price", model.RoleAmount, 90},
		{"Withdrawal", model.RoleAmount, 85},
		{"Deposit", model.RoleAmount, 85},
		{"Amount (USD)", model.RoleAmount, 80},
		{"Grand Total", model.RoleAmount, 75},
		{"Balance", model.RoleAmount, 60},
		{"Running Balance", model.RoleAmount, 0},
		{"Type", model.RoleType, 100},
		{"Transaction Type", model.RoleType, 95},
		{"Entry Type", model.RoleType, 80},
		{"Category", model.RoleType, 70},
		{"Notes", model.RoleType, 0},
	}
	for _, tt := range tests {
		scores := Scores([]string{tt.header})
		assert.Equal(t, tt.want, scores[0].Scores[tt.role], "score(%q, %s)", tt.header, tt.role)
	}
}

func TestScores_PreservesHeaderOrder(t *testing.T) {
	scores := Scores([]string{"B", "A"})
	assert.Equal(t, "B", scores[0].Header)
	assert.Equal(t, "A", scores[1].Header)
	assert.Len(t, scores[0].Scores, len(model.Roles))
}
