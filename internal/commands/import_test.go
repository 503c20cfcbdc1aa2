package commands_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerServer struct {
	*httptest.Server
	mu       sync.Mutex
	received []map[string]any
}

// newFakeLedger serves the built-in catalog and accepts every transaction
// except those whose description is rejectDesc.
func newFakeLedger(t *testing.T, rejectDesc string) *fakeLedgerServer {
	t.Helper()
	f := &fakeLedgerServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","categories":[
			{"id":1,"name":"Food & Dining","color":"#34d399","icon":"🍔"},
			{"id":2,"name":"Transportation","color":"#60a5fa","icon":"🚗"},
			{"id":3,"name":"Entertainment","color":"#f472b6","icon":"🎬"},
			{"id":4,"name":"Bills & Utilities","color":"#fbbf24","icon":"💡"},
			{"id":5,"name":"Shopping","color":"#a78bfa","icon":"🛍️"},
			{"id":6,"name":"Healthcare","color":"#f87171","icon":"🏥"},
			{"id":8,"name":"Income","color":"#10b981","icon":"💰"},
			{"id":9,"name":"Other","color":"#6b7280","icon":"📦"}]}`))
	})
	mux.HandleFunc("POST /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if body["description"] == rejectDesc {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"database is locked"}`))
			return
		}
		f.mu.Lock()
		f.received = append(f.received, body)
		n := len(f.received)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "Transaction added successfully", "transaction_id": n})
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeLedgerServer) descriptions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, b := range f.received {
		out = append(out, b["description"].(string))
	}
	sort.Strings(out)
	return out
}

func TestImport_AllSucceed(t *testing.T) {
	ledger := newFakeLedger(t, "")
	out, _, err := runStmtimport(t, t.TempDir(), ledger.URL, "", "import", testdataPath(t, "chase_checking.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 6 of 6 selected rows (6 imported, 0 failed)")
	require.Len(t, ledger.received, 6)

	for _, b := range ledger.received {
		if b["description"] == "ACME CONSULTING INVOICE 1042" {
			assert.Equal(t, "income", b["type"])
			assert.InDelta(t, 3500.0, b["amount"], 0.001)
			assert.Equal(t, "2025-01-10", b["date"])
			assert.InDelta(t, 9, b["category_id"], 0.001)
		}
	}
}

func TestImport_PartialFailure(t *testing.T) {
	ledger := newFakeLedger(t, "Netflix")
	out, stderr, err := runStmtimport(t, t.TempDir(), ledger.URL, "", "import", testdataPath(t, "ten_rows.csv"))
	require.Error(t, err, "a failed row makes the command fail")

	assert.Contains(t, out, "Imported 8 of 9 selected rows (8 imported, 1 failed)")
	assert.Contains(t, out, `failed  row 4 "Netflix"`)
	assert.Contains(t, out, "database is locked")
	assert.Contains(t, stderr, "1 of 9 selected rows were not imported")

	assert.Equal(t, []string{
		"Amazon order", "Coffee shop", "Electric bill", "Lunch at cafe",
		"Parking garage", "Paycheck", "Refund from store", "Uber ride",
	}, ledger.descriptions())
}

func TestImport_DryRun(t *testing.T) {
	ledger := newFakeLedger(t, "")
	out, _, err := runStmtimport(t, t.TempDir(), ledger.URL, "", "import", "--dry-run", "--exclude", "1", testdataPath(t, "ten_rows.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "dry run: 8 of 10 rows would be imported")
	assert.NotContains(t, out, "Paycheck")
	assert.Empty(t, ledger.received)
}

func TestImport_EditedRowIsSent(t *testing.T) {
	ledger := newFakeLedger(t, "")
	_, _, err := runStmtimport(t, t.TempDir(), ledger.URL, "",
		"import", "--exclude", "0,1,2,3,4,5,7,8,9", "--include", "6",
		"--edit", "6:amount=-21.30", "--edit", "6:description=Pharmacy refill", "--edit", "6:date=03/07/2024",
		testdataPath(t, "ten_rows.csv"))
	require.NoError(t, err)

	require.Len(t, ledger.received, 1)
	b := ledger.received[0]
	assert.Equal(t, "Pharmacy refill", b["description"])
	assert.InDelta(t, 21.30, b["amount"], 0.001)
	assert.Equal(t, "2024-03-07", b["date"])
	assert.InDelta(t, 6, b["category_id"], 0.001)
	assert.NotContains(t, b, "selected")
	assert.NotContains(t, b, "edited")
}

func TestImport_NothingSelected(t *testing.T) {
	ledger := newFakeLedger(t, "")
	out, _, err := runStmtimport(t, t.TempDir(), ledger.URL, "",
		"import", "--toggle-all", testdataPath(t, "chase_checking.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "nothing selected")
	assert.Empty(t, ledger.received)
}

func TestImport_ReselectedUnparsableRowFails(t *testing.T) {
	ledger := newFakeLedger(t, "")
	out, _, err := runStmtimport(t, t.TempDir(), ledger.URL, "", "import", "--include", "6", testdataPath(t, "ten_rows.csv"))
	require.Error(t, err)

	assert.Contains(t, out, "Imported 9 of 10 selected rows (9 imported, 1 failed)")
	assert.Contains(t, out, `failed  row 6 "Pharmacy"`)
	assert.Contains(t, out, "unparsable amount")
	assert.NotContains(t, ledger.descriptions(), "Pharmacy")
	assert.Len(t, ledger.received, 9)
}
