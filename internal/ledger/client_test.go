package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtimport/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, time.Minute)
}

func TestListCategories(t *testing.T) {
	var calls atomic.Int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/categories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","categories":[
			{"id":1,"name":"Food & Dining","color":"#34d399","icon":"🍔","created_at":"2024-01-01"},
			{"id":9,"name":"Other","color":"#6b7280","icon":"📦"}]}`))
	})

	cats, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, model.Category{ID: 1, Name: "Food & Dining", Icon: "🍔", Color: "#34d399"}, cats[0])
	assert.Equal(t, "Other", cats[1].Name)

	// Second call is served from the cache.
	_, err = client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	client.InvalidateCategories()
	_, err = client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListCategories_ServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","message":"database is locked"}`))
	})

	_, err := client.ListCategories(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database is locked", apiErr.Message)
	assert.NotErrorIs(t, err, ErrCommitFailure)
}

func TestCreateTransaction(t *testing.T) {
	var got map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"success","message":"Transaction added successfully","transaction_id":42}`))
	})

	txID, err := client.CreateTransaction(context.Background(), Payload{
		Type:        model.KindExpense,
		Amount:      decimal.RequireFromString("45.67"),
		Description: "Grocery Store",
		CategoryID:  model.CategoryRef(1),
		Date:        "2024-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, txID)
	assert.Equal(t, "expense", got["type"])
	assert.InDelta(t, 45.67, got["amount"], 0.0001)
	assert.InDelta(t, 1, got["category_id"], 0.0001)
	assert.Equal(t, "2024-12-01", got["date"])
}

func TestCreateTransaction_Rejected(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Missing required fields: type, amount"}`))
	})

	_, err := client.CreateTransaction(context.Background(), Payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitFailure)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "Missing required fields: type, amount")
}

func TestCreateTransaction_NonJSONError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.CreateTransaction(context.Background(), Payload{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestCreateTransaction_ErrorEnvelopeWith200(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"nope"}`))
	})

	_, err := client.CreateTransaction(context.Background(), Payload{})
	assert.ErrorIs(t, err, ErrCommitFailure)
	assert.Contains(t, err.Error(), "nope")
}

func TestCreateTransaction_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, time.Minute)
	_, err := client.CreateTransaction(context.Background(), Payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitFailure)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
