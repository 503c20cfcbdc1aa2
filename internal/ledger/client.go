package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cleared-dev/stmtimport/internal/model"
)

const categoriesKey = "categories"

// Client talks to the ledger service's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	categories *cache.Cache
}

// NewClient creates a Client. The category catalog is cached for categoryTTL.
func NewClient(baseURL string, timeout, categoryTTL time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		categories: cache.New(categoryTTL, 2*categoryTTL),
	}
}

type apiCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type apiResponse struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	Categories    []apiCategory `json:"categories"`
	TransactionID int           `json:"transaction_id"`
}

// ListCategories returns the ledger's category catalog.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	if cached, found := c.categories.Get(categoriesKey); found {
		return cached.([]model.Category), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	cats := make([]model.Category, len(resp.Categories))
	for i, ac := range resp.Categories {
		cats[i] = model.Category{ID: ac.ID, Name: ac.Name, Icon: ac.Icon, Color: ac.Color}
	}
	c.categories.Set(categoriesKey, cats, cache.DefaultExpiration)
	return cats, nil
}

// InvalidateCategories drops the cached catalog.
func (c *Client) InvalidateCategories() {
	c.categories.Delete(categoriesKey)
}

// CreateTransaction posts one transaction and returns the ledger's ID for it.
// Every failure matches ErrCommitFailure.
func (c *Client) CreateTransaction(ctx context.Context, p Payload) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("%w: marshaling payload: %w", ErrCommitFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transactions", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: creating request: %w", ErrCommitFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCommitFailure, err)
	}
	return resp.TransactionID, nil
}

// do sends req and decodes the ledger's JSON envelope. Non-2xx responses and
// envelopes whose status is not "success" become *APIError.
func (c *Client) do(req *http.Request) (*apiResponse, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var out apiResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("parsing response: %w", decodeErr)
	}
	if out.Status != "" && out.Status != "success" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: out.Message}
	}
	return &out, nil
}
