package ledger

import (
	"errors"
	"fmt"
)

// ErrCommitFailure is matched by every failed create-transaction call.
var ErrCommitFailure = errors.New("commit failed")

// APIError carries the ledger's own failure message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ledger returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("ledger returned status %d: %s", e.StatusCode, e.Message)
}
