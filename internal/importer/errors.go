package importer

import (
	"errors"
	"fmt"

	"github.com/cleared-dev/stmtimport/internal/model"
)

var (
	// ErrEmptyInput means the file has fewer than two non-blank lines.
	ErrEmptyInput = errors.New("file must have a header row and at least one data row")
	// ErrNoDataRows means every data row was filtered out.
	ErrNoDataRows = errors.New("no transaction rows found")
	// ErrIncompleteMapping means date, description or amount is unmapped.
	ErrIncompleteMapping = model.ErrIncompleteMapping
	// ErrUnparsableAmount is matched by every *UnparsableAmountError.
	ErrUnparsableAmount = errors.New("unparsable amount")
)

// UnparsableAmountError reports a row whose amount cell is not a number.
type UnparsableAmountError struct {
	Line int
	Raw  string
}

func (e *UnparsableAmountError) Error() string {
	return fmt.Sprintf("line %d: unparsable amount %q", e.Line, e.Raw)
}

func (e *UnparsableAmountError) Unwrap() error { return ErrUnparsableAmount }
