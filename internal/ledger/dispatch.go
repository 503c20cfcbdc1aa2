package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// DefaultConcurrency bounds in-flight create calls when none is configured.
const DefaultConcurrency = 4

// Ledger accepts committed transactions.
type Ledger interface {
	CreateTransaction(ctx context.Context, p Payload) (int, error)
}

// Status is the outcome of one candidate in a commit.
type Status string

const (
	StatusImported   Status = "imported"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"    // not sent because the commit was cancelled
	StatusDeselected Status = "deselected" // not sent because the user deselected it
)

// Result is the outcome for one candidate.
type Result struct {
	CandidateID   string
	Ordinal       int
	Status        Status
	TransactionID int
	Err           error
}

// Summary aggregates a commit. Results follow candidate order.
type Summary struct {
	Imported   int
	Failed     int
	Skipped    int
	Deselected int
	Results    []Result
}

func (s Summary) String() string {
	out := fmt.Sprintf("%d imported, %d failed", s.Imported, s.Failed)
	if s.Skipped > 0 {
		out += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	return out
}

// ByStatus returns the results with the given status.
func (s Summary) ByStatus(status Status) []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// DispatchOptions configures a Dispatcher. Zero values pick defaults.
type DispatchOptions struct {
	Concurrency int
	RateLimit   float64 // requests per second; 0 disables throttling
	Burst       int
	Now         func() time.Time
	Logger      *slog.Logger
}

// Dispatcher commits selected candidates to a Ledger, one request per row.
type Dispatcher struct {
	ledger      Ledger
	concurrency int
	limiter     *rate.Limiter
	now         func() time.Time
	logger      *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(l Ledger, opts DispatchOptions) *Dispatcher {
	d := &Dispatcher{
		ledger:      l,
		concurrency: opts.Concurrency,
		now:         opts.Now,
		logger:      opts.Logger,
	}
	if d.concurrency <= 0 {
		d.concurrency = DefaultConcurrency
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// Commit sends every selected candidate and waits for all of them. Selected
// rows whose amount never parsed are failed without a request. Failures
// do not affect other rows and nothing is retried or rolled back. Once ctx is
// done no new requests are started; requests already in flight finish and
// the rest are reported as skipped.
func (d *Dispatcher) Commit(ctx context.Context, candidates []model.Candidate) Summary {
	results := make([]Result, len(candidates))
	today := d.now()

	// In-flight requests outlive a cancellation.
	sendCtx := context.WithoutCancel(ctx)

	sem := make(chan struct{}, d.concurrency)
	var wg sync.WaitGroup

	for i, c := range candidates {
		results[i] = Result{CandidateID: c.ID, Ordinal: c.Ordinal}

		if !c.Selected {
			results[i].Status = StatusDeselected
			continue
		}
		if c.AmountErr != nil {
			d.logger.Warn("not sending row with unparsable amount", "candidate", c.ID, "raw_amount", c.RawAmount)
			results[i].Status = StatusFailed
			results[i].Err = fmt.Errorf("%w: %w", ErrCommitFailure, c.AmountErr)
			continue
		}
		if err := d.acquire(ctx, sem); err != nil {
			results[i].Status = StatusSkipped
			results[i].Err = err
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			txID, err := d.ledger.CreateTransaction(sendCtx, NewPayload(c, today))
			if err != nil {
				d.logger.Warn("commit failed", "candidate", c.ID, "description", c.Description, "error", err)
				results[i].Status = StatusFailed
				results[i].Err = err
				return
			}
			d.logger.Debug("committed", "candidate", c.ID, "transaction_id", txID)
			results[i].Status = StatusImported
			results[i].TransactionID = txID
		}()
	}
	wg.Wait()

	summary := Summary{Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusImported:
			summary.Imported++
		case StatusFailed:
			summary.Failed++
		case StatusSkipped:
			summary.Skipped++
		case StatusDeselected:
			summary.Deselected++
		}
	}
	d.logger.Info("commit finished", "imported", summary.Imported, "failed", summary.Failed, "skipped", summary.Skipped)
	return summary
}

// acquire waits for the rate limiter and a concurrency slot.
func (d *Dispatcher) acquire(ctx context.Context, sem chan struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
