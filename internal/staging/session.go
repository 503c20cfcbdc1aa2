package staging

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// ErrUnknownCandidate is returned for an ID that is not in the session.
var ErrUnknownCandidate = errors.New("unknown candidate")

// Session holds one import under review. Candidates[i] was derived from
// Rows[i]. A Session has a single owner and is not safe for concurrent use.
type Session struct {
	ID         uuid.UUID
	Mapping    model.ColumnMapping
	Rows       []model.RawRow
	candidates []model.Candidate
	index      map[string]int

	// selection before the last ToggleAll, nil once anything else changed it
	toggledFrom []bool
}

// NewSession stages candidates for review. rows and candidates must have the
// same length.
func NewSession(id uuid.UUID, mapping model.ColumnMapping, rows []model.RawRow, candidates []model.Candidate) (*Session, error) {
	if len(rows) != len(candidates) {
		return nil, fmt.Errorf("staging %d candidates for %d rows", len(candidates), len(rows))
	}
	s := &Session{ID: id, Mapping: mapping, Rows: rows}
	s.load(candidates)
	return s, nil
}

func (s *Session) load(candidates []model.Candidate) {
	s.candidates = candidates
	s.toggledFrom = nil
	s.index = make(map[string]int, len(candidates))
	for i, c := range candidates {
		s.index[c.ID] = i
	}
}

// Candidates returns a copy of every candidate in row order.
func (s *Session) Candidates() []model.Candidate {
	out := make([]model.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Len returns the number of staged candidates.
func (s *Session) Len() int {
	return len(s.candidates)
}

// Get returns the candidate with the given ID.
func (s *Session) Get(candidateID string) (model.Candidate, bool) {
	i, ok := s.index[candidateID]
	if !ok {
		return model.Candidate{}, false
	}
	return s.candidates[i], true
}

// At returns the candidate at a row ordinal.
func (s *Session) At(ordinal int) (model.Candidate, bool) {
	if ordinal < 0 || ordinal >= len(s.candidates) {
		return model.Candidate{}, false
	}
	return s.candidates[ordinal], true
}

// Toggle flips the selection of one candidate.
func (s *Session) Toggle(candidateID string) error {
	i, ok := s.index[candidateID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}
	s.candidates[i].Selected = !s.candidates[i].Selected
	s.toggledFrom = nil
	return nil
}

// AllSelected reports whether every candidate is selected.
func (s *Session) AllSelected() bool {
	for _, c := range s.candidates {
		if !c.Selected {
			return false
		}
	}
	return true
}

// ToggleAll deselects everything when all candidates are selected and
// selects everything otherwise. A second ToggleAll with no selection change
// in between restores the selection the first one replaced.
func (s *Session) ToggleAll() {
	if prev := s.toggledFrom; prev != nil {
		for i := range s.candidates {
			s.candidates[i].Selected = prev[i]
		}
		s.toggledFrom = nil
		return
	}

	prev := make([]bool, len(s.candidates))
	for i, c := range s.candidates {
		prev[i] = c.Selected
	}
	target := !s.AllSelected()
	for i := range s.candidates {
		s.candidates[i].Selected = target
	}
	s.toggledFrom = prev
}

// Selected returns the selected candidates in row order.
func (s *Session) Selected() []model.Candidate {
	var out []model.Candidate
	for _, c := range s.candidates {
		if c.Selected {
			out = append(out, c)
		}
	}
	return out
}

// Counts summarizes the session.
type Counts struct {
	Total    int
	Selected int
	Edited   int
	Invalid  int // unparsable amounts
}

// Counts returns selection and edit totals.
func (s *Session) Counts() Counts {
	c := Counts{Total: len(s.candidates)}
	for _, cand := range s.candidates {
		if cand.Selected {
			c.Selected++
		}
		if cand.Edited {
			c.Edited++
		}
		if cand.AmountErr != nil {
			c.Invalid++
		}
	}
	return c
}

// Reset discards everything staged in the session.
func (s *Session) Reset() {
	s.Mapping = model.ColumnMapping{}
	s.Rows = nil
	s.load(nil)
}
