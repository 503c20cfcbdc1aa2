package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewSession returns a fresh import session id.
func NewSession() uuid.UUID {
	return uuid.New()
}

// SessionPrefix returns the short form of a session id used in candidate ids.
// "1b4e28ba-2fa1-11d2-883f-0016d3cca427" -> "1b4e28ba"
func SessionPrefix(session uuid.UUID) string {
	return strings.SplitN(session.String(), "-", 2)[0]
}

// FormatCandidateID returns a candidate id like "1b4e28ba-0007".
func FormatCandidateID(session uuid.UUID, ordinal int) string {
	return fmt.Sprintf("%s-%04d", SessionPrefix(session), ordinal)
}

// ParseCandidateID splits "1b4e28ba-0007" into prefix and ordinal.
func ParseCandidateID(candidateID string) (prefix string, ordinal int, err error) {
	i := strings.LastIndexByte(candidateID, '-')
	if i <= 0 || i == len(candidateID)-1 {
		return "", 0, fmt.Errorf("invalid candidate ID format: %q", candidateID)
	}

	ordinal, err = strconv.Atoi(candidateID[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid ordinal in candidate ID %q: %w", candidateID, err)
	}
	if ordinal < 0 {
		return "", 0, fmt.Errorf("negative ordinal in candidate ID %q", candidateID)
	}
	return candidateID[:i], ordinal, nil
}
