package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIncompleteMapping is returned when date, description or amount is unmapped.
var ErrIncompleteMapping = errors.New("incomplete column mapping")

// Role is a semantic column role.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleType        Role = "type"
)

// Roles lists every role in display order.
var Roles = []Role{RoleDate, RoleDescription, RoleAmount, RoleType}

// ColumnMapping assigns source columns to roles. Empty means unset.
type ColumnMapping struct {
	Date        string
	Description string
	Amount      string
	Type        string // optional
}

// Column returns the column mapped to a role.
func (m ColumnMapping) Column(role Role) string {
	switch role {
	case RoleDate:
		return m.Date
	case RoleDescription:
		return m.Description
	case RoleAmount:
		return m.Amount
	case RoleType:
		return m.Type
	}
	return ""
}

// Set assigns a column to a role.
func (m *ColumnMapping) Set(role Role, column string) {
	switch role {
	case RoleDate:
		m.Date = column
	case RoleDescription:
		m.Description = column
	case RoleAmount:
		m.Amount = column
	case RoleType:
		m.Type = column
	}
}

// Validate checks that the required roles are set and every mapped column is
// one of headers.
func (m ColumnMapping) Validate(headers []string) error {
	var missing []string
	for _, role := range []Role{RoleDate, RoleDescription, RoleAmount} {
		if m.Column(role) == "" {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrIncompleteMapping, missing)
	}
	for _, role := range Roles {
		col := m.Column(role)
		if col != "" && !slices.Contains(headers, col) {
			return fmt.Errorf("%s column %q is not a header", role, col)
		}
	}
	return nil
}
