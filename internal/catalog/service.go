package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/cleared-dev/stmtimport/internal/model"
)

// Service provides in-memory lookup over the category catalog.
type Service struct {
	categories []model.Category
	byID       map[int]model.Category
}

// NewService creates a Service from a slice of categories. Order is kept;
// it decides the first-entry fallback.
func NewService(categories []model.Category) *Service {
	byID := make(map[int]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Service{categories: categories, byID: byID}
}

// LoadFile reads a catalog CSV from disk.
func LoadFile(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening category catalog: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading category catalog: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by ID.
func (s *Service) Get(id int) (model.Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Exists reports whether a category ID exists.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// FindByName returns the first category named exactly name, else the first
// whose name contains it. Matching is case-insensitive.
func (s *Service) FindByName(name string) (model.Category, bool) {
	want := strings.ToLower(name)
	for _, c := range s.categories {
		if strings.ToLower(c.Name) == want {
			return c, true
		}
	}
	for _, c := range s.categories {
		if strings.Contains(strings.ToLower(c.Name), want) {
			return c, true
		}
	}
	return model.Category{}, false
}

// Fallback returns the catch-all category: the first whose name contains
// "other" or "misc", else the first category. ok is false for an empty catalog.
func (s *Service) Fallback() (model.Category, bool) {
	for _, c := range s.categories {
		n := strings.ToLower(c.Name)
		if strings.Contains(n, "other") || strings.Contains(n, "misc") {
			return c, true
		}
	}
	if len(s.categories) > 0 {
		return s.categories[0], true
	}
	return model.Category{}, false
}
