package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

// ListCategories returns the user's categories ordered by name.
func (s *Store) ListCategories(_ context.Context, userID uuid.UUID) ([]ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Category, 0)
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, userID, categoryID uuid.UUID) (ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryLocked(userID, categoryID)
}

func (s *Store) categoryLocked(userID, categoryID uuid.UUID) (ledger.Category, error) {
	c, ok := s.categories[categoryID]
	if !ok || c.UserID != userID {
		return ledger.Category{}, errs.ErrNotFound
	}
	return c, nil
}

func (s *Store) categoryByNameLocked(userID uuid.UUID, name string) (ledger.Category, bool) {
	for _, c := range s.categories {
		if c.UserID == userID && strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return ledger.Category{}, false
}

// insertCategoryLocked enforces the (user, lower(name)) uniqueness the
// Postgres index does.
func (s *Store) insertCategoryLocked(c ledger.Category) (ledger.Category, error) {
	if _, taken := s.categoryByNameLocked(c.UserID, c.Name); taken {
		return ledger.Category{}, errs.ErrConflict
	}
	if _, ok := s.users[c.UserID]; !ok {
		return ledger.Category{}, errs.ErrNotFound
	}
	s.categories[c.ID] = c
	return c, nil
}
