package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

func (s *Store) InsertCost(_ context.Context, c ledger.Cost) (ledger.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.categoryLocked(c.UserID, c.CategoryID); err != nil {
		return ledger.Cost{}, err
	}
	c.CategoryName = ""
	s.costs[c.ID] = c
	s.costKeys[c.UserID] = insertKey(s.costKeys[c.UserID], dateKey{Date: c.Date, ID: c.ID})
	return c, nil
}

// UpdateCost replaces a cost owned by c.UserID.
func (s *Store) UpdateCost(_ context.Context, c ledger.Cost) (ledger.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.costs[c.ID]
	if !ok || cur.UserID != c.UserID {
		return ledger.Cost{}, errs.ErrNotFound
	}
	if _, err := s.categoryLocked(c.UserID, c.CategoryID); err != nil {
		return ledger.Cost{}, err
	}
	c.CategoryName = ""
	s.costs[c.ID] = c
	if !cur.Date.Equal(c.Date) {
		keys := removeKey(s.costKeys[c.UserID], c.ID)
		s.costKeys[c.UserID] = insertKey(keys, dateKey{Date: c.Date, ID: c.ID})
	}
	return c, nil
}

func (s *Store) DeleteCost(_ context.Context, userID, costID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.costs[costID]
	if !ok || cur.UserID != userID {
		return errs.ErrNotFound
	}
	s.deleteCostLocked(cur)
	return nil
}

func (s *Store) deleteCostLocked(c ledger.Cost) {
	delete(s.costs, c.ID)
	s.costKeys[c.UserID] = removeKey(s.costKeys[c.UserID], c.ID)
}

// GetCost returns the user's cost with its category name.
func (s *Store) GetCost(_ context.Context, userID, costID uuid.UUID) (ledger.Cost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.costs[costID]
	if !ok || c.UserID != userID {
		return ledger.Cost{}, errs.ErrNotFound
	}
	c.CategoryName = s.categories[c.CategoryID].Name
	return c, nil
}

// ListCostsSince returns the user's costs dated on or after since, newest first.
func (s *Store) ListCostsSince(_ context.Context, userID uuid.UUID, since time.Time) ([]ledger.Cost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := keysInRange(s.costKeys[userID], &since, nil)
	out := make([]ledger.Cost, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		c := s.costs[keys[i].ID]
		c.CategoryName = s.categories[c.CategoryID].Name
		out = append(out, c)
	}
	return out, nil
}

// costsByCategoryLocked returns the user's costs filed under categoryID.
func (s *Store) costsByCategoryLocked(userID, categoryID uuid.UUID) []ledger.Cost {
	var out []ledger.Cost
	for _, k := range s.costKeys[userID] {
		if c := s.costs[k.ID]; c.CategoryID == categoryID {
			out = append(out, c)
		}
	}
	return out
}
