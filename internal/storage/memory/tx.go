package memory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/ledger"
	"github.com/tinoosan/daftar/internal/service/category"
)

// ErrTxClosed is returned by Commit on a finished transaction.
var ErrTxClosed = errors.New("memory: tx is closed")

// Tx holds the store's write lock from BeginTx until Commit or Rollback.
// Writes apply immediately; Rollback replays the undo log in reverse.
type Tx struct {
	s    *Store
	undo []func()
	done bool
}

// BeginTx starts a transaction. Other store calls block until it finishes,
// so callers must only use the returned Tx while it is open.
func (s *Store) BeginTx(ctx context.Context) (category.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{s: s}, nil
}

func (t *Tx) CategoryByName(_ context.Context, userID uuid.UUID, name string) (ledger.Category, bool, error) {
	c, ok := t.s.categoryByNameLocked(userID, name)
	return c, ok, nil
}

func (t *Tx) InsertCategory(_ context.Context, c ledger.Category) (ledger.Category, error) {
	created, err := t.s.insertCategoryLocked(c)
	if err != nil {
		return ledger.Category{}, err
	}
	t.undo = append(t.undo, func() { delete(t.s.categories, c.ID) })
	return created, nil
}

func (t *Tx) DeleteCostsByCategory(_ context.Context, userID, categoryID uuid.UUID) (int64, error) {
	costs := t.s.costsByCategoryLocked(userID, categoryID)
	for _, c := range costs {
		c := c
		t.s.deleteCostLocked(c)
		t.undo = append(t.undo, func() {
			t.s.costs[c.ID] = c
			t.s.costKeys[c.UserID] = insertKey(t.s.costKeys[c.UserID], dateKey{Date: c.Date, ID: c.ID})
		})
	}
	return int64(len(costs)), nil
}

func (t *Tx) DeleteCategory(_ context.Context, userID, categoryID uuid.UUID) error {
	c, err := t.s.categoryLocked(userID, categoryID)
	if err != nil {
		return err
	}
	delete(t.s.categories, categoryID)
	t.undo = append(t.undo, func() { t.s.categories[c.ID] = c })
	return nil
}

func (t *Tx) Commit(context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.s.mu.Unlock()
	return nil
}

// Rollback is a no-op on a finished transaction.
func (t *Tx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	t.s.mu.Unlock()
	return nil
}
