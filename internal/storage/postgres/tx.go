package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
	"github.com/tinoosan/daftar/internal/service/category"
)

// BeginTx starts a transaction for the category flows.
func (s *Store) BeginTx(ctx context.Context) (category.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, mapErr("begin tx", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx.Tx.
type Tx struct{ tx pgx.Tx }

func (t *Tx) CategoryByName(ctx context.Context, userID uuid.UUID, name string) (ledger.Category, bool, error) {
	c, err := categoryByName(ctx, t.tx, userID, name)
	if errors.Is(err, errs.ErrNotFound) {
		return ledger.Category{}, false, nil
	}
	if err != nil {
		return ledger.Category{}, false, err
	}
	return c, true, nil
}

func (t *Tx) InsertCategory(ctx context.Context, c ledger.Category) (ledger.Category, error) {
	if _, err := t.tx.Exec(ctx, `
		insert into categories (id, user_id, name) values ($1, $2, $3)
	`, c.ID, c.UserID, c.Name); err != nil {
		return ledger.Category{}, mapErr("insert category", err)
	}
	return c, nil
}

func (t *Tx) DeleteCostsByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	ct, err := t.tx.Exec(ctx, `delete from costs where user_id = $1 and category_id = $2`, userID, categoryID)
	if err != nil {
		return 0, mapErr("delete costs by category", err)
	}
	return ct.RowsAffected(), nil
}

func (t *Tx) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	ct, err := t.tx.Exec(ctx, `delete from categories where id = $1 and user_id = $2`, categoryID, userID)
	if err != nil {
		return mapErr("delete category", err)
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (t *Tx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }

// Rollback is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func categoryByName(ctx context.Context, q querier, userID uuid.UUID, name string) (ledger.Category, error) {
	var c ledger.Category
	err := q.QueryRow(ctx, `
		select id, user_id, name
		from categories
		where user_id = $1 and lower(name) = lower($2)
	`, userID, name).Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		return ledger.Category{}, mapErr("category by name", err)
	}
	return c, nil
}
