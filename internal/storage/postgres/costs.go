package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

const costColumns = `c.id, c.user_id, c.category_id, c.amount::text, c.date, c.note, coalesce(cat.name, '')`

func (s *Store) scanCost(row interface{ Scan(...any) error }) (ledger.Cost, error) {
	var (
		c      ledger.Cost
		amount string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.CategoryID, &amount, &c.Date, &c.Note, &c.CategoryName); err != nil {
		return ledger.Cost{}, err
	}
	a, err := s.amount(amount)
	if err != nil {
		return ledger.Cost{}, err
	}
	c.Amount = a
	return c, nil
}

// InsertCost inserts c if its category belongs to c.UserID.
func (s *Store) InsertCost(ctx context.Context, c ledger.Cost) (ledger.Cost, error) {
	ct, err := s.pool.Exec(ctx, `
		insert into costs (id, user_id, category_id, amount, date, note)
		select $1::uuid, $2::uuid, $3::uuid, $4::text::numeric, $5::date, $6::text
		where exists (select 1 from categories where id = $3 and user_id = $2)
	`, c.ID, c.UserID, c.CategoryID, amountArg(c.Amount), c.Date, c.Note)
	if err != nil {
		return ledger.Cost{}, mapErr("insert cost", err)
	}
	if ct.RowsAffected() == 0 {
		return ledger.Cost{}, errs.ErrNotFound
	}
	c.CategoryName = ""
	return c, nil
}

// UpdateCost replaces a cost owned by c.UserID; the new category must be theirs too.
func (s *Store) UpdateCost(ctx context.Context, c ledger.Cost) (ledger.Cost, error) {
	ct, err := s.pool.Exec(ctx, `
		update costs
		set category_id = $3, amount = $4::text::numeric, date = $5, note = $6
		where id = $1 and user_id = $2
		  and exists (select 1 from categories where id = $3 and user_id = $2)
	`, c.ID, c.UserID, c.CategoryID, amountArg(c.Amount), c.Date, c.Note)
	if err != nil {
		return ledger.Cost{}, mapErr("update cost", err)
	}
	if ct.RowsAffected() == 0 {
		return ledger.Cost{}, errs.ErrNotFound
	}
	c.CategoryName = ""
	return c, nil
}

func (s *Store) DeleteCost(ctx context.Context, userID, costID uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, `delete from costs where id = $1 and user_id = $2`, costID, userID)
	if err != nil {
		return mapErr("delete cost", err)
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) GetCost(ctx context.Context, userID, costID uuid.UUID) (ledger.Cost, error) {
	row := s.pool.QueryRow(ctx, `
		select `+costColumns+`
		from costs c
		left join categories cat on cat.id = c.category_id
		where c.id = $1 and c.user_id = $2
	`, costID, userID)
	c, err := s.scanCost(row)
	if err != nil {
		return ledger.Cost{}, mapErr("get cost", err)
	}
	return c, nil
}

// ListCostsSince returns the user's costs dated on or after since, newest first.
func (s *Store) ListCostsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]ledger.Cost, error) {
	rows, err := s.pool.Query(ctx, `
		select `+costColumns+`
		from costs c
		left join categories cat on cat.id = c.category_id
		where c.user_id = $1 and c.date >= $2
		order by c.date desc, c.id desc
	`, userID, since)
	if err != nil {
		return nil, mapErr("list costs", err)
	}
	defer rows.Close()
	out := make([]ledger.Cost, 0)
	for rows.Next() {
		c, err := s.scanCost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
