package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

func (s *Store) scanSource(row interface{ Scan(...any) error }) (ledger.Source, error) {
	var (
		src    ledger.Source
		amount string
	)
	if err := row.Scan(&src.ID, &src.UserID, &src.Name, &amount, &src.Date); err != nil {
		return ledger.Source{}, err
	}
	a, err := s.amount(amount)
	if err != nil {
		return ledger.Source{}, err
	}
	src.Amount = a
	return src, nil
}

// ListSources returns the user's sources, newest first.
func (s *Store) ListSources(ctx context.Context, userID uuid.UUID) ([]ledger.Source, error) {
	rows, err := s.pool.Query(ctx, `
		select id, user_id, name, amount::text, date
		from sources
		where user_id = $1
		order by date desc, id desc
	`, userID)
	if err != nil {
		return nil, mapErr("list sources", err)
	}
	defer rows.Close()
	out := make([]ledger.Source, 0)
	for rows.Next() {
		src, err := s.scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

func (s *Store) GetSource(ctx context.Context, userID, sourceID uuid.UUID) (ledger.Source, error) {
	row := s.pool.QueryRow(ctx, `
		select id, user_id, name, amount::text, date
		from sources
		where id = $1 and user_id = $2
	`, sourceID, userID)
	src, err := s.scanSource(row)
	if err != nil {
		return ledger.Source{}, mapErr("get source", err)
	}
	return src, nil
}

func (s *Store) InsertSource(ctx context.Context, src ledger.Source) (ledger.Source, error) {
	_, err := s.pool.Exec(ctx, `
		insert into sources (id, user_id, name, amount, date)
		values ($1, $2, $3, $4::text::numeric, $5)
	`, src.ID, src.UserID, src.Name, amountArg(src.Amount), src.Date)
	if err != nil {
		return ledger.Source{}, mapErr("insert source", err)
	}
	return src, nil
}

func (s *Store) UpdateSource(ctx context.Context, src ledger.Source) (ledger.Source, error) {
	ct, err := s.pool.Exec(ctx, `
		update sources
		set name = $3, amount = $4::text::numeric, date = $5
		where id = $1 and user_id = $2
	`, src.ID, src.UserID, src.Name, amountArg(src.Amount), src.Date)
	if err != nil {
		return ledger.Source{}, mapErr("update source", err)
	}
	if ct.RowsAffected() == 0 {
		return ledger.Source{}, errs.ErrNotFound
	}
	return src, nil
}

func (s *Store) DeleteSource(ctx context.Context, userID, sourceID uuid.UUID) error {
	ct, err := s.pool.Exec(ctx, `delete from sources where id = $1 and user_id = $2`, sourceID, userID)
	if err != nil {
		return mapErr("delete source", err)
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
