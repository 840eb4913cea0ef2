package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/daftar/internal/ledger"
)

// sum runs a single-value sum query; a NULL result means no rows matched.
func (s *Store) sum(ctx context.Context, op, sql string, args ...any) (decimal.Decimal, bool, error) {
	var text *string
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&text); err != nil {
		return decimal.Decimal{}, false, mapErr(op, err)
	}
	if text == nil {
		return decimal.Decimal{}, false, nil
	}
	d, err := decimal.Parse(*text)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("%s: parse %q: %w", op, *text, err)
	}
	return d, true, nil
}

func (s *Store) SumSourceAmount(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, bool, error) {
	return s.sum(ctx, "sum sources", `
		select sum(amount)::text
		from sources
		where user_id = $1 and date between $2 and $3
	`, userID, start, end)
}

func (s *Store) SumCostAmount(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, bool, error) {
	return s.sum(ctx, "sum costs", `
		select sum(amount)::text
		from costs
		where user_id = $1 and date between $2 and $3
	`, userID, start, end)
}

// SumCostAmountByCategory groups by category name, ordered by name.
func (s *Store) SumCostAmountByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]ledger.CategorySum, error) {
	rows, err := s.pool.Query(ctx, `
		select cat.name, sum(c.amount)::text
		from costs c
		join categories cat on cat.id = c.category_id
		where c.user_id = $1 and c.date between $2 and $3
		group by cat.name
		order by cat.name
	`, userID, start, end)
	if err != nil {
		return nil, mapErr("sum costs by category", err)
	}
	defer rows.Close()
	out := make([]ledger.CategorySum, 0)
	for rows.Next() {
		var name, total string
		if err := rows.Scan(&name, &total); err != nil {
			return nil, err
		}
		d, err := decimal.Parse(total)
		if err != nil {
			return nil, fmt.Errorf("sum costs by category: parse %q: %w", total, err)
		}
		out = append(out, ledger.CategorySum{Category: name, Total: d})
	}
	return out, rows.Err()
}
