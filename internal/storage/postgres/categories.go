package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/ledger"
)

// ListCategories returns the user's categories ordered by name.
func (s *Store) ListCategories(ctx context.Context, userID uuid.UUID) ([]ledger.Category, error) {
	rows, err := s.pool.Query(ctx, `
		select id, user_id, name
		from categories
		where user_id = $1
		order by name, id
	`, userID)
	if err != nil {
		return nil, mapErr("list categories", err)
	}
	defer rows.Close()
	out := make([]ledger.Category, 0)
	for rows.Next() {
		var c ledger.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (ledger.Category, error) {
	var c ledger.Category
	err := s.pool.QueryRow(ctx, `
		select id, user_id, name
		from categories
		where id = $1 and user_id = $2
	`, categoryID, userID).Scan(&c.ID, &c.UserID, &c.Name)
	if err != nil {
		return ledger.Category{}, mapErr("get category", err)
	}
	return c, nil
}
