package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/ledger"
)

func (s *Store) CreateUser(ctx context.Context, u ledger.User) (ledger.User, error) {
	err := s.pool.QueryRow(ctx, `
		insert into users (id, email, pass_hash, created_at)
		values ($1, lower($2), $3, $4)
		returning email, created_at
	`, u.ID, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.Email, &u.CreatedAt)
	if err != nil {
		return ledger.User{}, mapErr("insert user", err)
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (ledger.User, error) {
	var u ledger.User
	err := s.pool.QueryRow(ctx, `
		select id, email, pass_hash, created_at
		from users
		where lower(email) = lower($1)
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return ledger.User{}, mapErr("user by email", err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (ledger.User, error) {
	var u ledger.User
	err := s.pool.QueryRow(ctx, `
		select id, email, pass_hash, created_at
		from users
		where id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return ledger.User{}, mapErr("user by id", err)
	}
	return u, nil
}
