package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

func (s *Store) CreateUser(_ context.Context, u ledger.User) (ledger.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := foldName(u.Email)
	if _, ok := s.userByEmail[email]; ok {
		return ledger.User{}, errs.ErrConflict
	}
	u.Email = email
	s.users[u.ID] = u
	s.userByEmail[email] = u.ID
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (ledger.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.userByEmail[foldName(email)]
	if !ok {
		return ledger.User{}, errs.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByID(_ context.Context, id uuid.UUID) (ledger.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return ledger.User{}, errs.ErrNotFound
	}
	return u, nil
}
