package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

// ListSources returns the user's sources, newest first.
func (s *Store) ListSources(_ context.Context, userID uuid.UUID) ([]ledger.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.sourceKeys[userID]
	out := make([]ledger.Source, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, s.sources[keys[i].ID])
	}
	return out, nil
}

func (s *Store) GetSource(_ context.Context, userID, sourceID uuid.UUID) (ledger.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.sources[sourceID]
	if !ok || src.UserID != userID {
		return ledger.Source{}, errs.ErrNotFound
	}
	return src, nil
}

func (s *Store) InsertSource(_ context.Context, src ledger.Source) (ledger.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[src.UserID]; !ok {
		return ledger.Source{}, errs.ErrNotFound
	}
	s.sources[src.ID] = src
	s.sourceKeys[src.UserID] = insertKey(s.sourceKeys[src.UserID], dateKey{Date: src.Date, ID: src.ID})
	return src, nil
}

func (s *Store) UpdateSource(_ context.Context, src ledger.Source) (ledger.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sources[src.ID]
	if !ok || cur.UserID != src.UserID {
		return ledger.Source{}, errs.ErrNotFound
	}
	s.sources[src.ID] = src
	if !cur.Date.Equal(src.Date) {
		keys := removeKey(s.sourceKeys[src.UserID], src.ID)
		s.sourceKeys[src.UserID] = insertKey(keys, dateKey{Date: src.Date, ID: src.ID})
	}
	return src, nil
}

func (s *Store) DeleteSource(_ context.Context, userID, sourceID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sources[sourceID]
	if !ok || cur.UserID != userID {
		return errs.ErrNotFound
	}
	delete(s.sources, sourceID)
	s.sourceKeys[userID] = removeKey(s.sourceKeys[userID], sourceID)
	return nil
}
