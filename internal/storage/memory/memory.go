// Package memory provides an in-memory store used for development and tests.
// It mirrors the Postgres store's behavior, including per-user scoping,
// case-insensitive uniqueness and transactional cascades.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/ledger"
)

// dateKey orders a user's dated rows asc by (Date, ID).
type dateKey struct {
	Date time.Time
	ID   uuid.UUID
}

// Store is guarded by an RWMutex. An open transaction holds the write lock
// until it commits or rolls back.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]ledger.User
	userByEmail map[string]uuid.UUID
	categories  map[uuid.UUID]ledger.Category
	costs       map[uuid.UUID]ledger.Cost
	sources     map[uuid.UUID]ledger.Source
	costKeys    map[uuid.UUID][]dateKey
	sourceKeys  map[uuid.UUID][]dateKey
}

// New constructs an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

// Reset drops all data.
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *Store) resetLocked() {
	s.users = make(map[uuid.UUID]ledger.User)
	s.userByEmail = make(map[string]uuid.UUID)
	s.categories = make(map[uuid.UUID]ledger.Category)
	s.costs = make(map[uuid.UUID]ledger.Cost)
	s.sources = make(map[uuid.UUID]ledger.Source)
	s.costKeys = make(map[uuid.UUID][]dateKey)
	s.sourceKeys = make(map[uuid.UUID][]dateKey)
}

func foldName(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

func keyLess(a, b dateKey) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.ID.String() < b.ID.String()
}

// insertKey inserts k keeping keys sorted asc by (Date, ID).
func insertKey(keys []dateKey, k dateKey) []dateKey {
	i := sort.Search(len(keys), func(i int) bool { return keyLess(k, keys[i]) })
	keys = append(keys, dateKey{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	return keys
}

func removeKey(keys []dateKey, id uuid.UUID) []dateKey {
	for i, k := range keys {
		if k.ID == id {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

// keysInRange returns a copy of the keys dated within [from, to], both inclusive.
// A nil bound is open.
func keysInRange(keys []dateKey, from, to *time.Time) []dateKey {
	if len(keys) == 0 {
		return nil
	}
	start := 0
	if from != nil {
		f := *from
		start = sort.Search(len(keys), func(i int) bool { return !keys[i].Date.Before(f) })
	}
	end := len(keys)
	if to != nil {
		t := *to
		end = sort.Search(len(keys), func(i int) bool { return keys[i].Date.After(t) })
	}
	if start >= end {
		return nil
	}
	subset := make([]dateKey, end-start)
	copy(subset, keys[start:end])
	return subset
}
