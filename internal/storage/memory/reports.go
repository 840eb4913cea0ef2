package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/ledger"
)

func addAmount(total decimal.Decimal, a money.Amount) (decimal.Decimal, error) {
	sum, err := total.Add(a.Decimal())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sum overflow: %w", err)
	}
	return sum, nil
}

// SumSourceAmount sums the user's sources dated within [start, end].
// ok is false when no source matched.
func (s *Store) SumSourceAmount(_ context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := keysInRange(s.sourceKeys[userID], &start, &end)
	total := decimal.Zero
	for _, k := range keys {
		var err error
		if total, err = addAmount(total, s.sources[k.ID].Amount); err != nil {
			return decimal.Decimal{}, false, err
		}
	}
	return total, len(keys) > 0, nil
}

// SumCostAmount sums the user's costs dated within [start, end].
func (s *Store) SumCostAmount(_ context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := keysInRange(s.costKeys[userID], &start, &end)
	total := decimal.Zero
	for _, k := range keys {
		var err error
		if total, err = addAmount(total, s.costs[k.ID].Amount); err != nil {
			return decimal.Decimal{}, false, err
		}
	}
	return total, len(keys) > 0, nil
}

// SumCostAmountByCategory groups the user's costs within [start, end] by
// category name, ordered by name.
func (s *Store) SumCostAmountByCategory(_ context.Context, userID uuid.UUID, start, end time.Time) ([]ledger.CategorySum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := make(map[string]decimal.Decimal)
	for _, k := range keysInRange(s.costKeys[userID], &start, &end) {
		c := s.costs[k.ID]
		name := s.categories[c.CategoryID].Name
		cur, ok := totals[name]
		if !ok {
			cur = decimal.Zero
		}
		sum, err := addAmount(cur, c.Amount)
		if err != nil {
			return nil, err
		}
		totals[name] = sum
	}
	out := make([]ledger.CategorySum, 0, len(totals))
	for name, total := range totals {
		out = append(out, ledger.CategorySum{Category: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
