// Package report computes monthly income/spend reports over Jalali months.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/govalues/money"
	"golang.org/x/sync/errgroup"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/jalali"
	"github.com/tinoosan/daftar/internal/ledger"
)

// Repo defines the aggregate reads a report needs. Each query is scoped by
// user and by date BETWEEN start AND end (both inclusive). The bool results
// are false when no row matched.
type Repo interface {
	SumSourceAmount(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, bool, error)
	SumCostAmount(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, bool, error)
	SumCostAmountByCategory(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]ledger.CategorySum, error)
}

// Service exposes report computation.
type Service interface {
	// Range returns the Gregorian range covering Jalali year/month.
	Range(year, month int) (ledger.ReportRange, error)
	// Aggregate runs the three sums over rng and assembles the result.
	Aggregate(ctx context.Context, userID uuid.UUID, rng ledger.ReportRange) (ledger.ReportResult, error)
	// ComputeReport is Range followed by Aggregate.
	ComputeReport(ctx context.Context, userID uuid.UUID, year, month int) (ledger.ReportResult, error)
}

type service struct {
	repo Repo
	curr money.Currency
}

func New(repo Repo, curr money.Currency) Service { return &service{repo: repo, curr: curr} }

func (s *service) Range(year, month int) (ledger.ReportRange, error) {
	start, err := jalali.MonthStart(year, month)
	if err != nil {
		return ledger.ReportRange{}, err
	}
	end, err := jalali.MonthEnd(year, month)
	if err != nil {
		return ledger.ReportRange{}, err
	}
	return ledger.ReportRange{Start: start, End: end}, nil
}

func (s *service) ComputeReport(ctx context.Context, userID uuid.UUID, year, month int) (ledger.ReportResult, error) {
	rng, err := s.Range(year, month)
	if err != nil {
		return ledger.ReportResult{}, err
	}
	res, err := s.Aggregate(ctx, userID, rng)
	if err != nil {
		return ledger.ReportResult{}, err
	}
	res.Year, res.Month = year, month
	return res, nil
}

// Aggregate issues the three sums concurrently and waits for all of them.
// Any failure fails the whole report; collaborator errors are returned as is.
func (s *service) Aggregate(ctx context.Context, userID uuid.UUID, rng ledger.ReportRange) (ledger.ReportResult, error) {
	if userID == uuid.Nil {
		return ledger.ReportResult{}, errs.ErrInvalid
	}
	if rng.End.Before(rng.Start) {
		return ledger.ReportResult{}, fmt.Errorf("%w: range end before start", errs.ErrInvalid)
	}

	var (
		source, spent       decimal.Decimal
		hasSource, hasSpent bool
		perCategory         []ledger.CategorySum
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, hasSource, err = s.repo.SumSourceAmount(gctx, userID, rng.Start, rng.End)
		return err
	})
	g.Go(func() error {
		var err error
		spent, hasSpent, err = s.repo.SumCostAmount(gctx, userID, rng.Start, rng.End)
		return err
	})
	g.Go(func() error {
		var err error
		perCategory, err = s.repo.SumCostAmountByCategory(gctx, userID, rng.Start, rng.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return ledger.ReportResult{}, err
	}

	out := ledger.ReportResult{Range: rng, PerCategory: make([]ledger.CategoryTotal, 0, len(perCategory))}
	var err error
	if out.TotalSource, err = s.total(source, hasSource); err != nil {
		return ledger.ReportResult{}, err
	}
	if out.TotalSpent, err = s.total(spent, hasSpent); err != nil {
		return ledger.ReportResult{}, err
	}
	for _, c := range perCategory {
		amt, err := ledger.AmountFromDecimal(s.curr, c.Total)
		if err != nil {
			return ledger.ReportResult{}, err
		}
		out.PerCategory = append(out.PerCategory, ledger.CategoryTotal{Category: c.Category, Total: amt})
	}
	return out, nil
}

// total maps "no rows" to zero.
func (s *service) total(d decimal.Decimal, ok bool) (money.Amount, error) {
	if !ok {
		return ledger.ZeroAmount(s.curr), nil
	}
	return ledger.AmountFromDecimal(s.curr, d)
}
