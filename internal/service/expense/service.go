package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/jalali"
	"github.com/tinoosan/daftar/internal/ledger"
)

type Repo interface {
	// GetCost returns the user's cost with CategoryName filled.
	GetCost(ctx context.Context, userID, costID uuid.UUID) (ledger.Cost, error)
	// ListCostsSince returns the user's costs dated on or after since, newest first.
	ListCostsSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]ledger.Cost, error)
	GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (ledger.Category, error)
}

type Writer interface {
	InsertCost(ctx context.Context, c ledger.Cost) (ledger.Cost, error)
	// UpdateCost replaces amount, category, date and note of a cost owned by c.UserID.
	UpdateCost(ctx context.Context, c ledger.Cost) (ledger.Cost, error)
	DeleteCost(ctx context.Context, userID, costID uuid.UUID) error
}

type Service interface {
	Normalize(raw RawInput) (Record, error)
	Create(ctx context.Context, userID uuid.UUID, raw RawInput) (ledger.Cost, error)
	Update(ctx context.Context, userID, costID uuid.UUID, raw RawInput) (ledger.Cost, error)
	Delete(ctx context.Context, userID, costID uuid.UUID) error
	Get(ctx context.Context, userID, costID uuid.UUID) (ledger.Cost, error)
	// ListRecent returns costs from the last days calendar days, today included.
	ListRecent(ctx context.Context, userID uuid.UUID, days int) ([]ledger.Cost, error)
}

type service struct {
	repo   Repo
	writer Writer
	curr   money.Currency
	now    func() time.Time
}

func New(repo Repo, writer Writer, curr money.Currency, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, writer: writer, curr: curr, now: now}
}

func (s *service) Normalize(raw RawInput) (Record, error) { return Normalize(s.curr, raw) }

func (s *service) Create(ctx context.Context, userID uuid.UUID, raw RawInput) (ledger.Cost, error) {
	if userID == uuid.Nil {
		return ledger.Cost{}, errs.ErrInvalid
	}
	rec, err := s.Normalize(raw)
	if err != nil {
		return ledger.Cost{}, err
	}
	cat, err := s.repo.GetCategory(ctx, userID, rec.CategoryID)
	if err != nil {
		return ledger.Cost{}, err
	}
	c, err := s.writer.InsertCost(ctx, rec.Cost(uuid.New(), userID))
	if err != nil {
		return ledger.Cost{}, err
	}
	c.CategoryName = cat.Name
	return c, nil
}

func (s *service) Update(ctx context.Context, userID, costID uuid.UUID, raw RawInput) (ledger.Cost, error) {
	if userID == uuid.Nil || costID == uuid.Nil {
		return ledger.Cost{}, errs.ErrInvalid
	}
	rec, err := s.Normalize(raw)
	if err != nil {
		return ledger.Cost{}, err
	}
	if _, err := s.repo.GetCost(ctx, userID, costID); err != nil {
		return ledger.Cost{}, err
	}
	cat, err := s.repo.GetCategory(ctx, userID, rec.CategoryID)
	if err != nil {
		return ledger.Cost{}, err
	}
	c, err := s.writer.UpdateCost(ctx, rec.Cost(costID, userID))
	if err != nil {
		return ledger.Cost{}, err
	}
	c.CategoryName = cat.Name
	return c, nil
}

func (s *service) Delete(ctx context.Context, userID, costID uuid.UUID) error {
	if userID == uuid.Nil || costID == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteCost(ctx, userID, costID)
}

func (s *service) Get(ctx context.Context, userID, costID uuid.UUID) (ledger.Cost, error) {
	if userID == uuid.Nil || costID == uuid.Nil {
		return ledger.Cost{}, errs.ErrInvalid
	}
	return s.repo.GetCost(ctx, userID, costID)
}

func (s *service) ListRecent(ctx context.Context, userID uuid.UUID, days int) ([]ledger.Cost, error) {
	if userID == uuid.Nil || days < 0 {
		return nil, errs.ErrInvalid
	}
	since := jalali.Midnight(s.now()).AddDate(0, 0, -days)
	return s.repo.ListCostsSince(ctx, userID, since)
}
