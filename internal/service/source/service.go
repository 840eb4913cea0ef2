// Package source manages income records. Every operation is scoped to the
// owning user.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/jalali"
	"github.com/tinoosan/daftar/internal/ledger"
)

const MaxNameLen = 100

type RawInput struct {
	Name   string
	Amount string
	Year   string
	Month  string
	Day    string
}

type Record struct {
	Name   string
	Amount money.Amount
	Date   time.Time
}

// Normalize validates raw and converts its Jalali date parts to a Gregorian day.
func Normalize(curr money.Currency, raw RawInput) (Record, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Record{}, fmt.Errorf("%w: name is required", errs.ErrInvalid)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return Record{}, fmt.Errorf("%w: name longer than %d characters", errs.ErrInvalid, MaxNameLen)
	}
	amt, err := ledger.ParseAmount(curr, raw.Amount)
	if err != nil {
		return Record{}, err
	}
	jd, err := jalali.ParseParts(raw.Year, raw.Month, raw.Day)
	if err != nil {
		return Record{}, err
	}
	date, err := jalali.ToGregorian(jd)
	if err != nil {
		return Record{}, err
	}
	return Record{Name: name, Amount: amt, Date: date}, nil
}

type Repo interface {
	// ListSources returns the user's sources, newest first.
	ListSources(ctx context.Context, userID uuid.UUID) ([]ledger.Source, error)
	GetSource(ctx context.Context, userID, sourceID uuid.UUID) (ledger.Source, error)
}

type Writer interface {
	InsertSource(ctx context.Context, s ledger.Source) (ledger.Source, error)
	// UpdateSource returns errs.ErrNotFound unless s.UserID owns the row.
	UpdateSource(ctx context.Context, s ledger.Source) (ledger.Source, error)
	DeleteSource(ctx context.Context, userID, sourceID uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]ledger.Source, error)
	Get(ctx context.Context, userID, sourceID uuid.UUID) (ledger.Source, error)
	Create(ctx context.Context, userID uuid.UUID, raw RawInput) (ledger.Source, error)
	Update(ctx context.Context, userID, sourceID uuid.UUID, raw RawInput) (ledger.Source, error)
	Delete(ctx context.Context, userID, sourceID uuid.UUID) error
}

type service struct {
	repo   Repo
	writer Writer
	curr   money.Currency
}

func New(repo Repo, writer Writer, curr money.Currency) Service {
	return &service{repo: repo, writer: writer, curr: curr}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ledger.Source, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListSources(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, sourceID uuid.UUID) (ledger.Source, error) {
	if userID == uuid.Nil || sourceID == uuid.Nil {
		return ledger.Source{}, errs.ErrInvalid
	}
	return s.repo.GetSource(ctx, userID, sourceID)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, raw RawInput) (ledger.Source, error) {
	if userID == uuid.Nil {
		return ledger.Source{}, errs.ErrInvalid
	}
	rec, err := Normalize(s.curr, raw)
	if err != nil {
		return ledger.Source{}, err
	}
	return s.writer.InsertSource(ctx, ledger.Source{ID: uuid.New(), UserID: userID, Name: rec.Name, Amount: rec.Amount, Date: rec.Date})
}

func (s *service) Update(ctx context.Context, userID, sourceID uuid.UUID, raw RawInput) (ledger.Source, error) {
	if userID == uuid.Nil || sourceID == uuid.Nil {
		return ledger.Source{}, errs.ErrInvalid
	}
	rec, err := Normalize(s.curr, raw)
	if err != nil {
		return ledger.Source{}, err
	}
	return s.writer.UpdateSource(ctx, ledger.Source{ID: sourceID, UserID: userID, Name: rec.Name, Amount: rec.Amount, Date: rec.Date})
}

func (s *service) Delete(ctx context.Context, userID, sourceID uuid.UUID) error {
	if userID == uuid.Nil || sourceID == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteSource(ctx, userID, sourceID)
}
