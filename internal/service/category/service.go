// Package category implements per-user categories: unique names and a
// delete that cascades to the category's costs inside one transaction.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

// MaxNameLen bounds a category name, in runes.
const MaxNameLen = 100

// ErrNameTaken indicates the user already has a category with the same
// name, compared case-insensitively.
var ErrNameTaken = fmt.Errorf("%w: category already exists", errs.ErrConflict)

type Repo interface {
	// ListCategories returns the user's categories ordered by name.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]ledger.Category, error)
	GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (ledger.Category, error)
}

// Tx is the storage transaction the multi-step mutations run in.
type Tx interface {
	CategoryByName(ctx context.Context, userID uuid.UUID, name string) (ledger.Category, bool, error)
	InsertCategory(ctx context.Context, c ledger.Category) (ledger.Category, error)
	DeleteCostsByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
	// DeleteCategory returns errs.ErrNotFound when no row matched.
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]ledger.Category, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (ledger.Category, error)
	// Delete removes the user's costs in the category, then the category.
	// It returns the number of costs removed.
	Delete(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}

type service struct {
	repo Repo
	txb  TxBeginner
}

func New(repo Repo, txb TxBeginner) Service { return &service{repo: repo, txb: txb} }

// NormalizeName trims name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", errs.ErrInvalid)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", fmt.Errorf("%w: name longer than %d characters", errs.ErrInvalid, MaxNameLen)
	}
	return name, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ledger.Category, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrInvalid
	}
	return s.repo.ListCategories(ctx, userID)
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, name string) (ledger.Category, error) {
	if userID == uuid.Nil {
		return ledger.Category{}, errs.ErrInvalid
	}
	name, err := NormalizeName(name)
	if err != nil {
		return ledger.Category{}, err
	}
	tx, err := s.txb.BeginTx(ctx)
	if err != nil {
		return ledger.Category{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, found, err := tx.CategoryByName(ctx, userID, name); err != nil {
		return ledger.Category{}, err
	} else if found {
		return ledger.Category{}, ErrNameTaken
	}
	created, err := tx.InsertCategory(ctx, ledger.Category{ID: uuid.New(), UserID: userID, Name: name})
	if err != nil {
		// a concurrent insert that won the race surfaces as the unique index
		if errors.Is(err, errs.ErrConflict) {
			return ledger.Category{}, ErrNameTaken
		}
		return ledger.Category{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ledger.Category{}, err
	}
	return created, nil
}

func (s *service) Delete(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	if userID == uuid.Nil || categoryID == uuid.Nil {
		return 0, errs.ErrInvalid
	}
	tx, err := s.txb.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n, err := tx.DeleteCostsByCategory(ctx, userID, categoryID)
	if err != nil {
		return 0, err
	}
	if err := tx.DeleteCategory(ctx, userID, categoryID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}
