// Package expense turns raw expense input into storage records and runs the
// cost create/edit/delete/list flows.
package expense

import (
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

// MaxNoteLen bounds the free-text note, in runes.
const MaxNoteLen = 500

// RawInput is expense input as submitted by a form or JSON body. Numbers may
// arrive as strings; the HTTP layer stringifies JSON numbers before calling in.
type RawInput struct {
	Amount     string
	CategoryID string
	Year       string
	Month      string
	Day        string
	Note       string
}

// Record is a storage-ready expense.
type Record struct {
	Amount     money.Amount
	CategoryID uuid.UUID
	Date       time.Time
	Note       string
}

// Cost builds the entity persisted for userID.
func (r Record) Cost(id, userID uuid.UUID) ledger.Cost {
	return ledger.Cost{ID: id, UserID: userID, CategoryID: r.CategoryID, Amount: r.Amount, Date: r.Date, Note: r.Note}
}

// Normalize validates raw and converts its Jalali date parts to a Gregorian day.
// It reads no clock, so equal input always yields an equal Record.
func Normalize(curr money.Currency, raw RawInput) (Record, error) {
	catID, err := uuid.Parse(strings.TrimSpace(raw.CategoryID))
	if err != nil || catID == uuid.Nil {
		return Record{}, fmt.Errorf("%w: category_id is invalid", errs.ErrInvalid)
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
	note := strings.TrimSpace(raw.Note)
	if utf8.RuneCountInString(note) > MaxNoteLen {
		return Record{}, fmt.Errorf("%w: note longer than %d characters", errs.ErrInvalid, MaxNoteLen)
	}
	return Record{Amount: amt, CategoryID: catID, Date: date, Note: note}, nil
}
