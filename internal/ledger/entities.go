package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/govalues/money"
)

// User captures the owner of ledger data.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Category groups a user's costs. Names are unique per user, case-insensitively.
type Category struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
}

// Cost is a single expense recorded against one of the user's categories.
type Cost struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     money.Amount
	// Date is a Gregorian calendar day at midnight UTC.
	Date time.Time
	Note string
	// CategoryName is filled on reads for display; it is never written.
	CategoryName string
}

// Source is an income record. It is not tied to a category.
type Source struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Amount money.Amount
	// Date is a Gregorian calendar day at midnight UTC.
	Date time.Time
}

// ReportRange is the inclusive Gregorian [Start, End] interval of one Jalali month.
type ReportRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar day d falls inside the range, both ends inclusive.
func (r ReportRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// CategorySum is a per-category total as produced by storage.
type CategorySum struct {
	Category string
	Total    decimal.Decimal
}

// CategoryTotal is a per-category spend line of a report.
type CategoryTotal struct {
	Category string
	Total    money.Amount
}

// ReportResult holds the totals of one reporting period. Totals are zero,
// never missing, when no rows matched.
type ReportResult struct {
	Year        int
	Month       int
	Range       ReportRange
	TotalSource money.Amount
	TotalSpent  money.Amount
	PerCategory []CategoryTotal
}

// Balance is income minus spend for the period.
func (r ReportResult) Balance() (money.Amount, error) {
	return r.TotalSource.Sub(r.TotalSpent)
}
