package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/jalali"
	"github.com/tinoosan/daftar/internal/ledger"
)

const dateLayout = "2006-01-02"

// flexString accepts a JSON string or a JSON number and keeps its text form.
// Forms post "1403", API clients send 1403; both reach the services as strings.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

type credentialsRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type deleteCategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	DeletedCosts int64     `json:"deleted_costs"`
}

type costRequest struct {
	Amount     flexString `json:"amount"`
	CategoryID string     `json:"category_id"`
	Year       flexString `json:"year"`
	Month      flexString `json:"month"`
	Day        flexString `json:"day"`
	Note       string     `json:"note"`
}

type jalaliParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type costResponse struct {
	ID             uuid.UUID   `json:"id"`
	CategoryID     uuid.UUID   `json:"category_id"`
	Category       string      `json:"category,omitempty"`
	Amount         string      `json:"amount"`
	Date           string      `json:"date"`
	Jalali         jalaliParts `json:"jalali"`
	JalaliDate     string      `json:"jalali_date"`
	JalaliMonthDay string      `json:"jalali_month_day"`
	Note           string      `json:"note"`
}

type sourceRequest struct {
	Name   string     `json:"name"`
	Amount flexString `json:"amount"`
	Year   flexString `json:"year"`
	Month  flexString `json:"month"`
	Day    flexString `json:"day"`
}

type sourceResponse struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Amount     string      `json:"amount"`
	Date       string      `json:"date"`
	Jalali     jalaliParts `json:"jalali"`
	JalaliDate string      `json:"jalali_date"`
}

type reportRangeResponse struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	StartJalali string `json:"start_jalali"`
	EndJalali   string `json:"end_jalali"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type reportResponse struct {
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	Range       reportRangeResponse     `json:"range"`
	TotalSource string                  `json:"total_source"`
	TotalSpent  string                  `json:"total_spent"`
	Balance     string                  `json:"balance"`
	PerCategory []categoryTotalResponse `json:"per_category"`
}

func amountString(a money.Amount) string { return a.Decimal().String() }

func toJalaliParts(t time.Time) jalaliParts {
	d, err := jalali.FromGregorian(t)
	if err != nil {
		return jalaliParts{}
	}
	return jalaliParts{Year: d.Year, Month: d.Month, Day: d.Day}
}

func toUserResponse(u ledger.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toCategoryResponse(c ledger.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

func toCostResponse(c ledger.Cost) costResponse {
	return costResponse{
		ID:             c.ID,
		CategoryID:     c.CategoryID,
		Category:       c.CategoryName,
		Amount:         amountString(c.Amount),
		Date:           c.Date.Format(dateLayout),
		Jalali:         toJalaliParts(c.Date),
		JalaliDate:     jalali.FormatDate(c.Date),
		JalaliMonthDay: jalali.FormatMonthDay(c.Date),
		Note:           c.Note,
	}
}

func toSourceResponse(src ledger.Source) sourceResponse {
	return sourceResponse{
		ID:         src.ID,
		Name:       src.Name,
		Amount:     amountString(src.Amount),
		Date:       src.Date.Format(dateLayout),
		Jalali:     toJalaliParts(src.Date),
		JalaliDate: jalali.FormatDate(src.Date),
	}
}

func toReportResponse(res ledger.ReportResult) (reportResponse, error) {
	bal, err := res.Balance()
	if err != nil {
		return reportResponse{}, err
	}
	per := make([]categoryTotalResponse, 0, len(res.PerCategory))
	for _, ct := range res.PerCategory {
		per = append(per, categoryTotalResponse{Category: ct.Category, Total: amountString(ct.Total)})
	}
	return reportResponse{
		Year:  res.Year,
		Month: res.Month,
		Range: reportRangeResponse{
			Start:       res.Range.Start.Format(dateLayout),
			End:         res.Range.End.Format(dateLayout),
			StartJalali: jalali.FormatDate(res.Range.Start),
			EndJalali:   jalali.FormatDate(res.Range.End),
		},
		TotalSource: amountString(res.TotalSource),
		TotalSpent:  amountString(res.TotalSpent),
		Balance:     amountString(bal),
		PerCategory: per,
	}, nil
}
