package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// 2024-03-25 is 1403/01/06.
var testNow = time.Date(2024, time.March, 25, 12, 0, 0, 0, time.UTC)

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type sessionResp struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type categoryResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type costResp struct {
	ID             string `json:"id"`
	CategoryID     string `json:"category_id"`
	Category       string `json:"category"`
	Amount         string `json:"amount"`
	Date           string `json:"date"`
	JalaliDate     string `json:"jalali_date"`
	JalaliMonthDay string `json:"jalali_month_day"`
	Note           string `json:"note"`
	Jalali         struct {
		Year, Month, Day int
	} `json:"jalali"`
}

type reportResp struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Range struct {
		Start       string `json:"start"`
		End         string `json:"end"`
		StartJalali string `json:"start_jalali"`
		EndJalali   string `json:"end_jalali"`
	} `json:"range"`
	TotalSource string `json:"total_source"`
	TotalSpent  string `json:"total_spent"`
	Balance     string `json:"balance"`
	PerCategory []struct {
		Category string `json:"category"`
		Total    string `json:"total"`
	} `json:"per_category"`
}

func setup(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	curr, err := money.ParseCurr("IRR")
	if err != nil {
		t.Fatalf("currency: %v", err)
	}
	store := memory.New()
	srv := New(store, Options{
		Currency:   curr,
		JWTSecret:  []byte("test-secret-0123456789"),
		TokenTTL:   time.Hour,
		RecentDays: 7,
		BcryptCost: 4,
		Now:        func() time.Time { return testNow },
	}, testLogger())
	return store, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	if got := decode[errResp](t, rec).Code; got != code {
		t.Fatalf("expected code %q, got %q", code, got)
	}
}

func amountEq(t *testing.T, got, want string) {
	t.Helper()
	g, err := decimal.Parse(got)
	if err != nil {
		t.Fatalf("amount %q: %v", got, err)
	}
	if g.Cmp(decimal.MustParse(want)) != 0 {
		t.Fatalf("expected amount %s, got %s", want, got)
	}
}

// login signs up email and returns a bearer token.
func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email": email, "password": "secret1", "confirm_password": "secret1",
	})
	expectStatus(t, rec, http.StatusCreated)
	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{"email": email, "password": "secret1"})
	expectStatus(t, rec, http.StatusOK)
	sess := decode[sessionResp](t, rec)
	if sess.Token == "" {
		t.Fatalf("login returned no token")
	}
	return sess.Token
}

func createCategory(t *testing.T, h http.Handler, token, name string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/categories", token, map[string]any{"name": name})
	expectStatus(t, rec, http.StatusCreated)
	return decode[categoryResp](t, rec).ID
}

func createCost(t *testing.T, h http.Handler, token string, body map[string]any) costResp {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/costs", token, body)
	expectStatus(t, rec, http.StatusCreated)
	return decode[costResp](t, rec)
}

func TestAuth_SignupLoginMe(t *testing.T) {
	_, h := setup(t)

	rec := do(t, h, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email": "a@example.com", "password": "secret1", "confirm_password": "other1",
	})
	expectCode(t, rec, http.StatusUnprocessableEntity, "password_mismatch")

	token := login(t, h, "  A@Example.com ")

	rec = do(t, h, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email": "a@example.com", "password": "secret1", "confirm_password": "secret1",
	})
	expectCode(t, rec, http.StatusConflict, "email_taken")

	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "secret1"})
	expectCode(t, rec, http.StatusUnauthorized, "email_not_registered")
	rec = do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{"email": "a@example.com", "password": "wrong!!"})
	expectCode(t, rec, http.StatusUnauthorized, "invalid_password")

	rec = do(t, h, http.MethodGet, "/v1/auth/me", token, nil)
	expectStatus(t, rec, http.StatusOK)
	me := decode[userResponse](t, rec)
	if me.Email != "a@example.com" {
		t.Fatalf("expected normalized email, got %q", me.Email)
	}
}

func TestAuth_CookieSessionAndLogout(t *testing.T) {
	_, h := setup(t)
	do(t, h, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email": "c@example.com", "password": "secret1", "confirm_password": "secret1",
	})
	rec := do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]any{"email": "c@example.com", "password": "secret1"})
	expectStatus(t, rec, http.StatusOK)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			session = c
		}
	}
	if session == nil || session.Value == "" || !session.HttpOnly {
		t.Fatalf("expected HttpOnly session cookie, got %+v", session)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: session.Value})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusOK)

	rec = do(t, h, http.MethodPost, "/v1/auth/logout", "", nil)
	expectStatus(t, rec, http.StatusNoContent)
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected logout to clear the session cookie")
	}
}

func TestAuth_RequiredOnProtectedRoutes(t *testing.T) {
	_, h := setup(t)
	for _, path := range []string{"/v1/auth/me", "/v1/categories", "/v1/costs", "/v1/sources", "/v1/reports/1403/1"} {
		rec := do(t, h, http.MethodGet, path, "", nil)
		expectCode(t, rec, http.StatusUnauthorized, "unauthorized")
		rec = do(t, h, http.MethodGet, path, "not-a-token", nil)
		expectStatus(t, rec, http.StatusUnauthorized)
	}
}

func TestCategories_CreateDuplicateList(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")

	createCategory(t, h, token, "Rent")
	createCategory(t, h, token, " Food ")

	rec := do(t, h, http.MethodPost, "/v1/categories", token, map[string]any{"name": "food"})
	expectCode(t, rec, http.StatusConflict, "category_exists")
	rec = do(t, h, http.MethodPost, "/v1/categories", token, map[string]any{"name": "   "})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = do(t, h, http.MethodGet, "/v1/categories", token, nil)
	expectStatus(t, rec, http.StatusOK)
	cats := decode[[]categoryResp](t, rec)
	if len(cats) != 2 || cats[0].Name != "Food" || cats[1].Name != "Rent" {
		t.Fatalf("unexpected categories: %+v", cats)
	}

	// another user sees none of them
	other := login(t, h, "v@example.com")
	rec = do(t, h, http.MethodGet, "/v1/categories", other, nil)
	if got := decode[[]categoryResp](t, rec); len(got) != 0 {
		t.Fatalf("expected no categories for other user, got %+v", got)
	}
}

func TestCosts_CreateGetUpdateDelete(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")
	food := createCategory(t, h, token, "Food")

	// numbers and strings are both accepted for amount and date parts
	c := createCost(t, h, token, map[string]any{
		"amount": 150, "category_id": food, "year": "1403", "month": 1, "day": "5", "note": " lunch ",
	})
	if c.Date != "2024-03-24" || c.JalaliDate != "1403/01/05" || c.JalaliMonthDay != "01/05" {
		t.Fatalf("unexpected dates: %+v", c)
	}
	if c.Category != "Food" || c.Note != "lunch" {
		t.Fatalf("unexpected cost: %+v", c)
	}
	amountEq(t, c.Amount, "150")

	rec := do(t, h, http.MethodGet, "/v1/costs/"+c.ID, token, nil)
	expectStatus(t, rec, http.StatusOK)
	got := decode[costResp](t, rec)
	if got.Jalali.Year != 1403 || got.Jalali.Month != 1 || got.Jalali.Day != 5 {
		t.Fatalf("unexpected jalali parts: %+v", got.Jalali)
	}

	rec = do(t, h, http.MethodPut, "/v1/costs/"+c.ID, token, map[string]any{
		"amount": "12,5", "category_id": food, "year": 1403, "month": 12, "day": 30,
	})
	expectStatus(t, rec, http.StatusOK)
	up := decode[costResp](t, rec)
	if up.Date != "2025-03-20" {
		t.Fatalf("expected 1403/12/30 -> 2025-03-20, got %s", up.Date)
	}
	amountEq(t, up.Amount, "12.5")

	other := login(t, h, "v@example.com")
	rec = do(t, h, http.MethodGet, "/v1/costs/"+c.ID, other, nil)
	expectStatus(t, rec, http.StatusNotFound)
	rec = do(t, h, http.MethodDelete, "/v1/costs/"+c.ID, other, nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec = do(t, h, http.MethodDelete, "/v1/costs/"+c.ID, token, nil)
	expectStatus(t, rec, http.StatusNoContent)
	rec = do(t, h, http.MethodGet, "/v1/costs/"+c.ID, token, nil)
	expectStatus(t, rec, http.StatusNotFound)
	rec = do(t, h, http.MethodGet, "/v1/costs/not-a-uuid", token, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestCosts_Rejections(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")
	food := createCategory(t, h, token, "Food")

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"invalid date", map[string]any{"amount": 1, "category_id": food, "year": 1403, "month": 7, "day": 31}, http.StatusUnprocessableEntity, "invalid_date"},
		{"month 13", map[string]any{"amount": 1, "category_id": food, "year": 1403, "month": 13, "day": 1}, http.StatusUnprocessableEntity, "invalid_date"},
		{"non-numeric day", map[string]any{"amount": 1, "category_id": food, "year": 1403, "month": 1, "day": "x"}, http.StatusUnprocessableEntity, "invalid_date"},
		{"zero amount", map[string]any{"amount": 0, "category_id": food, "year": 1403, "month": 1, "day": 1}, http.StatusUnprocessableEntity, "invalid_amount"},
		{"text amount", map[string]any{"amount": "abc", "category_id": food, "year": 1403, "month": 1, "day": 1}, http.StatusUnprocessableEntity, "invalid_amount"},
		{"bad category id", map[string]any{"amount": 1, "category_id": "nope", "year": 1403, "month": 1, "day": 1}, http.StatusBadRequest, "validation_error"},
		{"unknown field", map[string]any{"amount": 1, "category_id": food, "year": 1403, "month": 1, "day": 1, "extra": true}, http.StatusBadRequest, "bad_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/costs", token, tc.body)
			expectCode(t, rec, tc.status, tc.code)
		})
	}

	// a category owned by someone else is not found
	other := login(t, h, "v@example.com")
	rec := do(t, h, http.MethodPost, "/v1/costs", other, map[string]any{"amount": 1, "category_id": food, "year": 1403, "month": 1, "day": 1})
	expectStatus(t, rec, http.StatusNotFound)

	req := httptest.NewRequest(http.MethodPost, "/v1/costs", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusUnsupportedMediaType)
}

func TestCosts_ListRecent(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")
	food := createCategory(t, h, token, "Food")

	// today is 1403/01/06 (2024-03-25); a seven day window starts at 1402/12/28 (2024-03-18)
	for _, d := range []struct{ y, m, day int }{{1403, 1, 6}, {1403, 1, 1}, {1402, 12, 28}, {1402, 12, 27}} {
		createCost(t, h, token, map[string]any{"amount": 10, "category_id": food, "year": d.y, "month": d.m, "day": d.day})
	}

	rec := do(t, h, http.MethodGet, "/v1/costs", token, nil)
	expectStatus(t, rec, http.StatusOK)
	list := decode[[]costResp](t, rec)
	if len(list) != 3 {
		t.Fatalf("expected 3 recent costs, got %d: %+v", len(list), list)
	}
	if list[0].JalaliDate != "1403/01/06" || list[2].JalaliDate != "1402/12/28" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[0].Category != "Food" {
		t.Fatalf("expected category name on list rows, got %q", list[0].Category)
	}

	rec = do(t, h, http.MethodGet, "/v1/costs?days=1", token, nil)
	if got := decode[[]costResp](t, rec); len(got) != 1 {
		t.Fatalf("expected 1 cost in a one day window, got %d", len(got))
	}
	rec = do(t, h, http.MethodGet, "/v1/costs?days=0", token, nil)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestSources_ScopedCRUD(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")

	rec := do(t, h, http.MethodPost, "/v1/sources", token, map[string]any{"name": "Salary", "amount": "1000", "year": 1403, "month": 1, "day": 1})
	expectStatus(t, rec, http.StatusCreated)
	var src struct {
		ID         string `json:"id"`
		Date       string `json:"date"`
		JalaliDate string `json:"jalali_date"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &src); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if src.Date != "2024-03-20" || src.JalaliDate != "1403/01/01" {
		t.Fatalf("unexpected source dates: %+v", src)
	}

	other := login(t, h, "v@example.com")
	rec = do(t, h, http.MethodPut, "/v1/sources/"+src.ID, other, map[string]any{"name": "X", "amount": 1, "year": 1403, "month": 1, "day": 1})
	expectStatus(t, rec, http.StatusNotFound)
	rec = do(t, h, http.MethodDelete, "/v1/sources/"+src.ID, other, nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec = do(t, h, http.MethodPut, "/v1/sources/"+src.ID, token, map[string]any{"name": "Bonus", "amount": 2000, "year": 1403, "month": 2, "day": 1})
	expectStatus(t, rec, http.StatusOK)
	rec = do(t, h, http.MethodGet, "/v1/sources", token, nil)
	expectStatus(t, rec, http.StatusOK)
	var list []struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Bonus" {
		t.Fatalf("unexpected sources: %+v", list)
	}
	amountEq(t, list[0].Amount, "2000")

	rec = do(t, h, http.MethodDelete, "/v1/sources/"+src.ID, token, nil)
	expectStatus(t, rec, http.StatusNoContent)
	rec = do(t, h, http.MethodGet, "/v1/sources/"+src.ID, token, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestReports_MonthTotalsAndCascade(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")
	food := createCategory(t, h, token, "Food")
	rent := createCategory(t, h, token, "Rent")

	rec := do(t, h, http.MethodPost, "/v1/sources", token, map[string]any{"name": "Salary", "amount": 1000, "year": 1403, "month": 1, "day": 1})
	expectStatus(t, rec, http.StatusCreated)
	createCost(t, h, token, map[string]any{"amount": 100, "category_id": food, "year": 1403, "month": 1, "day": 1})
	createCost(t, h, token, map[string]any{"amount": 50, "category_id": food, "year": 1403, "month": 1, "day": 31})
	createCost(t, h, token, map[string]any{"amount": 250, "category_id": rent, "year": 1403, "month": 1, "day": 15})
	// last day of the previous month and first day of the next stay out
	createCost(t, h, token, map[string]any{"amount": 999, "category_id": food, "year": 1402, "month": 12, "day": 29})
	createCost(t, h, token, map[string]any{"amount": 999, "category_id": food, "year": 1403, "month": 2, "day": 1})

	rec = do(t, h, http.MethodGet, "/v1/reports/1403/1", token, nil)
	expectStatus(t, rec, http.StatusOK)
	rep := decode[reportResp](t, rec)
	if rep.Year != 1403 || rep.Month != 1 {
		t.Fatalf("unexpected period %d/%d", rep.Year, rep.Month)
	}
	if rep.Range.Start != "2024-03-20" || rep.Range.End != "2024-04-19" || rep.Range.EndJalali != "1403/01/31" {
		t.Fatalf("unexpected range: %+v", rep.Range)
	}
	amountEq(t, rep.TotalSource, "1000")
	amountEq(t, rep.TotalSpent, "400")
	amountEq(t, rep.Balance, "600")
	if len(rep.PerCategory) != 2 || rep.PerCategory[0].Category != "Food" || rep.PerCategory[1].Category != "Rent" {
		t.Fatalf("unexpected per-category rows: %+v", rep.PerCategory)
	}
	amountEq(t, rep.PerCategory[0].Total, "150")
	amountEq(t, rep.PerCategory[1].Total, "250")

	// deleting Food removes its costs from the report
	rec = do(t, h, http.MethodDelete, "/v1/categories/"+food, token, nil)
	expectStatus(t, rec, http.StatusOK)
	var del struct {
		DeletedCosts int64 `json:"deleted_costs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &del); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if del.DeletedCosts != 4 {
		t.Fatalf("expected 4 deleted costs, got %d", del.DeletedCosts)
	}
	rec = do(t, h, http.MethodGet, "/v1/reports/1403/1", token, nil)
	rep = decode[reportResp](t, rec)
	amountEq(t, rep.TotalSpent, "250")
	if len(rep.PerCategory) != 1 || rep.PerCategory[0].Category != "Rent" {
		t.Fatalf("unexpected per-category rows after delete: %+v", rep.PerCategory)
	}
	rec = do(t, h, http.MethodDelete, "/v1/categories/"+food, token, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestReports_EmptyAndInvalid(t *testing.T) {
	_, h := setup(t)
	token := login(t, h, "u@example.com")

	rec := do(t, h, http.MethodGet, "/v1/reports/1403/12", token, nil)
	expectStatus(t, rec, http.StatusOK)
	rep := decode[reportResp](t, rec)
	amountEq(t, rep.TotalSource, "0")
	amountEq(t, rep.TotalSpent, "0")
	amountEq(t, rep.Balance, "0")
	if rep.PerCategory == nil || len(rep.PerCategory) != 0 {
		t.Fatalf("expected empty per-category list, got %+v", rep.PerCategory)
	}
	if rep.Range.End != "2025-03-20" {
		t.Fatalf("expected leap Esfand to end 2025-03-20, got %s", rep.Range.End)
	}

	rec = do(t, h, http.MethodGet, "/v1/reports/1403/13", token, nil)
	expectCode(t, rec, http.StatusUnprocessableEntity, "invalid_date")
	rec = do(t, h, http.MethodGet, "/v1/reports/1403/abc", token, nil)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHealthAndMetrics(t *testing.T) {
	_, h := setup(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := do(t, h, http.MethodGet, path, "", nil)
		expectStatus(t, rec, http.StatusOK)
	}
	do(t, h, http.MethodGet, "/healthz", "", nil)
	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "daftar_http_requests_total") {
		t.Fatalf("expected http request counter in metrics output")
	}
}
