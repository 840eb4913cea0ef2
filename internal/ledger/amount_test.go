package ledger

import (
	"errors"
	"testing"

	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/errs"
)

func TestParseAmount(t *testing.T) {
	curr, err := money.ParseCurr("IRR")
	if err != nil {
		t.Fatalf("currency: %v", err)
	}
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1500", "1500", true},
		{" 12.5 ", "12.5", true},
		{"12,25", "12.25", true},
		{"0", "", false},
		{"-3", "", false},
		{"abc", "", false},
		{"", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(curr, tc.in)
		if !tc.ok {
			if !errors.Is(err, errs.ErrInvalidAmount) {
				t.Fatalf("%q: expected ErrInvalidAmount, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got.Curr().Code() != "IRR" {
			t.Fatalf("%q: unexpected currency %s", tc.in, got.Curr().Code())
		}
		want, _ := money.ParseAmount("IRR", tc.out)
		if got.Decimal().Cmp(want.Decimal()) != 0 {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, got.Decimal())
		}
	}
}

func TestZeroAmountAndBalance(t *testing.T) {
	curr, _ := money.ParseCurr("IRR")
	zero := ZeroAmount(curr)
	if !zero.IsZero() {
		t.Fatalf("expected zero, got %s", zero)
	}
	in, _ := money.ParseAmount("IRR", "100")
	out, _ := money.ParseAmount("IRR", "40")
	r := ReportResult{TotalSource: in, TotalSpent: out}
	b, err := r.Balance()
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	want, _ := money.ParseAmount("IRR", "60")
	if b.Decimal().Cmp(want.Decimal()) != 0 {
		t.Fatalf("expected 60, got %s", b.Decimal())
	}
}
