package ledger

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/errs"
)

// ParseAmount converts user input such as "1500", "12.50" or "12,50" into a
// positive amount in curr, rounded to the currency's scale.
func ParseAmount(curr money.Currency, s string) (money.Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return money.Amount{}, fmt.Errorf("%w: amount is required", errs.ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.Parse(s)
	if err != nil {
		return money.Amount{}, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidAmount, s)
	}
	if !d.IsPos() {
		return money.Amount{}, fmt.Errorf("%w: amount must be > 0", errs.ErrInvalidAmount)
	}
	a, err := money.NewAmountFromDecimal(curr, d)
	if err != nil {
		return money.Amount{}, fmt.Errorf("%w: %v", errs.ErrInvalidAmount, err)
	}
	a = a.RoundToCurr()
	if !a.IsPos() {
		return money.Amount{}, fmt.Errorf("%w: amount rounds to zero", errs.ErrInvalidAmount)
	}
	return a, nil
}

// AmountFromDecimal wraps a stored decimal value in curr.
func AmountFromDecimal(curr money.Currency, d decimal.Decimal) (money.Amount, error) {
	return money.NewAmountFromDecimal(curr, d)
}

// ZeroAmount returns 0 in curr.
func ZeroAmount(curr money.Currency) money.Amount {
	a, _ := money.NewAmountFromDecimal(curr, decimal.Zero)
	return a
}
