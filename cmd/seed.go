package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpapi "github.com/tinoosan/daftar/internal/httpapi/v1"
	"github.com/tinoosan/daftar/internal/jalali"
	"github.com/tinoosan/daftar/internal/service/auth"
	"github.com/tinoosan/daftar/internal/service/category"
	"github.com/tinoosan/daftar/internal/service/expense"
	"github.com/tinoosan/daftar/internal/service/source"
)

const (
	devEmail    = "dev@daftar.local"
	devPassword = "daftar-dev"
)

// seedDev creates a demo user with a few categories, costs and an income
// source in the current Jalali month. It goes through the services so both
// backends are seeded the same way, and is a no-op once the user exists.
func seedDev(ctx context.Context, store httpapi.Store, opts httpapi.Options, l *slog.Logger) error {
	authSvc := auth.New(store, store, auth.Options{Secret: opts.JWTSecret, TTL: opts.TokenTTL})
	u, err := authSvc.Signup(ctx, devEmail, devPassword, devPassword)
	if errors.Is(err, auth.ErrEmailTaken) {
		l.Info("dev seed skipped: user exists", "email", devEmail)
		return nil
	}
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	today, err := jalali.FromGregorian(time.Now())
	if err != nil {
		return err
	}
	part := func(n int) string { return fmt.Sprint(n) }

	cats := category.New(store, store)
	costs := expense.New(store, store, opts.Currency, nil)
	ids := map[string]string{}
	for _, c := range []struct{ name, amount, note string }{
		{"Food", "250000", "groceries"},
		{"Rent", "9000000", ""},
		{"Transport", "80000", "taxi"},
	} {
		cat, err := cats.Create(ctx, u.ID, c.name)
		if err != nil {
			return fmt.Errorf("category %s: %w", c.name, err)
		}
		ids[c.name] = cat.ID.String()
		_, err = costs.Create(ctx, u.ID, expense.RawInput{
			Amount:     c.amount,
			CategoryID: cat.ID.String(),
			Year:       part(today.Year),
			Month:      part(today.Month),
			Day:        part(today.Day),
			Note:       c.note,
		})
		if err != nil {
			return fmt.Errorf("cost %s: %w", c.name, err)
		}
	}

	sources := source.New(store, store, opts.Currency)
	if _, err := sources.Create(ctx, u.ID, source.RawInput{
		Name: "Salary", Amount: "15000000",
		Year: part(today.Year), Month: part(today.Month), Day: "1",
	}); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	l.Info("DEV seed", "user_id", u.ID.String(), "email", devEmail, "password", devPassword, "category_ids", ids)
	return nil
}
