package v1

import (
	"context"

	"github.com/tinoosan/daftar/internal/service/auth"
	"github.com/tinoosan/daftar/internal/service/category"
	"github.com/tinoosan/daftar/internal/service/expense"
	"github.com/tinoosan/daftar/internal/service/report"
	"github.com/tinoosan/daftar/internal/service/source"
)

// Store composes every storage capability the API's services need. Both
// the memory and Postgres stores satisfy it.
type Store interface {
	auth.Repo
	auth.Writer
	category.Repo
	category.TxBeginner
	expense.Repo
	expense.Writer
	source.Repo
	source.Writer
	report.Repo
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
