package postgres

import (
	"github.com/tinoosan/daftar/internal/service/auth"
	"github.com/tinoosan/daftar/internal/service/category"
	"github.com/tinoosan/daftar/internal/service/expense"
	"github.com/tinoosan/daftar/internal/service/report"
	"github.com/tinoosan/daftar/internal/service/source"
)

var (
	_ auth.Repo           = (*Store)(nil)
	_ auth.Writer         = (*Store)(nil)
	_ category.Repo       = (*Store)(nil)
	_ category.TxBeginner = (*Store)(nil)
	_ category.Tx         = (*Tx)(nil)
	_ expense.Repo        = (*Store)(nil)
	_ expense.Writer      = (*Store)(nil)
	_ source.Repo         = (*Store)(nil)
	_ source.Writer       = (*Store)(nil)
	_ report.Repo         = (*Store)(nil)
)
