package v1

import (
	"github.com/tinoosan/daftar/internal/storage/memory"
	"github.com/tinoosan/daftar/internal/storage/postgres"
)

// Compile-time assertions that both stores can back the API.
var (
	_ Store        = (*memory.Store)(nil)
	_ Store        = (*postgres.Store)(nil)
	_ ReadyChecker = (*postgres.Store)(nil)
)
