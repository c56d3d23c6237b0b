package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/repo/gormstore"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
)

// NewSQLiteStore opens a migrated SQLite store in a fresh temporary directory.
// The store is closed when the test ends.
func NewSQLiteStore(t *testing.T) *gormstore.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inventory.db")
	store, err := gormstore.OpenSQLite(context.Background(), path, logger.Nop())
	require.NoError(t, err, "failed to open sqlite store")

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
