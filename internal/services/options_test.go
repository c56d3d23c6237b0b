package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/config"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
)

func TestNewServiceOptions_SQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "inventory.db"),
	}

	opts, err := NewServiceOptions(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer opts.Close()

	assert.Nil(t, opts.Cache)
	assert.Nil(t, opts.Services.Cache)
	require.NotNil(t, opts.Services.Products)
	require.NotNil(t, opts.Services.Catalogs)

	all, err := opts.Services.Catalogs.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNewServiceOptions_UnknownDriver(t *testing.T) {
	_, err := NewServiceOptions(context.Background(), &config.Config{StoreDriver: "mongo"}, logger.Nop())
	assert.ErrorContains(t, err, `unknown store driver "mongo"`)
}
