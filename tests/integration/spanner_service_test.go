//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/loader"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
	"github.com/light-bringer/inventory-service/internal/app/inventory/service"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
	"github.com/light-bringer/inventory-service/tests/testutil"
)

func TestSpannerServices_ProductWithReferences(t *testing.T) {
	f := setupStore(t)
	ctx := context.Background()

	clk := testutil.NewMockClock()
	deps := service.Deps{Store: f.store, Clock: clk, Log: logger.Nop()}
	sync := relations.NewSynchronizer(clk)

	products := service.NewProductService(deps, sync)
	codes := service.NewProductCodeService(deps, sync)
	categories := service.NewCategoryService(deps, sync)
	catalogs := service.NewCatalogService(deps, sync, loader.NewCatalogLoader())

	code, err := codes.Create(ctx, testutil.NewProductCode("0001"))
	require.NoError(t, err)
	category, err := categories.Create(ctx, testutil.NewCategory("Analgesics"))
	require.NoError(t, err)

	p := testutil.NewProduct("Aspirin")
	p.ProductCodeID = &code.ID
	p.CategoryID = &category.ID
	saved, err := products.Create(ctx, p)
	require.NoError(t, err)

	owned, err := codes.FindOne(ctx, code.ID)
	require.NoError(t, err)
	require.NotNil(t, owned.ProductID)
	assert.Equal(t, saved.ID, *owned.ProductID)

	unowned, err := codes.FindAllUnowned(ctx)
	require.NoError(t, err)
	assert.Empty(t, unowned)

	catalog, err := catalogs.Create(ctx, testutil.NewCatalog("SPRING"))
	require.NoError(t, err)
	require.NoError(t, catalogs.Attach(ctx, catalog.ID, saved.ID))
	require.NoError(t, catalogs.Attach(ctx, catalog.ID, saved.ID))

	loaded, err := catalogs.FindOne(ctx, catalog.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, saved.ID, loaded.Products[0].ID)

	require.NoError(t, products.Delete(ctx, saved.ID))

	loaded, err = catalogs.FindOne(ctx, catalog.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Products)

	released, err := codes.FindOne(ctx, code.ID)
	require.NoError(t, err)
	assert.Nil(t, released.ProductID)

	gone, err := products.FindOne(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
