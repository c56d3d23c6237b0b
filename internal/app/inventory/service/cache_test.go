package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/pkg/cache"
	"github.com/light-bringer/inventory-service/tests/testutil"
)

func TestFindOne_ReadsThroughCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.Create(ctx, testutil.NewProduct("A"))
	require.NoError(t, err)
	key := cache.Key(string(domain.KindProduct), p.ID)
	assert.False(t, f.cache.has(key))

	_, err = f.products.FindOne(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, f.cache.has(key))

	found, err := f.products.FindOne(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", found.Name)
	assert.Equal(t, 1, f.cache.hits)

	missing, err := f.products.FindOne(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.False(t, f.cache.has(cache.Key(string(domain.KindProduct), 404)))
}

func TestWrites_InvalidateAffectedEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	code, err := f.codes.Create(ctx, testutil.NewProductCode("111"))
	require.NoError(t, err)
	p := testutil.NewProduct("A")
	p.ProductCodeID = testutil.Ptr(code.ID)
	p, err = f.products.Create(ctx, p)
	require.NoError(t, err)
	c, err := f.catalogs.Create(ctx, testutil.NewCatalog("SPRING"))
	require.NoError(t, err)
	require.NoError(t, f.catalogs.Attach(ctx, c.ID, p.ID))

	productKey := cache.Key(string(domain.KindProduct), p.ID)
	codeKey := cache.Key(string(domain.KindProductCode), code.ID)
	catalogKey := cache.Key(string(domain.KindCatalog), c.ID)

	warm := func() {
		_, err := f.products.FindOne(ctx, p.ID)
		require.NoError(t, err)
		_, err = f.codes.FindOne(ctx, code.ID)
		require.NoError(t, err)
		_, err = f.catalogs.FindOne(ctx, c.ID)
		require.NoError(t, err)
	}

	warm()
	_, err = f.products.PartialUpdate(ctx, p.ID, &domain.ProductPatch{ID: p.ID, Name: domain.Some("B")})
	require.NoError(t, err)
	assert.False(t, f.cache.has(productKey))
	assert.False(t, f.cache.has(codeKey))
	assert.False(t, f.cache.has(catalogKey))

	loaded, err := f.catalogs.FindOne(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, "B", loaded.Products[0].Name)

	warm()
	require.NoError(t, f.catalogs.Detach(ctx, c.ID, p.ID))
	assert.False(t, f.cache.has(catalogKey))
	assert.True(t, f.cache.has(productKey))

	warm()
	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.False(t, f.cache.has(productKey))
	assert.False(t, f.cache.has(codeKey))

	owner, err := f.codes.FindOne(ctx, code.ID)
	require.NoError(t, err)
	assert.Nil(t, owner.ProductID)
}

func TestWrites_FailedInvalidationRollsBack(t *testing.T) {
	c := newMemCache()
	f := newFixtureWithCache(t, c)
	ctx := context.Background()

	p, err := f.products.Create(ctx, testutil.NewProduct("A"))
	require.NoError(t, err)

	c.deleteErr = errCacheDown
	_, err = f.products.PartialUpdate(ctx, p.ID, &domain.ProductPatch{ID: p.ID, Name: domain.Some("B")})
	assert.ErrorIs(t, err, errCacheDown)

	c.deleteErr = nil
	found, err := f.products.FindOne(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", found.Name)
}
