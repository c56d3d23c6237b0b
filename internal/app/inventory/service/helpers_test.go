package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/light-bringer/inventory-service/internal/app/inventory/loader"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
	"github.com/light-bringer/inventory-service/internal/app/inventory/repo/gormstore"
	"github.com/light-bringer/inventory-service/internal/app/inventory/service"
	"github.com/light-bringer/inventory-service/internal/pkg/clock"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
	"github.com/light-bringer/inventory-service/tests/testutil"
)

type fixture struct {
	store      *gormstore.Store
	clock      *clock.MockClock
	cache      *memCache
	products   *service.ProductService
	codes      *service.ProductCodeService
	categories *service.CategoryService
	packagings *service.PackagingService
	catalogs   *service.CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, newMemCache())
}

func newFixtureWithCache(t *testing.T, c *memCache) *fixture {
	t.Helper()

	f := &fixture{
		store: testutil.NewSQLiteStore(t),
		clock: testutil.NewMockClock(),
		cache: c,
	}
	deps := service.Deps{
		Store: f.store,
		Clock: f.clock,
		Cache: c,
		Log:   logger.Nop(),
	}
	sync := relations.NewSynchronizer(f.clock)

	f.products = service.NewProductService(deps, sync)
	f.codes = service.NewProductCodeService(deps, sync)
	f.categories = service.NewCategoryService(deps, sync)
	f.packagings = service.NewPackagingService(deps, sync)
	f.catalogs = service.NewCatalogService(deps, sync, loader.NewCatalogLoader())
	return f
}

// memCache is an in-memory Cache storing JSON like the Redis cache does.
type memCache struct {
	mu        sync.Mutex
	entries   map[string][]byte
	hits      int
	deleteErr error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteErr != nil {
		return c.deleteErr
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

var errCacheDown = errors.New("cache unavailable")
