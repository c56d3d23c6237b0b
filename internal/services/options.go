package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/loader"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
	"github.com/light-bringer/inventory-service/internal/app/inventory/repo/gormstore"
	"github.com/light-bringer/inventory-service/internal/app/inventory/repo/spannerstore"
	"github.com/light-bringer/inventory-service/internal/app/inventory/service"
	"github.com/light-bringer/inventory-service/internal/config"
	"github.com/light-bringer/inventory-service/internal/pkg/cache"
	"github.com/light-bringer/inventory-service/internal/pkg/clock"
	transporthttp "github.com/light-bringer/inventory-service/internal/transport/http"
)

const cachePrefix = "inventory:"

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Store    contracts.Store
	Cache    *cache.Cache
	Services transporthttp.Services
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*ServiceOptions, error) {
	// 1. Open the gateway for the configured driver
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	opts := &ServiceOptions{Store: store}

	// 2. Connect the cache when one is configured
	deps := service.Deps{
		Store: store,
		Clock: clock.NewRealClock(),
		Log:   log,
	}
	if cfg.CacheEnabled() {
		c, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cachePrefix, cfg.CacheTTL)
		if err != nil {
			opts.Close()
			return nil, err
		}
		opts.Cache = c
		deps.Cache = c
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("entity cache enabled")
	}

	// 3. Create the facades
	sync := relations.NewSynchronizer(deps.Clock)
	opts.Services = transporthttp.Services{
		Products:     service.NewProductService(deps, sync),
		ProductCodes: service.NewProductCodeService(deps, sync),
		Categories:   service.NewCategoryService(deps, sync),
		Packagings:   service.NewPackagingService(deps, sync),
		Catalogs:     service.NewCatalogService(deps, sync, loader.NewCatalogLoader()),
	}
	if opts.Cache != nil {
		opts.Services.Cache = opts.Cache
	}

	return opts, nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (contracts.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSpanner:
		log.Info().Str("database", cfg.SpannerDatabase()).Msg("using spanner store")
		return spannerstore.Open(ctx, cfg.SpannerDatabase())
	case config.DriverPostgres:
		log.Info().Msg("using postgres store")
		return gormstore.OpenPostgres(ctx, cfg.PostgresDSN, log)
	case config.DriverSQLite:
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite store")
		return gormstore.OpenSQLite(ctx, cfg.SQLitePath, log)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Cache != nil {
		_ = s.Cache.Close()
	}
	if s.Store != nil {
		_ = s.Store.Close()
	}
}
