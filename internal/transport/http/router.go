// Package http serves the inventory facades as a JSON API under /api/v1.
package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/service"
)

const apiPrefix = "/api/v1"

// Services bundles the facades served by the router.
type Services struct {
	Products     *service.ProductService
	ProductCodes *service.ProductCodeService
	Categories   *service.CategoryService
	Packagings   *service.PackagingService
	Catalogs     *service.CatalogService

	// Cache is nil when no cache is configured.
	Cache CacheHealth
}

// NewRouter builds the HTTP handler for svc.
func NewRouter(svc Services, log zerolog.Logger) *chi.Mux {
	h := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(log))
	r.Use(Recoverer(log))

	r.Get("/healthz", h.health)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			products := &resource[domain.Product, domain.ProductPatch]{
				svc:  svc.Products,
				base: apiPrefix + "/products",
				id:   func(p *domain.Product) int64 { return p.ID },
				log:  log,
			}
			products.mount(r, nil)
			r.Get("/{id}/catalogs", h.productCatalogs)
		})

		r.Route("/product-codes", func(r chi.Router) {
			codes := &resource[domain.ProductCode, domain.ProductCodePatch]{
				svc:  svc.ProductCodes,
				base: apiPrefix + "/product-codes",
				id:   func(c *domain.ProductCode) int64 { return c.ID },
				log:  log,
			}
			codes.mount(r, h.listProductCodes)
		})

		r.Route("/categories", func(r chi.Router) {
			categories := &resource[domain.Category, domain.CategoryPatch]{
				svc:  svc.Categories,
				base: apiPrefix + "/categories",
				id:   func(c *domain.Category) int64 { return c.ID },
				log:  log,
			}
			categories.mount(r, nil)
			r.Put("/{id}/products", h.replaceMembers(svc.Categories.ReplaceProducts))
		})

		r.Route("/packagings", func(r chi.Router) {
			packagings := &resource[domain.Packaging, domain.PackagingPatch]{
				svc:  svc.Packagings,
				base: apiPrefix + "/packagings",
				id:   func(p *domain.Packaging) int64 { return p.ID },
				log:  log,
			}
			packagings.mount(r, nil)
			r.Put("/{id}/products", h.replaceMembers(svc.Packagings.ReplaceProducts))
		})

		r.Route("/catalogs", func(r chi.Router) {
			catalogs := &resource[domain.Catalog, domain.CatalogPatch]{
				svc:  svc.Catalogs,
				base: apiPrefix + "/catalogs",
				id:   func(c *domain.Catalog) int64 { return c.ID },
				log:  log,
			}
			catalogs.mount(r, h.listCatalogs)
			r.Put("/{id}/products/{productId}", h.attach)
			r.Delete("/{id}/products/{productId}", h.detach)
		})
	})

	return r
}
