package contracts

import (
	"context"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
)

// Store is the persistence gateway. Every facade operation runs inside exactly one scope:
// ReadWrite commits all writes made through tx atomically or none of them, ReadOnly may use
// relaxed isolation.
type Store interface {
	ReadWrite(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	ReadOnly(ctx context.Context, fn func(ctx context.Context, tx ReadTx) error) error
	Close() error
}

// ReadTx exposes the queries available inside any scope.
// Getters return a domain.NotFoundError when the id has no row.
type ReadTx interface {
	Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error)

	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// GetProductCode resolves the owning product into ProductCode.ProductID.
	GetProductCode(ctx context.Context, id int64) (*domain.ProductCode, error)
	ListProductCodes(ctx context.Context, unownedOnly bool) ([]*domain.ProductCode, error)

	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	GetPackaging(ctx context.Context, id int64) (*domain.Packaging, error)
	ListPackagings(ctx context.Context) ([]*domain.Packaging, error)

	// GetCatalog returns the catalog row without members.
	GetCatalog(ctx context.Context, id int64) (*domain.Catalog, error)
	// ListCatalogIDs returns distinct catalog ids ordered ascending, windowed by page.
	ListCatalogIDs(ctx context.Context, page Page) ([]int64, error)
	CountCatalogs(ctx context.Context) (int64, error)
	// JoinFetchCatalogProducts returns one row per (catalog, product) pair, plus one row with a
	// nil Product for every catalog without members. A membership whose product row is missing
	// also yields a nil Product. A nil ids slice selects every catalog.
	JoinFetchCatalogProducts(ctx context.Context, catalogIDs []int64) ([]CatalogProductRow, error)
	CatalogIDsOfProduct(ctx context.Context, productID int64) ([]int64, error)
	ProductIDsOfCatalog(ctx context.Context, catalogID int64) ([]int64, error)
}

// Tx adds writes to ReadTx. Writes may be buffered until commit, so callers read before
// they write within one scope.
type Tx interface {
	ReadTx

	// Save* insert the entity when its ID is zero (assigning a fresh id) and replace it otherwise.
	SaveProduct(ctx context.Context, p *domain.Product) error
	SaveProductCode(ctx context.Context, c *domain.ProductCode) error
	SaveCategory(ctx context.Context, c *domain.Category) error
	SavePackaging(ctx context.Context, p *domain.Packaging) error
	SaveCatalog(ctx context.Context, c *domain.Catalog) error

	// Delete removes one row; deleting a missing id is not an error.
	Delete(ctx context.Context, kind domain.Kind, id int64) error

	AddMembership(ctx context.Context, catalogID, productID int64) error
	RemoveMembership(ctx context.Context, catalogID, productID int64) error
}

// ProductFilter narrows ListProducts to products referencing the given rows.
// Nil fields do not filter.
type ProductFilter struct {
	ProductCodeID *int64
	CategoryID    *int64
	PackagingID   *int64
}

// Page selects a window of results. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

// CatalogProductRow is one row of catalogs left-joined to their products.
type CatalogProductRow struct {
	Catalog *domain.Catalog
	Product *domain.Product
}
