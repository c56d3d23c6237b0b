// Package loader reads catalogs together with their member products.
package loader

import (
	"context"
	"fmt"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
)

// CatalogLoader collapses the catalog/product join into one Catalog per id.
type CatalogLoader struct{}

// NewCatalogLoader creates a CatalogLoader.
func NewCatalogLoader() *CatalogLoader {
	return &CatalogLoader{}
}

// LoadOne returns the catalog with its products, or a NotFoundError.
func (l *CatalogLoader) LoadOne(ctx context.Context, tx contracts.ReadTx, id int64) (*domain.Catalog, error) {
	rows, err := tx.JoinFetchCatalogProducts(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %d: %w", id, err)
	}
	catalogs := collapse(rows)
	if len(catalogs) == 0 {
		return nil, domain.NotFound(domain.KindCatalog, id)
	}
	return catalogs[0], nil
}

// LoadAll returns every catalog exactly once, ordered by id.
func (l *CatalogLoader) LoadAll(ctx context.Context, tx contracts.ReadTx) ([]*domain.Catalog, error) {
	rows, err := tx.JoinFetchCatalogProducts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}
	return collapse(rows), nil
}

// LoadPage windows over distinct catalog ids before joining, so the page size
// counts catalogs rather than join rows. The total is a separate count of catalogs.
func (l *CatalogLoader) LoadPage(ctx context.Context, tx contracts.ReadTx, page contracts.Page) ([]*domain.Catalog, int64, error) {
	total, err := tx.CountCatalogs(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids, err := tx.ListCatalogIDs(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []*domain.Catalog{}, total, nil
	}

	rows, err := tx.JoinFetchCatalogProducts(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load catalog page: %w", err)
	}
	return collapse(rows), total, nil
}

// collapse folds join rows into one catalog per id, keeping the order in which
// catalogs first appear and skipping repeated products.
func collapse(rows []contracts.CatalogProductRow) []*domain.Catalog {
	byID := make(map[int64]*domain.Catalog)
	result := make([]*domain.Catalog, 0)
	for _, row := range rows {
		c, ok := byID[row.Catalog.ID]
		if !ok {
			c = row.Catalog
			c.Products = []*domain.Product{}
			byID[c.ID] = c
			result = append(result, c)
		}
		if row.Product != nil && !c.HasProduct(row.Product.ID) {
			c.Products = append(c.Products, row.Product)
		}
	}
	return result
}
