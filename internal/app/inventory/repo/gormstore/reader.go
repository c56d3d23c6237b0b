package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog_product"
	"github.com/light-bringer/inventory-service/internal/models/m_category"
	"github.com/light-bringer/inventory-service/internal/models/m_packaging"
	"github.com/light-bringer/inventory-service/internal/models/m_product"
	"github.com/light-bringer/inventory-service/internal/models/m_product_code"
)

type table struct {
	model interface{}
	key   string
}

var tables = map[domain.Kind]table{
	domain.KindProduct:     {&productRow{}, m_product.ProductID},
	domain.KindProductCode: {&productCodeRow{}, m_product_code.ProductCodeID},
	domain.KindCategory:    {&categoryRow{}, m_category.CategoryID},
	domain.KindPackaging:   {&packagingRow{}, m_packaging.PackagingID},
	domain.KindCatalog:     {&catalogRow{}, m_catalog.CatalogID},
}

func lookupTable(kind domain.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	return t, nil
}

// reader implements contracts.ReadTx on a GORM session or transaction.
type reader struct {
	db *gorm.DB
}

var _ contracts.ReadTx = (*reader)(nil)

func (r *reader) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *reader) Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	t, err := lookupTable(kind)
	if err != nil {
		return false, err
	}
	var n int64
	if err := r.session(ctx).Model(t.model).Where(t.key+" = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", kind, id, err)
	}
	return n > 0, nil
}

// take loads one row by primary key, translating a miss into a NotFoundError.
func (r *reader) take(ctx context.Context, kind domain.Kind, id int64, dst interface{}) error {
	t, err := lookupTable(kind)
	if err != nil {
		return err
	}
	err = r.session(ctx).Where(t.key+" = ?", id).Take(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(kind, id)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s %d: %w", kind, id, err)
	}
	return nil
}

func (r *reader) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var row productRow
	if err := r.take(ctx, domain.KindProduct, id, &row); err != nil {
		return nil, err
	}
	return rowToProduct(&row), nil
}

func (r *reader) ListProducts(ctx context.Context, filter contracts.ProductFilter) ([]*domain.Product, error) {
	q := r.session(ctx).Model(&productRow{})
	if filter.ProductCodeID != nil {
		q = q.Where(m_product.ProductCodeID+" = ?", *filter.ProductCodeID)
	}
	if filter.CategoryID != nil {
		q = q.Where(m_product.CategoryID+" = ?", *filter.CategoryID)
	}
	if filter.PackagingID != nil {
		q = q.Where(m_product.PackagingID+" = ?", *filter.PackagingID)
	}
	var rows []productRow
	if err := q.Order(m_product.ProductID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return productsFromRows(rows), nil
}

func productsFromRows(rows []productRow) []*domain.Product {
	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rowToProduct(&rows[i]))
	}
	return products
}

// codesQuery joins every code to the product referencing it, if any.
func (r *reader) codesQuery(ctx context.Context) *gorm.DB {
	return r.session(ctx).
		Table(m_product_code.TableName + " pc").
		Select("pc.*, p." + m_product.ProductID + " AS owner_id").
		Joins("LEFT JOIN " + m_product.TableName + " p ON p." + m_product.ProductCodeID + " = pc." + m_product_code.ProductCodeID)
}

func (r *reader) GetProductCode(ctx context.Context, id int64) (*domain.ProductCode, error) {
	var rows []productCodeWithOwner
	err := r.codesQuery(ctx).
		Where("pc."+m_product_code.ProductCodeID+" = ?", id).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %d: %w", domain.KindProductCode, id, err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound(domain.KindProductCode, id)
	}
	return rowToProductCode(&rows[0].Code, rows[0].OwnerID), nil
}

func (r *reader) ListProductCodes(ctx context.Context, unownedOnly bool) ([]*domain.ProductCode, error) {
	q := r.codesQuery(ctx)
	if unownedOnly {
		q = q.Where("p." + m_product.ProductID + " IS NULL")
	}
	var rows []productCodeWithOwner
	if err := q.Order("pc." + m_product_code.ProductCodeID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list product codes: %w", err)
	}
	result := make([]*domain.ProductCode, 0, len(rows))
	for i := range rows {
		result = append(result, rowToProductCode(&rows[i].Code, rows[i].OwnerID))
	}
	return result, nil
}

func (r *reader) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var row categoryRow
	if err := r.take(ctx, domain.KindCategory, id, &row); err != nil {
		return nil, err
	}
	return rowToCategory(&row), nil
}

func (r *reader) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []categoryRow
	if err := r.session(ctx).Order(m_category.CategoryID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	result := make([]*domain.Category, 0, len(rows))
	for i := range rows {
		result = append(result, rowToCategory(&rows[i]))
	}
	return result, nil
}

func (r *reader) GetPackaging(ctx context.Context, id int64) (*domain.Packaging, error) {
	var row packagingRow
	if err := r.take(ctx, domain.KindPackaging, id, &row); err != nil {
		return nil, err
	}
	return rowToPackaging(&row), nil
}

func (r *reader) ListPackagings(ctx context.Context) ([]*domain.Packaging, error) {
	var rows []packagingRow
	if err := r.session(ctx).Order(m_packaging.PackagingID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list packagings: %w", err)
	}
	result := make([]*domain.Packaging, 0, len(rows))
	for i := range rows {
		result = append(result, rowToPackaging(&rows[i]))
	}
	return result, nil
}

func (r *reader) GetCatalog(ctx context.Context, id int64) (*domain.Catalog, error) {
	var row catalogRow
	if err := r.take(ctx, domain.KindCatalog, id, &row); err != nil {
		return nil, err
	}
	return rowToCatalog(&row), nil
}

func (r *reader) ListCatalogIDs(ctx context.Context, page contracts.Page) ([]int64, error) {
	q := r.session(ctx).Model(&catalogRow{}).Order(m_catalog.CatalogID)
	// Offset only applies together with a limit, matching the Spanner store.
	if page.Limit > 0 {
		q = q.Limit(page.Limit).Offset(page.Offset)
	}
	var ids []int64
	if err := q.Pluck(m_catalog.CatalogID, &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog ids: %w", err)
	}
	return ids, nil
}

func (r *reader) CountCatalogs(ctx context.Context) (int64, error) {
	var total int64
	if err := r.session(ctx).Model(&catalogRow{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count catalogs: %w", err)
	}
	return total, nil
}

type catalogProductPair struct {
	CatalogID int64  `gorm:"column:catalog_id"`
	ProductID *int64 `gorm:"column:product_id"`
}

// JoinFetchCatalogProducts left-joins catalogs to their members, then batch-loads the
// referenced catalog and product rows so each row is materialized once.
func (r *reader) JoinFetchCatalogProducts(ctx context.Context, catalogIDs []int64) ([]contracts.CatalogProductRow, error) {
	if catalogIDs != nil && len(catalogIDs) == 0 {
		return nil, nil
	}

	q := r.session(ctx).
		Table(m_catalog.TableName + " c").
		Select("c." + m_catalog.CatalogID + ", cp." + m_catalog_product.ProductID).
		Joins("LEFT JOIN " + m_catalog_product.TableName + " cp ON cp." + m_catalog_product.CatalogID + " = c." + m_catalog.CatalogID)
	if catalogIDs != nil {
		q = q.Where("c."+m_catalog.CatalogID+" IN ?", catalogIDs)
	}
	var pairs []catalogProductPair
	if err := q.Order("c." + m_catalog.CatalogID).Order("cp." + m_catalog_product.ProductID).Scan(&pairs).Error; err != nil {
		return nil, fmt.Errorf("failed to join catalogs with products: %w", err)
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	var catalogKeys, productKeys []int64
	seenProduct := make(map[int64]bool)
	for i, p := range pairs {
		if i == 0 || pairs[i-1].CatalogID != p.CatalogID {
			catalogKeys = append(catalogKeys, p.CatalogID)
		}
		if p.ProductID != nil && !seenProduct[*p.ProductID] {
			seenProduct[*p.ProductID] = true
			productKeys = append(productKeys, *p.ProductID)
		}
	}

	var catalogRows []catalogRow
	if err := r.session(ctx).Where(m_catalog.CatalogID+" IN ?", catalogKeys).Find(&catalogRows).Error; err != nil {
		return nil, fmt.Errorf("failed to read catalogs: %w", err)
	}
	catalogs := make(map[int64]*catalogRow, len(catalogRows))
	for i := range catalogRows {
		catalogs[catalogRows[i].ID] = &catalogRows[i]
	}

	products := make(map[int64]*domain.Product, len(productKeys))
	if len(productKeys) > 0 {
		var productRows []productRow
		if err := r.session(ctx).Where(m_product.ProductID+" IN ?", productKeys).Find(&productRows).Error; err != nil {
			return nil, fmt.Errorf("failed to read catalog products: %w", err)
		}
		for i := range productRows {
			products[productRows[i].ID] = rowToProduct(&productRows[i])
		}
	}

	rows := make([]contracts.CatalogProductRow, 0, len(pairs))
	for _, p := range pairs {
		c, ok := catalogs[p.CatalogID]
		if !ok {
			continue
		}
		row := contracts.CatalogProductRow{Catalog: rowToCatalog(c)}
		if p.ProductID != nil {
			// nil for a membership whose product row is gone
			row.Product = products[*p.ProductID]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *reader) CatalogIDsOfProduct(ctx context.Context, productID int64) ([]int64, error) {
	var ids []int64
	err := r.session(ctx).Model(&catalogProductRow{}).
		Where(m_catalog_product.ProductID+" = ?", productID).
		Order(m_catalog_product.CatalogID).
		Pluck(m_catalog_product.CatalogID, &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs of product %d: %w", productID, err)
	}
	return ids, nil
}

func (r *reader) ProductIDsOfCatalog(ctx context.Context, catalogID int64) ([]int64, error) {
	var ids []int64
	err := r.session(ctx).Model(&catalogProductRow{}).
		Where(m_catalog_product.CatalogID+" = ?", catalogID).
		Order(m_catalog_product.ProductID).
		Pluck(m_catalog_product.ProductID, &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products of catalog %d: %w", catalogID, err)
	}
	return ids, nil
}
