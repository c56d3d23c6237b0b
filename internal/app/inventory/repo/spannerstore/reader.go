package spannerstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog_product"
	"github.com/light-bringer/inventory-service/internal/models/m_category"
	"github.com/light-bringer/inventory-service/internal/models/m_packaging"
	"github.com/light-bringer/inventory-service/internal/models/m_product"
	"github.com/light-bringer/inventory-service/internal/models/m_product_code"
	"github.com/light-bringer/inventory-service/internal/pkg/query"
)

// spannerReader is the read surface shared by read-only and read-write transactions.
type spannerReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Read(ctx context.Context, table string, keys spanner.KeySet, columns []string) *spanner.RowIterator
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

type table struct {
	name string
	key  string
}

var tables = map[domain.Kind]table{
	domain.KindProduct:     {m_product.TableName, m_product.ProductID},
	domain.KindProductCode: {m_product_code.TableName, m_product_code.ProductCodeID},
	domain.KindCategory:    {m_category.TableName, m_category.CategoryID},
	domain.KindPackaging:   {m_packaging.TableName, m_packaging.PackagingID},
	domain.KindCatalog:     {m_catalog.TableName, m_catalog.CatalogID},
}

func lookupTable(kind domain.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	return t, nil
}

// reader implements contracts.ReadTx over any Spanner transaction.
type reader struct {
	txn spannerReader
}

var _ contracts.ReadTx = (*reader)(nil)

func (r *reader) Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	t, err := lookupTable(kind)
	if err != nil {
		return false, err
	}
	_, err = r.txn.ReadRow(ctx, t.name, spanner.Key{id}, []string{t.key})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s %d: %w", kind, id, err)
	}
	return true, nil
}

// readRow reads one row into dst, translating a missing row into a NotFoundError.
func (r *reader) readRow(ctx context.Context, kind domain.Kind, id int64, columns []string, dst interface{}) error {
	t, err := lookupTable(kind)
	if err != nil {
		return err
	}
	row, err := r.txn.ReadRow(ctx, t.name, spanner.Key{id}, columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.NotFound(kind, id)
		}
		return fmt.Errorf("failed to read %s %d: %w", kind, id, err)
	}
	if err := row.ToStruct(dst); err != nil {
		return fmt.Errorf("failed to parse %s %d: %w", kind, id, err)
	}
	return nil
}

func (r *reader) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var data m_product.Data
	if err := r.readRow(ctx, domain.KindProduct, id, m_product.Columns, &data); err != nil {
		return nil, err
	}
	return dataToProduct(&data)
}

func (r *reader) ListProducts(ctx context.Context, filter contracts.ProductFilter) ([]*domain.Product, error) {
	b := query.From(m_product.TableName).Select(m_product.Columns...)
	if filter.ProductCodeID != nil {
		b = b.Where(query.Eq(m_product.ProductCodeID, *filter.ProductCodeID))
	}
	if filter.CategoryID != nil {
		b = b.Where(query.Eq(m_product.CategoryID, *filter.CategoryID))
	}
	if filter.PackagingID != nil {
		b = b.Where(query.Eq(m_product.PackagingID, *filter.PackagingID))
	}
	return r.queryProducts(ctx, b.OrderBy(m_product.ProductID, query.Asc).Build())
}

func (r *reader) queryProducts(ctx context.Context, stmt spanner.Statement) ([]*domain.Product, error) {
	var products []*domain.Product
	err := each(r.txn.Query(ctx, stmt), func(row *spanner.Row) error {
		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return err
		}
		p, err := dataToProduct(&data)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// codesQuery joins every code to the product referencing it, if any.
func codesQuery() *query.Builder {
	return query.From(m_product_code.TableName+" pc").
		Select(
			"pc."+m_product_code.ProductCodeID,
			"pc."+m_product_code.UPC,
			"pc."+m_product_code.Barcode,
			"pc."+m_product_code.CreatedAt,
			"pc."+m_product_code.UpdatedAt,
			"p."+m_product.ProductID,
		).
		LeftJoin(m_product.TableName+" p", "p."+m_product.ProductCodeID+" = pc."+m_product_code.ProductCodeID)
}

func (r *reader) queryProductCodes(ctx context.Context, stmt spanner.Statement) ([]*domain.ProductCode, error) {
	var result []*domain.ProductCode
	err := each(r.txn.Query(ctx, stmt), func(row *spanner.Row) error {
		var data m_product_code.Data
		var owner spanner.NullInt64
		if err := row.Columns(&data.ProductCodeID, &data.UPC, &data.Barcode, &data.CreatedAt, &data.UpdatedAt, &owner); err != nil {
			return err
		}
		result = append(result, dataToProductCode(&data, owner))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list product codes: %w", err)
	}
	return result, nil
}

func (r *reader) GetProductCode(ctx context.Context, id int64) (*domain.ProductCode, error) {
	stmt := codesQuery().Where(query.Eq("pc."+m_product_code.ProductCodeID, id)).Build()
	found, err := r.queryProductCodes(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.NotFound(domain.KindProductCode, id)
	}
	return found[0], nil
}

func (r *reader) ListProductCodes(ctx context.Context, unownedOnly bool) ([]*domain.ProductCode, error) {
	b := codesQuery()
	if unownedOnly {
		b = b.Where(query.IsNull("p." + m_product.ProductID))
	}
	return r.queryProductCodes(ctx, b.OrderBy("pc."+m_product_code.ProductCodeID, query.Asc).Build())
}

func (r *reader) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var data m_category.Data
	if err := r.readRow(ctx, domain.KindCategory, id, m_category.Columns, &data); err != nil {
		return nil, err
	}
	return dataToCategory(&data), nil
}

func (r *reader) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var result []*domain.Category
	iter := r.txn.Read(ctx, m_category.TableName, spanner.AllKeys(), m_category.Columns)
	err := each(iter, func(row *spanner.Row) error {
		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return err
		}
		result = append(result, dataToCategory(&data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return result, nil
}

func (r *reader) GetPackaging(ctx context.Context, id int64) (*domain.Packaging, error) {
	var data m_packaging.Data
	if err := r.readRow(ctx, domain.KindPackaging, id, m_packaging.Columns, &data); err != nil {
		return nil, err
	}
	return dataToPackaging(&data), nil
}

func (r *reader) ListPackagings(ctx context.Context) ([]*domain.Packaging, error) {
	var result []*domain.Packaging
	iter := r.txn.Read(ctx, m_packaging.TableName, spanner.AllKeys(), m_packaging.Columns)
	err := each(iter, func(row *spanner.Row) error {
		var data m_packaging.Data
		if err := row.ToStruct(&data); err != nil {
			return err
		}
		result = append(result, dataToPackaging(&data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packagings: %w", err)
	}
	return result, nil
}

func (r *reader) GetCatalog(ctx context.Context, id int64) (*domain.Catalog, error) {
	var data m_catalog.Data
	if err := r.readRow(ctx, domain.KindCatalog, id, m_catalog.Columns, &data); err != nil {
		return nil, err
	}
	return dataToCatalog(&data), nil
}

func (r *reader) ListCatalogIDs(ctx context.Context, page contracts.Page) ([]int64, error) {
	b := query.From(m_catalog.TableName).
		Select(m_catalog.CatalogID).
		OrderBy(m_catalog.CatalogID, query.Asc)
	// GoogleSQL only accepts OFFSET after LIMIT.
	if page.Limit > 0 {
		b = b.Limit(int64(page.Limit)).Offset(int64(page.Offset))
	}
	ids, err := r.queryIDs(ctx, b.Build())
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog ids: %w", err)
	}
	return ids, nil
}

func (r *reader) CountCatalogs(ctx context.Context) (int64, error) {
	stmt := query.From(m_catalog.TableName).Count().Build()
	var total int64
	err := each(r.txn.Query(ctx, stmt), func(row *spanner.Row) error {
		return row.Column(0, &total)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count catalogs: %w", err)
	}
	return total, nil
}

// JoinFetchCatalogProducts left-joins catalogs to their members, then batch-reads the
// referenced catalog and product rows so each row is materialized once.
func (r *reader) JoinFetchCatalogProducts(ctx context.Context, catalogIDs []int64) ([]contracts.CatalogProductRow, error) {
	if catalogIDs != nil && len(catalogIDs) == 0 {
		return nil, nil
	}

	b := query.From(m_catalog.TableName+" c").
		Select("c."+m_catalog.CatalogID, "cp."+m_catalog_product.ProductID).
		LeftJoin(m_catalog_product.TableName+" cp", "cp."+m_catalog_product.CatalogID+" = c."+m_catalog.CatalogID)
	if catalogIDs != nil {
		b = b.Where(query.In("c."+m_catalog.CatalogID, catalogIDs))
	}
	stmt := b.OrderBy("c."+m_catalog.CatalogID, query.Asc).
		OrderBy("cp."+m_catalog_product.ProductID, query.Asc).
		Build()

	type pair struct {
		catalogID int64
		productID spanner.NullInt64
	}
	var pairs []pair
	err := each(r.txn.Query(ctx, stmt), func(row *spanner.Row) error {
		var p pair
		if err := row.Columns(&p.catalogID, &p.productID); err != nil {
			return err
		}
		pairs = append(pairs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join catalogs with products: %w", err)
	}

	var catalogKeys, productKeys []spanner.Key
	seenProduct := make(map[int64]bool)
	for i, p := range pairs {
		if i == 0 || pairs[i-1].catalogID != p.catalogID {
			catalogKeys = append(catalogKeys, spanner.Key{p.catalogID})
		}
		if p.productID.Valid && !seenProduct[p.productID.Int64] {
			seenProduct[p.productID.Int64] = true
			productKeys = append(productKeys, spanner.Key{p.productID.Int64})
		}
	}

	catalogs := make(map[int64]*m_catalog.Data, len(catalogKeys))
	err = each(r.txn.Read(ctx, m_catalog.TableName, spanner.KeySetFromKeys(catalogKeys...), m_catalog.Columns), func(row *spanner.Row) error {
		var data m_catalog.Data
		if err := row.ToStruct(&data); err != nil {
			return err
		}
		catalogs[data.CatalogID] = &data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogs: %w", err)
	}

	products := make(map[int64]*domain.Product, len(productKeys))
	if len(productKeys) > 0 {
		err = each(r.txn.Read(ctx, m_product.TableName, spanner.KeySetFromKeys(productKeys...), m_product.Columns), func(row *spanner.Row) error {
			var data m_product.Data
			if err := row.ToStruct(&data); err != nil {
				return err
			}
			p, err := dataToProduct(&data)
			if err != nil {
				return err
			}
			products[p.ID] = p
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog products: %w", err)
		}
	}

	rows := make([]contracts.CatalogProductRow, 0, len(pairs))
	for _, p := range pairs {
		data, ok := catalogs[p.catalogID]
		if !ok {
			continue
		}
		row := contracts.CatalogProductRow{Catalog: dataToCatalog(data)}
		if p.productID.Valid {
			// nil for a membership of a product deleted outside the synchronizer
			row.Product = products[p.productID.Int64]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *reader) CatalogIDsOfProduct(ctx context.Context, productID int64) ([]int64, error) {
	stmt := query.From(m_catalog_product.TableName+"@{FORCE_INDEX="+m_catalog_product.IndexByProduct+"}").
		Select(m_catalog_product.CatalogID).
		Where(query.Eq(m_catalog_product.ProductID, productID)).
		OrderBy(m_catalog_product.CatalogID, query.Asc).
		Build()
	ids, err := r.queryIDs(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs of product %d: %w", productID, err)
	}
	return ids, nil
}

func (r *reader) ProductIDsOfCatalog(ctx context.Context, catalogID int64) ([]int64, error) {
	stmt := query.From(m_catalog_product.TableName).
		Select(m_catalog_product.ProductID).
		Where(query.Eq(m_catalog_product.CatalogID, catalogID)).
		OrderBy(m_catalog_product.ProductID, query.Asc).
		Build()
	ids, err := r.queryIDs(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of catalog %d: %w", catalogID, err)
	}
	return ids, nil
}

func (r *reader) queryIDs(ctx context.Context, stmt spanner.Statement) ([]int64, error) {
	var ids []int64
	err := each(r.txn.Query(ctx, stmt), func(row *spanner.Row) error {
		var id int64
		if err := row.Column(0, &id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	return ids, err
}

// each drains iter, calling fn for every row.
func each(iter *spanner.RowIterator, fn func(*spanner.Row) error) error {
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
