package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog_product"
	"github.com/light-bringer/inventory-service/internal/models/m_sequence"
)

// readWriteTx runs inside a GORM transaction; its writes are visible to its own reads.
type readWriteTx struct {
	reader
}

var _ contracts.Tx = (*readWriteTx)(nil)

// nextIDSQL advances a sequence row atomically and yields the id it handed out.
var nextIDSQL = fmt.Sprintf(
	"INSERT INTO %[1]s (%[2]s, %[3]s) VALUES (?, 2) ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = %[1]s.%[3]s + 1 RETURNING %[3]s - 1",
	m_sequence.TableName, m_sequence.Name, m_sequence.NextID,
)

func (tx *readWriteTx) assignID(ctx context.Context, kind domain.Kind, id *int64) error {
	if *id != 0 {
		return nil
	}
	var next int64
	if err := tx.session(ctx).Raw(nextIDSQL, string(kind)).Row().Scan(&next); err != nil {
		return fmt.Errorf("failed to allocate %s id: %w", kind, err)
	}
	*id = next
	return nil
}

// upsert inserts row or replaces every column of the row with the same primary key.
func (tx *readWriteTx) upsert(ctx context.Context, kind domain.Kind, key string, row interface{}) error {
	err := tx.session(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: key}}, UpdateAll: true}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}

func (tx *readWriteTx) SaveProduct(ctx context.Context, p *domain.Product) error {
	if err := tx.assignID(ctx, domain.KindProduct, &p.ID); err != nil {
		return err
	}
	return tx.upsert(ctx, domain.KindProduct, tables[domain.KindProduct].key, productToRow(p))
}

func (tx *readWriteTx) SaveProductCode(ctx context.Context, c *domain.ProductCode) error {
	if err := tx.assignID(ctx, domain.KindProductCode, &c.ID); err != nil {
		return err
	}
	return tx.upsert(ctx, domain.KindProductCode, tables[domain.KindProductCode].key, productCodeToRow(c))
}

func (tx *readWriteTx) SaveCategory(ctx context.Context, c *domain.Category) error {
	if err := tx.assignID(ctx, domain.KindCategory, &c.ID); err != nil {
		return err
	}
	return tx.upsert(ctx, domain.KindCategory, tables[domain.KindCategory].key, categoryToRow(c))
}

func (tx *readWriteTx) SavePackaging(ctx context.Context, p *domain.Packaging) error {
	if err := tx.assignID(ctx, domain.KindPackaging, &p.ID); err != nil {
		return err
	}
	return tx.upsert(ctx, domain.KindPackaging, tables[domain.KindPackaging].key, packagingToRow(p))
}

func (tx *readWriteTx) SaveCatalog(ctx context.Context, c *domain.Catalog) error {
	if err := tx.assignID(ctx, domain.KindCatalog, &c.ID); err != nil {
		return err
	}
	return tx.upsert(ctx, domain.KindCatalog, tables[domain.KindCatalog].key, catalogToRow(c))
}

// Delete removes one row. Deleting a catalog also removes its membership rows,
// mirroring the cascade of the interleaved Spanner table.
func (tx *readWriteTx) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	t, err := lookupTable(kind)
	if err != nil {
		return err
	}
	if kind == domain.KindCatalog {
		err := tx.session(ctx).
			Where(m_catalog_product.CatalogID+" = ?", id).
			Delete(&catalogProductRow{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete members of catalog %d: %w", id, err)
		}
	}
	if err := tx.session(ctx).Where(t.key+" = ?", id).Delete(t.model).Error; err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", kind, id, err)
	}
	return nil
}

func (tx *readWriteTx) AddMembership(ctx context.Context, catalogID, productID int64) error {
	err := tx.session(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&catalogProductRow{CatalogID: catalogID, ProductID: productID}).Error
	if err != nil {
		return fmt.Errorf("failed to add product %d to catalog %d: %w", productID, catalogID, err)
	}
	return nil
}

func (tx *readWriteTx) RemoveMembership(ctx context.Context, catalogID, productID int64) error {
	err := tx.session(ctx).
		Where(m_catalog_product.CatalogID+" = ? AND "+m_catalog_product.ProductID+" = ?", catalogID, productID).
		Delete(&catalogProductRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove product %d from catalog %d: %w", productID, catalogID, err)
	}
	return nil
}
