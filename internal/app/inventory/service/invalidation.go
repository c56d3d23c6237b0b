package service

import (
	"context"
	"sort"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/pkg/cache"
)

// invalidatingTx records the cache key of every entity whose cached form a
// write changes. A product write also changes the cached code it points at
// and the cached catalogs listing it.
type invalidatingTx struct {
	contracts.Tx
	touched map[string]struct{}
}

func newInvalidatingTx(tx contracts.Tx) *invalidatingTx {
	return &invalidatingTx{Tx: tx, touched: make(map[string]struct{})}
}

func (t *invalidatingTx) touch(kind domain.Kind, id int64) {
	if id == 0 {
		return
	}
	t.touched[cache.Key(string(kind), id)] = struct{}{}
}

func (t *invalidatingTx) keys() []string {
	keys := make([]string, 0, len(t.touched))
	for k := range t.touched {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// touchProduct records the stored product's current code and catalogs.
func (t *invalidatingTx) touchProduct(ctx context.Context, id int64) error {
	t.touch(domain.KindProduct, id)

	prev, err := t.Tx.GetProduct(ctx, id)
	if domain.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if prev.ProductCodeID != nil {
		t.touch(domain.KindProductCode, *prev.ProductCodeID)
	}

	catalogIDs, err := t.Tx.CatalogIDsOfProduct(ctx, id)
	if err != nil {
		return err
	}
	for _, catalogID := range catalogIDs {
		t.touch(domain.KindCatalog, catalogID)
	}
	return nil
}

func (t *invalidatingTx) SaveProduct(ctx context.Context, p *domain.Product) error {
	if p.ID != 0 {
		if err := t.touchProduct(ctx, p.ID); err != nil {
			return err
		}
	}
	if p.ProductCodeID != nil {
		t.touch(domain.KindProductCode, *p.ProductCodeID)
	}
	if err := t.Tx.SaveProduct(ctx, p); err != nil {
		return err
	}
	t.touch(domain.KindProduct, p.ID)
	return nil
}

func (t *invalidatingTx) SaveProductCode(ctx context.Context, c *domain.ProductCode) error {
	t.touch(domain.KindProductCode, c.ID)
	return t.Tx.SaveProductCode(ctx, c)
}

func (t *invalidatingTx) SaveCategory(ctx context.Context, c *domain.Category) error {
	t.touch(domain.KindCategory, c.ID)
	return t.Tx.SaveCategory(ctx, c)
}

func (t *invalidatingTx) SavePackaging(ctx context.Context, p *domain.Packaging) error {
	t.touch(domain.KindPackaging, p.ID)
	return t.Tx.SavePackaging(ctx, p)
}

func (t *invalidatingTx) SaveCatalog(ctx context.Context, c *domain.Catalog) error {
	t.touch(domain.KindCatalog, c.ID)
	return t.Tx.SaveCatalog(ctx, c)
}

func (t *invalidatingTx) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	if kind == domain.KindProduct {
		if err := t.touchProduct(ctx, id); err != nil {
			return err
		}
	}
	t.touch(kind, id)
	return t.Tx.Delete(ctx, kind, id)
}

func (t *invalidatingTx) AddMembership(ctx context.Context, catalogID, productID int64) error {
	t.touch(domain.KindCatalog, catalogID)
	return t.Tx.AddMembership(ctx, catalogID, productID)
}

func (t *invalidatingTx) RemoveMembership(ctx context.Context, catalogID, productID int64) error {
	t.touch(domain.KindCatalog, catalogID)
	return t.Tx.RemoveMembership(ctx, catalogID, productID)
}
