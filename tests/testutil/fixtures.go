package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Price parses s as a decimal and panics on malformed input.
func Price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// NewProduct returns a valid, unsaved product.
func NewProduct(name string) *domain.Product {
	return &domain.Product{
		Name:        name,
		Type:        domain.ProductTypeDrug,
		StorageType: domain.StorageShelf,
		Price:       Price("9.99"),
		Status:      domain.ProductOnSale,
	}
}

// NewProductCode returns a valid, unsaved product code.
func NewProductCode(upc string) *domain.ProductCode {
	return &domain.ProductCode{UPC: upc}
}

// NewCategory returns a valid, unsaved category.
func NewCategory(name string) *domain.Category {
	return &domain.Category{Name: name}
}

// NewPackaging returns a valid, unsaved packaging holding quantity items.
func NewPackaging(name string, quantity int64) *domain.Packaging {
	return &domain.Packaging{Name: name, Quantity: &quantity}
}

// NewCatalog returns a valid, unsaved active catalog.
func NewCatalog(code string) *domain.Catalog {
	return &domain.Catalog{Code: code, Status: domain.CatalogActive}
}

// SaveProducts stores n products directly through the gateway and returns their ids.
func SaveProducts(t *testing.T, store contracts.Store, n int) []int64 {
	t.Helper()

	var ids []int64
	err := store.ReadWrite(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		ids = ids[:0]
		for i := 0; i < n; i++ {
			p := NewProduct("product")
			if err := tx.SaveProduct(ctx, p); err != nil {
				return err
			}
			ids = append(ids, p.ID)
		}
		return nil
	})
	require.NoError(t, err, "failed to save products")
	return ids
}
