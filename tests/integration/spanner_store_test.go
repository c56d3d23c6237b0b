//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/repo/spannerstore"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog_product"
	"github.com/light-bringer/inventory-service/internal/models/m_product"
	"github.com/light-bringer/inventory-service/tests/testutil"
)

type storeFixture struct {
	t      *testing.T
	client *spanner.Client
	store  *spannerstore.Store
}

func setupStore(t *testing.T) *storeFixture {
	t.Helper()

	client := testutil.SetupSpannerTest(t)
	return &storeFixture{t: t, client: client, store: spannerstore.New(client)}
}

func (f *storeFixture) write(fn func(ctx context.Context, tx contracts.Tx) error) {
	f.t.Helper()
	require.NoError(f.t, f.store.ReadWrite(context.Background(), fn))
}

func TestSpannerStore_ProductRoundTrip(t *testing.T) {
	f := setupStore(t)

	var id int64
	f.write(func(ctx context.Context, tx contracts.Tx) error {
		p := testutil.NewProduct("Aspirin")
		p.Description = "pain relief"
		p.Price = testutil.Price("12.50")
		p.SalesUnit = domain.UnitPiece
		p.SalesQuantity = testutil.Price("20")
		p.CreatedAt = testutil.Epoch
		p.UpdatedAt = testutil.Epoch
		if err := tx.SaveProduct(ctx, p); err != nil {
			return err
		}
		id = p.ID
		return nil
	})
	require.NotZero(t, id)

	err := f.store.ReadOnly(context.Background(), func(ctx context.Context, tx contracts.ReadTx) error {
		got, err := tx.GetProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Aspirin", got.Name)
		assert.Equal(t, "pain relief", got.Description)
		assert.True(t, testutil.Price("12.50").Equal(*got.Price))
		assert.True(t, testutil.Price("20").Equal(*got.SalesQuantity))
		assert.Equal(t, domain.UnitPiece, got.SalesUnit)
		assert.True(t, testutil.Epoch.Equal(got.CreatedAt))

		_, err = tx.GetProduct(ctx, id+100)
		assert.True(t, domain.IsNotFound(err))
		return nil
	})
	require.NoError(t, err)
}

func TestSpannerStore_SequencesWithinOneTransaction(t *testing.T) {
	f := setupStore(t)

	var ids []int64
	f.write(func(ctx context.Context, tx contracts.Tx) error {
		ids = ids[:0]
		for _, name := range []string{"a", "b", "c"} {
			c := testutil.NewCategory(name)
			if err := tx.SaveCategory(ctx, c); err != nil {
				return err
			}
			ids = append(ids, c.ID)
		}
		return nil
	})
	assert.Equal(t, []int64{1, 2, 3}, ids)

	var next int64
	f.write(func(ctx context.Context, tx contracts.Tx) error {
		c := testutil.NewCategory("d")
		if err := tx.SaveCategory(ctx, c); err != nil {
			return err
		}
		next = c.ID
		return nil
	})
	assert.Equal(t, int64(4), next)
}

func TestSpannerStore_MembershipsAndJoinFetch(t *testing.T) {
	f := setupStore(t)

	var catalogID, emptyID int64
	var productIDs []int64
	f.write(func(ctx context.Context, tx contracts.Tx) error {
		productIDs = productIDs[:0]
		for _, name := range []string{"p1", "p2"} {
			p := testutil.NewProduct(name)
			if err := tx.SaveProduct(ctx, p); err != nil {
				return err
			}
			productIDs = append(productIDs, p.ID)
		}
		c := testutil.NewCatalog("SPRING")
		if err := tx.SaveCatalog(ctx, c); err != nil {
			return err
		}
		empty := testutil.NewCatalog("EMPTY")
		if err := tx.SaveCatalog(ctx, empty); err != nil {
			return err
		}
		catalogID, emptyID = c.ID, empty.ID
		return nil
	})

	f.write(func(ctx context.Context, tx contracts.Tx) error {
		for _, pid := range productIDs {
			if err := tx.AddMembership(ctx, catalogID, pid); err != nil {
				return err
			}
		}
		return nil
	})
	testutil.AssertRowCount(t, f.client, m_catalog_product.TableName, 2)

	err := f.store.ReadOnly(context.Background(), func(ctx context.Context, tx contracts.ReadTx) error {
		rows, err := tx.JoinFetchCatalogProducts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		var empties int
		for _, row := range rows {
			if row.Product == nil {
				empties++
				assert.Equal(t, emptyID, row.Catalog.ID)
			}
		}
		assert.Equal(t, 1, empties)

		total, err := tx.CountCatalogs(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		ids, err := tx.ListCatalogIDs(ctx, contracts.Page{Offset: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{emptyID}, ids)

		catalogs, err := tx.CatalogIDsOfProduct(ctx, productIDs[0])
		require.NoError(t, err)
		assert.Equal(t, []int64{catalogID}, catalogs)
		return nil
	})
	require.NoError(t, err)

	f.write(func(ctx context.Context, tx contracts.Tx) error {
		return tx.Delete(ctx, domain.KindCatalog, catalogID)
	})
	testutil.AssertRowCount(t, f.client, m_catalog_product.TableName, 0)
	testutil.AssertRowCount(t, f.client, m_product.TableName, 2)
}

func TestSpannerStore_RollbackOnError(t *testing.T) {
	f := setupStore(t)

	err := f.store.ReadWrite(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveProduct(ctx, testutil.NewProduct("doomed")); err != nil {
			return err
		}
		return errors.New("rejected")
	})
	require.Error(t, err)
	testutil.AssertRowCount(t, f.client, m_product.TableName, 0)
}
