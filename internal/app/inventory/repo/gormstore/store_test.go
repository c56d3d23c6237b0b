package gormstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/tests/testutil"
)

func write(t *testing.T, store contracts.Store, fn func(ctx context.Context, tx contracts.Tx) error) {
	t.Helper()
	require.NoError(t, store.ReadWrite(context.Background(), fn))
}

func read(t *testing.T, store contracts.Store, fn func(ctx context.Context, tx contracts.ReadTx) error) {
	t.Helper()
	require.NoError(t, store.ReadOnly(context.Background(), fn))
}

func TestStore_ProductRoundTrip(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	p := testutil.NewProduct("Aspirin")
	p.Description = "pain relief"
	p.Price = testutil.Price("12.50")
	p.SalesUnit = domain.UnitPiece
	p.SalesQuantity = testutil.Price("20")
	p.Image = []byte{0x89, 0x50, 0x4e, 0x47}
	p.ImageContentType = "image/png"
	p.CreatedAt = testutil.Epoch
	p.UpdatedAt = testutil.Epoch

	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.SaveProduct(ctx, p)
	})
	require.NotZero(t, p.ID)

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		got, err := tx.GetProduct(ctx, p.ID)
		require.NoError(t, err)

		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Description, got.Description)
		assert.Equal(t, p.Type, got.Type)
		assert.Equal(t, p.StorageType, got.StorageType)
		assert.True(t, p.Price.Equal(*got.Price), "price %s", got.Price)
		assert.True(t, p.SalesQuantity.Equal(*got.SalesQuantity))
		assert.Equal(t, p.SalesUnit, got.SalesUnit)
		assert.Equal(t, p.Image, got.Image)
		assert.Equal(t, p.ImageContentType, got.ImageContentType)
		assert.Equal(t, p.Status, got.Status)
		assert.Nil(t, got.ProductCodeID)
		assert.True(t, testutil.Epoch.Equal(got.CreatedAt))
		return nil
	})
}

func TestStore_GetMissingReturnsNotFound(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		_, err := tx.GetProduct(ctx, 42)
		assert.True(t, domain.IsNotFound(err))

		_, err = tx.GetProductCode(ctx, 42)
		assert.True(t, domain.IsNotFound(err))

		_, err = tx.GetCatalog(ctx, 42)
		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, domain.KindCatalog, nf.Entity)
		assert.Equal(t, int64(42), nf.ID)

		ok, err := tx.Exists(ctx, domain.KindPackaging, 42)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
}

func TestStore_IDsAreMonotonicAndNeverReused(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	first := testutil.NewCategory("first")
	second := testutil.NewCategory("second")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveCategory(ctx, first); err != nil {
			return err
		}
		return tx.SaveCategory(ctx, second)
	})
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.Delete(ctx, domain.KindCategory, second.ID)
	})

	third := testutil.NewCategory("third")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.SaveCategory(ctx, third)
	})
	assert.Equal(t, int64(3), third.ID)

	// Sequences are per kind.
	pkg := testutil.NewPackaging("Box", 1)
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.SavePackaging(ctx, pkg)
	})
	assert.Equal(t, int64(1), pkg.ID)
}

func TestStore_SaveReplacesExistingRow(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	c := testutil.NewCategory("Spices")
	c.Description = "dried"
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.SaveCategory(ctx, c)
	})

	c.Name = "Herbs"
	c.Description = ""
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.SaveCategory(ctx, c)
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		all, err := tx.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Herbs", all[0].Name)
		assert.Empty(t, all[0].Description)
		return nil
	})
}

func TestStore_ReadWriteRollsBackOnError(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	boom := errors.New("boom")

	err := store.ReadWrite(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveCatalog(ctx, testutil.NewCatalog("C1")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		n, err := tx.CountCatalogs(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		return nil
	})
}

func TestStore_ProductCodeOwnership(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	owned := testutil.NewProductCode("0001")
	free := testutil.NewProductCode("0002")
	p := testutil.NewProduct("Aspirin")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveProductCode(ctx, owned); err != nil {
			return err
		}
		if err := tx.SaveProductCode(ctx, free); err != nil {
			return err
		}
		p.ProductCodeID = &owned.ID
		return tx.SaveProduct(ctx, p)
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		code, err := tx.GetProductCode(ctx, owned.ID)
		require.NoError(t, err)
		require.NotNil(t, code.ProductID)
		assert.Equal(t, p.ID, *code.ProductID)

		all, err := tx.ListProductCodes(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		unowned, err := tx.ListProductCodes(ctx, true)
		require.NoError(t, err)
		require.Len(t, unowned, 1)
		assert.Equal(t, free.ID, unowned[0].ID)
		assert.Nil(t, unowned[0].ProductID)

		byCode, err := tx.ListProducts(ctx, contracts.ProductFilter{ProductCodeID: &owned.ID})
		require.NoError(t, err)
		require.Len(t, byCode, 1)
		assert.Equal(t, p.ID, byCode[0].ID)
		return nil
	})
}

func TestStore_ProductCodeReadsEveryColumn(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	code := testutil.NewProductCode("0001")
	code.Barcode = "BC-0001"
	code.CreatedAt = testutil.Epoch
	code.UpdatedAt = testutil.Epoch
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		return tx.SaveProductCode(ctx, code)
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		got, err := tx.GetProductCode(ctx, code.ID)
		require.NoError(t, err)
		assert.Equal(t, code.ID, got.ID)
		assert.Equal(t, "0001", got.UPC)
		assert.Equal(t, "BC-0001", got.Barcode)
		assert.True(t, testutil.Epoch.Equal(got.CreatedAt))
		assert.Nil(t, got.ProductID)

		all, err := tx.ListProductCodes(ctx, true)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, code.ID, all[0].ID)
		assert.Equal(t, "0001", all[0].UPC)
		return nil
	})
}

func TestStore_UniqueProductCodeReference(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	code := testutil.NewProductCode("0001")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveProductCode(ctx, code); err != nil {
			return err
		}
		a := testutil.NewProduct("a")
		a.ProductCodeID = &code.ID
		return tx.SaveProduct(ctx, a)
	})

	err := store.ReadWrite(context.Background(), func(ctx context.Context, tx contracts.Tx) error {
		b := testutil.NewProduct("b")
		b.ProductCodeID = &code.ID
		return tx.SaveProduct(ctx, b)
	})
	assert.Error(t, err)
}

func TestStore_Memberships(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ids := testutil.SaveProducts(t, store, 2)

	catalog := testutil.NewCatalog("C1")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveCatalog(ctx, catalog); err != nil {
			return err
		}
		for _, id := range ids {
			if err := tx.AddMembership(ctx, catalog.ID, id); err != nil {
				return err
			}
		}
		// repeated add is a no-op
		return tx.AddMembership(ctx, catalog.ID, ids[0])
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		members, err := tx.ProductIDsOfCatalog(ctx, catalog.ID)
		require.NoError(t, err)
		assert.Equal(t, ids, members)

		catalogs, err := tx.CatalogIDsOfProduct(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, []int64{catalog.ID}, catalogs)
		return nil
	})

	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.RemoveMembership(ctx, catalog.ID, ids[0]); err != nil {
			return err
		}
		// removing an absent pair is a no-op
		return tx.RemoveMembership(ctx, catalog.ID, ids[0])
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		members, err := tx.ProductIDsOfCatalog(ctx, catalog.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[1]}, members)
		return nil
	})
}

func TestStore_DeleteCatalogRemovesMemberships(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ids := testutil.SaveProducts(t, store, 1)

	catalog := testutil.NewCatalog("C1")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveCatalog(ctx, catalog); err != nil {
			return err
		}
		return tx.AddMembership(ctx, catalog.ID, ids[0])
	})

	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.Delete(ctx, domain.KindCatalog, catalog.ID); err != nil {
			return err
		}
		// deleting twice is fine
		return tx.Delete(ctx, domain.KindCatalog, catalog.ID)
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		catalogs, err := tx.CatalogIDsOfProduct(ctx, ids[0])
		require.NoError(t, err)
		assert.Empty(t, catalogs)

		ok, err := tx.Exists(ctx, domain.KindProduct, ids[0])
		require.NoError(t, err)
		assert.True(t, ok)
		return nil
	})
}

func TestStore_JoinFetchCatalogProducts(t *testing.T) {
	store := testutil.NewSQLiteStore(t)
	ids := testutil.SaveProducts(t, store, 3)

	full := testutil.NewCatalog("FULL")
	empty := testutil.NewCatalog("EMPTY")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveCatalog(ctx, full); err != nil {
			return err
		}
		if err := tx.SaveCatalog(ctx, empty); err != nil {
			return err
		}
		for _, id := range ids {
			if err := tx.AddMembership(ctx, full.ID, id); err != nil {
				return err
			}
		}
		return nil
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		rows, err := tx.JoinFetchCatalogProducts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, rows, 4)

		for i, id := range ids {
			assert.Equal(t, full.ID, rows[i].Catalog.ID)
			require.NotNil(t, rows[i].Product)
			assert.Equal(t, id, rows[i].Product.ID)
		}
		assert.Equal(t, empty.ID, rows[3].Catalog.ID)
		assert.Nil(t, rows[3].Product)

		// every row carries its own catalog value
		assert.NotSame(t, rows[0].Catalog, rows[1].Catalog)

		only, err := tx.JoinFetchCatalogProducts(ctx, []int64{empty.ID})
		require.NoError(t, err)
		require.Len(t, only, 1)
		assert.Equal(t, "EMPTY", only[0].Catalog.Code)

		none, err := tx.JoinFetchCatalogProducts(ctx, []int64{})
		require.NoError(t, err)
		assert.Empty(t, none)
		return nil
	})
}

func TestStore_JoinFetchKeepsCatalogWithMissingProduct(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	catalog := testutil.NewCatalog("DANGLING")
	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		if err := tx.SaveCatalog(ctx, catalog); err != nil {
			return err
		}
		return tx.AddMembership(ctx, catalog.ID, 999)
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		rows, err := tx.JoinFetchCatalogProducts(ctx, []int64{catalog.ID})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, catalog.ID, rows[0].Catalog.ID)
		assert.Nil(t, rows[0].Product)
		return nil
	})
}

func TestStore_ListCatalogIDsPaging(t *testing.T) {
	store := testutil.NewSQLiteStore(t)

	write(t, store, func(ctx context.Context, tx contracts.Tx) error {
		for _, code := range []string{"A", "B", "C", "D", "E"} {
			if err := tx.SaveCatalog(ctx, testutil.NewCatalog(code)); err != nil {
				return err
			}
		}
		return nil
	})

	read(t, store, func(ctx context.Context, tx contracts.ReadTx) error {
		page, err := tx.ListCatalogIDs(ctx, contracts.Page{Offset: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 4}, page)

		all, err := tx.ListCatalogIDs(ctx, contracts.Page{})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, all)

		total, err := tx.CountCatalogs(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		return nil
	})
}
