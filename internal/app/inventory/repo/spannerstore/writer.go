package spannerstore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/models/m_sequence"
	"github.com/light-bringer/inventory-service/internal/pkg/committer"
)

// readWriteTx collects mutations into a CommitPlan; nothing it writes is visible to
// its own reads before commit.
type readWriteTx struct {
	reader
	models *models
	txn    *spanner.ReadWriteTransaction
	plan   *committer.CommitPlan
	// next holds the next free id per kind once the sequence row has been read.
	next map[domain.Kind]int64
}

var _ contracts.Tx = (*readWriteTx)(nil)

func newReadWriteTx(m *models, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) *readWriteTx {
	return &readWriteTx{
		reader: reader{txn: txn},
		models: m,
		txn:    txn,
		plan:   plan,
		next:   make(map[domain.Kind]int64),
	}
}

// nextID hands out the next identifier for kind. The sequence row is read once per
// transaction; concurrent allocators conflict on that row and Spanner retries one of them.
func (tx *readWriteTx) nextID(ctx context.Context, kind domain.Kind) (int64, error) {
	id, ok := tx.next[kind]
	if !ok {
		row, err := tx.txn.ReadRow(ctx, m_sequence.TableName, spanner.Key{string(kind)}, []string{m_sequence.NextID})
		switch {
		case spanner.ErrCode(err) == codes.NotFound:
			id = 1
		case err != nil:
			return 0, fmt.Errorf("failed to read %s sequence: %w", kind, err)
		default:
			if err := row.Column(0, &id); err != nil {
				return 0, fmt.Errorf("failed to parse %s sequence: %w", kind, err)
			}
		}
	}
	tx.next[kind] = id + 1
	return id, nil
}

// flush adds the advanced sequence rows to the plan.
func (tx *readWriteTx) flush() {
	kinds := make([]string, 0, len(tx.next))
	for kind := range tx.next {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	muts := make([]*spanner.Mutation, 0, len(kinds))
	for _, kind := range kinds {
		muts = append(muts, tx.models.sequence.AdvanceMut(kind, tx.next[domain.Kind(kind)]))
	}
	tx.plan.AddMultiple(muts)
}

func (tx *readWriteTx) assignID(ctx context.Context, kind domain.Kind, id *int64) error {
	if *id != 0 {
		return nil
	}
	next, err := tx.nextID(ctx, kind)
	if err != nil {
		return err
	}
	*id = next
	return nil
}

func (tx *readWriteTx) SaveProduct(ctx context.Context, p *domain.Product) error {
	if err := tx.assignID(ctx, domain.KindProduct, &p.ID); err != nil {
		return err
	}
	tx.plan.Add(tx.models.product.UpsertMut(productToData(p)))
	return nil
}

func (tx *readWriteTx) SaveProductCode(ctx context.Context, c *domain.ProductCode) error {
	if err := tx.assignID(ctx, domain.KindProductCode, &c.ID); err != nil {
		return err
	}
	tx.plan.Add(tx.models.productCode.UpsertMut(productCodeToData(c)))
	return nil
}

func (tx *readWriteTx) SaveCategory(ctx context.Context, c *domain.Category) error {
	if err := tx.assignID(ctx, domain.KindCategory, &c.ID); err != nil {
		return err
	}
	tx.plan.Add(tx.models.category.UpsertMut(categoryToData(c)))
	return nil
}

func (tx *readWriteTx) SavePackaging(ctx context.Context, p *domain.Packaging) error {
	if err := tx.assignID(ctx, domain.KindPackaging, &p.ID); err != nil {
		return err
	}
	tx.plan.Add(tx.models.packaging.UpsertMut(packagingToData(p)))
	return nil
}

func (tx *readWriteTx) SaveCatalog(ctx context.Context, c *domain.Catalog) error {
	if err := tx.assignID(ctx, domain.KindCatalog, &c.ID); err != nil {
		return err
	}
	tx.plan.Add(tx.models.catalog.UpsertMut(catalogToData(c)))
	return nil
}

// Delete removes one row. Deleting a catalog cascades to its membership rows
// through the interleaved catalog_products table.
func (tx *readWriteTx) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	switch kind {
	case domain.KindProduct:
		tx.plan.Add(tx.models.product.DeleteMut(id))
	case domain.KindProductCode:
		tx.plan.Add(tx.models.productCode.DeleteMut(id))
	case domain.KindCategory:
		tx.plan.Add(tx.models.category.DeleteMut(id))
	case domain.KindPackaging:
		tx.plan.Add(tx.models.packaging.DeleteMut(id))
	case domain.KindCatalog:
		tx.plan.Add(tx.models.catalog.DeleteMut(id))
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	return nil
}

func (tx *readWriteTx) AddMembership(ctx context.Context, catalogID, productID int64) error {
	tx.plan.Add(tx.models.catalogProduct.InsertMut(catalogID, productID))
	return nil
}

func (tx *readWriteTx) RemoveMembership(ctx context.Context, catalogID, productID int64) error {
	tx.plan.Add(tx.models.catalogProduct.DeleteMut(catalogID, productID))
	return nil
}
