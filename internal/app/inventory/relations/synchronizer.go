// Package relations keeps the association rows between products and their
// codes, categories, packagings and catalogs consistent.
//
// Products own the foreign keys to their code, category and packaging; catalog
// membership lives in join rows. Every operation runs on a gateway transaction,
// does its reads before its writes, and leaves the product passed in by the
// caller unsaved: the caller validates and saves it once all relationships are
// resolved.
package relations

import (
	"context"
	"fmt"
	"sort"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/pkg/clock"
)

// Synchronizer applies association changes on both sides of a relationship.
type Synchronizer struct {
	clock clock.Clock
}

// NewSynchronizer creates a Synchronizer stamping modified products with clk.
func NewSynchronizer(clk clock.Clock) *Synchronizer {
	return &Synchronizer{clock: clk}
}

// foreignKey selects one of the product's foreign key fields.
type foreignKey struct {
	kind  domain.Kind
	field func(p *domain.Product) **int64
}

var (
	productCodeKey = foreignKey{domain.KindProductCode, func(p *domain.Product) **int64 { return &p.ProductCodeID }}
	categoryKey    = foreignKey{domain.KindCategory, func(p *domain.Product) **int64 { return &p.CategoryID }}
	packagingKey   = foreignKey{domain.KindPackaging, func(p *domain.Product) **int64 { return &p.PackagingID }}
)

func (k foreignKey) filter(id int64) contracts.ProductFilter {
	switch k.kind {
	case domain.KindProductCode:
		return contracts.ProductFilter{ProductCodeID: &id}
	case domain.KindCategory:
		return contracts.ProductFilter{CategoryID: &id}
	default:
		return contracts.ProductFilter{PackagingID: &id}
	}
}

func foreignKeyOf(kind domain.Kind) (foreignKey, error) {
	switch kind {
	case domain.KindProductCode:
		return productCodeKey, nil
	case domain.KindCategory:
		return categoryKey, nil
	case domain.KindPackaging:
		return packagingKey, nil
	}
	return foreignKey{}, fmt.Errorf("products hold no reference to %s", kind)
}

// Attach adds product to catalog. Attaching an existing pair changes nothing.
func (s *Synchronizer) Attach(ctx context.Context, tx contracts.Tx, catalogID, productID int64) error {
	if err := mustExist(ctx, tx, domain.KindCatalog, catalogID); err != nil {
		return err
	}
	if err := mustExist(ctx, tx, domain.KindProduct, productID); err != nil {
		return err
	}
	return tx.AddMembership(ctx, catalogID, productID)
}

// Detach removes product from catalog. Detaching an absent pair changes nothing.
func (s *Synchronizer) Detach(ctx context.Context, tx contracts.Tx, catalogID, productID int64) error {
	return tx.RemoveMembership(ctx, catalogID, productID)
}

// SetProductCode points product at the code with codeID, first clearing the
// reference of any other product holding that code. A nil codeID clears
// product's reference and touches no other row.
func (s *Synchronizer) SetProductCode(ctx context.Context, tx contracts.Tx, product *domain.Product, codeID *int64) error {
	if codeID == nil {
		product.ProductCodeID = nil
		return nil
	}
	if err := mustExist(ctx, tx, domain.KindProductCode, *codeID); err != nil {
		return err
	}

	holders, err := tx.ListProducts(ctx, productCodeKey.filter(*codeID))
	if err != nil {
		return err
	}
	for _, holder := range holders {
		if holder.ID == product.ID {
			continue
		}
		if err := s.clear(ctx, tx, holder, productCodeKey); err != nil {
			return err
		}
	}

	id := *codeID
	product.ProductCodeID = &id
	return nil
}

// SetCategory points product at the category with categoryID, or clears the reference when nil.
func (s *Synchronizer) SetCategory(ctx context.Context, tx contracts.Tx, product *domain.Product, categoryID *int64) error {
	return s.setReference(ctx, tx, product, categoryKey, categoryID)
}

// SetPackaging points product at the packaging with packagingID, or clears the reference when nil.
func (s *Synchronizer) SetPackaging(ctx context.Context, tx contracts.Tx, product *domain.Product, packagingID *int64) error {
	return s.setReference(ctx, tx, product, packagingKey, packagingID)
}

func (s *Synchronizer) setReference(ctx context.Context, tx contracts.Tx, product *domain.Product, key foreignKey, id *int64) error {
	field := key.field(product)
	if id == nil {
		*field = nil
		return nil
	}
	if err := mustExist(ctx, tx, key.kind, *id); err != nil {
		return err
	}
	v := *id
	*field = &v
	return nil
}

// ReplacePackagingMembers makes productIDs the exact set of products in the packaging.
func (s *Synchronizer) ReplacePackagingMembers(ctx context.Context, tx contracts.Tx, packagingID int64, productIDs []int64) error {
	return s.replaceMembers(ctx, tx, packagingKey, packagingID, productIDs)
}

// ReplaceCategoryMembers makes productIDs the exact set of products in the category.
func (s *Synchronizer) ReplaceCategoryMembers(ctx context.Context, tx contracts.Tx, categoryID int64, productIDs []int64) error {
	return s.replaceMembers(ctx, tx, categoryKey, categoryID, productIDs)
}

// replaceMembers clears the reference of every current member missing from
// productIDs before pointing the new members at ownerID.
func (s *Synchronizer) replaceMembers(ctx context.Context, tx contracts.Tx, key foreignKey, ownerID int64, productIDs []int64) error {
	if err := mustExist(ctx, tx, key.kind, ownerID); err != nil {
		return err
	}

	wanted := distinct(productIDs)
	incoming := make([]*domain.Product, 0, len(wanted))
	for _, id := range wanted {
		p, err := tx.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		incoming = append(incoming, p)
	}

	current, err := tx.ListProducts(ctx, key.filter(ownerID))
	if err != nil {
		return err
	}

	keep := toSet(wanted)
	for _, p := range current {
		if keep[p.ID] {
			continue
		}
		if err := s.clear(ctx, tx, p, key); err != nil {
			return err
		}
	}

	for _, p := range incoming {
		field := key.field(p)
		if *field != nil && **field == ownerID {
			continue
		}
		id := ownerID
		*field = &id
		p.Stamp(s.clock.Now())
		if err := tx.SaveProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceCatalogMembers makes productIDs the exact member set of the catalog.
// The catalog itself is not looked up, since it may have been saved earlier in
// the same scope.
func (s *Synchronizer) ReplaceCatalogMembers(ctx context.Context, tx contracts.Tx, catalogID int64, productIDs []int64) error {
	wanted := distinct(productIDs)
	for _, id := range wanted {
		if err := mustExist(ctx, tx, domain.KindProduct, id); err != nil {
			return err
		}
	}

	current, err := tx.ProductIDsOfCatalog(ctx, catalogID)
	if err != nil {
		return err
	}

	keep := toSet(wanted)
	for _, id := range current {
		if keep[id] {
			continue
		}
		if err := tx.RemoveMembership(ctx, catalogID, id); err != nil {
			return err
		}
	}

	have := toSet(current)
	for _, id := range wanted {
		if have[id] {
			continue
		}
		if err := tx.AddMembership(ctx, catalogID, id); err != nil {
			return err
		}
	}
	return nil
}

// ForgetProduct removes every catalog membership of the product.
func (s *Synchronizer) ForgetProduct(ctx context.Context, tx contracts.Tx, productID int64) error {
	catalogIDs, err := tx.CatalogIDsOfProduct(ctx, productID)
	if err != nil {
		return err
	}
	for _, catalogID := range catalogIDs {
		if err := tx.RemoveMembership(ctx, catalogID, productID); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseReferences clears the foreign key of every product pointing at the
// code, category or packaging with id. Used before that row is deleted.
func (s *Synchronizer) ReleaseReferences(ctx context.Context, tx contracts.Tx, kind domain.Kind, id int64) error {
	key, err := foreignKeyOf(kind)
	if err != nil {
		return err
	}
	holders, err := tx.ListProducts(ctx, key.filter(id))
	if err != nil {
		return err
	}
	for _, p := range holders {
		if err := s.clear(ctx, tx, p, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) clear(ctx context.Context, tx contracts.Tx, p *domain.Product, key foreignKey) error {
	*key.field(p) = nil
	p.Stamp(s.clock.Now())
	return tx.SaveProduct(ctx, p)
}

func mustExist(ctx context.Context, tx contracts.ReadTx, kind domain.Kind, id int64) error {
	ok, err := tx.Exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound(kind, id)
	}
	return nil
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
