package service

import (
	"context"
	"time"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
)

// ProductService manages products and the references they own.
type ProductService struct {
	base
	sync *relations.Synchronizer
}

// NewProductService creates a ProductService.
func NewProductService(deps Deps, sync *relations.Synchronizer) *ProductService {
	return &ProductService{base: newBase(deps, "product_service"), sync: sync}
}

// Create inserts a new product and returns it with its assigned id.
func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	s.log.Debug().Str("name", p.Name).Msg("Request to create product")
	if err := checkCreate(domain.KindProduct, p.ID); err != nil {
		return nil, err
	}

	var saved *domain.Product
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		// fn may run more than once, so work on a fresh copy each time.
		e := *p
		e.CreatedAt = time.Time{}
		if err := s.save(ctx, tx, &e, p); err != nil {
			return err
		}
		saved = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update replaces the product with id. The payload id must match.
func (s *ProductService) Update(ctx context.Context, id int64, p *domain.Product) (*domain.Product, error) {
	s.log.Debug().Int64("id", id).Msg("Request to update product")
	if err := checkUpdate(domain.KindProduct, id, p.ID); err != nil {
		return nil, err
	}

	var saved *domain.Product
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		current, err := tx.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		e := *p
		e.CreatedAt = current.CreatedAt
		if err := s.save(ctx, tx, &e, p); err != nil {
			return err
		}
		saved = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Save inserts p when it has no id and replaces it otherwise.
func (s *ProductService) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID == 0 {
		return s.Create(ctx, p)
	}
	return s.Update(ctx, p.ID, p)
}

// save resolves the references requested by in onto e, then validates and stores e.
func (s *ProductService) save(ctx context.Context, tx contracts.Tx, e, in *domain.Product) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.sync.SetCategory(ctx, tx, e, in.CategoryID); err != nil {
		return err
	}
	if err := s.sync.SetPackaging(ctx, tx, e, in.PackagingID); err != nil {
		return err
	}
	if err := s.sync.SetProductCode(ctx, tx, e, in.ProductCodeID); err != nil {
		return err
	}
	e.Stamp(s.clock.Now())
	return tx.SaveProduct(ctx, e)
}

// PartialUpdate applies the fields set in patch to the product with id.
// It returns nil, nil when no such product exists.
func (s *ProductService) PartialUpdate(ctx context.Context, id int64, patch *domain.ProductPatch) (*domain.Product, error) {
	s.log.Debug().Int64("id", id).Msg("Request to partially update product")
	if err := checkUpdate(domain.KindProduct, id, patch.ID); err != nil {
		return nil, err
	}

	var result *domain.Product
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		result = nil
		p, err := tx.GetProduct(ctx, id)
		if domain.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		ct := p.Merge(patch)
		if err := p.Validate(); err != nil {
			return err
		}
		if err := s.patchReferences(ctx, tx, p, patch, ct); err != nil {
			return err
		}

		if ct.HasChanges() {
			s.logChanges(id, ct)
			p.Stamp(s.clock.Now())
			if err := tx.SaveProduct(ctx, p); err != nil {
				return err
			}
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// patchReferences routes the reference fields of patch through the synchronizer.
func (s *ProductService) patchReferences(ctx context.Context, tx contracts.Tx, p *domain.Product, patch *domain.ProductPatch, ct *domain.ChangeTracker) error {
	if id, ok := patch.CategoryID.Get(); ok {
		if !sameID(p.CategoryID, id) {
			ct.MarkDirty(domain.FieldCategory)
		}
		if err := s.sync.SetCategory(ctx, tx, p, id); err != nil {
			return err
		}
	}
	if id, ok := patch.PackagingID.Get(); ok {
		if !sameID(p.PackagingID, id) {
			ct.MarkDirty(domain.FieldPackaging)
		}
		if err := s.sync.SetPackaging(ctx, tx, p, id); err != nil {
			return err
		}
	}
	if id, ok := patch.ProductCodeID.Get(); ok {
		if sameID(p.ProductCodeID, id) {
			return nil
		}
		ct.MarkDirty(domain.FieldProductCode)
		if err := s.sync.SetProductCode(ctx, tx, p, id); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every product ordered by id.
func (s *ProductService) FindAll(ctx context.Context) ([]*domain.Product, error) {
	s.log.Debug().Msg("Request to get all products")
	var products []*domain.Product
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		products, err = tx.ListProducts(ctx, contracts.ProductFilter{})
		return err
	})
	return products, err
}

// FindOne returns the product with id, or nil, nil when it does not exist.
func (s *ProductService) FindOne(ctx context.Context, id int64) (*domain.Product, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get product")
	return findOne(ctx, &s.base, domain.KindProduct, id, func(ctx context.Context, tx contracts.ReadTx) (*domain.Product, error) {
		return tx.GetProduct(ctx, id)
	})
}

// FindCatalogs returns the ids of the catalogs listing the product.
func (s *ProductService) FindCatalogs(ctx context.Context, id int64) ([]int64, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get catalogs of product")
	var ids []int64
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		ok, err := tx.Exists(ctx, domain.KindProduct, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound(domain.KindProduct, id)
		}
		ids, err = tx.CatalogIDsOfProduct(ctx, id)
		return err
	})
	return ids, err
}

// Delete removes the product from every catalog and then deletes it.
// Deleting an unknown id does nothing.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("Request to delete product")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return deleteIfExists(ctx, tx, domain.KindProduct, id, func() error {
			return s.sync.ForgetProduct(ctx, tx, id)
		})
	})
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
