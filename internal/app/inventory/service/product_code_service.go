package service

import (
	"context"
	"time"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
)

// ProductCodeService manages product codes. A code's owner is derived from
// the product referencing it and cannot be written through the code.
type ProductCodeService struct {
	base
	sync *relations.Synchronizer
}

// NewProductCodeService creates a ProductCodeService.
func NewProductCodeService(deps Deps, sync *relations.Synchronizer) *ProductCodeService {
	return &ProductCodeService{base: newBase(deps, "product_code_service"), sync: sync}
}

func (s *ProductCodeService) Create(ctx context.Context, c *domain.ProductCode) (*domain.ProductCode, error) {
	s.log.Debug().Str("upc", c.UPC).Msg("Request to create product code")
	if err := checkCreate(domain.KindProductCode, c.ID); err != nil {
		return nil, err
	}

	var saved *domain.ProductCode
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		e := *c
		e.ProductID = nil
		e.CreatedAt = time.Time{}
		if err := s.save(ctx, tx, &e); err != nil {
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

func (s *ProductCodeService) Update(ctx context.Context, id int64, c *domain.ProductCode) (*domain.ProductCode, error) {
	s.log.Debug().Int64("id", id).Msg("Request to update product code")
	if err := checkUpdate(domain.KindProductCode, id, c.ID); err != nil {
		return nil, err
	}

	var saved *domain.ProductCode
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		current, err := tx.GetProductCode(ctx, id)
		if err != nil {
			return err
		}
		e := *c
		e.ProductID = current.ProductID
		e.CreatedAt = current.CreatedAt
		if err := s.save(ctx, tx, &e); err != nil {
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

func (s *ProductCodeService) Save(ctx context.Context, c *domain.ProductCode) (*domain.ProductCode, error) {
	if c.ID == 0 {
		return s.Create(ctx, c)
	}
	return s.Update(ctx, c.ID, c)
}

func (s *ProductCodeService) save(ctx context.Context, tx contracts.Tx, e *domain.ProductCode) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Stamp(s.clock.Now())
	return tx.SaveProductCode(ctx, e)
}

// PartialUpdate returns nil, nil when no code with id exists.
func (s *ProductCodeService) PartialUpdate(ctx context.Context, id int64, patch *domain.ProductCodePatch) (*domain.ProductCode, error) {
	s.log.Debug().Int64("id", id).Msg("Request to partially update product code")
	if err := checkUpdate(domain.KindProductCode, id, patch.ID); err != nil {
		return nil, err
	}

	var result *domain.ProductCode
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		result = nil
		c, err := tx.GetProductCode(ctx, id)
		if domain.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if ct := c.Merge(patch); ct.HasChanges() {
			s.logChanges(id, ct)
			if err := s.save(ctx, tx, c); err != nil {
				return err
			}
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ProductCodeService) FindAll(ctx context.Context) ([]*domain.ProductCode, error) {
	s.log.Debug().Msg("Request to get all product codes")
	return s.list(ctx, false)
}

// FindAllUnowned returns the codes no product references.
func (s *ProductCodeService) FindAllUnowned(ctx context.Context) ([]*domain.ProductCode, error) {
	s.log.Debug().Msg("Request to get all product codes where product is null")
	return s.list(ctx, true)
}

func (s *ProductCodeService) list(ctx context.Context, unownedOnly bool) ([]*domain.ProductCode, error) {
	var found []*domain.ProductCode
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		found, err = tx.ListProductCodes(ctx, unownedOnly)
		return err
	})
	return found, err
}

func (s *ProductCodeService) FindOne(ctx context.Context, id int64) (*domain.ProductCode, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get product code")
	return findOne(ctx, &s.base, domain.KindProductCode, id, func(ctx context.Context, tx contracts.ReadTx) (*domain.ProductCode, error) {
		return tx.GetProductCode(ctx, id)
	})
}

// Delete clears the owning product's reference and deletes the code.
func (s *ProductCodeService) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("Request to delete product code")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return deleteIfExists(ctx, tx, domain.KindProductCode, id, func() error {
			return s.sync.ReleaseReferences(ctx, tx, domain.KindProductCode, id)
		})
	})
}
