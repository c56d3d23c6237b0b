package service

import (
	"context"
	"time"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
)

// PackagingService manages packagings. Products point at their packaging, so
// replacing the members rewrites the products.
type PackagingService struct {
	base
	sync *relations.Synchronizer
}

// NewPackagingService creates a PackagingService.
func NewPackagingService(deps Deps, sync *relations.Synchronizer) *PackagingService {
	return &PackagingService{base: newBase(deps, "packaging_service"), sync: sync}
}

func (s *PackagingService) Create(ctx context.Context, p *domain.Packaging) (*domain.Packaging, error) {
	s.log.Debug().Str("name", p.Name).Msg("Request to create packaging")
	if err := checkCreate(domain.KindPackaging, p.ID); err != nil {
		return nil, err
	}

	var saved *domain.Packaging
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		e := *p
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

func (s *PackagingService) Update(ctx context.Context, id int64, p *domain.Packaging) (*domain.Packaging, error) {
	s.log.Debug().Int64("id", id).Msg("Request to update packaging")
	if err := checkUpdate(domain.KindPackaging, id, p.ID); err != nil {
		return nil, err
	}

	var saved *domain.Packaging
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		current, err := tx.GetPackaging(ctx, id)
		if err != nil {
			return err
		}
		e := *p
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

func (s *PackagingService) Save(ctx context.Context, p *domain.Packaging) (*domain.Packaging, error) {
	if p.ID == 0 {
		return s.Create(ctx, p)
	}
	return s.Update(ctx, p.ID, p)
}

func (s *PackagingService) save(ctx context.Context, tx contracts.Tx, e *domain.Packaging) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Stamp(s.clock.Now())
	return tx.SavePackaging(ctx, e)
}

func (s *PackagingService) PartialUpdate(ctx context.Context, id int64, patch *domain.PackagingPatch) (*domain.Packaging, error) {
	s.log.Debug().Int64("id", id).Msg("Request to partially update packaging")
	if err := checkUpdate(domain.KindPackaging, id, patch.ID); err != nil {
		return nil, err
	}

	var result *domain.Packaging
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		result = nil
		p, err := tx.GetPackaging(ctx, id)
		if domain.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if ct := p.Merge(patch); ct.HasChanges() {
			s.logChanges(id, ct)
			if err := s.save(ctx, tx, p); err != nil {
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

func (s *PackagingService) FindAll(ctx context.Context) ([]*domain.Packaging, error) {
	s.log.Debug().Msg("Request to get all packagings")
	var found []*domain.Packaging
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		found, err = tx.ListPackagings(ctx)
		return err
	})
	return found, err
}

func (s *PackagingService) FindOne(ctx context.Context, id int64) (*domain.Packaging, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get packaging")
	return findOne(ctx, &s.base, domain.KindPackaging, id, func(ctx context.Context, tx contracts.ReadTx) (*domain.Packaging, error) {
		return tx.GetPackaging(ctx, id)
	})
}

// ReplaceProducts makes productIDs the exact set of products in the packaging.
func (s *PackagingService) ReplaceProducts(ctx context.Context, id int64, productIDs []int64) error {
	s.log.Debug().Int64("id", id).Int("products", len(productIDs)).Msg("Request to replace packaging products")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return s.sync.ReplacePackagingMembers(ctx, tx, id, productIDs)
	})
}

// Delete clears the packaging reference of its products and deletes it.
func (s *PackagingService) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("Request to delete packaging")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return deleteIfExists(ctx, tx, domain.KindPackaging, id, func() error {
			return s.sync.ReleaseReferences(ctx, tx, domain.KindPackaging, id)
		})
	})
}
