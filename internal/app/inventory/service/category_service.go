package service

import (
	"context"
	"time"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
)

// CategoryService manages categories and their member products.
type CategoryService struct {
	base
	sync *relations.Synchronizer
}

func NewCategoryService(deps Deps, sync *relations.Synchronizer) *CategoryService {
	return &CategoryService{base: newBase(deps, "category_service"), sync: sync}
}

func (s *CategoryService) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	s.log.Debug().Str("name", c.Name).Msg("Request to create category")
	if err := checkCreate(domain.KindCategory, c.ID); err != nil {
		return nil, err
	}

	var saved *domain.Category
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		e := *c
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

func (s *CategoryService) Update(ctx context.Context, id int64, c *domain.Category) (*domain.Category, error) {
	s.log.Debug().Int64("id", id).Msg("Request to update category")
	if err := checkUpdate(domain.KindCategory, id, c.ID); err != nil {
		return nil, err
	}

	var saved *domain.Category
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		current, err := tx.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		e := *c
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

func (s *CategoryService) Save(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if c.ID == 0 {
		return s.Create(ctx, c)
	}
	return s.Update(ctx, c.ID, c)
}

func (s *CategoryService) save(ctx context.Context, tx contracts.Tx, e *domain.Category) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Stamp(s.clock.Now())
	return tx.SaveCategory(ctx, e)
}

func (s *CategoryService) PartialUpdate(ctx context.Context, id int64, patch *domain.CategoryPatch) (*domain.Category, error) {
	s.log.Debug().Int64("id", id).Msg("Request to partially update category")
	if err := checkUpdate(domain.KindCategory, id, patch.ID); err != nil {
		return nil, err
	}

	var result *domain.Category
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		result = nil
		c, err := tx.GetCategory(ctx, id)
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

func (s *CategoryService) FindAll(ctx context.Context) ([]*domain.Category, error) {
	s.log.Debug().Msg("Request to get all categories")
	var found []*domain.Category
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		found, err = tx.ListCategories(ctx)
		return err
	})
	return found, err
}

func (s *CategoryService) FindOne(ctx context.Context, id int64) (*domain.Category, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get category")
	return findOne(ctx, &s.base, domain.KindCategory, id, func(ctx context.Context, tx contracts.ReadTx) (*domain.Category, error) {
		return tx.GetCategory(ctx, id)
	})
}

// ReplaceProducts makes productIDs the exact set of products in the category.
func (s *CategoryService) ReplaceProducts(ctx context.Context, id int64, productIDs []int64) error {
	s.log.Debug().Int64("id", id).Int("products", len(productIDs)).Msg("Request to replace category products")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return s.sync.ReplaceCategoryMembers(ctx, tx, id, productIDs)
	})
}

// Delete clears the category reference of its products and deletes it.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("Request to delete category")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return deleteIfExists(ctx, tx, domain.KindCategory, id, func() error {
			return s.sync.ReleaseReferences(ctx, tx, domain.KindCategory, id)
		})
	})
}
