package service

import (
	"context"
	"time"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/app/inventory/loader"
	"github.com/light-bringer/inventory-service/internal/app/inventory/relations"
)

// CatalogService manages catalogs. Reads return catalogs with their products
// loaded; a write carrying a non-nil Products list also replaces the members.
type CatalogService struct {
	base
	sync   *relations.Synchronizer
	loader *loader.CatalogLoader
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(deps Deps, sync *relations.Synchronizer, l *loader.CatalogLoader) *CatalogService {
	return &CatalogService{base: newBase(deps, "catalog_service"), sync: sync, loader: l}
}

func (s *CatalogService) Create(ctx context.Context, c *domain.Catalog) (*domain.Catalog, error) {
	s.log.Debug().Str("code", c.Code).Msg("Request to create catalog")
	if err := checkCreate(domain.KindCatalog, c.ID); err != nil {
		return nil, err
	}

	var saved *domain.Catalog
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

func (s *CatalogService) Update(ctx context.Context, id int64, c *domain.Catalog) (*domain.Catalog, error) {
	s.log.Debug().Int64("id", id).Msg("Request to update catalog")
	if err := checkUpdate(domain.KindCatalog, id, c.ID); err != nil {
		return nil, err
	}

	var saved *domain.Catalog
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		current, err := tx.GetCatalog(ctx, id)
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

func (s *CatalogService) Save(ctx context.Context, c *domain.Catalog) (*domain.Catalog, error) {
	if c.ID == 0 {
		return s.Create(ctx, c)
	}
	return s.Update(ctx, c.ID, c)
}

func (s *CatalogService) save(ctx context.Context, tx contracts.Tx, e *domain.Catalog) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Stamp(s.clock.Now())
	if err := tx.SaveCatalog(ctx, e); err != nil {
		return err
	}
	if e.Products == nil {
		return nil
	}
	return s.sync.ReplaceCatalogMembers(ctx, tx, e.ID, e.ProductIDs())
}

// PartialUpdate changes scalar fields only; membership is left as is.
// It returns nil, nil when no catalog with id exists.
func (s *CatalogService) PartialUpdate(ctx context.Context, id int64, patch *domain.CatalogPatch) (*domain.Catalog, error) {
	s.log.Debug().Int64("id", id).Msg("Request to partially update catalog")
	if err := checkUpdate(domain.KindCatalog, id, patch.ID); err != nil {
		return nil, err
	}

	var result *domain.Catalog
	err := s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		result = nil
		c, err := tx.GetCatalog(ctx, id)
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

// FindAll returns every catalog with its products, ordered by id.
func (s *CatalogService) FindAll(ctx context.Context) ([]*domain.Catalog, error) {
	s.log.Debug().Msg("Request to get all catalogs")
	var found []*domain.Catalog
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		found, err = s.loader.LoadAll(ctx, tx)
		return err
	})
	return found, err
}

// FindPage returns one page of catalogs with their products and the total
// number of catalogs.
func (s *CatalogService) FindPage(ctx context.Context, page contracts.Page) ([]*domain.Catalog, int64, error) {
	s.log.Debug().Int("offset", page.Offset).Int("limit", page.Limit).Msg("Request to get a page of catalogs")
	var (
		found []*domain.Catalog
		total int64
	)
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		found, total, err = s.loader.LoadPage(ctx, tx, page)
		return err
	})
	return found, total, err
}

func (s *CatalogService) FindOne(ctx context.Context, id int64) (*domain.Catalog, error) {
	s.log.Debug().Int64("id", id).Msg("Request to get catalog")
	return findOne(ctx, &s.base, domain.KindCatalog, id, func(ctx context.Context, tx contracts.ReadTx) (*domain.Catalog, error) {
		return s.loader.LoadOne(ctx, tx, id)
	})
}

// Attach adds the product to the catalog. Attaching twice changes nothing.
func (s *CatalogService) Attach(ctx context.Context, catalogID, productID int64) error {
	s.log.Debug().Int64("catalog_id", catalogID).Int64("product_id", productID).Msg("Request to attach product to catalog")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return s.sync.Attach(ctx, tx, catalogID, productID)
	})
}

// Detach removes the product from the catalog. Detaching an absent pair changes nothing.
func (s *CatalogService) Detach(ctx context.Context, catalogID, productID int64) error {
	s.log.Debug().Int64("catalog_id", catalogID).Int64("product_id", productID).Msg("Request to detach product from catalog")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return s.sync.Detach(ctx, tx, catalogID, productID)
	})
}

// Delete deletes the catalog together with its membership rows.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("Request to delete catalog")
	return s.write(ctx, func(ctx context.Context, tx contracts.Tx) error {
		return deleteIfExists(ctx, tx, domain.KindCatalog, id, nil)
	})
}
