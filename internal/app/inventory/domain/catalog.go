package domain

import (
	"sort"
	"time"
)

const FieldCode = "code"

// Catalog is a named set of products. Membership is many-to-many and stored in join rows;
// Products is only populated by eager loads.
type Catalog struct {
	ID        int64         `json:"id,omitempty"`
	Code      string        `json:"code"`
	Status    CatalogStatus `json:"status"`
	Products  []*Product    `json:"products,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CatalogPatch is a sparse update of a Catalog.
type CatalogPatch struct {
	ID     int64                   `json:"id"`
	Code   Optional[string]        `json:"code"`
	Status Optional[CatalogStatus] `json:"status"`
}

// Validate checks required fields before a save.
func (c *Catalog) Validate() error {
	if c.Code == "" {
		return missing(KindCatalog, FieldCode)
	}
	if c.Status == "" {
		return missing(KindCatalog, FieldStatus)
	}
	if !c.Status.Valid() {
		return invalid(KindCatalog, FieldStatus, "must be one of ACTIVE, DISABLED")
	}
	return nil
}

// Merge copies every field set in patch onto c.
func (c *Catalog) Merge(patch *CatalogPatch) *ChangeTracker {
	ct := NewChangeTracker()
	mergeField(ct, FieldCode, &c.Code, patch.Code)
	mergeField(ct, FieldStatus, &c.Status, patch.Status)
	return ct
}

func (c *Catalog) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// ProductIDs returns the distinct ids of the loaded members in ascending order.
func (c *Catalog) ProductIDs() []int64 {
	seen := make(map[int64]bool, len(c.Products))
	ids := make([]int64, 0, len(c.Products))
	for _, p := range c.Products {
		if p == nil || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HasProduct reports whether a product with id is among the loaded members.
func (c *Catalog) HasProduct(id int64) bool {
	for _, p := range c.Products {
		if p != nil && p.ID == id {
			return true
		}
	}
	return false
}
