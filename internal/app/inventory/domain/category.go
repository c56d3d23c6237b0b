package domain

import "time"

// Category groups products. Products point at their category.
type Category struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryPatch struct {
	ID          int64            `json:"id"`
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return missing(KindCategory, FieldName)
	}
	return nil
}

func (c *Category) Merge(patch *CategoryPatch) *ChangeTracker {
	ct := NewChangeTracker()
	mergeField(ct, FieldName, &c.Name, patch.Name)
	mergeField(ct, FieldDescription, &c.Description, patch.Description)
	return ct
}

func (c *Category) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
