package domain

import "time"

const (
	FieldUPC     = "upc"
	FieldBarcode = "barcode"
)

// ProductCode identifies a product at the point of sale. ProductID is the back-reference
// to the owning product; it is resolved on read and never written through the code.
type ProductCode struct {
	ID        int64     `json:"id,omitempty"`
	UPC       string    `json:"upc"`
	Barcode   string    `json:"barcode,omitempty"`
	ProductID *int64    `json:"productId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductCodePatch is a sparse update of a ProductCode.
type ProductCodePatch struct {
	ID      int64            `json:"id"`
	UPC     Optional[string] `json:"upc"`
	Barcode Optional[string] `json:"barcode"`
}

// Validate checks required fields before a save.
func (c *ProductCode) Validate() error {
	if c.UPC == "" {
		return missing(KindProductCode, FieldUPC)
	}
	return nil
}

// Merge copies every field set in patch onto c.
func (c *ProductCode) Merge(patch *ProductCodePatch) *ChangeTracker {
	ct := NewChangeTracker()
	mergeField(ct, FieldUPC, &c.UPC, patch.UPC)
	mergeField(ct, FieldBarcode, &c.Barcode, patch.Barcode)
	return ct
}

// Stamp sets the server-assigned timestamps for a save at now.
func (c *ProductCode) Stamp(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
