package domain

import "time"

const (
	FieldQuantity   = "quantity"
	FieldGrosWeight = "grosWeight"
	FieldNetWeight  = "netWeight"
	FieldLength     = "length"
	FieldWidth      = "width"
	FieldHeight     = "height"
)

// Packaging describes how a product is packed. Products point at their packaging.
type Packaging struct {
	ID         int64     `json:"id,omitempty"`
	Name       string    `json:"name"`
	Quantity   *int64    `json:"quantity"`
	GrosWeight *float64  `json:"grosWeight,omitempty"`
	NetWeight  *float64  `json:"netWeight,omitempty"`
	Length     *float64  `json:"length,omitempty"`
	Width      *float64  `json:"width,omitempty"`
	Height     *float64  `json:"height,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PackagingPatch is a sparse update of a Packaging.
type PackagingPatch struct {
	ID         int64              `json:"id"`
	Name       Optional[string]   `json:"name"`
	Quantity   Optional[*int64]   `json:"quantity"`
	GrosWeight Optional[*float64] `json:"grosWeight"`
	NetWeight  Optional[*float64] `json:"netWeight"`
	Length     Optional[*float64] `json:"length"`
	Width      Optional[*float64] `json:"width"`
	Height     Optional[*float64] `json:"height"`
}

// Validate checks required fields before a save.
func (p *Packaging) Validate() error {
	if p.Name == "" {
		return missing(KindPackaging, FieldName)
	}
	if p.Quantity == nil {
		return missing(KindPackaging, FieldQuantity)
	}
	if *p.Quantity < 0 {
		return invalid(KindPackaging, FieldQuantity, "must be greater than or equal to 0")
	}
	return nil
}

// Merge copies every field set in patch onto p.
func (p *Packaging) Merge(patch *PackagingPatch) *ChangeTracker {
	ct := NewChangeTracker()
	mergeField(ct, FieldName, &p.Name, patch.Name)
	mergeFunc(ct, FieldQuantity, &p.Quantity, patch.Quantity, equalPtr[int64])
	mergeFunc(ct, FieldGrosWeight, &p.GrosWeight, patch.GrosWeight, equalPtr[float64])
	mergeFunc(ct, FieldNetWeight, &p.NetWeight, patch.NetWeight, equalPtr[float64])
	mergeFunc(ct, FieldLength, &p.Length, patch.Length, equalPtr[float64])
	mergeFunc(ct, FieldWidth, &p.Width, patch.Width, equalPtr[float64])
	mergeFunc(ct, FieldHeight, &p.Height, patch.Height, equalPtr[float64])
	return ct
}

func (p *Packaging) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
