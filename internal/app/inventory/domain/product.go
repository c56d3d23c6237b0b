package domain

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"
)

// Field names for change tracking
const (
	FieldName             = "name"
	FieldDescription      = "description"
	FieldCompany          = "company"
	FieldType             = "type"
	FieldStorageType      = "storageType"
	FieldPrice            = "price"
	FieldSalesUnit        = "salesUnit"
	FieldSalesQuantity    = "salesQuantity"
	FieldImage            = "image"
	FieldImageContentType = "imageContentType"
	FieldStatus           = "status"
	FieldProductCode      = "productCodeId"
	FieldCategory         = "categoryId"
	FieldPackaging        = "packagingId"
)

// Product is a sellable item. It owns the foreign keys to its code, category and packaging;
// catalog membership lives in join rows and is resolved by lookup.
type Product struct {
	ID               int64             `json:"id,omitempty"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Company          string            `json:"company,omitempty"`
	Type             ProductType       `json:"type"`
	StorageType      StorageType       `json:"storageType"`
	Price            *decimal.Decimal  `json:"price"`
	SalesUnit        UnitOfMeasurement `json:"salesUnit,omitempty"`
	SalesQuantity    *decimal.Decimal  `json:"salesQuantity,omitempty"`
	Image            []byte            `json:"image,omitempty"`
	ImageContentType string            `json:"imageContentType,omitempty"`
	Status           ProductStatus     `json:"status,omitempty"`
	ProductCodeID    *int64            `json:"productCodeId,omitempty"`
	CategoryID       *int64            `json:"categoryId,omitempty"`
	PackagingID      *int64            `json:"packagingId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ProductPatch is a sparse update of a Product.
type ProductPatch struct {
	ID               int64                       `json:"id"`
	Name             Optional[string]            `json:"name"`
	Description      Optional[string]            `json:"description"`
	Company          Optional[string]            `json:"company"`
	Type             Optional[ProductType]       `json:"type"`
	StorageType      Optional[StorageType]       `json:"storageType"`
	Price            Optional[*decimal.Decimal]  `json:"price"`
	SalesUnit        Optional[UnitOfMeasurement] `json:"salesUnit"`
	SalesQuantity    Optional[*decimal.Decimal]  `json:"salesQuantity"`
	Image            Optional[[]byte]            `json:"image"`
	ImageContentType Optional[string]            `json:"imageContentType"`
	Status           Optional[ProductStatus]     `json:"status"`
	ProductCodeID    Optional[*int64]            `json:"productCodeId"`
	CategoryID       Optional[*int64]            `json:"categoryId"`
	PackagingID      Optional[*int64]            `json:"packagingId"`
}

// Validate checks required fields and value domains before a save.
func (p *Product) Validate() error {
	if p.Name == "" {
		return missing(KindProduct, FieldName)
	}
	if p.Type == "" {
		return missing(KindProduct, FieldType)
	}
	if !p.Type.Valid() {
		return invalid(KindProduct, FieldType, "must be one of DRUG, MEDICINE, SPICE, NA")
	}
	if p.StorageType == "" {
		return missing(KindProduct, FieldStorageType)
	}
	if !p.StorageType.Valid() {
		return invalid(KindProduct, FieldStorageType, "must be one of SHELF, STOREHOUSE, DRAWERS, REFRIGERATOR")
	}
	if p.Price == nil {
		return missing(KindProduct, FieldPrice)
	}
	if p.Price.IsNegative() {
		return invalid(KindProduct, FieldPrice, "must be greater than or equal to 0")
	}
	if p.SalesUnit != "" && !p.SalesUnit.Valid() {
		return invalid(KindProduct, FieldSalesUnit, "must be one of PIECE, KILOGRAM, GRAM, LITER")
	}
	if p.Status != "" && !p.Status.Valid() {
		return invalid(KindProduct, FieldStatus, "must be one of ONSALE, LOCKED, OUT_OF_STOCK, IN_REPLENISHMENT")
	}
	return nil
}

// Merge copies every field set in patch onto p. Relationship fields are left to the
// synchronizer; only the scalar columns are touched here.
func (p *Product) Merge(patch *ProductPatch) *ChangeTracker {
	ct := NewChangeTracker()
	mergeField(ct, FieldName, &p.Name, patch.Name)
	mergeField(ct, FieldDescription, &p.Description, patch.Description)
	mergeField(ct, FieldCompany, &p.Company, patch.Company)
	mergeField(ct, FieldType, &p.Type, patch.Type)
	mergeField(ct, FieldStorageType, &p.StorageType, patch.StorageType)
	mergeFunc(ct, FieldPrice, &p.Price, patch.Price, equalDecimal)
	mergeField(ct, FieldSalesUnit, &p.SalesUnit, patch.SalesUnit)
	mergeFunc(ct, FieldSalesQuantity, &p.SalesQuantity, patch.SalesQuantity, equalDecimal)
	mergeFunc(ct, FieldImage, &p.Image, patch.Image, bytes.Equal)
	mergeField(ct, FieldImageContentType, &p.ImageContentType, patch.ImageContentType)
	mergeField(ct, FieldStatus, &p.Status, patch.Status)
	return ct
}

// Stamp sets the server-assigned timestamps for a save at now.
func (p *Product) Stamp(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
