package domain

// ProductType classifies what a product is.
type ProductType string

const (
	ProductTypeDrug     ProductType = "DRUG"
	ProductTypeMedicine ProductType = "MEDICINE"
	ProductTypeSpice    ProductType = "SPICE"
	ProductTypeNA       ProductType = "NA"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeDrug, ProductTypeMedicine, ProductTypeSpice, ProductTypeNA:
		return true
	}
	return false
}

// StorageType describes where a product is kept.
type StorageType string

const (
	StorageShelf        StorageType = "SHELF"
	StorageStorehouse   StorageType = "STOREHOUSE"
	StorageDrawers      StorageType = "DRAWERS"
	StorageRefrigerator StorageType = "REFRIGERATOR"
)

func (s StorageType) Valid() bool {
	switch s {
	case StorageShelf, StorageStorehouse, StorageDrawers, StorageRefrigerator:
		return true
	}
	return false
}

// UnitOfMeasurement is the unit a product is sold in.
type UnitOfMeasurement string

const (
	UnitPiece    UnitOfMeasurement = "PIECE"
	UnitKilogram UnitOfMeasurement = "KILOGRAM"
	UnitGram     UnitOfMeasurement = "GRAM"
	UnitLiter    UnitOfMeasurement = "LITER"
)

func (u UnitOfMeasurement) Valid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitGram, UnitLiter:
		return true
	}
	return false
}

// ProductStatus represents the sales status of a product.
type ProductStatus string

const (
	ProductOnSale          ProductStatus = "ONSALE"
	ProductLocked          ProductStatus = "LOCKED"
	ProductOutOfStock      ProductStatus = "OUT_OF_STOCK"
	ProductInReplenishment ProductStatus = "IN_REPLENISHMENT"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductOnSale, ProductLocked, ProductOutOfStock, ProductInReplenishment:
		return true
	}
	return false
}

// CatalogStatus represents whether a catalog is in use.
type CatalogStatus string

const (
	CatalogActive   CatalogStatus = "ACTIVE"
	CatalogDisabled CatalogStatus = "DISABLED"
)

func (s CatalogStatus) Valid() bool {
	switch s {
	case CatalogActive, CatalogDisabled:
		return true
	}
	return false
}

// Kind names a persisted entity type.
type Kind string

const (
	KindProduct     Kind = "product"
	KindProductCode Kind = "product_code"
	KindCategory    Kind = "category"
	KindPackaging   Kind = "packaging"
	KindCatalog     Kind = "catalog"
)

// Kinds lists every entity kind in dependency order.
var Kinds = []Kind{KindProductCode, KindCategory, KindPackaging, KindProduct, KindCatalog}
