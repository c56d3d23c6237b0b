package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/inventory-service/internal/models/m_catalog"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog_product"
	"github.com/light-bringer/inventory-service/internal/models/m_category"
	"github.com/light-bringer/inventory-service/internal/models/m_packaging"
	"github.com/light-bringer/inventory-service/internal/models/m_product"
	"github.com/light-bringer/inventory-service/internal/models/m_product_code"
	"github.com/light-bringer/inventory-service/internal/models/m_sequence"
)

// Table and column names are shared with the Spanner schema through the m_* packages.
// Timestamps come from the service clock, so GORM's own tracking is switched off.

type productRow struct {
	ID               int64               `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Name             string              `gorm:"column:name;not null"`
	Description      *string             `gorm:"column:description"`
	Company          *string             `gorm:"column:company"`
	Type             string              `gorm:"column:type;not null"`
	StorageType      string              `gorm:"column:storage_type;not null"`
	Price            decimal.Decimal     `gorm:"column:price;type:numeric;not null"`
	SalesUnit        *string             `gorm:"column:sales_unit"`
	SalesQuantity    decimal.NullDecimal `gorm:"column:sales_quantity;type:numeric"`
	Image            []byte              `gorm:"column:image"`
	ImageContentType *string             `gorm:"column:image_content_type"`
	Status           *string             `gorm:"column:status"`
	ProductCodeID    *int64              `gorm:"column:product_code_id;uniqueIndex:products_by_product_code"`
	CategoryID       *int64              `gorm:"column:category_id;index:products_by_category"`
	PackagingID      *int64              `gorm:"column:packaging_id;index:products_by_packaging"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (productRow) TableName() string { return m_product.TableName }

type productCodeRow struct {
	ID        int64     `gorm:"column:product_code_id;primaryKey;autoIncrement:false"`
	UPC       string    `gorm:"column:upc;not null"`
	Barcode   *string   `gorm:"column:barcode"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (productCodeRow) TableName() string { return m_product_code.TableName }

// productCodeWithOwner is a product code left-joined to the product referencing it.
type productCodeWithOwner struct {
	Code    productCodeRow `gorm:"embedded"`
	OwnerID *int64         `gorm:"column:owner_id"`
}

type categoryRow struct {
	ID          int64     `gorm:"column:category_id;primaryKey;autoIncrement:false"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (categoryRow) TableName() string { return m_category.TableName }

type packagingRow struct {
	ID         int64     `gorm:"column:packaging_id;primaryKey;autoIncrement:false"`
	Name       string    `gorm:"column:name;not null"`
	Quantity   int64     `gorm:"column:quantity;not null"`
	GrosWeight *float64  `gorm:"column:gros_weight"`
	NetWeight  *float64  `gorm:"column:net_weight"`
	Length     *float64  `gorm:"column:length"`
	Width      *float64  `gorm:"column:width"`
	Height     *float64  `gorm:"column:height"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (packagingRow) TableName() string { return m_packaging.TableName }

type catalogRow struct {
	ID        int64     `gorm:"column:catalog_id;primaryKey;autoIncrement:false"`
	Code      string    `gorm:"column:code;not null"`
	Status    string    `gorm:"column:status;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (catalogRow) TableName() string { return m_catalog.TableName }

type catalogProductRow struct {
	CatalogID int64 `gorm:"column:catalog_id;primaryKey;autoIncrement:false"`
	ProductID int64 `gorm:"column:product_id;primaryKey;autoIncrement:false;index:catalog_products_by_product"`
}

func (catalogProductRow) TableName() string { return m_catalog_product.TableName }

type sequenceRow struct {
	Name   string `gorm:"column:name;primaryKey"`
	NextID int64  `gorm:"column:next_id;not null"`
}

func (sequenceRow) TableName() string { return m_sequence.TableName }

// allRows is the AutoMigrate set.
var allRows = []interface{}{
	&sequenceRow{},
	&productCodeRow{},
	&categoryRow{},
	&packagingRow{},
	&productRow{},
	&catalogRow{},
	&catalogProductRow{},
}
