package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID        = "product_id"
	Name             = "name"
	Description      = "description"
	Company          = "company"
	Type             = "type"
	StorageType      = "storage_type"
	Price            = "price"
	SalesUnit        = "sales_unit"
	SalesQuantity    = "sales_quantity"
	Image            = "image"
	ImageContentType = "image_content_type"
	Status           = "status"
	ProductCodeID    = "product_code_id"
	CategoryID       = "category_id"
	PackagingID      = "packaging_id"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)

// Secondary indexes on the products table.
const (
	IndexByProductCode = "products_by_product_code"
	IndexByCategory    = "products_by_category"
	IndexByPackaging   = "products_by_packaging"
)

// Columns lists every column in table order.
var Columns = []string{
	ProductID,
	Name,
	Description,
	Company,
	Type,
	StorageType,
	Price,
	SalesUnit,
	SalesQuantity,
	Image,
	ImageContentType,
	Status,
	ProductCodeID,
	CategoryID,
	PackagingID,
	CreatedAt,
	UpdatedAt,
}
