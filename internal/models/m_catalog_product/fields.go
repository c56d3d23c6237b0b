package m_catalog_product

// Field name constants for the catalog_products join table.
const (
	TableName = "catalog_products"

	CatalogID = "catalog_id"
	ProductID = "product_id"

	IndexByProduct = "catalog_products_by_product"
)

// Columns lists every column in table order.
var Columns = []string{CatalogID, ProductID}
