package m_catalog

// Field name constants for the catalogs table.
const (
	TableName = "catalogs"

	CatalogID = "catalog_id"
	Code      = "code"
	Status    = "status"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Columns lists every column in table order.
var Columns = []string{CatalogID, Code, Status, CreatedAt, UpdatedAt}
