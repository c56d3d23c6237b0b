package m_product_code

// Field name constants for the product_codes table.
const (
	TableName = "product_codes"

	ProductCodeID = "product_code_id"
	UPC           = "upc"
	Barcode       = "barcode"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// Columns lists every column in table order.
var Columns = []string{ProductCodeID, UPC, Barcode, CreatedAt, UpdatedAt}
