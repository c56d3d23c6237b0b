package m_packaging

// Field name constants for the packagings table.
const (
	TableName = "packagings"

	PackagingID = "packaging_id"
	Name        = "name"
	Quantity    = "quantity"
	GrosWeight  = "gros_weight"
	NetWeight   = "net_weight"
	Length      = "length"
	Width       = "width"
	Height      = "height"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// Columns lists every column in table order.
var Columns = []string{
	PackagingID,
	Name,
	Quantity,
	GrosWeight,
	NetWeight,
	Length,
	Width,
	Height,
	CreatedAt,
	UpdatedAt,
}
