package m_product_code

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the product_codes table.
// The owning product is not stored here; products.product_code_id is the only link.
type Data struct {
	ProductCodeID int64              `spanner:"product_code_id"`
	UPC           string             `spanner:"upc"`
	Barcode       spanner.NullString `spanner:"barcode"`
	CreatedAt     time.Time          `spanner:"created_at"`
	UpdatedAt     time.Time          `spanner:"updated_at"`
}
