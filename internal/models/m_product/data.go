package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID        int64               `spanner:"product_id"`
	Name             string              `spanner:"name"`
	Description      spanner.NullString  `spanner:"description"`
	Company          spanner.NullString  `spanner:"company"`
	Type             string              `spanner:"type"`
	StorageType      string              `spanner:"storage_type"`
	Price            big.Rat             `spanner:"price"`
	SalesUnit        spanner.NullString  `spanner:"sales_unit"`
	SalesQuantity    spanner.NullNumeric `spanner:"sales_quantity"`
	Image            []byte              `spanner:"image"`
	ImageContentType spanner.NullString  `spanner:"image_content_type"`
	Status           spanner.NullString  `spanner:"status"`
	ProductCodeID    spanner.NullInt64   `spanner:"product_code_id"`
	CategoryID       spanner.NullInt64   `spanner:"category_id"`
	PackagingID      spanner.NullInt64   `spanner:"packaging_id"`
	CreatedAt        time.Time           `spanner:"created_at"`
	UpdatedAt        time.Time           `spanner:"updated_at"`
}
