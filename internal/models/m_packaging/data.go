package m_packaging

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the packagings table.
type Data struct {
	PackagingID int64               `spanner:"packaging_id"`
	Name        string              `spanner:"name"`
	Quantity    int64               `spanner:"quantity"`
	GrosWeight  spanner.NullFloat64 `spanner:"gros_weight"`
	NetWeight   spanner.NullFloat64 `spanner:"net_weight"`
	Length      spanner.NullFloat64 `spanner:"length"`
	Width       spanner.NullFloat64 `spanner:"width"`
	Height      spanner.NullFloat64 `spanner:"height"`
	CreatedAt   time.Time           `spanner:"created_at"`
	UpdatedAt   time.Time           `spanner:"updated_at"`
}
