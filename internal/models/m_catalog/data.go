package m_catalog

import "time"

// Data represents the database model for the catalogs table.
type Data struct {
	CatalogID int64     `spanner:"catalog_id"`
	Code      string    `spanner:"code"`
	Status    string    `spanner:"status"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
