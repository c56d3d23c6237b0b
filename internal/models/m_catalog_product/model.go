package m_catalog_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the catalog_products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut adds a membership. InsertOrUpdate keeps repeated adds idempotent.
func (m *Model) InsertMut(catalogID, productID int64) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{catalogID, productID})
}

// DeleteMut removes a single membership.
func (m *Model) DeleteMut(catalogID, productID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{catalogID, productID})
}
