package m_catalog

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the catalogs table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that inserts or replaces a catalog.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{data.CatalogID, data.Code, data.Status, data.CreatedAt, data.UpdatedAt},
	)
}

// DeleteMut creates a Spanner mutation for deleting a catalog.
// Membership rows are interleaved with ON DELETE CASCADE.
func (m *Model) DeleteMut(catalogID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{catalogID})
}
