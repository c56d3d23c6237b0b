package m_category

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the categories table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that inserts or replaces a category.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{data.CategoryID, data.Name, data.Description, data.CreatedAt, data.UpdatedAt},
	)
}

// DeleteMut creates a Spanner mutation for deleting a category.
func (m *Model) DeleteMut(categoryID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{categoryID})
}
