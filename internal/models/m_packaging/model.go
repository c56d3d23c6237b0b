package m_packaging

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the packagings table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that inserts or replaces a packaging.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.PackagingID,
			data.Name,
			data.Quantity,
			data.GrosWeight,
			data.NetWeight,
			data.Length,
			data.Width,
			data.Height,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a packaging.
func (m *Model) DeleteMut(packagingID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{packagingID})
}
