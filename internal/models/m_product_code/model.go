package m_product_code

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the product_codes table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that inserts or replaces a product code.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{data.ProductCodeID, data.UPC, data.Barcode, data.CreatedAt, data.UpdatedAt},
	)
}

// DeleteMut creates a Spanner mutation for deleting a product code.
func (m *Model) DeleteMut(productCodeID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productCodeID})
}
