package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that inserts the product or replaces every column.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Description,
			data.Company,
			data.Type,
			data.StorageType,
			&data.Price,
			data.SalesUnit,
			data.SalesQuantity,
			data.Image,
			data.ImageContentType,
			data.Status,
			data.ProductCodeID,
			data.CategoryID,
			data.PackagingID,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a product (hard delete).
func (m *Model) DeleteMut(productID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}
