package m_catalog_product

// Data is a single catalog membership.
type Data struct {
	CatalogID int64 `spanner:"catalog_id"`
	ProductID int64 `spanner:"product_id"`
}
