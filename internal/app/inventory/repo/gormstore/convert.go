package gormstore

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
)

func productToRow(p *domain.Product) *productRow {
	row := &productRow{
		ID:               p.ID,
		Name:             p.Name,
		Description:      strPtr(p.Description),
		Company:          strPtr(p.Company),
		Type:             string(p.Type),
		StorageType:      string(p.StorageType),
		SalesUnit:        strPtr(string(p.SalesUnit)),
		Image:            p.Image,
		ImageContentType: strPtr(p.ImageContentType),
		Status:           strPtr(string(p.Status)),
		ProductCodeID:    p.ProductCodeID,
		CategoryID:       p.CategoryID,
		PackagingID:      p.PackagingID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Price != nil {
		row.Price = *p.Price
	}
	if p.SalesQuantity != nil {
		row.SalesQuantity = decimal.NullDecimal{Decimal: *p.SalesQuantity, Valid: true}
	}
	return row
}

func rowToProduct(row *productRow) *domain.Product {
	price := row.Price
	p := &domain.Product{
		ID:               row.ID,
		Name:             row.Name,
		Description:      strVal(row.Description),
		Company:          strVal(row.Company),
		Type:             domain.ProductType(row.Type),
		StorageType:      domain.StorageType(row.StorageType),
		Price:            &price,
		SalesUnit:        domain.UnitOfMeasurement(strVal(row.SalesUnit)),
		Image:            row.Image,
		ImageContentType: strVal(row.ImageContentType),
		Status:           domain.ProductStatus(strVal(row.Status)),
		ProductCodeID:    row.ProductCodeID,
		CategoryID:       row.CategoryID,
		PackagingID:      row.PackagingID,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
	if row.SalesQuantity.Valid {
		q := row.SalesQuantity.Decimal
		p.SalesQuantity = &q
	}
	return p
}

func productCodeToRow(c *domain.ProductCode) *productCodeRow {
	return &productCodeRow{
		ID:        c.ID,
		UPC:       c.UPC,
		Barcode:   strPtr(c.Barcode),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func rowToProductCode(row *productCodeRow, owner *int64) *domain.ProductCode {
	return &domain.ProductCode{
		ID:        row.ID,
		UPC:       row.UPC,
		Barcode:   strVal(row.Barcode),
		ProductID: owner,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func categoryToRow(c *domain.Category) *categoryRow {
	return &categoryRow{
		ID:          c.ID,
		Name:        c.Name,
		Description: strPtr(c.Description),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func rowToCategory(row *categoryRow) *domain.Category {
	return &domain.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: strVal(row.Description),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

func packagingToRow(p *domain.Packaging) *packagingRow {
	row := &packagingRow{
		ID:         p.ID,
		Name:       p.Name,
		GrosWeight: p.GrosWeight,
		NetWeight:  p.NetWeight,
		Length:     p.Length,
		Width:      p.Width,
		Height:     p.Height,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Quantity != nil {
		row.Quantity = *p.Quantity
	}
	return row
}

func rowToPackaging(row *packagingRow) *domain.Packaging {
	quantity := row.Quantity
	return &domain.Packaging{
		ID:         row.ID,
		Name:       row.Name,
		Quantity:   &quantity,
		GrosWeight: row.GrosWeight,
		NetWeight:  row.NetWeight,
		Length:     row.Length,
		Width:      row.Width,
		Height:     row.Height,
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
}

func catalogToRow(c *domain.Catalog) *catalogRow {
	return &catalogRow{
		ID:        c.ID,
		Code:      c.Code,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func rowToCatalog(row *catalogRow) *domain.Catalog {
	return &domain.Catalog{
		ID:        row.ID,
		Code:      row.Code,
		Status:    domain.CatalogStatus(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
