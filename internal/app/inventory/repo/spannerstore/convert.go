package spannerstore

import (
	"fmt"
	"math/big"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/models/m_catalog"
	"github.com/light-bringer/inventory-service/internal/models/m_category"
	"github.com/light-bringer/inventory-service/internal/models/m_packaging"
	"github.com/light-bringer/inventory-service/internal/models/m_product"
	"github.com/light-bringer/inventory-service/internal/models/m_product_code"
)

// numericScale is the fractional precision of a Spanner NUMERIC column.
const numericScale = 9

func productToData(p *domain.Product) *m_product.Data {
	d := &m_product.Data{
		ProductID:        p.ID,
		Name:             p.Name,
		Description:      nullString(p.Description),
		Company:          nullString(p.Company),
		Type:             string(p.Type),
		StorageType:      string(p.StorageType),
		SalesUnit:        nullString(string(p.SalesUnit)),
		SalesQuantity:    nullNumeric(p.SalesQuantity),
		Image:            p.Image,
		ImageContentType: nullString(p.ImageContentType),
		Status:           nullString(string(p.Status)),
		ProductCodeID:    nullInt64(p.ProductCodeID),
		CategoryID:       nullInt64(p.CategoryID),
		PackagingID:      nullInt64(p.PackagingID),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Price != nil {
		d.Price.Set(toRat(*p.Price))
	}
	return d
}

func dataToProduct(d *m_product.Data) (*domain.Product, error) {
	price, err := fromRat(&d.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price of product %d: %w", d.ProductID, err)
	}
	p := &domain.Product{
		ID:               d.ProductID,
		Name:             d.Name,
		Description:      d.Description.StringVal,
		Company:          d.Company.StringVal,
		Type:             domain.ProductType(d.Type),
		StorageType:      domain.StorageType(d.StorageType),
		Price:            &price,
		SalesUnit:        domain.UnitOfMeasurement(d.SalesUnit.StringVal),
		Image:            d.Image,
		ImageContentType: d.ImageContentType.StringVal,
		Status:           domain.ProductStatus(d.Status.StringVal),
		ProductCodeID:    int64Ptr(d.ProductCodeID),
		CategoryID:       int64Ptr(d.CategoryID),
		PackagingID:      int64Ptr(d.PackagingID),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.SalesQuantity.Valid {
		q, err := fromRat(&d.SalesQuantity.Numeric)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sales quantity of product %d: %w", d.ProductID, err)
		}
		p.SalesQuantity = &q
	}
	return p, nil
}

func productCodeToData(c *domain.ProductCode) *m_product_code.Data {
	return &m_product_code.Data{
		ProductCodeID: c.ID,
		UPC:           c.UPC,
		Barcode:       nullString(c.Barcode),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func dataToProductCode(d *m_product_code.Data, owner spanner.NullInt64) *domain.ProductCode {
	return &domain.ProductCode{
		ID:        d.ProductCodeID,
		UPC:       d.UPC,
		Barcode:   d.Barcode.StringVal,
		ProductID: int64Ptr(owner),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func categoryToData(c *domain.Category) *m_category.Data {
	return &m_category.Data{
		CategoryID:  c.ID,
		Name:        c.Name,
		Description: nullString(c.Description),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func dataToCategory(d *m_category.Data) *domain.Category {
	return &domain.Category{
		ID:          d.CategoryID,
		Name:        d.Name,
		Description: d.Description.StringVal,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func packagingToData(p *domain.Packaging) *m_packaging.Data {
	d := &m_packaging.Data{
		PackagingID: p.ID,
		Name:        p.Name,
		GrosWeight:  nullFloat64(p.GrosWeight),
		NetWeight:   nullFloat64(p.NetWeight),
		Length:      nullFloat64(p.Length),
		Width:       nullFloat64(p.Width),
		Height:      nullFloat64(p.Height),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
	}
	return d
}

func dataToPackaging(d *m_packaging.Data) *domain.Packaging {
	quantity := d.Quantity
	return &domain.Packaging{
		ID:         d.PackagingID,
		Name:       d.Name,
		Quantity:   &quantity,
		GrosWeight: float64Ptr(d.GrosWeight),
		NetWeight:  float64Ptr(d.NetWeight),
		Length:     float64Ptr(d.Length),
		Width:      float64Ptr(d.Width),
		Height:     float64Ptr(d.Height),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func catalogToData(c *domain.Catalog) *m_catalog.Data {
	return &m_catalog.Data{
		CatalogID: c.ID,
		Code:      c.Code,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func dataToCatalog(d *m_catalog.Data) *domain.Catalog {
	return &domain.Catalog{
		ID:        d.CatalogID,
		Code:      d.Code,
		Status:    domain.CatalogStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func nullInt64(v *int64) spanner.NullInt64 {
	if v == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v spanner.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat64(v *float64) spanner.NullFloat64 {
	if v == nil {
		return spanner.NullFloat64{}
	}
	return spanner.NullFloat64{Float64: *v, Valid: true}
}

func float64Ptr(v spanner.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullNumeric(d *decimal.Decimal) spanner.NullNumeric {
	if d == nil {
		return spanner.NullNumeric{}
	}
	n := spanner.NullNumeric{Valid: true}
	n.Numeric.Set(toRat(*d))
	return n
}

func toRat(d decimal.Decimal) *big.Rat {
	r, _ := new(big.Rat).SetString(d.String())
	return r
}

// fromRat renders r at NUMERIC scale and drops the trailing zeros so that
// 12.5 reads back as 12.5 rather than 12.500000000.
func fromRat(r *big.Rat) (decimal.Decimal, error) {
	s := r.FloatString(numericScale)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return decimal.NewFromString(s)
}
