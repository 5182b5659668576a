// Package catalogrepo reads products and their variants for checkouts.
package catalogrepo

import (
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ProductDTO represents a catalog product row.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	BasePrice int64
	Weight    float64
	Digital   bool
	Published bool
}

func (ProductDTO) TableName() string {
	return "products"
}

// VariantDTO represents a product variant row. A nil price or weight falls back to the product.
type VariantDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID     uuid.UUID  `gorm:"type:uuid;index"`
	Product       ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Name          string
	PriceOverride *int64
	Weight        *float64
}

func (VariantDTO) TableName() string {
	return "product_variants"
}

func productFromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID().Bytes(),
		Name:      p.Name(),
		BasePrice: p.BasePrice(),
		Weight:    p.Weight(),
		Digital:   p.IsDigital(),
		Published: p.IsPublished(),
	}
}

func variantFromDomain(v *catalog.Variant) VariantDTO {
	dto := VariantDTO{
		ID:        v.ID().Bytes(),
		ProductID: v.ProductID().Bytes(),
		Name:      v.Name(),
	}
	if price, ok := v.PriceOverride(); ok {
		dto.PriceOverride = &price
	}
	if weight, ok := v.OwnWeight(); ok {
		dto.Weight = &weight
	}
	return dto
}

func toDomain(dto VariantDTO) (*catalog.Variant, error) {
	productID, err := kernel.UUIDFromBytes(dto.Product.ID[:])
	if err != nil {
		return nil, err
	}
	product, err := catalog.NewProduct(productID, dto.Product.Name, dto.Product.BasePrice, dto.Product.Weight,
		dto.Product.Digital, dto.Product.Published)
	if err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewVariant(id, product, dto.Name, dto.PriceOverride, dto.Weight)
}
