package catalogrepo

import (
	"context"

	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVariantRepository implements VariantRepository using GORM.
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GORM variant repository.
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// AddProduct saves a product. The catalog is managed elsewhere; this is used for seeding.
func (r *GormVariantRepository) AddProduct(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddVariant saves a variant of an already stored product.
func (r *GormVariantRepository) AddVariant(ctx context.Context, variant *catalog.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}

	dto := variantFromDomain(variant)
	return r.db.WithContext(ctx).Omit("Product").Create(&dto).Error
}

// GetMany retrieves variants with their products, in the order of ids.
func (r *GormVariantRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Variant, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []VariantDTO
	if err := r.db.WithContext(ctx).Preload("Product").Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]VariantDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	variants := make([]*catalog.Variant, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("variant", id.String())
		}
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}
