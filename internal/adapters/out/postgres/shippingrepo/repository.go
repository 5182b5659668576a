package shippingrepo

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/shipping"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShippingMethodRepository implements ShippingMethodRepository using GORM.
type GormShippingMethodRepository struct {
	db *gorm.DB
}

// NewGormShippingMethodRepository creates a new GORM shipping method repository.
func NewGormShippingMethodRepository(db *gorm.DB) *GormShippingMethodRepository {
	return &GormShippingMethodRepository{db: db}
}

// AddZone saves a shipping zone.
func (r *GormShippingMethodRepository) AddZone(ctx context.Context, zone *shipping.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	dto := zoneFromDomain(zone)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddMethod saves a shipping method of an already stored zone.
func (r *GormShippingMethodRepository) AddMethod(ctx context.Context, method *shipping.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	dto := methodFromDomain(method)
	return r.db.WithContext(ctx).Omit("Zone").Create(&dto).Error
}

// Get retrieves a shipping method with its zone.
func (r *GormShippingMethodRepository) Get(ctx context.Context, id kernel.UUID) (*shipping.Method, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShippingMethodDTO
	if err := r.db.WithContext(ctx).Preload("Zone").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipping method", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
