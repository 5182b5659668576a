package checkoutrepo

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCheckoutRepository implements CheckoutRepository using GORM.
type GormCheckoutRepository struct {
	db *gorm.DB
}

// NewGormCheckoutRepository creates a new GORM checkout repository.
func NewGormCheckoutRepository(db *gorm.DB) *GormCheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

// Add saves a new checkout with its lines.
func (r *GormCheckoutRepository) Add(ctx context.Context, aggregate *checkout.Checkout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves every checkout column. Lines are fixed once the checkout is created.
func (r *GormCheckoutRepository) Update(ctx context.Context, aggregate *checkout.Checkout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CheckoutDTO{}).
		Where("customer_id = ?", dto.CustomerID).
		Select("*").
		Omit("CustomerID", "Lines").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("checkout", aggregate.CustomerID().String())
	}
	return nil
}

// Get retrieves the checkout of a customer.
func (r *GormCheckoutRepository) Get(ctx context.Context, customerID kernel.UUID) (*checkout.Checkout, error) {
	return r.get(r.db.WithContext(ctx), customerID)
}

// GetForUpdate retrieves the checkout of a customer and locks it until the
// surrounding transaction ends.
func (r *GormCheckoutRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID) (*checkout.Checkout, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), customerID)
}

func (r *GormCheckoutRepository) get(db *gorm.DB, customerID kernel.UUID) (*checkout.Checkout, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CheckoutDTO
	err := db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkout", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the checkout of a customer. Deleting a missing checkout is not an error.
func (r *GormCheckoutRepository) Delete(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("checkout_id = ?", customerID.Bytes()).Delete(&CheckoutLineDTO{}).Error; err != nil {
		return err
	}
	return db.Where("customer_id = ?", customerID.Bytes()).Delete(&CheckoutDTO{}).Error
}

// DeleteStale removes every checkout last changed before the given time.
func (r *GormCheckoutRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	db := r.db.WithContext(ctx)

	stale := db.Model(&CheckoutDTO{}).Select("customer_id").Where("last_change < ?", before)
	if err := db.Where("checkout_id IN (?)", stale).Delete(&CheckoutLineDTO{}).Error; err != nil {
		return 0, err
	}

	result := db.Where("last_change < ?", before).Delete(&CheckoutDTO{})
	return result.RowsAffected, result.Error
}
