package ports

import (
	"context"

	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/payment"
	"shop/internal/core/domain/model/shipping"
)

// VariantRepository reads purchasable variants with their products.
type VariantRepository interface {
	// GetMany returns the variants with the given ids, in the order of ids.
	// Returns errs.ErrObjectNotFound when any of them is missing.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Variant, error)
}

// CustomerRepository loads and saves customers.
type CustomerRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	Update(ctx context.Context, aggregate *customer.Customer) error
}

// PaymentRepository loads and saves payments.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)
}

// ShippingMethodRepository reads shipping methods with their zones.
type ShippingMethodRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*shipping.Method, error)
}
