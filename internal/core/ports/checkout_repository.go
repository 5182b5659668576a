package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
)

// CheckoutRepository stores one checkout per customer.
type CheckoutRepository interface {
	Add(ctx context.Context, aggregate *checkout.Checkout) error
	Update(ctx context.Context, aggregate *checkout.Checkout) error

	// Get retrieves the checkout of customerID. Returns errs.ErrObjectNotFound when missing.
	Get(ctx context.Context, customerID kernel.UUID) (*checkout.Checkout, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, customerID kernel.UUID) (*checkout.Checkout, error)

	// Delete removes the checkout of customerID together with its lines.
	Delete(ctx context.Context, customerID kernel.UUID) error

	// DeleteStale removes checkouts last changed before the given time and reports how many.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
