// Package ports defines the contracts between the shop's core and its adapters:
// repositories, the unit of work, and the outbound order event channels.
package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates, including
// their lines, fulfillments and fulfillment lines.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order and replaces its fulfillments with the aggregate's
	// current ones.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ErrObjectNotFound when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks it until the surrounding transaction
	// ends. Every mutation of an order loads it this way, so changes to one order
	// are serialized while different orders proceed in parallel.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
