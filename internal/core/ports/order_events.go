package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order status changes to other services.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChanged) error
}

// OrderStatusCache keeps the current status of recently touched orders.
type OrderStatusCache interface {
	// Get returns the cached status; ok is false on a cache miss.
	Get(ctx context.Context, orderID kernel.UUID) (status order.Status, ok bool, err error)
	Set(ctx context.Context, orderID kernel.UUID, status order.Status) error
}

// OrderEventHandler receives the status changes of orders once the transaction that
// persisted them has committed.
type OrderEventHandler interface {
	HandleOrderEvents(ctx context.Context, events []order.StatusChanged)
}
