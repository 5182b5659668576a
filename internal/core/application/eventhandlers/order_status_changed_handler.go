// Package eventhandlers reacts to domain events once the transaction that produced
// them has committed.
package eventhandlers

import (
	"context"
	"log/slog"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
)

// OrderStatusChangedHandler publishes order status changes and keeps the status
// cache current. The orders are already committed when it runs, so a failure is
// logged and never undoes the change.
type OrderStatusChangedHandler struct {
	publisher ports.OrderEventPublisher
	cache     ports.OrderStatusCache
	logger    *slog.Logger
}

var _ ports.OrderEventHandler = (*OrderStatusChangedHandler)(nil)

func NewOrderStatusChangedHandler(
	publisher ports.OrderEventPublisher,
	cache ports.OrderStatusCache,
	logger *slog.Logger,
) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{
		publisher: publisher,
		cache:     cache,
		logger:    logger.With("component", "order_status_changed_handler"),
	}
}

// HandleOrderEvents handles events in order. Only the last status of each order is
// written to the cache.
func (h *OrderStatusChangedHandler) HandleOrderEvents(ctx context.Context, events []order.StatusChanged) {
	latest := make(map[string]order.StatusChanged, len(events))
	keys := make([]string, 0, len(events))

	for _, e := range events {
		if err := h.publisher.PublishStatusChanged(ctx, e); err != nil {
			h.logger.ErrorContext(ctx, "Failed to publish order status change",
				"order_id", e.OrderID.String(), "from", e.From.String(), "to", e.To.String(), "error", err)
		}

		key := e.OrderID.String()
		if _, seen := latest[key]; !seen {
			keys = append(keys, key)
		}
		latest[key] = e
	}

	for _, key := range keys {
		e := latest[key]
		if err := h.cache.Set(ctx, e.OrderID, e.To); err != nil {
			h.logger.WarnContext(ctx, "Failed to cache order status",
				"order_id", key, "status", e.To.String(), "error", err)
		}
	}
}
