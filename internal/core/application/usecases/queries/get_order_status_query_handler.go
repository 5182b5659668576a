package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads order statuses through the status cache. The cache
// is best effort: when it fails the status is read from the orders table.
type GetOrderStatusQueryHandler struct {
	db     *gorm.DB
	cache  ports.OrderStatusCache
	logger *slog.Logger
}

func NewGetOrderStatusQueryHandler(db *gorm.DB, cache ports.OrderStatusCache, logger *slog.Logger) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db, cache: cache, logger: logger.With("component", "get_order_status_query")}
}

func (h GetOrderStatusQueryHandler) Handle(ctx context.Context, query GetOrderStatusQuery) (*GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	orderID := query.OrderID()

	status, ok, err := h.cache.Get(ctx, orderID)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to read cached order status", "order_id", orderID.String(), "error", err)
	}
	if err == nil && ok {
		return &GetOrderStatusQueryResponse{OrderID: orderID, Status: status.String(), Cached: true}, nil
	}

	var raw int
	err = h.db.WithContext(ctx).
		Raw("SELECT status FROM orders WHERE id = ?", orderID.Bytes()).
		Row().
		Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}
	status = order.Status(raw)

	if err = h.cache.Set(ctx, orderID, status); err != nil {
		h.logger.WarnContext(ctx, "Failed to cache order status", "order_id", orderID.String(), "error", err)
	}
	return &GetOrderStatusQueryResponse{OrderID: orderID, Status: status.String()}, nil
}
