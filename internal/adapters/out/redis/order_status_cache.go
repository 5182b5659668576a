// Package redis caches the current status of orders in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyOrderStatus = "order_status:%s"

	// DefaultStatusTTL bounds how long a status written by this process may be served
	// after another writer changed it.
	DefaultStatusTTL = 5 * time.Minute
)

// OrderStatusCache stores order status names under order_status:{order_id}.
type OrderStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.OrderStatusCache = (*OrderStatusCache)(nil)

func NewOrderStatusCache(client *redis.Client, ttl time.Duration) *OrderStatusCache {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &OrderStatusCache{client: client, ttl: ttl}
}

// NewClient connects to a single Redis node.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func (c *OrderStatusCache) Get(ctx context.Context, orderID kernel.UUID) (order.Status, bool, error) {
	name, err := c.client.Get(ctx, statusKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return order.Unknown, false, nil
	}
	if err != nil {
		return order.Unknown, false, err
	}

	status, err := order.StatusFromString(name)
	if err != nil {
		return order.Unknown, false, fmt.Errorf("cached status of order %s: %w", orderID, err)
	}
	return status, true, nil
}

func (c *OrderStatusCache) Set(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	return c.client.Set(ctx, statusKey(orderID), status.String(), c.ttl).Err()
}

func statusKey(orderID kernel.UUID) string {
	return fmt.Sprintf(keyOrderStatus, orderID.String())
}
