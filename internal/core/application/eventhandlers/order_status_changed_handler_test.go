package eventhandlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"shop/internal/core/application/eventhandlers"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) Get(ctx context.Context, orderID kernel.UUID) (order.Status, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(order.Status), args.Bool(1), args.Error(2)
}

func (m *MockStatusCache) Set(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func changed(orderID kernel.UUID, from, to order.Status) order.StatusChanged {
	return order.StatusChanged{
		OrderID:    orderID,
		CustomerID: kernel.NewUUID(),
		From:       from,
		To:         to,
		OccurredAt: time.Now().UTC(),
	}
}

func TestOrderStatusChangedHandler_HandleOrderEvents(t *testing.T) {
	t.Run("should publish every event and cache the last status per order", func(t *testing.T) {
		ctx := t.Context()
		first, second := kernel.NewUUID(), kernel.NewUUID()
		events := []order.StatusChanged{
			changed(first, order.Confirmed, order.Processing),
			changed(second, order.Created, order.Cancelled),
			changed(first, order.Processing, order.PartiallyFulfilled),
		}

		publisher := new(MockPublisher)
		cache := new(MockStatusCache)
		mock.InOrder(
			publisher.On("PublishStatusChanged", ctx, events[0]).Return(nil).Once(),
			publisher.On("PublishStatusChanged", ctx, events[1]).Return(nil).Once(),
			publisher.On("PublishStatusChanged", ctx, events[2]).Return(nil).Once(),
			cache.On("Set", ctx, first, order.PartiallyFulfilled).Return(nil).Once(),
			cache.On("Set", ctx, second, order.Cancelled).Return(nil).Once(),
		)

		h := eventhandlers.NewOrderStatusChangedHandler(publisher, cache, discardLogger())
		h.HandleOrderEvents(ctx, events)

		publisher.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("should keep going when publishing fails", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		event := changed(id, order.Created, order.Confirmed)

		publisher := new(MockPublisher)
		cache := new(MockStatusCache)
		publisher.On("PublishStatusChanged", ctx, event).Return(errors.New("broker unavailable")).Once()
		cache.On("Set", ctx, id, order.Confirmed).Return(errors.New("redis unavailable")).Once()

		h := eventhandlers.NewOrderStatusChangedHandler(publisher, cache, discardLogger())
		h.HandleOrderEvents(ctx, []order.StatusChanged{event})

		publisher.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("should do nothing without events", func(t *testing.T) {
		publisher := new(MockPublisher)
		cache := new(MockStatusCache)

		h := eventhandlers.NewOrderStatusChangedHandler(publisher, cache, discardLogger())
		h.HandleOrderEvents(t.Context(), nil)

		publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}
