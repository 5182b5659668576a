package order_test

import (
	"testing"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("should create order in created status", func(t *testing.T) {
		id := kernel.NewUUID()
		details := testDetails(t)

		o, err := order.NewOrder(id, details, []order.LineSpec{shippedSpec(10)})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, "jane@example.com", o.Email())
		assert.Equal(t, "EUR", o.Currency().Code())
		assert.True(t, o.IsShippingRequired())
		require.Len(t, o.Lines(), 1)

		line := o.Lines()[0]
		assert.Equal(t, 10, line.Quantity())
		assert.Equal(t, 0, line.FulfilledQuantity())
		assert.Equal(t, 0, line.ReservedQuantity())
		assert.Equal(t, 10, line.AssignableQuantity())
		assert.False(t, line.ID().IsZero())
	})

	t.Run("should start fulfilled when nothing needs shipping", func(t *testing.T) {
		o := newTestOrder(t, digitalSpec(2), digitalSpec(1))

		assert.Equal(t, order.Fulfilled, o.Status())
		assert.Equal(t, order.Created, o.PreviousStatus())
		assert.False(t, o.IsShippingRequired())
		for _, line := range o.Lines() {
			assert.True(t, line.IsFulfilled())
			assert.Equal(t, 0, line.AssignableQuantity())
		}
	})

	t.Run("should fulfil digital lines of a mixed order", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(3), digitalSpec(2))

		assert.Equal(t, order.Created, o.Status())
		lines := o.Lines()
		assert.Equal(t, 0, lines[0].FulfilledQuantity())
		assert.Equal(t, 2, lines[1].FulfilledQuantity())
	})

	t.Run("should fail without lines", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), testDetails(t), nil)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, order.ErrLinesAreRequired)
	})

	t.Run("should fail with non positive quantity", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), testDetails(t), []order.LineSpec{shippedSpec(0)})

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should join validation errors", func(t *testing.T) {
		details := testDetails(t)
		details.Email = ""
		details.CustomerID = kernel.UUID{}

		o, err := order.NewOrder(kernel.UUID{}, details, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "order lines")
	})

	t.Run("should not alias caller details", func(t *testing.T) {
		details := testDetails(t)
		paymentID := kernel.NewUUID()
		details.PaymentID = &paymentID

		o, err := order.NewOrder(kernel.NewUUID(), details, []order.LineSpec{shippedSpec(1)})
		require.NoError(t, err)

		paymentID = kernel.NewUUID()
		got, ok := o.PaymentID()
		require.True(t, ok)
		assert.False(t, got.IsEqual(paymentID))
	})
}

func TestOrder_ZeroValue(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_TotalPrice(t *testing.T) {
	details := testDetails(t)
	method, err := kernel.NewShippingMethodDetails("DHL", 700, kernel.PriceBased)
	require.NoError(t, err)
	details.ShippingMethod = &method

	o, err := order.NewOrder(kernel.NewUUID(), details, []order.LineSpec{shippedSpec(2), digitalSpec(1)})
	require.NoError(t, err)

	assert.Equal(t, int64(2*1500+999+700), o.TotalPrice())
	got, ok := o.ShippingMethod()
	require.True(t, ok)
	assert.Equal(t, "DHL", got.Name())
	_, ok = o.ShippingAddress()
	assert.False(t, ok)
}

func TestOrder_Confirm(t *testing.T) {
	o := newTestOrder(t, shippedSpec(1))

	require.NoError(t, o.Confirm())
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Equal(t, order.Created, o.PreviousStatus())

	err := o.Confirm()
	require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
	assert.Contains(t, err.Error(), "order in Confirmed status cannot be confirmed")
}

func TestOrder_CancelAndReinstate(t *testing.T) {
	t.Run("should round trip to the previous status", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))
		require.NoError(t, o.Confirm())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.Confirmed, o.PreviousStatus())

		require.NoError(t, o.Reinstate())
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("should refuse a second cancel", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))
		require.NoError(t, o.Cancel())

		err := o.Cancel()
		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should refuse reinstating an active order", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))
		require.ErrorIs(t, o.Reinstate(), errs.ErrDomainRuleViolation)
	})

	t.Run("should keep previous status when cancelling a fulfilled order", func(t *testing.T) {
		o := newTestOrder(t, digitalSpec(1))
		require.Equal(t, order.Fulfilled, o.Status())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Created, o.PreviousStatus())

		require.NoError(t, o.Reinstate())
		assert.Equal(t, order.Created, o.Status())
	})
}

func TestOrder_FulfillAndUndo(t *testing.T) {
	t.Run("should fulfil once every shipped line is fulfilled", func(t *testing.T) {
		o, f := newProcessingOrder(t, shippedSpec(2))
		line := o.Lines()[0]

		_, err := f.AddLine(line, 2)
		require.NoError(t, err)
		_, err = f.Complete()
		require.NoError(t, err)
		require.Equal(t, order.PartiallyFulfilled, o.Status())

		require.NoError(t, o.Fulfill())
		assert.Equal(t, order.Fulfilled, o.Status())
		assert.Equal(t, order.PartiallyFulfilled, o.PreviousStatus())

		require.NoError(t, o.UndoFulfill())
		assert.Equal(t, order.PartiallyFulfilled, o.Status())
	})

	t.Run("should refuse while lines are open", func(t *testing.T) {
		o, _ := newProcessingOrder(t, shippedSpec(2))

		err := o.Fulfill()
		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		assert.Equal(t, order.Processing, o.Status())
	})

	t.Run("should refuse a created order", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))
		require.ErrorIs(t, o.Fulfill(), errs.ErrDomainRuleViolation)
	})

	t.Run("should refuse undo of an unfulfilled order", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))
		require.ErrorIs(t, o.UndoFulfill(), errs.ErrDomainRuleViolation)
	})
}

func TestOrder_NewFulfillment(t *testing.T) {
	t.Run("should move a confirmed order to processing", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))
		require.NoError(t, o.Confirm())

		f, err := o.NewFulfillment()

		require.NoError(t, err)
		assert.True(t, f.BelongsTo(o))
		assert.False(t, f.IsCompleted())
		assert.Equal(t, order.Processing, o.Status())
		assert.Equal(t, order.Confirmed, o.PreviousStatus())
		got, ok := o.Fulfillment(f.ID())
		require.True(t, ok)
		assert.Same(t, f, got)
	})

	t.Run("should refuse an order that is not processable", func(t *testing.T) {
		o := newTestOrder(t, shippedSpec(1))

		f, err := o.NewFulfillment()

		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		assert.Nil(t, f)
		assert.Empty(t, o.Fulfillments())
	})
}

func TestOrder_RemoveFulfillment(t *testing.T) {
	t.Run("should release reservations of an open fulfillment", func(t *testing.T) {
		o, f := newProcessingOrder(t, shippedSpec(5))
		line := o.Lines()[0]
		_, err := f.AddLine(line, 3)
		require.NoError(t, err)

		affected, err := o.RemoveFulfillment(f)

		require.NoError(t, err)
		require.Len(t, affected, 1)
		assert.Same(t, line, affected[0])
		assert.Equal(t, 0, line.ReservedQuantity())
		assert.Equal(t, 5, line.AssignableQuantity())
		assert.Empty(t, o.Fulfillments())
	})

	t.Run("should take back fulfilled quantity of a completed fulfillment", func(t *testing.T) {
		o, f := newProcessingOrder(t, shippedSpec(5))
		line := o.Lines()[0]
		_, err := f.AddLine(line, 3)
		require.NoError(t, err)
		_, err = f.Complete()
		require.NoError(t, err)

		_, err = o.RemoveFulfillment(f)

		require.NoError(t, err)
		assert.Equal(t, 0, line.FulfilledQuantity())
		assert.Equal(t, 5, line.AssignableQuantity())
	})

	t.Run("should ignore a fulfillment removed before", func(t *testing.T) {
		o, f := newProcessingOrder(t, shippedSpec(10))
		line := o.Lines()[0]
		_, err := f.AddLine(line, 3)
		require.NoError(t, err)
		second, err := o.NewFulfillment()
		require.NoError(t, err)
		_, err = second.AddLine(line, 4)
		require.NoError(t, err)

		_, err = o.RemoveFulfillment(f)
		require.NoError(t, err)
		affected, err := o.RemoveFulfillment(f)

		require.NoError(t, err)
		assert.Empty(t, affected)
		assert.Equal(t, 4, line.ReservedQuantity())
		assert.Len(t, o.Fulfillments(), 1)
	})

	t.Run("should refuse edits of a removed fulfillment", func(t *testing.T) {
		o, f := newProcessingOrder(t, shippedSpec(10))
		line := o.Lines()[0]
		fl, err := f.AddLine(line, 3)
		require.NoError(t, err)
		_, err = o.RemoveFulfillment(f)
		require.NoError(t, err)

		_, err = f.AddLine(line, 2)
		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		require.ErrorIs(t, fl.SetQuantity(2), errs.ErrDomainRuleViolation)
		_, err = f.Complete()
		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		assert.Equal(t, 0, line.ReservedQuantity())
		assert.Equal(t, 0, line.FulfilledQuantity())
	})

	t.Run("should ignore foreign fulfillments", func(t *testing.T) {
		o, _ := newProcessingOrder(t, shippedSpec(1))
		_, other := newProcessingOrder(t, shippedSpec(1))

		affected, err := o.RemoveFulfillment(other)

		require.NoError(t, err)
		assert.Nil(t, affected)
		assert.Len(t, o.Fulfillments(), 1)
	})
}
