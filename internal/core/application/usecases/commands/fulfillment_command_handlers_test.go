package commands_test

import (
	"context"
	"errors"
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectOrderChange sets up a successful locked load, save and commit of o.
func expectOrderChange(ctx context.Context, uow *MockUoW, o *order.Order) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

// expectOrderRejected sets up a locked load of o that ends in a rollback.
func expectOrderRejected(ctx context.Context, uow *MockUoW, o *order.Order) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func openFulfillment(t *testing.T, o *order.Order, quantity int) (*order.Fulfillment, *order.FulfillmentLine) {
	t.Helper()
	f, err := o.NewFulfillment()
	require.NoError(t, err)
	fl, err := f.AddLine(o.Lines()[0], quantity)
	require.NoError(t, err)
	return f, fl
}

func TestCreateFulfillmentCommandHandler_Handle(t *testing.T) {
	t.Run("should reserve the requested quantities", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		line := o.Lines()[0]
		cmd, err := commands.NewCreateFulfillmentCommand(o.ID(), []commands.FulfillmentLineInput{
			{OrderLineID: line.ID(), Quantity: 2},
		})
		require.NoError(t, err)

		uow := newMockUoW()
		expectOrderChange(ctx, uow, o)

		h := commands.NewCreateFulfillmentCommandHandler(newOrderUoW(uow))
		id, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		f, ok := o.Fulfillment(id)
		require.True(t, ok)
		assert.Equal(t, 2, f.TotalQuantity())
		assert.Equal(t, 2, line.ReservedQuantity())
		assert.Equal(t, order.Processing, o.Status())
		uow.assertExpectations(t)
	})

	t.Run("should fail on an unknown order line", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		cmd, err := commands.NewCreateFulfillmentCommand(o.ID(), []commands.FulfillmentLineInput{
			{OrderLineID: kernel.NewUUID(), Quantity: 1},
		})
		require.NoError(t, err)

		uow := newMockUoW()
		expectOrderRejected(ctx, uow, o)

		h := commands.NewCreateFulfillmentCommandHandler(newOrderUoW(uow))
		id, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.True(t, id.IsZero())
		uow.assertExpectations(t)
	})

	t.Run("should fail when the quantity exceeds what is assignable", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		cmd, err := commands.NewCreateFulfillmentCommand(o.ID(), []commands.FulfillmentLineInput{
			{OrderLineID: o.Lines()[0].ID(), Quantity: 4},
		})
		require.NoError(t, err)

		uow := newMockUoW()
		expectOrderRejected(ctx, uow, o)

		h := commands.NewCreateFulfillmentCommandHandler(newOrderUoW(uow))
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		uow.assertExpectations(t)
	})

	t.Run("should propagate update errors", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		cmd, err := commands.NewCreateFulfillmentCommand(o.ID(), nil)
		require.NoError(t, err)

		uow := newMockUoW()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
			uow.orders.On("Update", mock.Anything, o).Return(errors.New("update error")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewCreateFulfillmentCommandHandler(newOrderUoW(uow))
		_, err = h.Handle(ctx, cmd)

		require.EqualError(t, err, "update error")
		uow.assertExpectations(t)
	})
}

func TestFulfillmentCommandHandler_AddLine(t *testing.T) {
	ctx := t.Context()
	o := newConfirmedOrder(t)
	f, err := o.NewFulfillment()
	require.NoError(t, err)
	line := o.Lines()[0]

	cmd, err := commands.NewAddFulfillmentLineCommand(
		commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: f.ID()}, line.ID(), 3)
	require.NoError(t, err)

	uow := newMockUoW()
	expectOrderChange(ctx, uow, o)

	h := commands.NewFulfillmentCommandHandler(newOrderUoW(uow))
	require.NoError(t, h.AddLine(ctx, cmd))

	assert.Equal(t, 3, line.ReservedQuantity())
	assert.Zero(t, line.AssignableQuantity())
	uow.assertExpectations(t)
}

func TestFulfillmentCommandHandler_ChangeLineQuantity(t *testing.T) {
	t.Run("should replace the reservation", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		f, fl := openFulfillment(t, o, 1)
		cmd, err := commands.NewChangeFulfillmentLineQuantityCommand(
			commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: f.ID()}, fl.ID(), 3)
		require.NoError(t, err)

		uow := newMockUoW()
		expectOrderChange(ctx, uow, o)

		h := commands.NewFulfillmentCommandHandler(newOrderUoW(uow))
		require.NoError(t, h.ChangeLineQuantity(ctx, cmd))

		assert.Equal(t, 3, fl.Quantity())
		assert.Equal(t, 3, fl.OrderLine().ReservedQuantity())
		uow.assertExpectations(t)
	})

	t.Run("should keep the reservation when the new quantity does not fit", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		f, fl := openFulfillment(t, o, 2)
		cmd, err := commands.NewChangeFulfillmentLineQuantityCommand(
			commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: f.ID()}, fl.ID(), 4)
		require.NoError(t, err)

		uow := newMockUoW()
		expectOrderRejected(ctx, uow, o)

		h := commands.NewFulfillmentCommandHandler(newOrderUoW(uow))
		err = h.ChangeLineQuantity(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDomainRuleViolation)
		assert.Equal(t, 2, fl.Quantity())
		assert.Equal(t, 2, fl.OrderLine().ReservedQuantity())
		uow.assertExpectations(t)
	})

	t.Run("should fail on an unknown fulfillment", func(t *testing.T) {
		ctx := t.Context()
		o := newConfirmedOrder(t)
		cmd, err := commands.NewChangeFulfillmentLineQuantityCommand(
			commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: kernel.NewUUID()}, kernel.NewUUID(), 1)
		require.NoError(t, err)

		uow := newMockUoW()
		expectOrderRejected(ctx, uow, o)

		h := commands.NewFulfillmentCommandHandler(newOrderUoW(uow))
		require.ErrorIs(t, h.ChangeLineQuantity(ctx, cmd), errs.ErrObjectNotFound)
		uow.assertExpectations(t)
	})
}

func TestFulfillmentCommandHandler_RemoveLine(t *testing.T) {
	ctx := t.Context()
	o := newConfirmedOrder(t)
	f, fl := openFulfillment(t, o, 2)
	cmd, err := commands.NewRemoveFulfillmentLineCommand(
		commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: f.ID()}, fl.ID())
	require.NoError(t, err)

	uow := newMockUoW()
	expectOrderChange(ctx, uow, o)

	h := commands.NewFulfillmentCommandHandler(newOrderUoW(uow))
	require.NoError(t, h.RemoveLine(ctx, cmd))

	assert.Empty(t, f.Lines())
	assert.Zero(t, o.Lines()[0].ReservedQuantity())
	uow.assertExpectations(t)
}

func TestFulfillmentCommandHandler_CompleteAndTrack(t *testing.T) {
	ctx := t.Context()
	o := newConfirmedOrder(t)
	f, _ := openFulfillment(t, o, 2)
	ref := commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: f.ID()}

	complete, err := commands.NewCompleteFulfillmentCommand(ref)
	require.NoError(t, err)
	track, err := commands.NewSetFulfillmentTrackingNumberCommand(ref, " 1Z999AA10123456784 ")
	require.NoError(t, err)

	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Twice()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewFulfillmentCommandHandler(factory)
	require.NoError(t, h.Complete(ctx, complete))
	require.NoError(t, h.SetTrackingNumber(ctx, track))

	line := o.Lines()[0]
	assert.True(t, f.IsCompleted())
	assert.Equal(t, "1Z999AA10123456784", f.TrackingNumber())
	assert.Equal(t, 2, line.FulfilledQuantity())
	assert.Zero(t, line.ReservedQuantity())
	assert.Equal(t, order.PartiallyFulfilled, o.Status())
	uow.assertExpectations(t)
	factory.AssertExpectations(t)
}

func TestFulfillmentCommandHandler_Remove(t *testing.T) {
	ctx := t.Context()
	o := newConfirmedOrder(t)
	f, _ := openFulfillment(t, o, 2)
	_, err := f.Complete()
	require.NoError(t, err)

	cmd, err := commands.NewRemoveFulfillmentCommand(commands.FulfillmentRef{OrderID: o.ID(), FulfillmentID: f.ID()})
	require.NoError(t, err)

	uow := newMockUoW()
	expectOrderChange(ctx, uow, o)

	h := commands.NewFulfillmentCommandHandler(newOrderUoW(uow))
	require.NoError(t, h.Remove(ctx, cmd))

	assert.Empty(t, o.Fulfillments())
	assert.Zero(t, o.Lines()[0].FulfilledQuantity())
	uow.assertExpectations(t)
}

func TestFulfillmentCommandHandler_RejectsUnconstructedCommands(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	h := commands.NewFulfillmentCommandHandler(factory)

	require.ErrorIs(t, h.AddLine(ctx, commands.AddFulfillmentLineCommand{}),
		commands.ErrAddFulfillmentLineCommandIsNotConstructed)
	require.ErrorIs(t, h.ChangeLineQuantity(ctx, commands.ChangeFulfillmentLineQuantityCommand{}),
		commands.ErrChangeFulfillmentLineQuantityCommandIsNotConstructed)
	require.ErrorIs(t, h.RemoveLine(ctx, commands.RemoveFulfillmentLineCommand{}),
		commands.ErrRemoveFulfillmentLineCommandIsNotConstructed)
	require.ErrorIs(t, h.Complete(ctx, commands.CompleteFulfillmentCommand{}),
		commands.ErrCompleteFulfillmentCommandIsNotConstructed)
	require.ErrorIs(t, h.Remove(ctx, commands.RemoveFulfillmentCommand{}),
		commands.ErrRemoveFulfillmentCommandIsNotConstructed)
	require.ErrorIs(t, h.SetTrackingNumber(ctx, commands.SetFulfillmentTrackingNumberCommand{}),
		commands.ErrSetFulfillmentTrackingNumberCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
