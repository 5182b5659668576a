package commands

import (
	"context"

	"shop/internal/core/domain/model/order"
)

// FulfillmentCommandHandler edits the fulfillments of an order. Every method locks
// the order for the duration of its transaction.
//
// Example:
//
//	handler := NewFulfillmentCommandHandler(uowFactory)
//	ref := FulfillmentRef{OrderID: orderID, FulfillmentID: fulfillmentID}
//
//	cmd, _ := NewCompleteFulfillmentCommand(ref)
//	if err := handler.Complete(ctx, cmd); err != nil {
//	    return err
//	}
type FulfillmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewFulfillmentCommandHandler(uowFactory OrderUoWFactory) FulfillmentCommandHandler {
	return FulfillmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// AddLine reserves a quantity of an order line in the fulfillment. Adding a line the
// fulfillment already holds is a no-op.
func (h *FulfillmentCommandHandler) AddLine(ctx context.Context, cmd AddFulfillmentLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.change(ctx, cmd.Ref(), func(o *order.Order, f *order.Fulfillment) error {
		line, err := findOrderLine(o, cmd.OrderLineID())
		if err != nil {
			return err
		}
		_, err = f.AddLine(line, cmd.Quantity())
		return err
	})
}

// ChangeLineQuantity replaces the quantity of a fulfillment line. When the new quantity
// does not fit, the line keeps its previous reservation.
func (h *FulfillmentCommandHandler) ChangeLineQuantity(ctx context.Context, cmd ChangeFulfillmentLineQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.change(ctx, cmd.Ref(), func(_ *order.Order, f *order.Fulfillment) error {
		fl, err := findFulfillmentLine(f, cmd.LineID())
		if err != nil {
			return err
		}
		return fl.SetQuantity(cmd.Quantity())
	})
}

func (h *FulfillmentCommandHandler) RemoveLine(ctx context.Context, cmd RemoveFulfillmentLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.change(ctx, cmd.Ref(), func(_ *order.Order, f *order.Fulfillment) error {
		fl, err := findFulfillmentLine(f, cmd.LineID())
		if err != nil {
			return err
		}
		_, err = f.RemoveLine(fl)
		return err
	})
}

func (h *FulfillmentCommandHandler) Complete(ctx context.Context, cmd CompleteFulfillmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.change(ctx, cmd.Ref(), func(_ *order.Order, f *order.Fulfillment) error {
		_, err := f.Complete()
		return err
	})
}

func (h *FulfillmentCommandHandler) Remove(ctx context.Context, cmd RemoveFulfillmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.change(ctx, cmd.Ref(), func(o *order.Order, f *order.Fulfillment) error {
		_, err := o.RemoveFulfillment(f)
		return err
	})
}

func (h *FulfillmentCommandHandler) SetTrackingNumber(ctx context.Context, cmd SetFulfillmentTrackingNumberCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.change(ctx, cmd.Ref(), func(_ *order.Order, f *order.Fulfillment) error {
		return f.SetTrackingNumber(cmd.TrackingNumber())
	})
}

func (h *FulfillmentCommandHandler) change(
	ctx context.Context,
	ref FulfillmentRef,
	apply func(o *order.Order, f *order.Fulfillment) error,
) error {
	return changeOrder(ctx, h.uowFactory, ref.OrderID, func(o *order.Order) error {
		f, err := findFulfillment(o, ref.FulfillmentID)
		if err != nil {
			return err
		}
		return apply(o, f)
	})
}
