package commands

import (
	"context"

	"shop/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies a status transition to an order.
// Transitions the current status does not allow fail with a domain rule violation.
//
// Example:
//
//	cmd, _ := NewChangeOrderStatusCommand(orderID, CancelOrder)
//	handler := NewChangeOrderStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		switch cmd.Action() {
		case ConfirmOrder:
			return o.Confirm()
		case FulfillOrder:
			return o.Fulfill()
		case UndoFulfillOrder:
			return o.UndoFulfill()
		case CancelOrder:
			return o.Cancel()
		default:
			return o.Reinstate()
		}
	})
}
