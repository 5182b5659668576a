package commands

import (
	"context"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
)

// changeOrder locks the order, applies change and saves it in one transaction.
// Holding the row lock serializes all commands on the same order.
func changeOrder(ctx context.Context, uowFactory OrderUoWFactory, orderID kernel.UUID, change func(o *order.Order) error) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = change(o); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func findFulfillment(o *order.Order, id kernel.UUID) (*order.Fulfillment, error) {
	f, ok := o.Fulfillment(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("fulfillment", id)
	}
	return f, nil
}

func findFulfillmentLine(f *order.Fulfillment, id kernel.UUID) (*order.FulfillmentLine, error) {
	fl, ok := f.Line(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("fulfillment line", id)
	}
	return fl, nil
}

func findOrderLine(o *order.Order, id kernel.UUID) (*order.Line, error) {
	line, ok := o.Line(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order line", id)
	}
	return line, nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
