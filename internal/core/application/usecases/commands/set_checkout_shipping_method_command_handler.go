package commands

import (
	"context"
)

// SetCheckoutShippingMethodCommandHandler applies a shipping method to a checkout.
// The method must cover the checkout's shipping country and its price or weight limits.
type SetCheckoutShippingMethodCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewSetCheckoutShippingMethodCommandHandler(uowFactory CheckoutUoWFactory) SetCheckoutShippingMethodCommandHandler {
	return SetCheckoutShippingMethodCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetCheckoutShippingMethodCommandHandler) Handle(ctx context.Context, cmd SetCheckoutShippingMethodCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checkoutRepo := uow.CheckoutRepository()
	c, err := checkoutRepo.GetForUpdate(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	method, err := uow.ShippingMethodRepository().Get(ctx, cmd.ShippingMethodID())
	if err != nil {
		return err
	}

	if err = c.SetShippingMethod(method); err != nil {
		return err
	}

	if err = checkoutRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
