package commands

import (
	"context"
)

// SetCheckoutAddressCommandHandler applies an address to the customer's checkout.
// Setting either address drops the selected shipping method.
type SetCheckoutAddressCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewSetCheckoutAddressCommandHandler(uowFactory CheckoutUoWFactory) SetCheckoutAddressCommandHandler {
	return SetCheckoutAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetCheckoutAddressCommandHandler) Handle(ctx context.Context, cmd SetCheckoutAddressCommand) error {
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

	switch {
	case cmd.Kind() == BillingAddress && cmd.IsNew():
		err = c.AddAddress(cmd.Address())
	case cmd.Kind() == BillingAddress:
		err = c.SetAddress(cmd.Address())
	case cmd.IsNew():
		err = c.AddShippingAddress(cmd.Address())
	default:
		err = c.SetShippingAddress(cmd.Address())
	}
	if err != nil {
		return err
	}
	if cmd.SaveAddresses() {
		c.SetSaveCustomerAddresses(true)
	}

	if err = checkoutRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
