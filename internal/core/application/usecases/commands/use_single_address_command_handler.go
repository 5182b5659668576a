package commands

import (
	"context"
)

type UseSingleAddressCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewUseSingleAddressCommandHandler(uowFactory CheckoutUoWFactory) UseSingleAddressCommandHandler {
	return UseSingleAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle toggles single address mode. Enabling it promotes a previously entered
// shipping address to the billing address.
func (h *UseSingleAddressCommandHandler) Handle(ctx context.Context, cmd UseSingleAddressCommand) error {
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

	c.UseSingleAddress(cmd.Enabled())

	if err = checkoutRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
