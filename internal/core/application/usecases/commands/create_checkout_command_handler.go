package commands

import (
	"context"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/pkg/errs"
)

// CreateCheckoutCommandHandler builds a checkout from catalog variants. A customer
// has at most one checkout, so a new one replaces the previous.
type CreateCheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewCreateCheckoutCommandHandler(uowFactory CheckoutUoWFactory) CreateCheckoutCommandHandler {
	return CreateCheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the variants, snapshots them into a new checkout and persists it.
func (h *CreateCheckoutCommandHandler) Handle(ctx context.Context, cmd CreateCheckoutCommand) error {
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

	variants, err := uow.VariantRepository().GetMany(ctx, cmd.VariantIDs())
	if err != nil {
		return err
	}

	inputs := cmd.Lines()
	if len(variants) != len(inputs) {
		return errs.NewObjectNotFoundError("variants", cmd.VariantIDs())
	}
	lines := make([]checkout.PreCheckoutLine, 0, len(inputs))
	for i, in := range inputs {
		line, lineErr := checkout.NewPreCheckoutLine(variants[i], in.Quantity)
		if lineErr != nil {
			return lineErr
		}
		lines = append(lines, line)
	}

	c, err := checkout.NewCheckout(cmd.CustomerID(), lines, cmd.Email(), cmd.Currency(), cmd.IPAddress(), cmd.MassUnit())
	if err != nil {
		return err
	}

	checkoutRepo := uow.CheckoutRepository()
	if err = checkoutRepo.Delete(ctx, cmd.CustomerID()); err != nil {
		return err
	}
	if err = checkoutRepo.Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
