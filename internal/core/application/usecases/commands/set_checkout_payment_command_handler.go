package commands

import (
	"context"

	"shop/internal/core/domain/model/payment"
)

// SetCheckoutPaymentCommandHandler creates a pending payment for the checkout total
// and selects it. A payment selected earlier and still pending is cancelled.
type SetCheckoutPaymentCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewSetCheckoutPaymentCommandHandler(uowFactory CheckoutUoWFactory) SetCheckoutPaymentCommandHandler {
	return SetCheckoutPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetCheckoutPaymentCommandHandler) Handle(ctx context.Context, cmd SetCheckoutPaymentCommand) error {
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
	paymentRepo := uow.PaymentRepository()

	c, err := checkoutRepo.GetForUpdate(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if previous, ok := c.Payment(); ok {
		old, getErr := paymentRepo.Get(ctx, previous.ID)
		if getErr != nil {
			return getErr
		}
		if old.Status() == payment.Pending {
			if err = old.Cancel(); err != nil {
				return err
			}
			if err = paymentRepo.Update(ctx, old); err != nil {
				return err
			}
		}
	}

	p, err := payment.NewPayment(cmd.PaymentID(), c.CustomerID(), cmd.Token(), cmd.PaymentMethodID(),
		c.Currency(), c.TotalPrice())
	if err != nil {
		return err
	}
	if err = paymentRepo.Add(ctx, p); err != nil {
		return err
	}

	if err = c.SetPayment(p); err != nil {
		return err
	}
	c.SetSavePaymentMethodAsDefault(cmd.SaveMethodAsDefault())

	if err = checkoutRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
