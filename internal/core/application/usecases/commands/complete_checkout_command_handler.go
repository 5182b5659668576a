package commands

import (
	"context"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/payment"
	"shop/internal/pkg/errs"
)

// CompleteCheckoutCommandHandler completes a checkout inside one transaction: the
// order is created, the customer's address book and default payment method are
// updated, the payment is captured and the checkout is deleted.
//
// Example:
//
//	handler := NewCompleteCheckoutCommandHandler(uowFactory)
//	cmd, _ := NewCompleteCheckoutCommand(customerID)
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
type CompleteCheckoutCommandHandler struct {
	uowFactory CompleteCheckoutUoWFactory
}

func NewCompleteCheckoutCommandHandler(uowFactory CompleteCheckoutUoWFactory) CompleteCheckoutCommandHandler {
	return CompleteCheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the created order.
//
// The selected payment must cover the current checkout total. A checkout without a
// selected payment is paid with checkout.FreePayment, which is only accepted when its
// total is zero.
func (h *CompleteCheckoutCommandHandler) Handle(ctx context.Context, cmd CompleteCheckoutCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checkoutRepo := uow.CheckoutRepository()
	c, err := checkoutRepo.GetForUpdate(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	customer, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	var (
		pay      checkout.Payment = checkout.FreePayment
		captured *payment.Payment
	)
	if details, ok := c.Payment(); ok {
		captured, err = uow.PaymentRepository().Get(ctx, details.ID)
		if err != nil {
			return kernel.UUID{}, err
		}
		if captured.CapturedAmount() != c.TotalPrice() {
			return kernel.UUID{}, errs.NewDomainRuleViolationError("checkout", c.CustomerID(),
				"payment %s covers %d, checkout total is %d", captured.ID(), captured.CapturedAmount(), c.TotalPrice())
		}
		pay = captured
	} else if c.TotalPrice() > 0 {
		return kernel.UUID{}, errs.NewDomainRuleViolationError("checkout", c.CustomerID(),
			"checkout total %d requires a payment", c.TotalPrice())
	}

	o, err := c.Complete(customer, pay)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.CustomerRepository().Update(ctx, customer); err != nil {
		return kernel.UUID{}, err
	}
	if captured != nil {
		if err = uow.PaymentRepository().Update(ctx, captured); err != nil {
			return kernel.UUID{}, err
		}
	}
	if err = checkoutRepo.Delete(ctx, c.CustomerID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
