package commands

import (
	"errors"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrSetCheckoutPaymentCommandIsNotConstructed = errors.New(
	"SetCheckoutPaymentCommand must be created via NewSetCheckoutPaymentCommand constructor",
)

// SetCheckoutPaymentCommand registers a pending payment for the checkout total and
// selects it for the checkout.
//
// Example:
//
//	paymentID := kernel.NewUUID()
//	cmd, err := NewSetCheckoutPaymentCommand(customerID, paymentID, "tok_visa", "pm_card_4242", true)
//	if err != nil {
//	    return err
//	}
//	err = NewSetCheckoutPaymentCommandHandler(uowFactory).Handle(ctx, cmd)
type SetCheckoutPaymentCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	paymentID           kernel.UUID
	token               string
	paymentMethodID     string
	saveMethodAsDefault bool

	guard guard.ConstructorGuard
}

func NewSetCheckoutPaymentCommand(
	customerID, paymentID kernel.UUID,
	token, paymentMethodID string,
	saveMethodAsDefault bool,
) (SetCheckoutPaymentCommand, error) {
	cmd := SetCheckoutPaymentCommand{
		customerID:          customerID,
		paymentID:           paymentID,
		token:               strings.TrimSpace(token),
		paymentMethodID:     strings.TrimSpace(paymentMethodID),
		saveMethodAsDefault: saveMethodAsDefault,
		guard:               guard.NewConstructorGuard(),
	}

	var tokenErr error
	if cmd.token == "" {
		tokenErr = errs.NewValueIsRequiredError("payment token")
	}
	if err := errors.Join(customerID.Validate(), paymentID.Validate(), tokenErr); err != nil {
		return SetCheckoutPaymentCommand{}, err
	}

	return cmd, nil
}

func (c SetCheckoutPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSetCheckoutPaymentCommandIsNotConstructed)
}

func (c SetCheckoutPaymentCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c SetCheckoutPaymentCommand) PaymentID() kernel.UUID    { return c.paymentID }
func (c SetCheckoutPaymentCommand) Token() string             { return c.token }
func (c SetCheckoutPaymentCommand) PaymentMethodID() string   { return c.paymentMethodID }
func (c SetCheckoutPaymentCommand) SaveMethodAsDefault() bool { return c.saveMethodAsDefault }
