// Package payment holds the Payment aggregate a checkout is paid with. Talking to a
// payment gateway is outside of it; Capture and Cancel only record the outcome.
package payment

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

const paymentAggregate = "payment"

// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is an authorized charge of a customer for the amount of their checkout.
type Payment struct {
	id              kernel.UUID
	customerID      kernel.UUID
	token           string
	paymentMethodID string
	currency        kernel.Currency
	amount          int64
	status          Status
	guard           guard.ConstructorGuard
}

// NewPayment creates a Pending payment.
func NewPayment(
	id, customerID kernel.UUID,
	token, paymentMethodID string,
	currency kernel.Currency,
	amount int64,
) (*Payment, error) {
	return RestorePayment(id, customerID, token, paymentMethodID, currency, amount, Pending)
}

// RestorePayment rebuilds a payment from storage.
func RestorePayment(
	id, customerID kernel.UUID,
	token, paymentMethodID string,
	currency kernel.Currency,
	amount int64,
	status Status,
) (*Payment, error) {
	var problems []error
	problems = append(problems, id.Validate(), customerID.Validate(), currency.Validate(), status.Validate())
	token = strings.TrimSpace(token)
	if token == "" {
		problems = append(problems, errs.NewValueIsRequiredError("token"))
	}
	if amount < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount)))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Payment{
		id:              id,
		customerID:      customerID,
		token:           token,
		paymentMethodID: strings.TrimSpace(paymentMethodID),
		currency:        currency,
		amount:          amount,
		status:          status,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the payment was built by one of its constructors.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID           { return p.id }
func (p *Payment) CustomerID() kernel.UUID   { return p.customerID }
func (p *Payment) Token() string             { return p.token }
func (p *Payment) PaymentMethodID() string   { return p.paymentMethodID }
func (p *Payment) Currency() kernel.Currency { return p.currency }
func (p *Payment) Amount() int64             { return p.amount }
func (p *Payment) Status() Status            { return p.status }
func (p *Payment) IsFree() bool              { return false }

// CapturedAmount is the amount charged on capture. Orders are created before the
// capture happens, so it is reported for Pending payments too.
func (p *Payment) CapturedAmount() int64 {
	if p.status == Cancelled {
		return 0
	}
	return p.amount
}

// BelongsToCheckout reports whether the payment was made by the checkout's customer.
func (p *Payment) BelongsToCheckout(c *checkout.Checkout) bool {
	return c != nil && p.customerID.IsEqual(c.CustomerID())
}

// Capture charges a Pending payment.
func (p *Payment) Capture() error {
	if p.status != Pending {
		return errs.NewDomainRuleViolationError(paymentAggregate, p.id, "payment in %s status cannot be captured", p.status)
	}
	p.status = Captured
	return nil
}

// Cancel voids a Pending payment.
func (p *Payment) Cancel() error {
	if p.status != Pending {
		return errs.NewDomainRuleViolationError(paymentAggregate, p.id, "payment in %s status cannot be cancelled", p.status)
	}
	p.status = Cancelled
	return nil
}
