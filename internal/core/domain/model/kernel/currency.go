package kernel

import (
	"fmt"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"

	"golang.org/x/text/currency"
)

// ErrCurrencyIsNotConstructed is returned when validating a zero-value Currency.
var ErrCurrencyIsNotConstructed = errs.NewValueIsRequiredError("currency must be created via NewCurrency")

// Currency is an ISO 4217 currency code. Amounts across the shop are int64 minor units
// (cents) of the checkout's currency.
type Currency struct { //nolint:recvcheck //using for validation
	unit  currency.Unit
	guard guard.ConstructorGuard
}

// NewCurrency parses an ISO 4217 code such as "USD" or "eur".
func NewCurrency(code string) (Currency, error) {
	if code == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q: %w", code, err))
	}
	return Currency{unit: unit, guard: guard.NewConstructorGuard()}, nil
}

// Validate fails for a zero-value Currency.
func (c Currency) Validate() error {
	return c.guard.Validate(ErrCurrencyIsNotConstructed)
}

// Code returns the upper case ISO code.
func (c Currency) Code() string {
	if c.Validate() != nil {
		return ""
	}
	return c.unit.String()
}

func (c Currency) String() string {
	return c.Code()
}

// IsEqual compares two currencies by code.
func (c Currency) IsEqual(other Currency) bool {
	return c.Code() == other.Code()
}
