package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrSetCheckoutShippingMethodCommandIsNotConstructed = errors.New(
	"SetCheckoutShippingMethodCommand must be created via NewSetCheckoutShippingMethodCommand constructor",
)

// SetCheckoutShippingMethodCommand selects a shipping method for a checkout.
type SetCheckoutShippingMethodCommand struct { //nolint:recvcheck //using for validation
	customerID       kernel.UUID
	shippingMethodID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSetCheckoutShippingMethodCommand(customerID, shippingMethodID kernel.UUID) (SetCheckoutShippingMethodCommand, error) {
	if err := errors.Join(customerID.Validate(), shippingMethodID.Validate()); err != nil {
		return SetCheckoutShippingMethodCommand{}, err
	}
	return SetCheckoutShippingMethodCommand{
		customerID:       customerID,
		shippingMethodID: shippingMethodID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c SetCheckoutShippingMethodCommand) Validate() error {
	return c.guard.Validate(ErrSetCheckoutShippingMethodCommandIsNotConstructed)
}

func (c SetCheckoutShippingMethodCommand) CustomerID() kernel.UUID       { return c.customerID }
func (c SetCheckoutShippingMethodCommand) ShippingMethodID() kernel.UUID { return c.shippingMethodID }
