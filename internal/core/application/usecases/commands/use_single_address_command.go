package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrUseSingleAddressCommandIsNotConstructed = errors.New(
	"UseSingleAddressCommand must be created via NewUseSingleAddressCommand constructor",
)

// UseSingleAddressCommand switches a checkout between shipping to its billing
// address and using a separate shipping address.
type UseSingleAddressCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	enabled    bool

	guard guard.ConstructorGuard
}

func NewUseSingleAddressCommand(customerID kernel.UUID, enabled bool) (UseSingleAddressCommand, error) {
	if err := customerID.Validate(); err != nil {
		return UseSingleAddressCommand{}, err
	}
	return UseSingleAddressCommand{customerID: customerID, enabled: enabled, guard: guard.NewConstructorGuard()}, nil
}

func (c UseSingleAddressCommand) Validate() error {
	return c.guard.Validate(ErrUseSingleAddressCommandIsNotConstructed)
}

func (c UseSingleAddressCommand) CustomerID() kernel.UUID { return c.customerID }
func (c UseSingleAddressCommand) Enabled() bool           { return c.enabled }
