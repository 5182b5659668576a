package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrCompleteCheckoutCommandIsNotConstructed = errors.New(
	"CompleteCheckoutCommand must be created via NewCompleteCheckoutCommand constructor",
)

// CompleteCheckoutCommand turns the customer's checkout into an order.
type CompleteCheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteCheckoutCommand(customerID kernel.UUID) (CompleteCheckoutCommand, error) {
	if err := customerID.Validate(); err != nil {
		return CompleteCheckoutCommand{}, err
	}
	return CompleteCheckoutCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCompleteCheckoutCommandIsNotConstructed)
}

func (c CompleteCheckoutCommand) CustomerID() kernel.UUID { return c.customerID }
