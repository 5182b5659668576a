package commands

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrCreateFulfillmentCommandIsNotConstructed = errors.New(
	"CreateFulfillmentCommand must be created via NewCreateFulfillmentCommand constructor",
)

// FulfillmentLineInput is a quantity of an order line to put into a fulfillment.
type FulfillmentLineInput struct {
	OrderLineID kernel.UUID
	Quantity    int
}

// CreateFulfillmentCommand opens a fulfillment on an order and reserves the given
// quantities of its lines.
//
// Example:
//
//	cmd, err := NewCreateFulfillmentCommand(orderID, []FulfillmentLineInput{
//	    {OrderLineID: lineID, Quantity: 2},
//	})
//	if err != nil {
//	    return err
//	}
//
//	fulfillmentID, err := NewCreateFulfillmentCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateFulfillmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []FulfillmentLineInput

	guard guard.ConstructorGuard
}

// NewCreateFulfillmentCommand accepts an empty lines list; lines can be added later.
func NewCreateFulfillmentCommand(orderID kernel.UUID, lines []FulfillmentLineInput) (CreateFulfillmentCommand, error) {
	problems := []error{orderID.Validate()}
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		problems = append(problems, l.OrderLineID.Validate(), validateQuantity(l.Quantity))
		if _, dup := seen[l.OrderLineID]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("fulfillment lines",
				fmt.Errorf("order line %s is listed twice", l.OrderLineID)))
		}
		seen[l.OrderLineID] = struct{}{}
	}
	if err := errors.Join(problems...); err != nil {
		return CreateFulfillmentCommand{}, err
	}

	return CreateFulfillmentCommand{
		orderID: orderID,
		lines:   append([]FulfillmentLineInput(nil), lines...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateFulfillmentCommandIsNotConstructed)
}

func (c CreateFulfillmentCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreateFulfillmentCommand) Lines() []FulfillmentLineInput {
	return append([]FulfillmentLineInput(nil), c.lines...)
}
