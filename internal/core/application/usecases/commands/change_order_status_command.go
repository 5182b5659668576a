package commands

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// OrderAction is a status transition requested for an order.
type OrderAction int

const (
	ConfirmOrder OrderAction = iota + 1
	FulfillOrder
	UndoFulfillOrder
	CancelOrder
	ReinstateOrder
)

var orderActionNames = map[OrderAction]string{
	ConfirmOrder:     "confirm",
	FulfillOrder:     "fulfill",
	UndoFulfillOrder: "undo-fulfill",
	CancelOrder:      "cancel",
	ReinstateOrder:   "reinstate",
}

func (a OrderAction) String() string {
	if name, ok := orderActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// OrderActionFromString parses the names returned by OrderAction.String.
func OrderActionFromString(s string) (OrderAction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for action, name := range orderActionNames {
		if name == s {
			return action, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("order action", fmt.Errorf("%q is not a known action", s))
}

// ChangeOrderStatusCommand asks for one status transition of an order.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  OrderAction

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID kernel.UUID, action OrderAction) (ChangeOrderStatusCommand, error) {
	var actionErr error
	if _, ok := orderActionNames[action]; !ok {
		actionErr = errs.NewValueIsInvalidError("order action")
	}
	if err := errors.Join(orderID.Validate(), actionErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{orderID: orderID, action: action, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Action() OrderAction  { return c.action }
