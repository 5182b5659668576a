package commands

import (
	"errors"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	ErrAddFulfillmentLineCommandIsNotConstructed = errors.New(
		"AddFulfillmentLineCommand must be created via NewAddFulfillmentLineCommand constructor",
	)
	ErrChangeFulfillmentLineQuantityCommandIsNotConstructed = errors.New(
		"ChangeFulfillmentLineQuantityCommand must be created via NewChangeFulfillmentLineQuantityCommand constructor",
	)
	ErrRemoveFulfillmentLineCommandIsNotConstructed = errors.New(
		"RemoveFulfillmentLineCommand must be created via NewRemoveFulfillmentLineCommand constructor",
	)
	ErrSetFulfillmentTrackingNumberCommandIsNotConstructed = errors.New(
		"SetFulfillmentTrackingNumberCommand must be created via NewSetFulfillmentTrackingNumberCommand constructor",
	)
)

// FulfillmentRef addresses a fulfillment of an order.
type FulfillmentRef struct {
	OrderID       kernel.UUID
	FulfillmentID kernel.UUID
}

func (r FulfillmentRef) validate() error {
	return errors.Join(r.OrderID.Validate(), r.FulfillmentID.Validate())
}

// AddFulfillmentLineCommand reserves a quantity of an order line in an open fulfillment.
type AddFulfillmentLineCommand struct { //nolint:recvcheck //using for validation
	ref         FulfillmentRef
	orderLineID kernel.UUID
	quantity    int

	guard guard.ConstructorGuard
}

func NewAddFulfillmentLineCommand(ref FulfillmentRef, orderLineID kernel.UUID, quantity int) (AddFulfillmentLineCommand, error) {
	if err := errors.Join(ref.validate(), orderLineID.Validate(), validateQuantity(quantity)); err != nil {
		return AddFulfillmentLineCommand{}, err
	}
	return AddFulfillmentLineCommand{
		ref:         ref,
		orderLineID: orderLineID,
		quantity:    quantity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddFulfillmentLineCommand) Validate() error {
	return c.guard.Validate(ErrAddFulfillmentLineCommandIsNotConstructed)
}

func (c AddFulfillmentLineCommand) Ref() FulfillmentRef      { return c.ref }
func (c AddFulfillmentLineCommand) OrderLineID() kernel.UUID { return c.orderLineID }
func (c AddFulfillmentLineCommand) Quantity() int            { return c.quantity }

// ChangeFulfillmentLineQuantityCommand replaces the reserved quantity of a fulfillment line.
type ChangeFulfillmentLineQuantityCommand struct { //nolint:recvcheck //using for validation
	ref      FulfillmentRef
	lineID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewChangeFulfillmentLineQuantityCommand(
	ref FulfillmentRef,
	lineID kernel.UUID,
	quantity int,
) (ChangeFulfillmentLineQuantityCommand, error) {
	if err := errors.Join(ref.validate(), lineID.Validate(), validateQuantity(quantity)); err != nil {
		return ChangeFulfillmentLineQuantityCommand{}, err
	}
	return ChangeFulfillmentLineQuantityCommand{
		ref:      ref,
		lineID:   lineID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeFulfillmentLineQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeFulfillmentLineQuantityCommandIsNotConstructed)
}

func (c ChangeFulfillmentLineQuantityCommand) Ref() FulfillmentRef { return c.ref }
func (c ChangeFulfillmentLineQuantityCommand) LineID() kernel.UUID { return c.lineID }
func (c ChangeFulfillmentLineQuantityCommand) Quantity() int       { return c.quantity }

// RemoveFulfillmentLineCommand drops a line from a fulfillment and releases its quantity.
type RemoveFulfillmentLineCommand struct { //nolint:recvcheck //using for validation
	ref    FulfillmentRef
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveFulfillmentLineCommand(ref FulfillmentRef, lineID kernel.UUID) (RemoveFulfillmentLineCommand, error) {
	if err := errors.Join(ref.validate(), lineID.Validate()); err != nil {
		return RemoveFulfillmentLineCommand{}, err
	}
	return RemoveFulfillmentLineCommand{ref: ref, lineID: lineID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveFulfillmentLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFulfillmentLineCommandIsNotConstructed)
}

func (c RemoveFulfillmentLineCommand) Ref() FulfillmentRef { return c.ref }
func (c RemoveFulfillmentLineCommand) LineID() kernel.UUID { return c.lineID }

// SetFulfillmentTrackingNumberCommand records the carrier tracking number of a fulfillment.
type SetFulfillmentTrackingNumberCommand struct { //nolint:recvcheck //using for validation
	ref            FulfillmentRef
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewSetFulfillmentTrackingNumberCommand(ref FulfillmentRef, trackingNumber string) (SetFulfillmentTrackingNumberCommand, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	var numberErr error
	if trackingNumber == "" {
		numberErr = errs.NewValueIsRequiredError("tracking number")
	}
	if err := errors.Join(ref.validate(), numberErr); err != nil {
		return SetFulfillmentTrackingNumberCommand{}, err
	}
	return SetFulfillmentTrackingNumberCommand{
		ref:            ref,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c SetFulfillmentTrackingNumberCommand) Validate() error {
	return c.guard.Validate(ErrSetFulfillmentTrackingNumberCommandIsNotConstructed)
}

func (c SetFulfillmentTrackingNumberCommand) Ref() FulfillmentRef    { return c.ref }
func (c SetFulfillmentTrackingNumberCommand) TrackingNumber() string { return c.trackingNumber }

var (
	ErrCompleteFulfillmentCommandIsNotConstructed = errors.New(
		"CompleteFulfillmentCommand must be created via NewCompleteFulfillmentCommand constructor",
	)
	ErrRemoveFulfillmentCommandIsNotConstructed = errors.New(
		"RemoveFulfillmentCommand must be created via NewRemoveFulfillmentCommand constructor",
	)
)

// CompleteFulfillmentCommand ships a fulfillment: its reserved quantities become fulfilled.
type CompleteFulfillmentCommand struct { //nolint:recvcheck //using for validation
	ref FulfillmentRef

	guard guard.ConstructorGuard
}

func NewCompleteFulfillmentCommand(ref FulfillmentRef) (CompleteFulfillmentCommand, error) {
	if err := ref.validate(); err != nil {
		return CompleteFulfillmentCommand{}, err
	}
	return CompleteFulfillmentCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteFulfillmentCommandIsNotConstructed)
}

func (c CompleteFulfillmentCommand) Ref() FulfillmentRef { return c.ref }

// RemoveFulfillmentCommand deletes a fulfillment and releases everything it holds.
type RemoveFulfillmentCommand struct { //nolint:recvcheck //using for validation
	ref FulfillmentRef

	guard guard.ConstructorGuard
}

func NewRemoveFulfillmentCommand(ref FulfillmentRef) (RemoveFulfillmentCommand, error) {
	if err := ref.validate(); err != nil {
		return RemoveFulfillmentCommand{}, err
	}
	return RemoveFulfillmentCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFulfillmentCommandIsNotConstructed)
}

func (c RemoveFulfillmentCommand) Ref() FulfillmentRef { return c.ref }
