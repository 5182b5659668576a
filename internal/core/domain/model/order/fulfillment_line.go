package order

import (
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

const fulfillmentLineAggregate = "fulfillment line"

// FulfillmentLine reserves part of one order Line for one Fulfillment.
// All movements of reserved and fulfilled quantity on a Line go through it:
//
//	create / SetQuantity    reserved += quantity (bounded by the assignable quantity)
//	complete                reserved -= quantity, fulfilled += quantity
//	remove (open)           reserved -= quantity
//	remove (completed)      fulfilled -= quantity
type FulfillmentLine struct {
	id          kernel.UUID
	fulfillment *Fulfillment
	orderLine   *Line
	quantity    int
}

func newFulfillmentLine(f *Fulfillment, id kernel.UUID, orderLine *Line, quantity int) (*FulfillmentLine, error) {
	fl := &FulfillmentLine{
		id:          id,
		fulfillment: f,
		orderLine:   orderLine,
	}
	if err := fl.replaceQuantity(quantity); err != nil {
		return nil, err
	}
	return fl, nil
}

func (fl *FulfillmentLine) ID() kernel.UUID { return fl.id }

// OrderLine returns the order line this reservation is held against.
func (fl *FulfillmentLine) OrderLine() *Line { return fl.orderLine }

// Quantity returns the reserved (or, once completed, fulfilled) quantity.
func (fl *FulfillmentLine) Quantity() int { return fl.quantity }

// BelongsTo reports whether fl is owned by f.
func (fl *FulfillmentLine) BelongsTo(f *Fulfillment) bool {
	return f != nil && fl.fulfillment == f
}

// SetQuantity changes the reserved quantity. The reservation can grow up to the
// line's assignable quantity plus what this line already holds.
func (fl *FulfillmentLine) SetQuantity(quantity int) error {
	if fl.fulfillment == nil {
		return errs.NewDomainRuleViolationError(fulfillmentLineAggregate, fl.id,
			"fulfillment line was removed from its fulfillment")
	}
	if err := fl.fulfillment.checkEditable(); err != nil {
		return err
	}
	return fl.replaceQuantity(quantity)
}

// replaceQuantity releases the current reservation and reserves quantity instead.
// When the new reservation does not fit, the released quantity is put back so the
// line keeps its previous reservation.
func (fl *FulfillmentLine) replaceQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewDomainRuleViolationErrorWithCause(fulfillmentLineAggregate, fl.id,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)),
			"fulfillment line quantity must be positive")
	}

	released := fl.orderLine.removeReservedQuantity(fl.quantity)
	if err := fl.orderLine.addReservedQuantity(quantity); err != nil {
		fl.orderLine.reservedQuantity += released
		return err
	}

	fl.quantity = quantity
	return nil
}

func (fl *FulfillmentLine) canComplete() error {
	return fl.orderLine.canAddFulfilledQuantity(fl.quantity)
}

func (fl *FulfillmentLine) complete() error {
	if err := fl.canComplete(); err != nil {
		return err
	}
	fl.orderLine.removeReservedQuantity(fl.quantity)
	return fl.orderLine.addFulfilledQuantity(fl.quantity)
}

func (fl *FulfillmentLine) remove() {
	if fl.fulfillment.completed {
		fl.orderLine.removeFulfilledQuantity(fl.quantity)
		return
	}
	fl.orderLine.removeReservedQuantity(fl.quantity)
}
