package order

import (
	"slices"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

const fulfillmentAggregate = "fulfillment"

// Fulfillment is a shipment batch of an Order. It groups fulfillment lines, each one
// reserving quantity of an order line, and can be completed exactly once. Completion
// turns every reservation into fulfilled quantity.
//
// A Fulfillment is created through Order.NewFulfillment and its lifecycle is owned by
// the order; the back reference to the order is used for validation only.
type Fulfillment struct {
	id             kernel.UUID
	order          *Order
	completed      bool
	trackingNumber string
	lines          []*FulfillmentLine
}

func (f *Fulfillment) ID() kernel.UUID         { return f.id }
func (f *Fulfillment) IsCompleted() bool       { return f.completed }
func (f *Fulfillment) TrackingNumber() string  { return f.trackingNumber }
func (f *Fulfillment) BelongsTo(o *Order) bool { return o != nil && f.order == o }

// Lines returns a snapshot of the fulfillment lines.
func (f *Fulfillment) Lines() []*FulfillmentLine {
	return slices.Clone(f.lines)
}

// Line looks up a fulfillment line by id.
func (f *Fulfillment) Line(id kernel.UUID) (*FulfillmentLine, bool) {
	for _, fl := range f.lines {
		if fl.id.IsEqual(id) {
			return fl, true
		}
	}
	return nil, false
}

// LineFor returns the fulfillment line reserving orderLine, if any.
func (f *Fulfillment) LineFor(orderLine *Line) (*FulfillmentLine, bool) {
	for _, fl := range f.lines {
		if fl.orderLine == orderLine {
			return fl, true
		}
	}
	return nil, false
}

// TotalQuantity sums the quantity of every fulfillment line.
func (f *Fulfillment) TotalQuantity() int {
	total := 0
	for _, fl := range f.lines {
		total += fl.quantity
	}
	return total
}

// AddLine reserves quantity of orderLine in this fulfillment.
//
// It fails when the line belongs to another order, the order is not processable,
// the fulfillment is completed, the line needs no shipping, the quantity is not
// positive or exceeds the line's assignable quantity. A failed call changes nothing.
//
// When the fulfillment already holds a line for orderLine, AddLine returns a nil
// line and no error; use FulfillmentLine.SetQuantity to change that reservation.
func (f *Fulfillment) AddLine(orderLine *Line, quantity int) (*FulfillmentLine, error) {
	if orderLine == nil {
		return nil, errs.NewValueIsRequiredError("order line")
	}
	if err := f.checkAttached(); err != nil {
		return nil, err
	}
	if !orderLine.BelongsTo(f.order) {
		return nil, errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id,
			"order line %s belongs to another order", orderLine.id)
	}
	if err := f.checkEditable(); err != nil {
		return nil, err
	}
	if !orderLine.shippingRequired {
		return nil, errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id,
			"order line %s does not require shipping", orderLine.id)
	}
	if _, exists := f.LineFor(orderLine); exists {
		return nil, nil //nolint:nilnil // an existing reservation is not an error
	}

	fl, err := newFulfillmentLine(f, kernel.NewUUID(), orderLine, quantity)
	if err != nil {
		return nil, err
	}

	f.lines = append(f.lines, fl)
	return fl, nil
}

// RemoveLine drops fl and releases its reservation. It returns the order line whose
// counters changed, or nil when fl is not part of this fulfillment. A removed line is
// detached and cannot be edited any more.
func (f *Fulfillment) RemoveLine(fl *FulfillmentLine) (*Line, error) {
	if err := f.checkEditable(); err != nil {
		return nil, err
	}
	if fl == nil || !fl.BelongsTo(f) {
		return nil, nil //nolint:nilnil // removing a foreign line is a no-op
	}

	f.lines = slices.DeleteFunc(f.lines, func(l *FulfillmentLine) bool { return l == fl })
	fl.remove()
	fl.fulfillment = nil
	return fl.orderLine, nil
}

// Complete moves every reservation of this fulfillment into fulfilled quantity and
// returns the affected order lines. The first completed fulfillment of a Processing
// order moves the order to PartiallyFulfilled.
func (f *Fulfillment) Complete() ([]*Line, error) {
	if err := f.checkEditable(); err != nil {
		return nil, err
	}
	for _, fl := range f.lines {
		if err := fl.canComplete(); err != nil {
			return nil, err
		}
	}

	if f.order.status == Processing {
		f.order.setStatus(PartiallyFulfilled)
	}

	affected := make([]*Line, 0, len(f.lines))
	for _, fl := range f.lines {
		if err := fl.complete(); err != nil {
			return nil, err
		}
		affected = append(affected, fl.orderLine)
	}

	f.completed = true
	return affected, nil
}

// SetTrackingNumber records the carrier tracking number of a completed fulfillment.
func (f *Fulfillment) SetTrackingNumber(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	if err := f.checkAttached(); err != nil {
		return err
	}
	if f.order.status == Cancelled {
		return errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id,
			"tracking number cannot be set on a cancelled order")
	}
	if !f.completed {
		return errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id,
			"tracking number can only be set once the fulfillment is completed")
	}

	f.trackingNumber = value
	return nil
}

// checkEditable enforces that the order is processable and the fulfillment still open.
func (f *Fulfillment) checkEditable() error {
	if err := f.checkAttached(); err != nil {
		return err
	}
	if !f.order.status.IsProcessable() {
		return errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id,
			"order in %s status cannot be fulfilled", f.order.status)
	}
	if f.completed {
		return errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id, "fulfillment is already completed")
	}
	return nil
}

// checkAttached rejects a fulfillment its order has dropped.
func (f *Fulfillment) checkAttached() error {
	if f.order == nil {
		return errs.NewDomainRuleViolationError(fulfillmentAggregate, f.id, "fulfillment was removed from its order")
	}
	return nil
}

// revert undoes the ledger impact of every line and detaches f; used when the order
// drops f.
func (f *Fulfillment) revert() []*Line {
	affected := make([]*Line, 0, len(f.lines))
	for _, fl := range f.lines {
		fl.remove()
		affected = append(affected, fl.orderLine)
	}
	f.order = nil
	return affected
}
