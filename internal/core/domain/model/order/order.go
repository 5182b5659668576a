package order

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

const orderAggregate = "order"

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrLinesAreRequired is returned when an order is created without lines.
	ErrLinesAreRequired = errs.NewValueIsRequiredError("order lines")
)

// Details are the values an Order copies from the completed checkout.
type Details struct {
	CustomerID      kernel.UUID
	Email           string
	Currency        kernel.Currency
	CapturedAmount  int64
	PaymentID       *kernel.UUID
	IPAddress       netip.Addr
	Address         kernel.Address
	ShippingAddress *kernel.Address
	ShippingMethod  *kernel.ShippingMethodDetails
}

func (d Details) validate() error {
	var problems []error
	if err := d.CustomerID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if d.Email == "" {
		problems = append(problems, errs.NewValueIsRequiredError("email"))
	}
	if err := d.Currency.Validate(); err != nil {
		problems = append(problems, err)
	}
	if d.CapturedAmount < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"captured amount", fmt.Errorf("%d is negative", d.CapturedAmount)))
	}
	if d.PaymentID != nil {
		if err := d.PaymentID.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := d.Address.Validate(); err != nil {
		problems = append(problems, err)
	}
	if d.ShippingAddress != nil {
		if err := d.ShippingAddress.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if d.ShippingMethod != nil {
		if err := d.ShippingMethod.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	return errors.Join(problems...)
}

// Order is the aggregate root of a placed order. It owns its lines and fulfillments
// and drives the status machine described on Status.
//
// Invariants:
//   - status only moves along the edges documented on Status
//   - previousStatus is overwritten only when the status changes and the current
//     status is not finalizing; UndoFulfill and Reinstate restore it without
//     touching it (a single slot, not a history)
//   - lines and fulfillments are never exposed as live slices
//
// An Order is not safe for concurrent use. Callers serialize all mutations of one
// order, for example by holding a row lock on it for the whole transaction.
type Order struct {
	id             kernel.UUID
	details        Details
	status         Status
	previousStatus Status
	createdAt      time.Time
	lines          []*Line
	fulfillments   []*Fulfillment
	events         []StatusChanged
	guard          guard.ConstructorGuard
}

// NewOrder creates an order from the snapshot of a completed checkout.
//
// Lines that need no shipping start fully fulfilled. When no line needs shipping the
// order starts Fulfilled with Created as previous status; otherwise it starts Created.
func NewOrder(id kernel.UUID, details Details, lines []LineSpec) (*Order, error) {
	o := &Order{
		status:         Created,
		previousStatus: Created,
		createdAt:      time.Now().UTC(),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	if !o.IsShippingRequired() {
		o.status = Fulfilled
		o.previousStatus = Created
	}
	o.record(Unknown, o.status)

	return o, nil
}

// Validate ensures the order was built by one of its constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) CustomerID() kernel.UUID      { return o.details.CustomerID }
func (o *Order) Email() string                { return o.details.Email }
func (o *Order) Currency() kernel.Currency    { return o.details.Currency }
func (o *Order) CapturedAmount() int64        { return o.details.CapturedAmount }
func (o *Order) IPAddress() netip.Addr        { return o.details.IPAddress }
func (o *Order) Address() kernel.Address      { return o.details.Address }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PreviousStatus() Status       { return o.previousStatus }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) IsProcessable() bool          { return o.status.IsProcessable() }
func (o *Order) Lines() []*Line               { return slices.Clone(o.lines) }
func (o *Order) Fulfillments() []*Fulfillment { return slices.Clone(o.fulfillments) }

// PaymentID returns the captured payment's id; ok is false for free orders.
func (o *Order) PaymentID() (id kernel.UUID, ok bool) {
	if o.details.PaymentID == nil {
		return kernel.UUID{}, false
	}
	return *o.details.PaymentID, true
}

// ShippingAddress returns the address the order ships to, if it ships at all.
func (o *Order) ShippingAddress() (kernel.Address, bool) {
	if o.details.ShippingAddress == nil {
		return kernel.Address{}, false
	}
	return *o.details.ShippingAddress, true
}

// ShippingMethod returns the shipping method snapshot, if any.
func (o *Order) ShippingMethod() (kernel.ShippingMethodDetails, bool) {
	if o.details.ShippingMethod == nil {
		return kernel.ShippingMethodDetails{}, false
	}
	return *o.details.ShippingMethod, true
}

// IsShippingRequired reports whether any line needs shipping.
func (o *Order) IsShippingRequired() bool {
	return slices.ContainsFunc(o.lines, func(l *Line) bool { return l.shippingRequired })
}

// TotalPrice is the sum of line totals plus the shipping amount.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, l := range o.lines {
		total += l.TotalPrice()
	}
	if o.details.ShippingMethod != nil {
		total += o.details.ShippingMethod.Amount()
	}
	return total
}

// Line looks up an order line by id.
func (o *Order) Line(id kernel.UUID) (*Line, bool) {
	for _, l := range o.lines {
		if l.id.IsEqual(id) {
			return l, true
		}
	}
	return nil, false
}

// Fulfillment looks up a fulfillment by id.
func (o *Order) Fulfillment(id kernel.UUID) (*Fulfillment, bool) {
	for _, f := range o.fulfillments {
		if f.id.IsEqual(id) {
			return f, true
		}
	}
	return nil, false
}

// Confirm accepts a Created order.
func (o *Order) Confirm() error {
	if o.status != Created {
		return o.transitionError("confirmed")
	}
	o.setStatus(Confirmed)
	return nil
}

// NewFulfillment opens a fulfillment on a processable order. The first fulfillment of
// a Confirmed order moves it to Processing.
func (o *Order) NewFulfillment() (*Fulfillment, error) {
	if !o.status.IsProcessable() {
		return nil, errs.NewDomainRuleViolationError(orderAggregate, o.id,
			"order in %s status cannot be fulfilled", o.status)
	}
	if o.status == Confirmed {
		o.setStatus(Processing)
	}

	f := &Fulfillment{id: kernel.NewUUID(), order: o}
	o.fulfillments = append(o.fulfillments, f)
	return f, nil
}

// RemoveFulfillment drops f and reverts its lines: reservations of an open fulfillment
// are released, fulfilled quantity of a completed one is taken back. It returns the
// affected order lines, or nothing when f belongs to another order.
func (o *Order) RemoveFulfillment(f *Fulfillment) ([]*Line, error) {
	if !o.status.IsProcessable() {
		return nil, errs.NewDomainRuleViolationError(orderAggregate, o.id,
			"fulfillments of an order in %s status cannot be removed", o.status)
	}
	if f == nil || !f.BelongsTo(o) {
		return nil, nil
	}

	o.fulfillments = slices.DeleteFunc(o.fulfillments, func(item *Fulfillment) bool { return item == f })
	return f.revert(), nil
}

// Fulfill marks a processable order Fulfilled once every shipped line is fulfilled.
func (o *Order) Fulfill() error {
	if !o.status.IsProcessable() {
		return o.transitionError("fulfilled")
	}
	for _, l := range o.lines {
		if l.shippingRequired && !l.IsFulfilled() {
			return errs.NewDomainRuleViolationError(orderAggregate, o.id,
				"order line %s is fulfilled %d of %d", l.id, l.fulfilledQuantity, l.quantity)
		}
	}
	o.setStatus(Fulfilled)
	return nil
}

// UndoFulfill returns a Fulfilled order to its previous status.
func (o *Order) UndoFulfill() error {
	if o.status != Fulfilled {
		return o.transitionError("unfulfilled")
	}
	o.restorePreviousStatus()
	return nil
}

// Cancel cancels the order from any status but Cancelled.
func (o *Order) Cancel() error {
	if o.status == Cancelled {
		return o.transitionError("cancelled")
	}
	o.setStatus(Cancelled)
	return nil
}

// Reinstate returns a Cancelled order to its previous status.
func (o *Order) Reinstate() error {
	if o.status != Cancelled {
		return o.transitionError("reinstated")
	}
	o.restorePreviousStatus()
	return nil
}

func (o *Order) setStatus(status Status) {
	if status == o.status {
		return
	}
	if !o.status.IsFinalizing() {
		o.previousStatus = o.status
	}
	o.record(o.status, status)
	o.status = status
}

// restorePreviousStatus leaves previousStatus as it is.
func (o *Order) restorePreviousStatus() {
	o.record(o.status, o.previousStatus)
	o.status = o.previousStatus
}

func (o *Order) transitionError(action string) error {
	return errs.NewDomainRuleViolationError(orderAggregate, o.id,
		"order in %s status cannot be %s", o.status, action)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}

	details.Address = details.Address.Copy()
	if details.PaymentID != nil {
		id := *details.PaymentID
		details.PaymentID = &id
	}
	if details.ShippingAddress != nil {
		addr := details.ShippingAddress.Copy()
		details.ShippingAddress = &addr
	}
	if details.ShippingMethod != nil {
		method := *details.ShippingMethod
		details.ShippingMethod = &method
	}

	o.details = details
	return nil
}

func (o *Order) setLines(specs []LineSpec) error {
	if len(specs) == 0 {
		return ErrLinesAreRequired
	}

	lines := make([]*Line, 0, len(specs))
	for _, spec := range specs {
		line, err := newLine(o, kernel.NewUUID(), spec)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	o.lines = lines
	return nil
}
