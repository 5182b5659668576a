package order

import (
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

const lineAggregate = "order line"

// LineSpec describes one purchased item when an Order is created. It is the immutable
// snapshot of the checkout line: names and price are copied so later catalog edits do
// not change the order.
type LineSpec struct {
	VariantID        kernel.UUID
	ProductName      string
	VariantName      string
	UnitPrice        int64
	Quantity         int
	ShippingRequired bool
}

// Line is the quantity ledger of one purchased item.
//
// Invariants:
//   - fulfilledQuantity >= 0 and reservedQuantity >= 0
//   - AssignableQuantity() == max(quantity - fulfilled - reserved, 0)
//   - every increase of reserved or fulfilled is bounded by the assignable quantity or
//     the total quantity, so fulfilled + reserved never exceeds quantity
//
// The counters only change through FulfillmentLine; clients read them.
type Line struct {
	id    kernel.UUID
	order *Order

	variantID        kernel.UUID
	productName      string
	variantName      string
	unitPrice        int64
	quantity         int
	shippingRequired bool

	fulfilledQuantity int
	reservedQuantity  int
}

func newLine(o *Order, id kernel.UUID, spec LineSpec) (*Line, error) {
	if err := validateLineSpec(spec); err != nil {
		return nil, err
	}

	line := &Line{
		id:               id,
		order:            o,
		variantID:        spec.VariantID,
		productName:      spec.ProductName,
		variantName:      spec.VariantName,
		unitPrice:        spec.UnitPrice,
		quantity:         spec.Quantity,
		shippingRequired: spec.ShippingRequired,
	}
	if !line.shippingRequired {
		line.fulfilledQuantity = line.quantity
	}

	return line, nil
}

func validateLineSpec(spec LineSpec) error {
	if spec.ProductName == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	if spec.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", spec.Quantity))
	}
	if spec.UnitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%d is negative", spec.UnitPrice))
	}
	return nil
}

func (l *Line) ID() kernel.UUID          { return l.id }
func (l *Line) VariantID() kernel.UUID   { return l.variantID }
func (l *Line) ProductName() string      { return l.productName }
func (l *Line) VariantName() string      { return l.variantName }
func (l *Line) UnitPrice() int64         { return l.unitPrice }
func (l *Line) Quantity() int            { return l.quantity }
func (l *Line) IsShippingRequired() bool { return l.shippingRequired }
func (l *Line) FulfilledQuantity() int   { return l.fulfilledQuantity }
func (l *Line) ReservedQuantity() int    { return l.reservedQuantity }

// TotalPrice is unit price times quantity.
func (l *Line) TotalPrice() int64 {
	return l.unitPrice * int64(l.quantity)
}

// AssignableQuantity is the part of the quantity neither reserved nor fulfilled.
func (l *Line) AssignableQuantity() int {
	return max(l.quantity-l.fulfilledQuantity-l.reservedQuantity, 0)
}

// IsFulfilled reports whether the whole quantity has been fulfilled.
func (l *Line) IsFulfilled() bool {
	return l.fulfilledQuantity >= l.quantity
}

// BelongsTo reports whether l is owned by o.
func (l *Line) BelongsTo(o *Order) bool {
	return o != nil && l.order == o
}

func (l *Line) addReservedQuantity(q int) error {
	if q <= 0 {
		return nil
	}
	if q > l.AssignableQuantity() {
		return errs.NewDomainRuleViolationError(lineAggregate, l.id,
			"cannot reserve %d, only %d of %d assignable", q, l.AssignableQuantity(), l.quantity)
	}
	l.reservedQuantity += q
	return nil
}

// removeReservedQuantity returns how much was actually released.
func (l *Line) removeReservedQuantity(q int) int {
	if q <= 0 {
		return 0
	}
	released := min(q, l.reservedQuantity)
	l.reservedQuantity -= released
	return released
}

func (l *Line) canAddFulfilledQuantity(q int) error {
	if q > 0 && l.fulfilledQuantity+q > l.quantity {
		return errs.NewDomainRuleViolationError(lineAggregate, l.id,
			"cannot fulfil %d, %d of %d already fulfilled", q, l.fulfilledQuantity, l.quantity)
	}
	return nil
}

func (l *Line) addFulfilledQuantity(q int) error {
	if q <= 0 {
		return nil
	}
	if err := l.canAddFulfilledQuantity(q); err != nil {
		return err
	}
	l.fulfilledQuantity += q
	return nil
}

func (l *Line) removeFulfilledQuantity(q int) int {
	if q <= 0 {
		return 0
	}
	released := min(q, l.fulfilledQuantity)
	l.fulfilledQuantity -= released
	return released
}
