package order

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// RestoredLine is the persisted state of an order line.
type RestoredLine struct {
	ID                kernel.UUID
	Spec              LineSpec
	FulfilledQuantity int
	ReservedQuantity  int
}

// RestoredFulfillmentLine is the persisted state of a fulfillment line.
type RestoredFulfillmentLine struct {
	ID          kernel.UUID
	OrderLineID kernel.UUID
	Quantity    int
}

// RestoredFulfillment is the persisted state of a fulfillment.
type RestoredFulfillment struct {
	ID             kernel.UUID
	Completed      bool
	TrackingNumber string
	Lines          []RestoredFulfillmentLine
}

// RestoreOrder rebuilds an order from storage. Unlike NewOrder it takes the ids and
// counters as stored, and checks that the ledger is consistent: every line's reserved
// quantity equals the sum of its open fulfillment lines, and its fulfilled quantity
// equals the sum of its completed ones (or the whole quantity when it needs no shipping).
func RestoreOrder(
	id kernel.UUID,
	details Details,
	status, previousStatus Status,
	createdAt time.Time,
	lines []RestoredLine,
	fulfillments []RestoredFulfillment,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		status.Validate(),
		previousStatus.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status
	o.previousStatus = previousStatus

	if len(lines) == 0 {
		return nil, ErrLinesAreRequired
	}

	byID := make(map[kernel.UUID]*Line, len(lines))
	for _, rl := range lines {
		line, err := newLine(o, rl.ID, rl.Spec)
		if err != nil {
			return nil, err
		}
		if err := rl.ID.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[rl.ID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("order lines", fmt.Errorf("duplicate line %s", rl.ID))
		}
		if rl.FulfilledQuantity < 0 || rl.ReservedQuantity < 0 ||
			rl.FulfilledQuantity+rl.ReservedQuantity > rl.Spec.Quantity {
			return nil, errs.NewValueIsOutOfRangeError("order line "+rl.ID.String()+" counters",
				rl.FulfilledQuantity+rl.ReservedQuantity, 0, rl.Spec.Quantity)
		}
		line.fulfilledQuantity = rl.FulfilledQuantity
		line.reservedQuantity = rl.ReservedQuantity

		byID[rl.ID] = line
		o.lines = append(o.lines, line)
	}

	reserved := make(map[*Line]int, len(lines))
	fulfilled := make(map[*Line]int, len(lines))
	seen := make(map[kernel.UUID]struct{})

	for _, rf := range fulfillments {
		if err := rf.ID.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[rf.ID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("fulfillments", fmt.Errorf("duplicate fulfillment %s", rf.ID))
		}
		seen[rf.ID] = struct{}{}

		f := &Fulfillment{id: rf.ID, order: o, completed: rf.Completed, trackingNumber: rf.TrackingNumber}
		for _, rfl := range rf.Lines {
			line, ok := byID[rfl.OrderLineID]
			if !ok {
				return nil, errs.NewObjectNotFoundError("order line", rfl.OrderLineID)
			}
			if _, dup := seen[rfl.ID]; dup {
				return nil, errs.NewValueIsInvalidErrorWithCause("fulfillment lines", fmt.Errorf("duplicate line %s", rfl.ID))
			}
			seen[rfl.ID] = struct{}{}
			if _, exists := f.LineFor(line); exists {
				return nil, errs.NewValueIsInvalidErrorWithCause("fulfillment lines",
					fmt.Errorf("fulfillment %s holds order line %s twice", rf.ID, line.id))
			}
			if rfl.Quantity <= 0 {
				return nil, errs.NewValueIsInvalidErrorWithCause("fulfillment line quantity",
					fmt.Errorf("%d is not greater than 0", rfl.Quantity))
			}

			f.lines = append(f.lines, &FulfillmentLine{id: rfl.ID, fulfillment: f, orderLine: line, quantity: rfl.Quantity})
			if rf.Completed {
				fulfilled[line] += rfl.Quantity
			} else {
				reserved[line] += rfl.Quantity
			}
		}
		o.fulfillments = append(o.fulfillments, f)
	}

	for _, line := range o.lines {
		wantFulfilled := fulfilled[line]
		if !line.shippingRequired {
			wantFulfilled = line.quantity
		}
		if line.reservedQuantity != reserved[line] || line.fulfilledQuantity != wantFulfilled {
			return nil, errs.NewValueIsInvalidErrorWithCause("order line "+line.id.String(),
				fmt.Errorf("stored reserved %d and fulfilled %d, fulfillments account for %d and %d",
					line.reservedQuantity, line.fulfilledQuantity, reserved[line], wantFulfilled))
		}
	}

	return o, nil
}
