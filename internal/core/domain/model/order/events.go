package order

import (
	"slices"
	"time"

	"shop/internal/core/domain/model/kernel"
)

// StatusChanged is recorded every time an order enters a status, including the
// initial one (From is Unknown then).
type StatusChanged struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

func (o *Order) record(from, to Status) {
	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		CustomerID: o.details.CustomerID,
		From:       from,
		To:         to,
		OccurredAt: time.Now().UTC(),
	})
}

// Events returns the status changes recorded since the order was created or restored.
func (o *Order) Events() []StatusChanged {
	return slices.Clone(o.events)
}

// PullEvents returns the recorded status changes and forgets them.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}
