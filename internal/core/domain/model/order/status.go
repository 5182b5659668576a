package order

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Created ──confirm──> Confirmed ──first fulfillment──> Processing ──fulfillment completed──> PartiallyFulfilled
//	                         │                               │                                      │
//	                         └──────────────fulfill──────────┴──────────────fulfill─────────────────┴──> Fulfilled
//
//	any status except Cancelled ──cancel──> Cancelled ──reinstate──> previous status
//	Fulfilled ──undo fulfill──> previous status
//
// Fulfilled and Cancelled are finalizing: moving out of them never overwrites the
// order's previous status.
type Status int

const (
	// Unknown is the zero value and is invalid.
	Unknown Status = iota
	Created
	Confirmed
	Processing
	PartiallyFulfilled
	Fulfilled
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:            "Unknown",
	Created:            "Created",
	Confirmed:          "Confirmed",
	Processing:         "Processing",
	PartiallyFulfilled: "PartiallyFulfilled",
	Fulfilled:          "Fulfilled",
	Cancelled:          "Cancelled",
}

// Validate fails for Unknown and values outside the enum.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// StatusFromString parses the names produced by String.
func StatusFromString(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// IsFinalizing reports whether s is Fulfilled or Cancelled.
func (s Status) IsFinalizing() bool {
	return s == Fulfilled || s == Cancelled
}

// IsProcessable reports whether fulfillments may be created, edited or completed in s.
func (s Status) IsProcessable() bool {
	return s == Confirmed || s == Processing || s == PartiallyFulfilled
}
