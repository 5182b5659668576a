package payment

import (
	"fmt"

	"shop/internal/pkg/errs"
)

// Status is the lifecycle state of a payment: Pending moves to Captured or Cancelled.
type Status int

const (
	Unknown Status = iota
	Pending
	Captured
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "Pending",
	Captured:  "Captured",
	Cancelled: "Cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// StatusFromString parses the names produced by String.
func StatusFromString(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid status", name))
}
