package kernel

import (
	"errors"
	"fmt"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ShippingType tells how a shipping method decides whether it applies to a checkout.
type ShippingType int

const (
	UnknownShippingType ShippingType = iota
	// PriceBased methods are bounded by the checkout price.
	PriceBased
	// WeightBased methods are bounded by the checkout total mass.
	WeightBased
)

func (t ShippingType) String() string {
	switch t {
	case PriceBased:
		return "price"
	case WeightBased:
		return "weight"
	case UnknownShippingType:
	}
	return "unknown"
}

// ShippingTypeFromString parses the names produced by String.
func ShippingTypeFromString(s string) (ShippingType, error) {
	switch s {
	case "price":
		return PriceBased, nil
	case "weight":
		return WeightBased, nil
	}
	return UnknownShippingType, errs.NewValueIsInvalidErrorWithCause("shipping type",
		fmt.Errorf("%q is not a valid shipping type", s))
}

// Validate fails for values outside the enum.
func (t ShippingType) Validate() error {
	if t != PriceBased && t != WeightBased {
		return errs.NewValueIsInvalidErrorWithCause("shipping type", fmt.Errorf("%d is not a valid shipping type", t))
	}
	return nil
}

// ErrShippingMethodDetailsIsNotConstructed is returned when validating a zero value.
var ErrShippingMethodDetailsIsNotConstructed = errs.NewValueIsRequiredError(
	"shipping method details must be created via NewShippingMethodDetails")

// ShippingMethodDetails is the snapshot of a shipping method taken when it is chosen.
// Later changes to the method itself do not affect checkouts or orders holding the snapshot.
type ShippingMethodDetails struct { //nolint:recvcheck //using for validation
	name   string
	amount int64
	kind   ShippingType
	guard  guard.ConstructorGuard
}

func NewShippingMethodDetails(name string, amount int64, kind ShippingType) (ShippingMethodDetails, error) {
	var problems []error
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shipping method name"))
	}
	if amount < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"shipping amount", fmt.Errorf("%d is negative", amount)))
	}
	if err := kind.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return ShippingMethodDetails{}, err
	}

	return ShippingMethodDetails{name: name, amount: amount, kind: kind, guard: guard.NewConstructorGuard()}, nil
}

func (d ShippingMethodDetails) Validate() error {
	return d.guard.Validate(ErrShippingMethodDetailsIsNotConstructed)
}

func (d ShippingMethodDetails) Name() string       { return d.name }
func (d ShippingMethodDetails) Amount() int64      { return d.amount }
func (d ShippingMethodDetails) Type() ShippingType { return d.kind }
