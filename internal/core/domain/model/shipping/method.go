package shipping

import (
	"errors"
	"strings"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ErrMethodIsNotConstructed is returned when using an improperly initialized Method.
var ErrMethodIsNotConstructed = errors.New("Method must be created via NewMethod constructor")

// Limits bounds the checkout value a method is offered for: the price in minor units
// for price based methods and the total mass in kilograms for weight based ones.
// A nil bound is open.
type Limits struct {
	Min *float64
	Max *float64
}

func (l Limits) contains(value float64) bool {
	if l.Min != nil && value < *l.Min {
		return false
	}
	if l.Max != nil && value > *l.Max {
		return false
	}
	return true
}

// Method is a shipping option with a flat rate, offered in one zone.
type Method struct {
	id     kernel.UUID
	name   string
	zone   *Zone
	kind   kernel.ShippingType
	rate   int64
	limits Limits
	guard  guard.ConstructorGuard
}

// NewMethod creates a shipping method.
func NewMethod(id kernel.UUID, name string, zone *Zone, kind kernel.ShippingType, rate int64, limits Limits) (*Method, error) {
	var problems []error
	problems = append(problems, id.Validate(), zone.Validate(), kind.Validate())
	name = strings.TrimSpace(name)
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("shipping method name"))
	}
	if rate < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("rate", rate, 0, "unbounded"))
	}
	if limits.Min != nil && limits.Max != nil && *limits.Min > *limits.Max {
		problems = append(problems, errs.NewValueIsOutOfRangeError("minimum", *limits.Min, "unbounded", *limits.Max))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	m := &Method{
		id:    id,
		name:  name,
		zone:  zone,
		kind:  kind,
		rate:  rate,
		guard: guard.NewConstructorGuard(),
	}
	if limits.Min != nil {
		v := *limits.Min
		m.limits.Min = &v
	}
	if limits.Max != nil {
		v := *limits.Max
		m.limits.Max = &v
	}
	return m, nil
}

// Validate ensures the method was built by NewMethod.
func (m *Method) Validate() error {
	if m == nil {
		return ErrMethodIsNotConstructed
	}
	return m.guard.Validate(ErrMethodIsNotConstructed)
}

func (m *Method) ID() kernel.UUID           { return m.id }
func (m *Method) Name() string              { return m.name }
func (m *Method) Zone() *Zone               { return m.zone }
func (m *Method) Type() kernel.ShippingType { return m.kind }
func (m *Method) Rate() int64               { return m.rate }
func (m *Method) Limits() Limits            { return m.limits }

// CanBeAppliedToCheckout reports whether the checkout ships to a country of the
// method's zone and its price or total mass lies within the method's limits.
func (m *Method) CanBeAppliedToCheckout(c *checkout.Checkout) bool {
	if c == nil || !c.IsShippingRequired() {
		return false
	}
	addr, ok := c.ActualShippingAddress()
	if !ok || !m.zone.Covers(addr.Country()) {
		return false
	}

	switch m.kind {
	case kernel.PriceBased:
		return m.limits.contains(float64(c.Price()))
	case kernel.WeightBased:
		return m.limits.contains(c.MassUnit().ToKilograms(c.TotalMass()))
	case kernel.UnknownShippingType:
	}
	return false
}
