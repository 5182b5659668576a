package checkout

import (
	"net/netip"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// LineState is the persisted form of a checkout Line.
type LineState struct {
	ID               kernel.UUID
	VariantID        kernel.UUID
	ProductID        kernel.UUID
	ProductName      string
	VariantName      string
	UnitPrice        int64
	Mass             float64
	Quantity         int
	ShippingRequired bool
}

// AddressState is a persisted checkout address and whether it was entered during the checkout.
type AddressState struct {
	Address kernel.Address
	Created bool
}

// State is the persisted form of a Checkout. Price, shipping requirement and total
// mass are not stored; they are derived from Lines again on restore.
type State struct {
	CustomerID                 kernel.UUID
	Email                      string
	Currency                   kernel.Currency
	IPAddress                  netip.Addr
	MassUnit                   kernel.MassUnit
	Lines                      []LineState
	Address                    *AddressState
	ShippingAddress            *AddressState
	ShippingMethod             *kernel.ShippingMethodDetails
	Payment                    *PaymentDetails
	UsesSingleAddress          bool
	SavePaymentMethodAsDefault bool
	SaveCustomerAddresses      bool
	LastChange                 time.Time
}

// RestoreCheckout rebuilds a checkout from storage.
func RestoreCheckout(s State) (*Checkout, error) {
	c := &Checkout{
		customerID:                 s.CustomerID,
		ipAddress:                  s.IPAddress,
		currency:                   s.Currency,
		usesSingleAddress:          s.UsesSingleAddress,
		savePaymentMethodAsDefault: s.SavePaymentMethodAsDefault,
		saveCustomerAddresses:      s.SaveCustomerAddresses,
		lastChange:                 s.LastChange,
		guard:                      guard.NewConstructorGuard(),
	}
	if err := s.CustomerID.Validate(); err != nil {
		return nil, err
	}
	if err := c.setEmail(s.Email); err != nil {
		return nil, err
	}
	if err := s.Currency.Validate(); err != nil {
		return nil, err
	}
	if len(s.Lines) == 0 {
		return nil, ErrLinesAreRequired
	}

	for _, ls := range s.Lines {
		if err := ls.ID.Validate(); err != nil {
			return nil, err
		}
		if ls.Quantity <= 0 || ls.UnitPrice < 0 {
			return nil, errs.NewValueIsInvalidError("checkout line " + ls.ID.String())
		}
		c.lines = append(c.lines, &Line{
			id:               ls.ID,
			checkout:         c,
			variantID:        ls.VariantID,
			productID:        ls.ProductID,
			productName:      ls.ProductName,
			variantName:      ls.VariantName,
			unitPrice:        ls.UnitPrice,
			mass:             ls.Mass,
			quantity:         ls.Quantity,
			shippingRequired: ls.ShippingRequired,
		})
	}

	c.derive()
	if c.shippingRequired {
		if err := s.MassUnit.Validate(); err != nil {
			return nil, err
		}
		c.massUnit = s.MassUnit
		c.totalMass = c.computeTotalMass()
	}

	if s.Address != nil {
		if err := s.Address.Address.Validate(); err != nil {
			return nil, err
		}
		c.address = &selectedAddress{address: s.Address.Address.Copy(), created: s.Address.Created}
	}
	if s.ShippingAddress != nil {
		if err := s.ShippingAddress.Address.Validate(); err != nil {
			return nil, err
		}
		c.shippingAddress = &selectedAddress{address: s.ShippingAddress.Address.Copy(), created: s.ShippingAddress.Created}
	}
	if s.ShippingMethod != nil {
		if err := s.ShippingMethod.Validate(); err != nil {
			return nil, err
		}
		method := *s.ShippingMethod
		c.shippingMethod = &method
	}
	if s.Payment != nil {
		payment := *s.Payment
		c.payment = &payment
	}

	return c, nil
}

// State exports the checkout for persistence.
func (c *Checkout) State() State {
	s := State{
		CustomerID:                 c.customerID,
		Email:                      c.email,
		Currency:                   c.currency,
		IPAddress:                  c.ipAddress,
		MassUnit:                   c.massUnit,
		UsesSingleAddress:          c.usesSingleAddress,
		SavePaymentMethodAsDefault: c.savePaymentMethodAsDefault,
		SaveCustomerAddresses:      c.saveCustomerAddresses,
		LastChange:                 c.lastChange,
	}
	for _, l := range c.lines {
		s.Lines = append(s.Lines, LineState{
			ID:               l.id,
			VariantID:        l.variantID,
			ProductID:        l.productID,
			ProductName:      l.productName,
			VariantName:      l.variantName,
			UnitPrice:        l.unitPrice,
			Mass:             l.mass,
			Quantity:         l.quantity,
			ShippingRequired: l.shippingRequired,
		})
	}
	if c.address != nil {
		s.Address = &AddressState{Address: c.address.address.Copy(), Created: c.address.created}
	}
	if c.shippingAddress != nil {
		s.ShippingAddress = &AddressState{Address: c.shippingAddress.address.Copy(), Created: c.shippingAddress.created}
	}
	if c.shippingMethod != nil {
		method := *c.shippingMethod
		s.ShippingMethod = &method
	}
	if c.payment != nil {
		payment := *c.payment
		s.Payment = &payment
	}
	return s
}
