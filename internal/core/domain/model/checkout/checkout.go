package checkout

import (
	"errors"
	"fmt"
	"net/mail"
	"net/netip"
	"slices"
	"strings"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

const checkoutAggregate = "checkout"

var (
	// ErrCheckoutIsNotConstructed is returned when a Checkout was not created by NewCheckout or RestoreCheckout.
	ErrCheckoutIsNotConstructed = errors.New("Checkout must be created via NewCheckout constructor")
	// ErrLinesAreRequired is returned when a checkout is created without lines.
	ErrLinesAreRequired = errs.NewValueIsRequiredError("checkout lines")
)

// PaymentDetails is the snapshot of the payment selected for a checkout.
type PaymentDetails struct {
	ID    kernel.UUID
	Token string
}

// selectedAddress remembers whether the address was entered during this checkout,
// which decides if it is saved to the customer's address book on completion.
type selectedAddress struct {
	address kernel.Address
	created bool
}

// Checkout is the cart of one customer, identified by the customer id.
//
// Price, shipping requirement and total mass are derived from the lines once, when
// the checkout is created. Changing either address drops the selected shipping
// method, since its applicability depends on the destination.
type Checkout struct {
	customerID kernel.UUID
	email      string
	currency   kernel.Currency
	ipAddress  netip.Addr
	lines      []*Line

	price            int64
	shippingRequired bool
	totalMass        float64
	massUnit         kernel.MassUnit

	address         *selectedAddress
	shippingAddress *selectedAddress
	shippingMethod  *kernel.ShippingMethodDetails
	payment         *PaymentDetails

	usesSingleAddress          bool
	savePaymentMethodAsDefault bool
	saveCustomerAddresses      bool

	lastChange time.Time
	guard      guard.ConstructorGuard
}

// NewCheckout creates a checkout for customerID from lines.
//
// Every line's product must be published; the error lists the offending product ids.
// A checkout with at least one non digital product requires shipping and must be
// given a valid massUnit.
func NewCheckout(
	customerID kernel.UUID,
	lines []PreCheckoutLine,
	email string,
	currency kernel.Currency,
	ipAddress netip.Addr,
	massUnit kernel.MassUnit,
) (*Checkout, error) {
	c := &Checkout{
		customerID: customerID,
		ipAddress:  ipAddress,
		currency:   currency,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customerID.Validate(),
		c.setEmail(email),
		currency.Validate(),
		validatePreCheckoutLines(lines),
	); err != nil {
		return nil, err
	}

	var unpublished []string
	for _, pl := range lines {
		v := pl.variant
		if !v.IsPublished() {
			unpublished = append(unpublished, v.ProductID().String())
			continue
		}
		c.lines = append(c.lines, &Line{
			id:               kernel.NewUUID(),
			checkout:         c,
			variantID:        v.ID(),
			productID:        v.ProductID(),
			productName:      v.ProductName(),
			variantName:      v.Name(),
			unitPrice:        max(v.EffectivePrice(), 0),
			mass:             v.Mass(),
			quantity:         pl.quantity,
			shippingRequired: !v.IsDigital(),
		})
	}
	if len(unpublished) > 0 {
		return nil, errs.NewDomainRuleViolationError(checkoutAggregate, customerID,
			"products %s are not published", strings.Join(unpublished, ", "))
	}

	c.derive()
	if c.shippingRequired {
		if err := massUnit.Validate(); err != nil {
			return nil, errs.NewDomainRuleViolationErrorWithCause(checkoutAggregate, customerID, err,
				"mass unit is required when shipping is required")
		}
		c.massUnit = massUnit
		c.totalMass = c.computeTotalMass()
	} else {
		c.usesSingleAddress = true
	}

	c.touch()
	return c, nil
}

func validatePreCheckoutLines(lines []PreCheckoutLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for i, pl := range lines {
		if pl.variant == nil {
			return errs.NewValueIsRequiredError(fmt.Sprintf("checkout line %d", i))
		}
	}
	return nil
}

// derive computes the values that follow from the lines.
func (c *Checkout) derive() {
	c.price = 0
	c.shippingRequired = false
	for _, l := range c.lines {
		if l.unitPrice > 0 {
			c.price += l.TotalPrice()
		}
		if l.shippingRequired {
			c.shippingRequired = true
		}
	}
}

func (c *Checkout) computeTotalMass() float64 {
	var total float64
	for _, l := range c.lines {
		if l.mass > 0 {
			total += l.mass * float64(l.quantity)
		}
	}
	return total
}

// Validate ensures the checkout was built by one of its constructors.
func (c *Checkout) Validate() error {
	if c == nil {
		return ErrCheckoutIsNotConstructed
	}
	return c.guard.Validate(ErrCheckoutIsNotConstructed)
}

func (c *Checkout) CustomerID() kernel.UUID           { return c.customerID }
func (c *Checkout) Email() string                     { return c.email }
func (c *Checkout) Currency() kernel.Currency         { return c.currency }
func (c *Checkout) IPAddress() netip.Addr             { return c.ipAddress }
func (c *Checkout) Lines() []*Line                    { return slices.Clone(c.lines) }
func (c *Checkout) Price() int64                      { return c.price }
func (c *Checkout) IsShippingRequired() bool          { return c.shippingRequired }
func (c *Checkout) TotalMass() float64                { return c.totalMass }
func (c *Checkout) MassUnit() kernel.MassUnit         { return c.massUnit }
func (c *Checkout) UsesSingleAddress() bool           { return c.usesSingleAddress }
func (c *Checkout) SavesCustomerAddresses() bool      { return c.saveCustomerAddresses }
func (c *Checkout) SavesPaymentMethodAsDefault() bool { return c.savePaymentMethodAsDefault }
func (c *Checkout) LastChange() time.Time             { return c.lastChange }

// Address returns the billing address, if set.
func (c *Checkout) Address() (kernel.Address, bool) {
	if c.address == nil {
		return kernel.Address{}, false
	}
	return c.address.address, true
}

// ShippingAddress returns the separate shipping address, if set.
func (c *Checkout) ShippingAddress() (kernel.Address, bool) {
	if c.shippingAddress == nil {
		return kernel.Address{}, false
	}
	return c.shippingAddress.address, true
}

// ShippingMethod returns the selected shipping method snapshot, if any.
func (c *Checkout) ShippingMethod() (kernel.ShippingMethodDetails, bool) {
	if c.shippingMethod == nil {
		return kernel.ShippingMethodDetails{}, false
	}
	return *c.shippingMethod, true
}

// Payment returns the selected payment snapshot, if any.
func (c *Checkout) Payment() (PaymentDetails, bool) {
	if c.payment == nil {
		return PaymentDetails{}, false
	}
	return *c.payment, true
}

// ActualShippingAddress is the billing address in single address mode and the
// shipping address otherwise.
func (c *Checkout) ActualShippingAddress() (kernel.Address, bool) {
	if c.usesSingleAddress {
		return c.Address()
	}
	return c.ShippingAddress()
}

// TotalPrice is the line price plus the shipping amount when the checkout ships.
func (c *Checkout) TotalPrice() int64 {
	if c.shippingRequired && c.shippingMethod != nil {
		return c.price + c.shippingMethod.Amount()
	}
	return c.price
}

// SetPayment selects the payment the checkout will be completed with.
func (c *Checkout) SetPayment(p Payment) error {
	if p == nil {
		return errs.NewValueIsRequiredError("payment")
	}
	c.payment = &PaymentDetails{ID: p.ID(), Token: p.Token()}
	c.touch()
	return nil
}

// AddAddress sets a billing address entered during this checkout.
func (c *Checkout) AddAddress(address kernel.Address) error {
	return c.putAddress(address, true)
}

// SetAddress sets a billing address taken from the customer's address book.
func (c *Checkout) SetAddress(address kernel.Address) error {
	return c.putAddress(address, false)
}

func (c *Checkout) putAddress(address kernel.Address, created bool) error {
	if err := address.Validate(); err != nil {
		return errs.NewDomainRuleViolationErrorWithCause(checkoutAggregate, c.customerID, err, "address is required")
	}
	c.address = &selectedAddress{address: address.Copy(), created: created}
	c.shippingMethod = nil
	c.touch()
	return nil
}

// AddShippingAddress sets a shipping address entered during this checkout.
func (c *Checkout) AddShippingAddress(address kernel.Address) error {
	return c.putShippingAddress(address, true)
}

// SetShippingAddress sets a shipping address taken from the customer's address book.
func (c *Checkout) SetShippingAddress(address kernel.Address) error {
	return c.putShippingAddress(address, false)
}

func (c *Checkout) putShippingAddress(address kernel.Address, created bool) error {
	if err := address.Validate(); err != nil {
		return errs.NewDomainRuleViolationErrorWithCause(checkoutAggregate, c.customerID, err,
			"shipping address is required")
	}
	if !c.shippingRequired {
		return errs.NewDomainRuleViolationError(checkoutAggregate, c.customerID, "shipping is not required")
	}
	if c.usesSingleAddress {
		return errs.NewDomainRuleViolationError(checkoutAggregate, c.customerID,
			"checkout uses a single address, disable it to set a shipping address")
	}
	c.shippingAddress = &selectedAddress{address: address.Copy(), created: created}
	c.shippingMethod = nil
	c.touch()
	return nil
}

// SetShippingMethod snapshots method after checking it applies to this checkout.
func (c *Checkout) SetShippingMethod(method ShippingMethod) error {
	if method == nil {
		return errs.NewValueIsRequiredError("shipping method")
	}
	if !c.shippingRequired {
		return errs.NewDomainRuleViolationError(checkoutAggregate, c.customerID, "shipping is not required")
	}
	if !method.CanBeAppliedToCheckout(c) {
		return errs.NewDomainRuleViolationError(checkoutAggregate, c.customerID,
			"shipping method %s cannot be applied to the checkout", method.Name())
	}

	details, err := kernel.NewShippingMethodDetails(method.Name(), method.Rate(), method.Type())
	if err != nil {
		return err
	}
	c.shippingMethod = &details
	c.touch()
	return nil
}

// UseSingleAddress toggles single address mode. Enabling it promotes an existing
// shipping address to the billing address, which clears the shipping method.
func (c *Checkout) UseSingleAddress(enabled bool) {
	if enabled && c.shippingAddress != nil {
		c.address = c.shippingAddress
		c.shippingAddress = nil
		c.shippingMethod = nil
	}
	c.usesSingleAddress = enabled
	c.touch()
}

// SetSaveCustomerAddresses decides whether new addresses go to the address book on completion.
func (c *Checkout) SetSaveCustomerAddresses(save bool) {
	c.saveCustomerAddresses = save
	c.touch()
}

// SetSavePaymentMethodAsDefault decides whether the payment method becomes the customer's default.
func (c *Checkout) SetSavePaymentMethodAsDefault(save bool) {
	c.savePaymentMethodAsDefault = save
	c.touch()
}

// Complete turns the checkout into an order paid with payment.
//
// The payment must be the selected one (a free payment is accepted while no payment
// is selected), and the address, shipping address and shipping method must be set
// as far as the checkout requires them. On success new addresses and the payment
// method are saved to customer when requested, and the payment is captured.
func (c *Checkout) Complete(customer Customer, payment Payment) (*order.Order, error) {
	if payment == nil {
		return nil, errs.NewValueIsRequiredError("payment")
	}
	if customer == nil {
		return nil, errs.NewValueIsRequiredError("customer")
	}
	if c.isWrongPayment(payment) {
		return nil, errs.NewDomainRuleViolationError(checkoutAggregate, c.customerID,
			"payment %s does not belong to the checkout", payment.ID())
	}
	if missing := c.missingPieces(); len(missing) > 0 {
		return nil, errs.NewDomainRuleViolationError(checkoutAggregate, c.customerID,
			"checkout is missing %s", strings.Join(missing, ", "))
	}

	o, err := order.NewOrder(kernel.NewUUID(), c.orderDetails(payment), c.orderLines())
	if err != nil {
		return nil, err
	}

	if c.saveCustomerAddresses {
		for _, a := range []*selectedAddress{c.address, c.shippingAddress} {
			if a == nil || !a.created {
				continue
			}
			if err = customer.AddAddress(a.address.Copy()); err != nil {
				return nil, err
			}
		}
	}
	if c.savePaymentMethodAsDefault && !payment.IsFree() {
		if err = customer.SetDefaultPaymentMethodID(payment.PaymentMethodID()); err != nil {
			return nil, err
		}
	}
	if err = payment.Capture(); err != nil {
		return nil, err
	}

	return o, nil
}

func (c *Checkout) isWrongPayment(p Payment) bool {
	if p.IsFree() && c.payment == nil {
		return false
	}
	return c.payment == nil || !c.payment.ID.IsEqual(p.ID()) || !p.BelongsToCheckout(c)
}

func (c *Checkout) missingPieces() []string {
	var missing []string
	if c.address == nil {
		missing = append(missing, "address")
	}
	if c.shippingRequired {
		if _, ok := c.ActualShippingAddress(); !ok {
			missing = append(missing, "shipping address")
		}
		if c.shippingMethod == nil {
			missing = append(missing, "shipping method")
		}
	}
	return missing
}

func (c *Checkout) orderDetails(p Payment) order.Details {
	details := order.Details{
		CustomerID:     c.customerID,
		Email:          c.email,
		Currency:       c.currency,
		CapturedAmount: p.CapturedAmount(),
		IPAddress:      c.ipAddress,
		Address:        c.address.address,
	}
	if !p.IsFree() {
		id := p.ID()
		details.PaymentID = &id
	}
	if c.shippingRequired {
		if addr, ok := c.ActualShippingAddress(); ok {
			details.ShippingAddress = &addr
		}
		details.ShippingMethod = c.shippingMethod
	}
	return details
}

func (c *Checkout) orderLines() []order.LineSpec {
	specs := make([]order.LineSpec, 0, len(c.lines))
	for _, l := range c.lines {
		specs = append(specs, order.LineSpec{
			VariantID:        l.variantID,
			ProductName:      l.productName,
			VariantName:      l.variantName,
			UnitPrice:        l.unitPrice,
			Quantity:         l.quantity,
			ShippingRequired: l.shippingRequired,
		})
	}
	return specs
}

func (c *Checkout) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	c.email = email
	return nil
}

func (c *Checkout) touch() {
	c.lastChange = time.Now().UTC()
}
