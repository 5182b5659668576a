package checkout

import (
	"shop/internal/core/domain/model/kernel"
)

// Variant is the purchasable catalog item a checkout line is built from.
// Product attributes are read through the variant.
type Variant interface {
	ID() kernel.UUID
	Name() string
	ProductID() kernel.UUID
	ProductName() string
	EffectivePrice() int64
	Mass() float64
	IsDigital() bool
	IsPublished() bool
}

// Customer receives the side effects of a completed checkout.
type Customer interface {
	ID() kernel.UUID
	AddAddress(address kernel.Address) error
	SetDefaultPaymentMethodID(id string) error
}

// Payment is the payment a checkout is paid with.
type Payment interface {
	ID() kernel.UUID
	Token() string
	CapturedAmount() int64
	PaymentMethodID() string
	Currency() kernel.Currency
	Capture() error
	Cancel() error
	BelongsToCheckout(c *Checkout) bool
	IsFree() bool
}

// ShippingMethod is a carrier option a checkout can ship with.
type ShippingMethod interface {
	Name() string
	Rate() int64
	Type() kernel.ShippingType
	CanBeAppliedToCheckout(c *Checkout) bool
}

// FreePayment pays for checkouts whose total is zero.
var FreePayment Payment = freePayment{}

type freePayment struct{}

func (freePayment) ID() kernel.UUID           { return kernel.UUID{} }
func (freePayment) Token() string             { return "" }
func (freePayment) CapturedAmount() int64     { return 0 }
func (freePayment) PaymentMethodID() string   { return "" }
func (freePayment) Currency() kernel.Currency { return kernel.Currency{} }
func (freePayment) Capture() error            { return nil }
func (freePayment) Cancel() error             { return nil }
func (freePayment) IsFree() bool              { return true }

// BelongsToCheckout is true only for checkouts that have no payment set.
func (freePayment) BelongsToCheckout(c *Checkout) bool {
	return c != nil && c.payment == nil
}
