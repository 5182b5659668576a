package checkout_test

import (
	"net/netip"
	"testing"

	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

type fakeVariant struct {
	id        kernel.UUID
	productID kernel.UUID
	price     int64
	mass      float64
	digital   bool
	published bool
}

func newVariant(price int64, mass float64, digital bool) *fakeVariant {
	return &fakeVariant{
		id:        kernel.NewUUID(),
		productID: kernel.NewUUID(),
		price:     price,
		mass:      mass,
		digital:   digital,
		published: true,
	}
}

func (v *fakeVariant) ID() kernel.UUID        { return v.id }
func (v *fakeVariant) Name() string           { return "default" }
func (v *fakeVariant) ProductID() kernel.UUID { return v.productID }
func (v *fakeVariant) ProductName() string    { return "product" }
func (v *fakeVariant) EffectivePrice() int64  { return v.price }
func (v *fakeVariant) Mass() float64          { return v.mass }
func (v *fakeVariant) IsDigital() bool        { return v.digital }
func (v *fakeVariant) IsPublished() bool      { return v.published }

type fakeCustomer struct {
	id               kernel.UUID
	addresses        []kernel.Address
	defaultPaymentID string
}

func (c *fakeCustomer) ID() kernel.UUID { return c.id }

func (c *fakeCustomer) AddAddress(address kernel.Address) error {
	c.addresses = append(c.addresses, address)
	return nil
}

func (c *fakeCustomer) SetDefaultPaymentMethodID(id string) error {
	c.defaultPaymentID = id
	return nil
}

type fakePayment struct {
	id       kernel.UUID
	amount   int64
	captured bool
	belongs  bool
}

func (p *fakePayment) ID() kernel.UUID           { return p.id }
func (p *fakePayment) Token() string             { return "tok_" + p.id.String()[:8] }
func (p *fakePayment) CapturedAmount() int64     { return p.amount }
func (p *fakePayment) PaymentMethodID() string   { return "pm_card" }
func (p *fakePayment) Currency() kernel.Currency { return kernel.Currency{} }
func (p *fakePayment) Cancel() error             { return nil }
func (p *fakePayment) IsFree() bool              { return false }

func (p *fakePayment) Capture() error {
	p.captured = true
	return nil
}

func (p *fakePayment) BelongsToCheckout(*checkout.Checkout) bool { return p.belongs }

type fakeShippingMethod struct {
	applicable bool
	rate       int64
}

func (m fakeShippingMethod) Name() string              { return "DHL" }
func (m fakeShippingMethod) Rate() int64               { return m.rate }
func (m fakeShippingMethod) Type() kernel.ShippingType { return kernel.PriceBased }

func (m fakeShippingMethod) CanBeAppliedToCheckout(*checkout.Checkout) bool { return m.applicable }

func testAddress(t *testing.T, city string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(kernel.AddressFields{
		FirstName:      "Jane",
		LastName:       "Doe",
		StreetAddress1: "1 Main St",
		City:           city,
		Country:        "DE",
	})
	require.NoError(t, err)
	return addr
}

func newTestCheckout(t *testing.T, variants ...*fakeVariant) *checkout.Checkout {
	t.Helper()
	eur, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)

	lines := make([]checkout.PreCheckoutLine, 0, len(variants))
	for _, v := range variants {
		l, err := checkout.NewPreCheckoutLine(v, 2)
		require.NoError(t, err)
		lines = append(lines, l)
	}

	c, err := checkout.NewCheckout(kernel.NewUUID(), lines, "jane@example.com", eur,
		netip.MustParseAddr("203.0.113.7"), kernel.Kilogram)
	require.NoError(t, err)
	return c
}
