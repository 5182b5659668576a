package commands_test

import (
	"net/netip"
	"testing"

	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/payment"
	"shop/internal/core/domain/model/shipping"

	"github.com/stretchr/testify/require"
)

func testAddressFields() kernel.AddressFields {
	return kernel.AddressFields{
		FirstName:      "Jane",
		LastName:       "Doe",
		StreetAddress1: "1 Main St",
		City:           "Berlin",
		PostalCode:     "10115",
		Country:        "DE",
	}
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(testAddressFields())
	require.NoError(t, err)
	return addr
}

func eur(t *testing.T) kernel.Currency {
	t.Helper()
	c, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	return c
}

// newTestVariant returns a physical variant priced 1500 weighing 0.3 kg.
func newTestVariant(t *testing.T) *catalog.Variant {
	t.Helper()
	product, err := catalog.NewProduct(kernel.NewUUID(), "T-Shirt", 1500, 0.3, false, true)
	require.NoError(t, err)
	v, err := catalog.NewVariant(kernel.NewUUID(), product, "M", nil, nil)
	require.NoError(t, err)
	return v
}

func newTestShippingMethod(t *testing.T) *shipping.Method {
	t.Helper()
	zone, err := shipping.NewZone(kernel.NewUUID(), "Europe", []string{"DE", "FR"})
	require.NoError(t, err)
	method, err := shipping.NewMethod(kernel.NewUUID(), "DHL", zone, kernel.PriceBased, 500, shipping.Limits{})
	require.NoError(t, err)
	return method
}

// newTestCheckout returns a checkout of two T-Shirts for customerID, without address.
func newTestCheckout(t *testing.T, customerID kernel.UUID) *checkout.Checkout {
	t.Helper()
	line, err := checkout.NewPreCheckoutLine(newTestVariant(t), 2)
	require.NoError(t, err)
	c, err := checkout.NewCheckout(customerID, []checkout.PreCheckoutLine{line}, "jane@example.com",
		eur(t), netip.MustParseAddr("203.0.113.7"), kernel.Kilogram)
	require.NoError(t, err)
	return c
}

// newReadyCheckout returns a checkout with address and shipping method set, totalling 3500.
func newReadyCheckout(t *testing.T, customerID kernel.UUID) *checkout.Checkout {
	t.Helper()
	c := newTestCheckout(t, customerID)
	require.NoError(t, c.AddAddress(testAddress(t)))
	c.UseSingleAddress(true)
	require.NoError(t, c.SetShippingMethod(newTestShippingMethod(t)))
	return c
}

func newTestCustomer(t *testing.T, id kernel.UUID) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(id, "jane@example.com")
	require.NoError(t, err)
	return c
}

func newTestPayment(t *testing.T, customerID kernel.UUID, amount int64) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), customerID, "tok_visa", "pm_card_4242", eur(t), amount)
	require.NoError(t, err)
	return p
}

// newConfirmedOrder returns a confirmed order with one shipped line of quantity 3.
func newConfirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		CustomerID: kernel.NewUUID(),
		Email:      "jane@example.com",
		Currency:   eur(t),
		Address:    testAddress(t),
	}, []order.LineSpec{{
		VariantID:        kernel.NewUUID(),
		ProductName:      "T-Shirt",
		VariantName:      "M",
		UnitPrice:        1500,
		Quantity:         3,
		ShippingRequired: true,
	}})
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	return o
}
