package order_test

import (
	"testing"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testDetails(t *testing.T) order.Details {
	t.Helper()

	addr, err := kernel.NewAddress(kernel.AddressFields{
		FirstName:      "Jane",
		LastName:       "Doe",
		StreetAddress1: "1 Main St",
		City:           "Berlin",
		Country:        "DE",
	})
	require.NoError(t, err)
	eur, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)

	return order.Details{
		CustomerID: kernel.NewUUID(),
		Email:      "jane@example.com",
		Currency:   eur,
		Address:    addr,
	}
}

func shippedSpec(quantity int) order.LineSpec {
	return order.LineSpec{
		VariantID:        kernel.NewUUID(),
		ProductName:      "T-Shirt",
		VariantName:      "L",
		UnitPrice:        1500,
		Quantity:         quantity,
		ShippingRequired: true,
	}
}

func digitalSpec(quantity int) order.LineSpec {
	return order.LineSpec{
		VariantID:   kernel.NewUUID(),
		ProductName: "E-Book",
		UnitPrice:   999,
		Quantity:    quantity,
	}
}

func newTestOrder(t *testing.T, specs ...order.LineSpec) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), testDetails(t), specs)
	require.NoError(t, err)
	return o
}

// newProcessingOrder returns a confirmed order with one open fulfillment.
func newProcessingOrder(t *testing.T, specs ...order.LineSpec) (*order.Order, *order.Fulfillment) {
	t.Helper()
	o := newTestOrder(t, specs...)
	require.NoError(t, o.Confirm())
	f, err := o.NewFulfillment()
	require.NoError(t, err)
	return o, f
}
