// Package checkout provides the Checkout aggregate: the customer's cart before it
// becomes an order.
//
// A checkout is created from PreCheckoutLines, collects addresses, a shipping method
// and a payment, and is turned into an order.Order by Complete. Catalog items,
// customers, payments and shipping methods are consumed through the narrow
// interfaces declared in contracts.go and implemented by sibling model packages.
package checkout
