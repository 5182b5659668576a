package postgres

import (
	"shop/internal/adapters/out/postgres/catalogrepo"
	"shop/internal/adapters/out/postgres/checkoutrepo"
	"shop/internal/adapters/out/postgres/customerrepo"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/paymentrepo"
	"shop/internal/adapters/out/postgres/shippingrepo"

	"gorm.io/gorm"
)

// Models lists every table of the service, parents before children.
func Models() []any {
	return []any{
		&catalogrepo.ProductDTO{},
		&catalogrepo.VariantDTO{},
		&shippingrepo.ShippingZoneDTO{},
		&shippingrepo.ShippingMethodDTO{},
		&customerrepo.CustomerDTO{},
		&customerrepo.CustomerAddressDTO{},
		&paymentrepo.PaymentDTO{},
		&checkoutrepo.CheckoutDTO{},
		&checkoutrepo.CheckoutLineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.FulfillmentDTO{},
		&orderrepo.FulfillmentLineDTO{},
	}
}

// Migrate creates or updates the schema of every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
