package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it returns take part
// in the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction and then hands the status changes of every
	// order saved through it to the configured OrderEventHandler.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CheckoutRepository() CheckoutRepository
	VariantRepository() VariantRepository
	CustomerRepository() CustomerRepository
	PaymentRepository() PaymentRepository
	ShippingMethodRepository() ShippingMethodRepository
}
