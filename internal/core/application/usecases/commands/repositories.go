// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CheckoutRepoFactory interface {
		CheckoutRepository() ports.CheckoutRepository
	}

	VariantRepoFactory interface {
		VariantRepository() ports.VariantRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	ShippingMethodRepoFactory interface {
		ShippingMethodRepository() ports.ShippingMethodRepository
	}

	// OrderUoW manages transactions for operations on a single order and its fulfillments.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages transactions for checkout editing. Besides the checkout
	// itself these commands read the catalog and shipping methods and register payments.
	CheckoutUoW interface {
		TxManager
		CheckoutRepoFactory
		VariantRepoFactory
		ShippingMethodRepoFactory
		PaymentRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// CompleteCheckoutUoW spans every aggregate touched when a checkout becomes an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   checkoutRepo := uow.CheckoutRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	CompleteCheckoutUoW interface {
		TxManager
		CheckoutRepoFactory
		CustomerRepoFactory
		PaymentRepoFactory
		OrderRepoFactory
	}

	// CompleteCheckoutUoWFactory creates new unit of work instances for checkout completion.
	CompleteCheckoutUoWFactory interface {
		Create() CompleteCheckoutUoW
	}
)
