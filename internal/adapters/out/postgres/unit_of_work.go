// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// A unit of work spans one business transaction across the order, checkout, catalog,
// customer, payment and shipping repositories.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, handler)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... change o
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Every order saved through a unit of work is tracked. After a successful commit the
// status changes the tracked orders recorded are handed to the OrderEventHandler, so
// nothing is published for a transaction that was rolled back.
//
// Each UnitOfWork instance holds its own transaction; goroutines must not share one.
package postgres

import (
	"context"

	"shop/internal/adapters/out/postgres/catalogrepo"
	"shop/internal/adapters/out/postgres/checkoutrepo"
	"shop/internal/adapters/out/postgres/customerrepo"
	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/adapters/out/postgres/paymentrepo"
	"shop/internal/adapters/out/postgres/shippingrepo"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	handler ports.OrderEventHandler
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// handler receives the order status changes of every committed unit of work; it may be nil.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, eventhandlers.NewOrderStatusChangedHandler(publisher, cache, logger))
func NewGormUnitOfWorkFactory(db *gorm.DB, handler ports.OrderEventHandler) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, handler: handler}
}

// Create produces a new UnitOfWork instance with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		handler:           f.handler,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	handler           ports.OrderEventHandler
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and then
// dispatches the status changes of the tracked orders.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if err != nil {
		return err
	}

	uow.dispatch(ctx, tracked)
	return nil
}

// Rollback discards all changes made within the current transaction together with
// the tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
	return err
}

// dispatch pulls the recorded events of every tracked order once, in tracking order.
func (uow *GormUnitOfWork) dispatch(ctx context.Context, tracked []trackedAggregate) {
	seen := make(map[*order.Order]struct{}, len(tracked))
	var events []order.StatusChanged
	for _, t := range tracked {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		events = append(events, o.PullEvents()...)
	}

	if len(events) == 0 || uow.handler == nil {
		return
	}
	uow.handler.HandleOrderEvents(ctx, events)
}

// conn returns the active transaction, or the main connection outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides access to order persistence within the unit of work.
// Orders added or updated through it are tracked for event dispatch.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CheckoutRepository() ports.CheckoutRepository {
	return checkoutrepo.NewGormCheckoutRepository(uow.conn())
}

func (uow *GormUnitOfWork) VariantRepository() ports.VariantRepository {
	return catalogrepo.NewGormVariantRepository(uow.conn())
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShippingMethodRepository() ports.ShippingMethodRepository {
	return shippingrepo.NewGormShippingMethodRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Called by repository implementations when aggregates are added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
