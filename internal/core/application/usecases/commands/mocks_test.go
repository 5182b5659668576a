package commands_test

import (
	"context"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/model/payment"
	"shop/internal/core/domain/model/shipping"
	"shop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCheckoutRepository struct{ mock.Mock }

func (m *MockCheckoutRepository) Add(ctx context.Context, c *checkout.Checkout) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCheckoutRepository) Update(ctx context.Context, c *checkout.Checkout) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCheckoutRepository) Get(ctx context.Context, customerID kernel.UUID) (*checkout.Checkout, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(*checkout.Checkout)
	return c, args.Error(1)
}

func (m *MockCheckoutRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID) (*checkout.Checkout, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(*checkout.Checkout)
	return c, args.Error(1)
}

func (m *MockCheckoutRepository) Delete(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCheckoutRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockVariantRepository struct{ mock.Mock }

func (m *MockVariantRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Variant, error) {
	args := m.Called(ctx, ids)
	v, _ := args.Get(0).([]*catalog.Variant)
	return v, args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

type MockShippingMethodRepository struct{ mock.Mock }

func (m *MockShippingMethodRepository) Get(ctx context.Context, id kernel.UUID) (*shipping.Method, error) {
	args := m.Called(ctx, id)
	method, _ := args.Get(0).(*shipping.Method)
	return method, args.Error(1)
}

// MockTx records the transaction calls shared by every unit of work.
type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUoW implements every unit of work interface of the commands package with
// fixed repositories. Transaction calls go through the embedded MockTx.
type MockUoW struct {
	MockTx

	orders    *MockOrderRepository
	checkouts *MockCheckoutRepository
	variants  *MockVariantRepository
	customers *MockCustomerRepository
	payments  *MockPaymentRepository
	methods   *MockShippingMethodRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:    new(MockOrderRepository),
		checkouts: new(MockCheckoutRepository),
		variants:  new(MockVariantRepository),
		customers: new(MockCustomerRepository),
		payments:  new(MockPaymentRepository),
		methods:   new(MockShippingMethodRepository),
	}
}

func (m *MockUoW) OrderRepository() ports.OrderRepository                   { return m.orders }
func (m *MockUoW) CheckoutRepository() ports.CheckoutRepository             { return m.checkouts }
func (m *MockUoW) VariantRepository() ports.VariantRepository               { return m.variants }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository             { return m.customers }
func (m *MockUoW) PaymentRepository() ports.PaymentRepository               { return m.payments }
func (m *MockUoW) ShippingMethodRepository() ports.ShippingMethodRepository { return m.methods }

func (m *MockUoW) assertExpectations(t mock.TestingT) {
	m.MockTx.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.checkouts.AssertExpectations(t)
	m.variants.AssertExpectations(t)
	m.customers.AssertExpectations(t)
	m.payments.AssertExpectations(t)
	m.methods.AssertExpectations(t)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockCompleteCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCompleteCheckoutUoWFactory) Create() commands.CompleteCheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CompleteCheckoutUoW)
}
