package queries_test

import (
	"context"
	"net/netip"
	"time"

	"shop/internal/adapters/out/postgres/orderrepo"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(kernel.UUID, interface{}) {}

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) Get(ctx context.Context, orderID kernel.UUID) (order.Status, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(order.Status), args.Bool(1), args.Error(2)
}

func (m *MockStatusCache) Set(ctx context.Context, orderID kernel.UUID, status order.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// postgresSuite runs a postgres container with the order tables for the whole suite.
type postgresSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository
}

func (s *postgresSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.FulfillmentDTO{},
		&orderrepo.FulfillmentLineDTO{},
	)
	s.Require().NoError(err)

	s.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (s *postgresSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *postgresSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE order_fulfillment_lines, order_fulfillments, order_lines, orders").Error
	s.Require().NoError(err)
}

// newTestOrder builds an order with a shipped T-Shirt line of quantity 2, a digital
// E-Book line and a 500 shipping amount.
func newTestOrder(t require.TestingT) *order.Order {
	address, err := kernel.NewAddress(kernel.AddressFields{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		StreetAddress1: "Unter den Linden 1",
		City:           "Berlin",
		PostalCode:     "10117",
		Country:        "DE",
	})
	require.NoError(t, err)
	currency, err := kernel.NewCurrency("EUR")
	require.NoError(t, err)
	method, err := kernel.NewShippingMethodDetails("DHL", 500, kernel.PriceBased)
	require.NoError(t, err)
	paymentID := kernel.NewUUID()

	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		CustomerID:      kernel.NewUUID(),
		Email:           "buyer@example.com",
		Currency:        currency,
		CapturedAmount:  4499,
		PaymentID:       &paymentID,
		IPAddress:       netip.MustParseAddr("203.0.113.7"),
		Address:         address,
		ShippingAddress: &address,
		ShippingMethod:  &method,
	}, []order.LineSpec{
		{
			VariantID:        kernel.NewUUID(),
			ProductName:      "T-Shirt",
			VariantName:      "M",
			UnitPrice:        1500,
			Quantity:         2,
			ShippingRequired: true,
		},
		{VariantID: kernel.NewUUID(), ProductName: "E-Book", UnitPrice: 999, Quantity: 1},
	})
	require.NoError(t, err)
	return o
}
