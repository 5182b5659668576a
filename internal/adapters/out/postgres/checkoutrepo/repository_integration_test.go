package checkoutrepo_test

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"shop/internal/adapters/out/postgres/checkoutrepo"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/payment"
	"shop/internal/core/domain/model/shipping"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CheckoutRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *checkoutrepo.GormCheckoutRepository
}

func (suite *CheckoutRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&checkoutrepo.CheckoutDTO{}, &checkoutrepo.CheckoutLineDTO{}))
}

func (suite *CheckoutRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE checkout_lines, checkouts").Error)
	suite.repository = checkoutrepo.NewGormCheckoutRepository(suite.db)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	c := suite.createCheckout(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, c))

	loaded, err := suite.repository.Get(ctx, c.CustomerID())
	suite.Require().NoError(err)
	suite.Equal("buyer@example.com", loaded.Email())
	suite.Equal("EUR", loaded.Currency().Code())
	suite.Equal(netip.MustParseAddr("203.0.113.7"), loaded.IPAddress())
	suite.Equal(kernel.Kilogram, loaded.MassUnit())
	suite.Equal(int64(3000), loaded.Price())
	suite.InDelta(0.6, loaded.TotalMass(), 1e-9)
	suite.True(loaded.IsShippingRequired())
	suite.Require().Len(loaded.Lines(), 1)
	suite.True(loaded.Lines()[0].ID().IsEqual(c.Lines()[0].ID()))
	suite.Equal("T-Shirt", loaded.Lines()[0].ProductName())
	suite.WithinDuration(c.LastChange(), loaded.LastChange(), time.Millisecond)

	_, ok := loaded.Address()
	suite.False(ok)
	_, ok = loaded.Payment()
	suite.False(ok)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestUpdate_PersistsSelections() {
	ctx := context.Background()
	c := suite.createCheckout(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, c))

	suite.Require().NoError(c.AddAddress(suite.address()))
	c.UseSingleAddress(true)
	suite.Require().NoError(c.SetShippingMethod(suite.shippingMethod()))
	p, err := payment.NewPayment(kernel.NewUUID(), c.CustomerID(), "tok_visa", "pm_card_4242", c.Currency(), c.TotalPrice())
	suite.Require().NoError(err)
	suite.Require().NoError(c.SetPayment(p))
	c.SetSaveCustomerAddresses(true)

	suite.Require().NoError(suite.repository.Update(ctx, c))

	loaded, err := suite.repository.Get(ctx, c.CustomerID())
	suite.Require().NoError(err)
	address, ok := loaded.Address()
	suite.Require().True(ok)
	suite.Equal("Berlin", address.City())
	suite.True(loaded.UsesSingleAddress())
	suite.True(loaded.SavesCustomerAddresses())
	suite.False(loaded.SavesPaymentMethodAsDefault())

	method, ok := loaded.ShippingMethod()
	suite.Require().True(ok)
	suite.Equal("DHL", method.Name())
	suite.Equal(int64(3500), loaded.TotalPrice())

	details, ok := loaded.Payment()
	suite.Require().True(ok)
	suite.True(details.ID.IsEqual(p.ID()))
	suite.Equal("tok_visa", details.Token)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestUpdate_ClearsDroppedSelections() {
	ctx := context.Background()
	c := suite.createCheckout(kernel.NewUUID())
	suite.Require().NoError(c.AddAddress(suite.address()))
	c.UseSingleAddress(true)
	suite.Require().NoError(c.SetShippingMethod(suite.shippingMethod()))
	suite.Require().NoError(suite.repository.Add(ctx, c))

	// A new billing address resets the shipping method.
	suite.Require().NoError(c.SetAddress(suite.address()))
	suite.Require().NoError(suite.repository.Update(ctx, c))

	loaded, err := suite.repository.Get(ctx, c.CustomerID())
	suite.Require().NoError(err)
	_, ok := loaded.ShippingMethod()
	suite.False(ok)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestUpdate_MissingCheckout_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.createCheckout(kernel.NewUUID()))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestGet_MissingCheckout_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestGetForUpdate_WithinTransaction() {
	ctx := context.Background()
	c := suite.createCheckout(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, c))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		loaded, getErr := checkoutrepo.NewGormCheckoutRepository(tx).GetForUpdate(ctx, c.CustomerID())
		if getErr != nil {
			return getErr
		}
		suite.True(loaded.CustomerID().IsEqual(c.CustomerID()))
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestDelete_RemovesCheckoutAndLines() {
	ctx := context.Background()
	c := suite.createCheckout(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, c))

	suite.Require().NoError(suite.repository.Delete(ctx, c.CustomerID()))

	_, err := suite.repository.Get(ctx, c.CustomerID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertRowCount(&checkoutrepo.CheckoutLineDTO{}, 0)

	suite.Require().NoError(suite.repository.Delete(ctx, c.CustomerID()), "deleting twice is fine")
}

func (suite *CheckoutRepositoryIntegrationTestSuite) TestDeleteStale_RemovesOnlyOldCheckouts() {
	ctx := context.Background()
	stale := suite.createCheckout(kernel.NewUUID())
	fresh := suite.createCheckout(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))
	suite.Require().NoError(suite.db.Model(&checkoutrepo.CheckoutDTO{}).
		Where("customer_id = ?", stale.CustomerID().Bytes()).
		Update("last_change", time.Now().Add(-48*time.Hour)).Error)

	deleted, err := suite.repository.DeleteStale(ctx, time.Now().Add(-24*time.Hour))

	suite.Require().NoError(err)
	suite.Equal(int64(1), deleted)
	_, err = suite.repository.Get(ctx, stale.CustomerID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.Get(ctx, fresh.CustomerID())
	suite.Require().NoError(err)
	suite.assertRowCount(&checkoutrepo.CheckoutLineDTO{}, 1)
}

func (suite *CheckoutRepositoryIntegrationTestSuite) createCheckout(customerID kernel.UUID) *checkout.Checkout {
	product, err := catalog.NewProduct(kernel.NewUUID(), "T-Shirt", 1500, 0.3, false, true)
	suite.Require().NoError(err)
	variant, err := catalog.NewVariant(kernel.NewUUID(), product, "M", nil, nil)
	suite.Require().NoError(err)
	line, err := checkout.NewPreCheckoutLine(variant, 2)
	suite.Require().NoError(err)
	currency, err := kernel.NewCurrency("EUR")
	suite.Require().NoError(err)

	c, err := checkout.NewCheckout(customerID, []checkout.PreCheckoutLine{line}, "buyer@example.com",
		currency, netip.MustParseAddr("203.0.113.7"), kernel.Kilogram)
	suite.Require().NoError(err)
	return c
}

func (suite *CheckoutRepositoryIntegrationTestSuite) address() kernel.Address {
	address, err := kernel.NewAddress(kernel.AddressFields{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		StreetAddress1: "Unter den Linden 1",
		City:           "Berlin",
		PostalCode:     "10117",
		Country:        "DE",
	})
	suite.Require().NoError(err)
	return address
}

func (suite *CheckoutRepositoryIntegrationTestSuite) shippingMethod() *shipping.Method {
	zone, err := shipping.NewZone(kernel.NewUUID(), "Europe", []string{"DE", "FR"})
	suite.Require().NoError(err)
	method, err := shipping.NewMethod(kernel.NewUUID(), "DHL", zone, kernel.PriceBased, 500, shipping.Limits{})
	suite.Require().NoError(err)
	return method
}

func (suite *CheckoutRepositoryIntegrationTestSuite) assertRowCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestCheckoutRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutRepositoryIntegrationTestSuite))
}
