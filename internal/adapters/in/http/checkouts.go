package http

import (
	"net/http"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type CheckoutLine struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type NewCheckout struct {
	CustomerID string         `json:"customer_id"`
	Email      string         `json:"email"`
	Currency   string         `json:"currency"`
	IPAddress  string         `json:"ip_address"`
	MassUnit   string         `json:"mass_unit"`
	Lines      []CheckoutLine `json:"lines"`
}

type Address struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	CompanyName    string `json:"company_name"`
	StreetAddress1 string `json:"street_address_1"`
	StreetAddress2 string `json:"street_address_2"`
	City           string `json:"city"`
	CityArea       string `json:"city_area"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	CountryArea    string `json:"country_area"`
	Phone          string `json:"phone"`
}

type CheckoutAddress struct {
	Address
	IsNew         bool `json:"is_new"`
	SaveAddresses bool `json:"save_addresses"`
}

type SingleAddress struct {
	Enabled bool `json:"enabled"`
}

type CheckoutShippingMethod struct {
	ShippingMethodID string `json:"shipping_method_id"`
}

type CheckoutPayment struct {
	Token           string `json:"token"`
	PaymentMethodID string `json:"payment_method_id"`
	SaveAsDefault   bool   `json:"save_as_default"`
}

type PaymentCreated struct {
	PaymentID string `json:"payment_id"`
}

type OrderCreated struct {
	OrderID string `json:"order_id"`
}

// CreateCheckout handles POST /api/v1/checkouts. The client address is used when the
// body carries no ip_address.
func (s *Server) CreateCheckout(c echo.Context) error {
	var body NewCheckout
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return s.fail(c, err)
	}
	lines := make([]commands.CheckoutLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		variantID, parseErr := kernel.UUIDFromString(l.VariantID)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		lines = append(lines, commands.CheckoutLineInput{VariantID: variantID, Quantity: l.Quantity})
	}
	if body.IPAddress == "" {
		body.IPAddress = c.RealIP()
	}

	cmd, err := commands.NewCreateCheckoutCommand(customerID, body.Email, body.Currency, body.IPAddress, body.MassUnit, lines)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateCheckout.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// SetCheckoutAddress handles PUT /api/v1/checkouts/{customerID}/addresses/{billing|shipping}.
func (s *Server) SetCheckoutAddress(c echo.Context) error {
	customerID, err := pathUUID(c, "customerID")
	if err != nil {
		return s.fail(c, err)
	}
	rawKind, err := pathString(c, "kind")
	if err != nil {
		return s.fail(c, err)
	}
	kind, err := commands.AddressKindFromString(rawKind)
	if err != nil {
		return s.fail(c, err)
	}
	var body CheckoutAddress
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetCheckoutAddressCommand(customerID, kind, kernel.AddressFields(body.Address), body.IsNew, body.SaveAddresses)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SetCheckoutAddress.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UseSingleAddress handles PUT /api/v1/checkouts/{customerID}/single-address.
func (s *Server) UseSingleAddress(c echo.Context) error {
	customerID, err := pathUUID(c, "customerID")
	if err != nil {
		return s.fail(c, err)
	}
	var body SingleAddress
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUseSingleAddressCommand(customerID, body.Enabled)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.UseSingleAddress.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetCheckoutShippingMethod handles PUT /api/v1/checkouts/{customerID}/shipping-method.
func (s *Server) SetCheckoutShippingMethod(c echo.Context) error {
	customerID, err := pathUUID(c, "customerID")
	if err != nil {
		return s.fail(c, err)
	}
	var body CheckoutShippingMethod
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	methodID, err := kernel.UUIDFromString(body.ShippingMethodID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetCheckoutShippingMethodCommand(customerID, methodID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SetCheckoutShippingMethod.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetCheckoutPayment handles PUT /api/v1/checkouts/{customerID}/payment and returns
// the id of the registered payment.
func (s *Server) SetCheckoutPayment(c echo.Context) error {
	customerID, err := pathUUID(c, "customerID")
	if err != nil {
		return s.fail(c, err)
	}
	var body CheckoutPayment
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	paymentID := kernel.NewUUID()
	cmd, err := commands.NewSetCheckoutPaymentCommand(customerID, paymentID, body.Token, body.PaymentMethodID, body.SaveAsDefault)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SetCheckoutPayment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, PaymentCreated{PaymentID: paymentID.String()})
}

// CompleteCheckout handles POST /api/v1/checkouts/{customerID}/complete.
func (s *Server) CompleteCheckout(c echo.Context) error {
	customerID, err := pathUUID(c, "customerID")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteCheckoutCommand(customerID)
	if err != nil {
		return s.fail(c, err)
	}
	orderID, err := s.h.CompleteCheckout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, OrderCreated{OrderID: orderID.String()})
}
