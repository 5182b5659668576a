// Package http exposes the checkout and order use cases over a JSON API.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case contracts the server calls. The command and query handlers satisfy them.
type (
	CreateCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCheckoutCommand) error
	}
	SetCheckoutAddressHandler interface {
		Handle(ctx context.Context, cmd commands.SetCheckoutAddressCommand) error
	}
	UseSingleAddressHandler interface {
		Handle(ctx context.Context, cmd commands.UseSingleAddressCommand) error
	}
	SetCheckoutShippingMethodHandler interface {
		Handle(ctx context.Context, cmd commands.SetCheckoutShippingMethodCommand) error
	}
	SetCheckoutPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.SetCheckoutPaymentCommand) error
	}
	CompleteCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteCheckoutCommand) (kernel.UUID, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
	}
	CreateFulfillmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateFulfillmentCommand) (kernel.UUID, error)
	}
	FulfillmentHandler interface {
		AddLine(ctx context.Context, cmd commands.AddFulfillmentLineCommand) error
		ChangeLineQuantity(ctx context.Context, cmd commands.ChangeFulfillmentLineQuantityCommand) error
		RemoveLine(ctx context.Context, cmd commands.RemoveFulfillmentLineCommand) error
		Complete(ctx context.Context, cmd commands.CompleteFulfillmentCommand) error
		Remove(ctx context.Context, cmd commands.RemoveFulfillmentCommand) error
		SetTrackingNumber(ctx context.Context, cmd commands.SetFulfillmentTrackingNumberCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}
	GetOrderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (*queries.GetOrderStatusQueryResponse, error)
	}
)

// Handlers groups the use cases served by Server.
type Handlers struct {
	CreateCheckout            CreateCheckoutHandler
	SetCheckoutAddress        SetCheckoutAddressHandler
	UseSingleAddress          UseSingleAddressHandler
	SetCheckoutShippingMethod SetCheckoutShippingMethodHandler
	SetCheckoutPayment        SetCheckoutPaymentHandler
	CompleteCheckout          CompleteCheckoutHandler
	ChangeOrderStatus         ChangeOrderStatusHandler
	CreateFulfillment         CreateFulfillmentHandler
	Fulfillment               FulfillmentHandler
	GetOrder                  GetOrderHandler
	GetOrderStatus            GetOrderStatusHandler
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{h: handlers, logger: logger.With("component", "http_server")}
}

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterRoutes mounts the API under /api/v1 and the health check at /health.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/checkouts", s.CreateCheckout)
	api.PUT("/checkouts/:customerID/addresses/:kind", s.SetCheckoutAddress)
	api.PUT("/checkouts/:customerID/single-address", s.UseSingleAddress)
	api.PUT("/checkouts/:customerID/shipping-method", s.SetCheckoutShippingMethod)
	api.PUT("/checkouts/:customerID/payment", s.SetCheckoutPayment)
	api.POST("/checkouts/:customerID/complete", s.CompleteCheckout)

	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/orders/:orderID/status", s.GetOrderStatus)
	api.POST("/orders/:orderID/actions/:action", s.ChangeOrderStatus)

	api.POST("/orders/:orderID/fulfillments", s.CreateFulfillment)
	api.DELETE("/orders/:orderID/fulfillments/:fulfillmentID", s.RemoveFulfillment)
	api.POST("/orders/:orderID/fulfillments/:fulfillmentID/complete", s.CompleteFulfillment)
	api.PUT("/orders/:orderID/fulfillments/:fulfillmentID/tracking-number", s.SetFulfillmentTrackingNumber)
	api.POST("/orders/:orderID/fulfillments/:fulfillmentID/lines", s.AddFulfillmentLine)
	api.PUT("/orders/:orderID/fulfillments/:fulfillmentID/lines/:lineID", s.ChangeFulfillmentLineQuantity)
	api.DELETE("/orders/:orderID/fulfillments/:fulfillmentID/lines/:lineID", s.RemoveFulfillmentLine)
}

// fail maps an error to its status code: invalid arguments are 400, missing objects
// 404, broken business rules 422 and anything else 500.
func (s *Server) fail(c echo.Context, err error) error {
	switch {
	case errs.IsInvalidArgument(err):
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, errs.ErrDomainRuleViolation):
		return c.JSON(http.StatusUnprocessableEntity, Error{Code: http.StatusUnprocessableEntity, Message: err.Error()})
	default:
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// pathParameterOptions match the simple style path parameters of openapi.yaml.
var pathParameterOptions = runtime.BindStyledParameterOptions{
	ParamLocation: runtime.ParamLocationPath,
	Explode:       false,
	Required:      true,
}

// pathUUID binds a uuid path parameter; the error is an invalid argument.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	if err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, pathParameterOptions); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// pathString binds a plain path parameter such as an address kind or an order action.
func pathString(c echo.Context, name string) (string, error) {
	var value string
	if err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value, pathParameterOptions); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func fulfillmentRef(c echo.Context) (commands.FulfillmentRef, error) {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return commands.FulfillmentRef{}, err
	}
	fulfillmentID, err := pathUUID(c, "fulfillmentID")
	if err != nil {
		return commands.FulfillmentRef{}, err
	}
	return commands.FulfillmentRef{OrderID: orderID, FulfillmentID: fulfillmentID}, nil
}
