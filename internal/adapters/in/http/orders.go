package http

import (
	"net/http"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type Order struct {
	ID             string        `json:"id"`
	CustomerID     string        `json:"customer_id"`
	Email          string        `json:"email"`
	Currency       string        `json:"currency"`
	Status         string        `json:"status"`
	PreviousStatus string        `json:"previous_status"`
	CapturedAmount int64         `json:"captured_amount"`
	ShippingMethod string        `json:"shipping_method,omitempty"`
	ShippingAmount int64         `json:"shipping_amount"`
	TotalPrice     int64         `json:"total_price"`
	CreatedAt      time.Time     `json:"created_at"`
	Lines          []OrderLine   `json:"lines"`
	Fulfillments   []Fulfillment `json:"fulfillments"`
}

type OrderLine struct {
	ID                string `json:"id"`
	VariantID         string `json:"variant_id"`
	ProductName       string `json:"product_name"`
	VariantName       string `json:"variant_name"`
	UnitPrice         int64  `json:"unit_price"`
	Quantity          int    `json:"quantity"`
	ShippingRequired  bool   `json:"shipping_required"`
	FulfilledQuantity int    `json:"fulfilled_quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
}

type Fulfillment struct {
	ID             string            `json:"id"`
	Completed      bool              `json:"completed"`
	TrackingNumber string            `json:"tracking_number"`
	Lines          []FulfillmentLine `json:"lines"`
}

type FulfillmentLine struct {
	ID          string `json:"id"`
	OrderLineID string `json:"order_line_id"`
	Quantity    int    `json:"quantity"`
}

type OrderStatus struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type NewFulfillmentLine struct {
	OrderLineID string `json:"order_line_id"`
	Quantity    int    `json:"quantity"`
}

type NewFulfillment struct {
	Lines []NewFulfillmentLine `json:"lines"`
}

type FulfillmentCreated struct {
	FulfillmentID string `json:"fulfillment_id"`
}

type FulfillmentLineQuantity struct {
	Quantity int `json:"quantity"`
}

type TrackingNumber struct {
	TrackingNumber string `json:"tracking_number"`
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromQuery(o))
}

// GetOrderStatus handles GET /api/v1/orders/{orderID}/status.
func (s *Server) GetOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	status, err := s.h.GetOrderStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, OrderStatus{OrderID: status.OrderID.String(), Status: status.Status})
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderID}/actions/{action}, where action
// is one of confirm, fulfill, undo-fulfill, cancel and reinstate.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return s.fail(c, err)
	}
	rawAction, err := pathString(c, "action")
	if err != nil {
		return s.fail(c, err)
	}
	action, err := commands.OrderActionFromString(rawAction)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, action)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateFulfillment handles POST /api/v1/orders/{orderID}/fulfillments.
func (s *Server) CreateFulfillment(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return s.fail(c, err)
	}
	var body NewFulfillment
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	lines := make([]commands.FulfillmentLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		lineID, parseErr := kernel.UUIDFromString(l.OrderLineID)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		lines = append(lines, commands.FulfillmentLineInput{OrderLineID: lineID, Quantity: l.Quantity})
	}

	cmd, err := commands.NewCreateFulfillmentCommand(orderID, lines)
	if err != nil {
		return s.fail(c, err)
	}
	fulfillmentID, err := s.h.CreateFulfillment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, FulfillmentCreated{FulfillmentID: fulfillmentID.String()})
}

// RemoveFulfillment handles DELETE /api/v1/orders/{orderID}/fulfillments/{fulfillmentID}.
func (s *Server) RemoveFulfillment(c echo.Context) error {
	ref, err := fulfillmentRef(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRemoveFulfillmentCommand(ref)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Fulfillment.Remove(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CompleteFulfillment(c echo.Context) error {
	ref, err := fulfillmentRef(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCompleteFulfillmentCommand(ref)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Fulfillment.Complete(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) SetFulfillmentTrackingNumber(c echo.Context) error {
	ref, err := fulfillmentRef(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body TrackingNumber
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetFulfillmentTrackingNumberCommand(ref, body.TrackingNumber)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Fulfillment.SetTrackingNumber(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AddFulfillmentLine(c echo.Context) error {
	ref, err := fulfillmentRef(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body NewFulfillmentLine
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	orderLineID, err := kernel.UUIDFromString(body.OrderLineID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddFulfillmentLineCommand(ref, orderLineID, body.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Fulfillment.AddLine(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ChangeFulfillmentLineQuantity(c echo.Context) error {
	ref, err := fulfillmentRef(c)
	if err != nil {
		return s.fail(c, err)
	}
	lineID, err := pathUUID(c, "lineID")
	if err != nil {
		return s.fail(c, err)
	}
	var body FulfillmentLineQuantity
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeFulfillmentLineQuantityCommand(ref, lineID, body.Quantity)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Fulfillment.ChangeLineQuantity(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RemoveFulfillmentLine(c echo.Context) error {
	ref, err := fulfillmentRef(c)
	if err != nil {
		return s.fail(c, err)
	}
	lineID, err := pathUUID(c, "lineID")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRemoveFulfillmentLineCommand(ref, lineID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Fulfillment.RemoveLine(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func orderFromQuery(o *queries.GetOrderQueryResponse) Order {
	resp := Order{
		ID:             o.ID.String(),
		CustomerID:     o.CustomerID.String(),
		Email:          o.Email,
		Currency:       o.Currency,
		Status:         o.Status,
		PreviousStatus: o.PreviousStatus,
		CapturedAmount: o.CapturedAmount,
		ShippingMethod: o.ShippingMethod,
		ShippingAmount: o.ShippingAmount,
		TotalPrice:     o.TotalPrice,
		CreatedAt:      o.CreatedAt,
		Lines:          make([]OrderLine, len(o.Lines)),
		Fulfillments:   make([]Fulfillment, len(o.Fulfillments)),
	}

	for i, l := range o.Lines {
		resp.Lines[i] = OrderLine{
			ID:                l.ID.String(),
			VariantID:         l.VariantID.String(),
			ProductName:       l.ProductName,
			VariantName:       l.VariantName,
			UnitPrice:         l.UnitPrice,
			Quantity:          l.Quantity,
			ShippingRequired:  l.ShippingRequired,
			FulfilledQuantity: l.FulfilledQuantity,
			ReservedQuantity:  l.ReservedQuantity,
		}
	}

	for i, f := range o.Fulfillments {
		lines := make([]FulfillmentLine, len(f.Lines))
		for j, fl := range f.Lines {
			lines[j] = FulfillmentLine{ID: fl.ID.String(), OrderLineID: fl.OrderLineID.String(), Quantity: fl.Quantity}
		}
		resp.Fulfillments[i] = Fulfillment{
			ID:             f.ID.String(),
			Completed:      f.Completed,
			TrackingNumber: f.TrackingNumber,
			Lines:          lines,
		}
	}

	return resp
}
