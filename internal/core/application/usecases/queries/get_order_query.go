// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built straight from the database, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves an order with its lines and fulfillments.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(db)
//
//	o, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s, %d of %d lines shipped\n", o.ID, o.Status, shipped(o), len(o.Lines))
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the read model of an order. Amounts are in minor units of Currency.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	CustomerID     kernel.UUID
	Email          string
	Currency       string
	Status         string
	PreviousStatus string
	CapturedAmount int64
	ShippingMethod string
	ShippingAmount int64
	TotalPrice     int64
	CreatedAt      time.Time
	Lines          []OrderLineResponse
	Fulfillments   []FulfillmentResponse
}

// OrderLineResponse is an order line with its quantity ledger.
type OrderLineResponse struct {
	ID                kernel.UUID
	VariantID         kernel.UUID
	ProductName       string
	VariantName       string
	UnitPrice         int64
	Quantity          int
	ShippingRequired  bool
	FulfilledQuantity int
	ReservedQuantity  int
}

type FulfillmentResponse struct {
	ID             kernel.UUID
	Completed      bool
	TrackingNumber string
	Lines          []FulfillmentLineResponse
}

type FulfillmentLineResponse struct {
	ID          kernel.UUID
	OrderLineID kernel.UUID
	Quantity    int
}
