// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored across four tables: the order row itself, its lines with their
// reserved and fulfilled counters, its fulfillments and their lines.
package orderrepo

import (
	"net/netip"
	"time"

	"shop/internal/adapters/out/postgres/pgtypes"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID `gorm:"type:uuid;index"`
	Email                string
	Currency             string `gorm:"size:3"`
	CapturedAmount       int64
	PaymentID            *uuid.UUID `gorm:"type:uuid"`
	IPAddress            string
	BillingAddress       pgtypes.AddressDTO `gorm:"embedded;embeddedPrefix:billing_"`
	HasShippingAddress   bool
	ShippingAddress      pgtypes.AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	HasShippingMethod    bool
	ShippingMethodName   string
	ShippingMethodAmount int64
	ShippingMethodType   string
	Status               int `gorm:"index"`
	PreviousStatus       int
	CreatedAt            time.Time
	Lines                []OrderLineDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Fulfillments         []FulfillmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one purchased item together with its quantity ledger.
type OrderLineDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	Position          int
	VariantID         uuid.UUID `gorm:"type:uuid"`
	ProductName       string
	VariantName       string
	UnitPrice         int64
	Quantity          int
	ShippingRequired  bool
	FulfilledQuantity int
	ReservedQuantity  int
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// FulfillmentDTO is a shipment of an order.
type FulfillmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Position       int
	Completed      bool
	TrackingNumber string
	Lines          []FulfillmentLineDTO `gorm:"foreignKey:FulfillmentID;constraint:OnDelete:CASCADE"`
}

func (FulfillmentDTO) TableName() string {
	return "order_fulfillments"
}

// FulfillmentLineDTO is the quantity of one order line put into a fulfillment.
type FulfillmentLineDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FulfillmentID uuid.UUID `gorm:"type:uuid;index"`
	Position      int
	OrderLineID   uuid.UUID `gorm:"type:uuid"`
	Quantity      int
}

func (FulfillmentLineDTO) TableName() string {
	return "order_fulfillment_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:             o.ID().Bytes(),
		CustomerID:     o.CustomerID().Bytes(),
		Email:          o.Email(),
		Currency:       o.Currency().Code(),
		CapturedAmount: o.CapturedAmount(),
		BillingAddress: pgtypes.AddressFromDomain(o.Address()),
		Status:         int(o.Status()),
		PreviousStatus: int(o.PreviousStatus()),
		CreatedAt:      o.CreatedAt(),
	}
	if ip := o.IPAddress(); ip.IsValid() {
		dto.IPAddress = ip.String()
	}
	if id, ok := o.PaymentID(); ok {
		raw := id.Bytes()
		dto.PaymentID = &raw
	}
	if a, ok := o.ShippingAddress(); ok {
		dto.HasShippingAddress = true
		dto.ShippingAddress = pgtypes.AddressFromDomain(a)
	}
	if m, ok := o.ShippingMethod(); ok {
		dto.HasShippingMethod = true
		dto.ShippingMethodName = m.Name()
		dto.ShippingMethodAmount = m.Amount()
		dto.ShippingMethodType = m.Type().String()
	}

	for i, l := range o.Lines() {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ID:                l.ID().Bytes(),
			OrderID:           dto.ID,
			Position:          i,
			VariantID:         l.VariantID().Bytes(),
			ProductName:       l.ProductName(),
			VariantName:       l.VariantName(),
			UnitPrice:         l.UnitPrice(),
			Quantity:          l.Quantity(),
			ShippingRequired:  l.IsShippingRequired(),
			FulfilledQuantity: l.FulfilledQuantity(),
			ReservedQuantity:  l.ReservedQuantity(),
		})
	}
	dto.Fulfillments = fulfillmentsFromDomain(o)

	return dto
}

func fulfillmentsFromDomain(o *order.Order) []FulfillmentDTO {
	orderID := o.ID().Bytes()
	dtos := make([]FulfillmentDTO, 0, len(o.Fulfillments()))
	for i, f := range o.Fulfillments() {
		fd := FulfillmentDTO{
			ID:             f.ID().Bytes(),
			OrderID:        orderID,
			Position:       i,
			Completed:      f.IsCompleted(),
			TrackingNumber: f.TrackingNumber(),
		}
		for j, fl := range f.Lines() {
			fd.Lines = append(fd.Lines, FulfillmentLineDTO{
				ID:            fl.ID().Bytes(),
				FulfillmentID: fd.ID,
				Position:      j,
				OrderLineID:   fl.OrderLine().ID().Bytes(),
				Quantity:      fl.Quantity(),
			})
		}
		dtos = append(dtos, fd)
	}
	return dtos
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder,
// which also checks that the stored counters agree with the stored fulfillments.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	details, err := detailsToDomain(dto)
	if err != nil {
		return nil, err
	}

	lines := make([]order.RestoredLine, 0, len(dto.Lines))
	for _, ld := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(ld.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		variantID, lineErr := kernel.UUIDFromBytes(ld.VariantID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, order.RestoredLine{
			ID: lineID,
			Spec: order.LineSpec{
				VariantID:        variantID,
				ProductName:      ld.ProductName,
				VariantName:      ld.VariantName,
				UnitPrice:        ld.UnitPrice,
				Quantity:         ld.Quantity,
				ShippingRequired: ld.ShippingRequired,
			},
			FulfilledQuantity: ld.FulfilledQuantity,
			ReservedQuantity:  ld.ReservedQuantity,
		})
	}

	fulfillments := make([]order.RestoredFulfillment, 0, len(dto.Fulfillments))
	for _, fd := range dto.Fulfillments {
		fulfillmentID, fErr := kernel.UUIDFromBytes(fd.ID[:])
		if fErr != nil {
			return nil, fErr
		}
		rf := order.RestoredFulfillment{
			ID:             fulfillmentID,
			Completed:      fd.Completed,
			TrackingNumber: fd.TrackingNumber,
		}
		for _, fld := range fd.Lines {
			lineID, flErr := kernel.UUIDFromBytes(fld.ID[:])
			if flErr != nil {
				return nil, flErr
			}
			orderLineID, flErr := kernel.UUIDFromBytes(fld.OrderLineID[:])
			if flErr != nil {
				return nil, flErr
			}
			rf.Lines = append(rf.Lines, order.RestoredFulfillmentLine{
				ID:          lineID,
				OrderLineID: orderLineID,
				Quantity:    fld.Quantity,
			})
		}
		fulfillments = append(fulfillments, rf)
	}

	return order.RestoreOrder(id, details, order.Status(dto.Status), order.Status(dto.PreviousStatus),
		dto.CreatedAt, lines, fulfillments)
}

func detailsToDomain(dto OrderDTO) (order.Details, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return order.Details{}, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return order.Details{}, err
	}
	address, err := dto.BillingAddress.ToDomain()
	if err != nil {
		return order.Details{}, err
	}

	details := order.Details{
		CustomerID:     customerID,
		Email:          dto.Email,
		Currency:       currency,
		CapturedAmount: dto.CapturedAmount,
		Address:        address,
	}
	if dto.IPAddress != "" {
		ip, ipErr := netip.ParseAddr(dto.IPAddress)
		if ipErr != nil {
			return order.Details{}, errs.NewValueIsInvalidErrorWithCause("ip address", ipErr)
		}
		details.IPAddress = ip
	}
	if dto.PaymentID != nil {
		paymentID, idErr := kernel.UUIDFromBytes((*dto.PaymentID)[:])
		if idErr != nil {
			return order.Details{}, idErr
		}
		details.PaymentID = &paymentID
	}
	if dto.HasShippingAddress {
		shippingAddress, addrErr := dto.ShippingAddress.ToDomain()
		if addrErr != nil {
			return order.Details{}, addrErr
		}
		details.ShippingAddress = &shippingAddress
	}
	if dto.HasShippingMethod {
		kind, kindErr := kernel.ShippingTypeFromString(dto.ShippingMethodType)
		if kindErr != nil {
			return order.Details{}, kindErr
		}
		method, methodErr := kernel.NewShippingMethodDetails(dto.ShippingMethodName, dto.ShippingMethodAmount, kind)
		if methodErr != nil {
			return order.Details{}, methodErr
		}
		details.ShippingMethod = &method
	}
	return details, nil
}
