package queries

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order from the order tables with three queries:
// the order row, its lines and its fulfillment lines.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or errs.ErrObjectNotFound. Lines and fulfillments keep the
// order they were created in.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	resp, err := h.readOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if resp.Lines, err = h.readLines(db, orderID); err != nil {
		return nil, err
	}
	if resp.Fulfillments, err = h.readFulfillments(db, orderID); err != nil {
		return nil, err
	}

	resp.TotalPrice = resp.ShippingAmount
	for _, l := range resp.Lines {
		resp.TotalPrice += l.UnitPrice * int64(l.Quantity)
	}
	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, orderID uuid.UUID) (*GetOrderQueryResponse, error) {
	var (
		resp                   GetOrderQueryResponse
		id, customerID         uuid.UUID
		status, previousStatus int
	)

	err := db.Raw(`
		SELECT
			id,
			customer_id,
			email,
			currency,
			status,
			previous_status,
			captured_amount,
			shipping_method_name,
			shipping_method_amount,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID).Row().Scan(
		&id,
		&customerID,
		&resp.Email,
		&resp.Currency,
		&status,
		&previousStatus,
		&resp.CapturedAmount,
		&resp.ShippingMethod,
		&resp.ShippingAmount,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return nil, err
	}
	resp.Status = order.Status(status).String()
	resp.PreviousStatus = order.Status(previousStatus).String()
	return &resp, nil
}

func (h GetOrderQueryHandler) readLines(db *gorm.DB, orderID uuid.UUID) ([]OrderLineResponse, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			variant_id,
			product_name,
			variant_name,
			unit_price,
			quantity,
			shipping_required,
			fulfilled_quantity,
			reserved_quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			line          OrderLineResponse
			id, variantID uuid.UUID
		)
		err = rows.Scan(
			&id,
			&variantID,
			&line.ProductName,
			&line.VariantName,
			&line.UnitPrice,
			&line.Quantity,
			&line.ShippingRequired,
			&line.FulfilledQuantity,
			&line.ReservedQuantity,
		)
		if err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if line.VariantID, err = kernel.UUIDFromBytes(variantID[:]); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// readFulfillments left joins the lines so empty fulfillments are listed too.
func (h GetOrderQueryHandler) readFulfillments(db *gorm.DB, orderID uuid.UUID) ([]FulfillmentResponse, error) {
	rows, err := db.Raw(`
		SELECT
			f.id,
			f.completed,
			f.tracking_number,
			fl.id,
			fl.order_line_id,
			fl.quantity
		FROM order_fulfillments f
		LEFT JOIN order_fulfillment_lines fl ON fl.fulfillment_id = f.id
		WHERE f.order_id = ?
		ORDER BY f.position, fl.position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fulfillments := make([]FulfillmentResponse, 0)
	for rows.Next() {
		var (
			fulfillmentID uuid.UUID
			completed     bool
			tracking      string
			lineID        uuid.NullUUID
			orderLineID   uuid.NullUUID
			quantity      sql.NullInt64
		)
		if err = rows.Scan(&fulfillmentID, &completed, &tracking, &lineID, &orderLineID, &quantity); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(fulfillmentID[:])
		if idErr != nil {
			return nil, idErr
		}
		if n := len(fulfillments); n == 0 || !fulfillments[n-1].ID.IsEqual(id) {
			fulfillments = append(fulfillments, FulfillmentResponse{
				ID:             id,
				Completed:      completed,
				TrackingNumber: tracking,
				Lines:          make([]FulfillmentLineResponse, 0),
			})
		}
		if !lineID.Valid {
			continue
		}

		line := FulfillmentLineResponse{Quantity: int(quantity.Int64)}
		if line.ID, err = kernel.UUIDFromBytes(lineID.UUID[:]); err != nil {
			return nil, err
		}
		if line.OrderLineID, err = kernel.UUIDFromBytes(orderLineID.UUID[:]); err != nil {
			return nil, err
		}
		current := &fulfillments[len(fulfillments)-1]
		current.Lines = append(current.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return fulfillments, nil
}
