package commands

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// CreateFulfillmentCommandHandler opens a fulfillment. The order must be processable
// and every requested quantity must fit into what is still assignable on its line.
type CreateFulfillmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateFulfillmentCommandHandler(uowFactory OrderUoWFactory) CreateFulfillmentCommandHandler {
	return CreateFulfillmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the new fulfillment.
func (h *CreateFulfillmentCommandHandler) Handle(ctx context.Context, cmd CreateFulfillmentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var id kernel.UUID
	err := changeOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		f, err := o.NewFulfillment()
		if err != nil {
			return err
		}
		for _, in := range cmd.Lines() {
			line, lineErr := findOrderLine(o, in.OrderLineID)
			if lineErr != nil {
				return lineErr
			}
			if _, lineErr = f.AddLine(line, in.Quantity); lineErr != nil {
				return lineErr
			}
		}
		id = f.ID()
		return nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	return id, nil
}
