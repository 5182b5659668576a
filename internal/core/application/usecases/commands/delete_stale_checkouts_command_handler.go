package commands

import (
	"context"
)

type DeleteStaleCheckoutsCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

func NewDeleteStaleCheckoutsCommandHandler(uowFactory CheckoutUoWFactory) DeleteStaleCheckoutsCommandHandler {
	return DeleteStaleCheckoutsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the stale checkouts and reports how many there were.
func (h *DeleteStaleCheckoutsCommandHandler) Handle(ctx context.Context, cmd DeleteStaleCheckoutsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.CheckoutRepository().DeleteStale(ctx, cmd.Before())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
