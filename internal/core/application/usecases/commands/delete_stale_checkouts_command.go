package commands

import (
	"errors"
	"time"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrDeleteStaleCheckoutsCommandIsNotConstructed = errors.New(
	"DeleteStaleCheckoutsCommand must be created via NewDeleteStaleCheckoutsCommand constructor",
)

// DeleteStaleCheckoutsCommand removes checkouts nobody touched since before.
type DeleteStaleCheckoutsCommand struct { //nolint:recvcheck //using for validation
	before time.Time

	guard guard.ConstructorGuard
}

func NewDeleteStaleCheckoutsCommand(before time.Time) (DeleteStaleCheckoutsCommand, error) {
	if before.IsZero() {
		return DeleteStaleCheckoutsCommand{}, errs.NewValueIsRequiredError("before")
	}
	return DeleteStaleCheckoutsCommand{before: before.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteStaleCheckoutsCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStaleCheckoutsCommandIsNotConstructed)
}

func (c DeleteStaleCheckoutsCommand) Before() time.Time { return c.before }
