package commands

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrCreateCheckoutCommandIsNotConstructed = errors.New(
	"CreateCheckoutCommand must be created via NewCreateCheckoutCommand constructor",
)

// CheckoutLineInput is a requested quantity of one variant.
type CheckoutLineInput struct {
	VariantID kernel.UUID
	Quantity  int
}

// CreateCheckoutCommand starts a checkout for a customer from a list of variants.
//
// Example:
//
//	cmd, err := NewCreateCheckoutCommand(customerID, "jane@example.com", "USD", "203.0.113.7", "kg",
//	    []CheckoutLineInput{{VariantID: variantID, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	handler := NewCreateCheckoutCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
type CreateCheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	email      string
	currency   kernel.Currency
	ipAddress  netip.Addr
	massUnit   kernel.MassUnit
	lines      []CheckoutLineInput

	guard guard.ConstructorGuard
}

// NewCreateCheckoutCommand validates and parses the raw checkout request.
// An empty ipAddress or massUnit is accepted; the mass unit is only required when
// the checkout turns out to need shipping.
func NewCreateCheckoutCommand(
	customerID kernel.UUID,
	email, currency, ipAddress, massUnit string,
	lines []CheckoutLineInput,
) (CreateCheckoutCommand, error) {
	cmd := CreateCheckoutCommand{
		customerID: customerID,
		email:      strings.TrimSpace(email),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customerID.Validate(),
		cmd.setCurrency(currency),
		cmd.setIPAddress(ipAddress),
		cmd.setMassUnit(massUnit),
		cmd.setLines(lines),
	); err != nil {
		return CreateCheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCreateCheckoutCommandIsNotConstructed)
}

func (c CreateCheckoutCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c CreateCheckoutCommand) Email() string             { return c.email }
func (c CreateCheckoutCommand) Currency() kernel.Currency { return c.currency }
func (c CreateCheckoutCommand) IPAddress() netip.Addr     { return c.ipAddress }
func (c CreateCheckoutCommand) MassUnit() kernel.MassUnit { return c.massUnit }

// Lines returns a copy of the requested lines.
func (c CreateCheckoutCommand) Lines() []CheckoutLineInput {
	return append([]CheckoutLineInput(nil), c.lines...)
}

// VariantIDs returns the requested variant ids in line order.
func (c CreateCheckoutCommand) VariantIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		ids = append(ids, l.VariantID)
	}
	return ids
}

func (c *CreateCheckoutCommand) setCurrency(code string) error {
	currency, err := kernel.NewCurrency(code)
	if err != nil {
		return err
	}
	c.currency = currency
	return nil
}

func (c *CreateCheckoutCommand) setIPAddress(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("ip address", err)
	}
	c.ipAddress = addr
	return nil
}

func (c *CreateCheckoutCommand) setMassUnit(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	unit, err := kernel.MassUnitFromString(value)
	if err != nil {
		return err
	}
	c.massUnit = unit
	return nil
}

func (c *CreateCheckoutCommand) setLines(lines []CheckoutLineInput) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("checkout lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if err := l.VariantID.Validate(); err != nil {
			return err
		}
		if _, dup := seen[l.VariantID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("checkout lines", fmt.Errorf("variant %s is listed twice", l.VariantID))
		}
		seen[l.VariantID] = struct{}{}
	}

	c.lines = append([]CheckoutLineInput(nil), lines...)
	return nil
}
