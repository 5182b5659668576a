package commands

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrSetCheckoutAddressCommandIsNotConstructed = errors.New(
	"SetCheckoutAddressCommand must be created via NewSetCheckoutAddressCommand constructor",
)

// AddressKind selects which checkout address a command sets.
type AddressKind int

const (
	BillingAddress AddressKind = iota + 1
	ShippingAddress
)

// AddressKindFromString parses "billing" or "shipping".
func AddressKindFromString(s string) (AddressKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "billing":
		return BillingAddress, nil
	case "shipping":
		return ShippingAddress, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("address kind", fmt.Errorf("%q is not billing or shipping", s))
	}
}

// SetCheckoutAddressCommand sets the billing or shipping address of a checkout.
// An address marked as new was typed in during the checkout and is saved to the
// customer's address book on completion when saveAddresses is on.
type SetCheckoutAddressCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	kind          AddressKind
	address       kernel.Address
	isNew         bool
	saveAddresses bool

	guard guard.ConstructorGuard
}

func NewSetCheckoutAddressCommand(
	customerID kernel.UUID,
	kind AddressKind,
	fields kernel.AddressFields,
	isNew, saveAddresses bool,
) (SetCheckoutAddressCommand, error) {
	cmd := SetCheckoutAddressCommand{
		customerID:    customerID,
		kind:          kind,
		isNew:         isNew,
		saveAddresses: saveAddresses,
		guard:         guard.NewConstructorGuard(),
	}

	var kindErr error
	if kind != BillingAddress && kind != ShippingAddress {
		kindErr = errs.NewValueIsInvalidError("address kind")
	}

	address, addrErr := kernel.NewAddress(fields)
	if err := errors.Join(customerID.Validate(), kindErr, addrErr); err != nil {
		return SetCheckoutAddressCommand{}, err
	}
	cmd.address = address

	return cmd, nil
}

func (c SetCheckoutAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetCheckoutAddressCommandIsNotConstructed)
}

func (c SetCheckoutAddressCommand) CustomerID() kernel.UUID { return c.customerID }
func (c SetCheckoutAddressCommand) Kind() AddressKind       { return c.kind }
func (c SetCheckoutAddressCommand) Address() kernel.Address { return c.address }
func (c SetCheckoutAddressCommand) IsNew() bool             { return c.isNew }
func (c SetCheckoutAddressCommand) SaveAddresses() bool     { return c.saveAddresses }
