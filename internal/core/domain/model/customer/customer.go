// Package customer holds the Customer aggregate: the address book and default payment
// method a completed checkout may update.
package customer

import (
	"errors"
	"slices"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when using an improperly initialized Customer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is a registered shop customer.
type Customer struct {
	id                     kernel.UUID
	email                  string
	addresses              []kernel.Address
	defaultPaymentMethodID string
	guard                  guard.ConstructorGuard
}

func NewCustomer(id kernel.UUID, email string) (*Customer, error) {
	return RestoreCustomer(id, email, nil, "")
}

// RestoreCustomer rebuilds a customer from storage.
func RestoreCustomer(id kernel.UUID, email string, addresses []kernel.Address, defaultPaymentMethodID string) (*Customer, error) {
	c := &Customer{
		defaultPaymentMethodID: defaultPaymentMethodID,
		guard:                  guard.NewConstructorGuard(),
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.Join(id.Validate(), errs.NewValueIsRequiredError("email"))
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	c.id = id
	c.email = email

	for _, a := range addresses {
		if err := c.AddAddress(a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Validate ensures the customer was built by one of its constructors.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID                { return c.id }
func (c *Customer) Email() string                  { return c.email }
func (c *Customer) Addresses() []kernel.Address    { return slices.Clone(c.addresses) }
func (c *Customer) DefaultPaymentMethodID() string { return c.defaultPaymentMethodID }

// AddAddress stores a copy of address in the address book. An address equal to one
// already stored is skipped.
func (c *Customer) AddAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	if slices.ContainsFunc(c.addresses, address.IsEqual) {
		return nil
	}
	c.addresses = append(c.addresses, address.Copy())
	return nil
}

// SetDefaultPaymentMethodID remembers the payment method to preselect next time.
func (c *Customer) SetDefaultPaymentMethodID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("payment method id")
	}
	c.defaultPaymentMethodID = id
	return nil
}
