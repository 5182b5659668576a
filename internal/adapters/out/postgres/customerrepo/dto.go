// Package customerrepo persists customers and their address books.
package customerrepo

import (
	"shop/internal/adapters/out/postgres/pgtypes"
	"shop/internal/core/domain/model/customer"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                  string
	DefaultPaymentMethodID string
	Addresses              []CustomerAddressDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// CustomerAddressDTO is one entry of a customer's address book.
type CustomerAddressDTO struct {
	ID         uint      `gorm:"primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	Position   int
	Address    pgtypes.AddressDTO `gorm:"embedded"`
}

func (CustomerAddressDTO) TableName() string {
	return "customer_addresses"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:                     c.ID().Bytes(),
		Email:                  c.Email(),
		DefaultPaymentMethodID: c.DefaultPaymentMethodID(),
	}
	for i, a := range c.Addresses() {
		dto.Addresses = append(dto.Addresses, CustomerAddressDTO{
			CustomerID: dto.ID,
			Position:   i,
			Address:    pgtypes.AddressFromDomain(a),
		})
	}
	return dto
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	addresses := make([]kernel.Address, 0, len(dto.Addresses))
	for _, ad := range dto.Addresses {
		a, addrErr := ad.Address.ToDomain()
		if addrErr != nil {
			return nil, addrErr
		}
		addresses = append(addresses, a)
	}
	return customer.RestoreCustomer(id, dto.Email, addresses, dto.DefaultPaymentMethodID)
}
