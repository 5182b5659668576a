// Package checkoutrepo persists checkouts, one per customer.
package checkoutrepo

import (
	"net/netip"
	"time"

	"shop/internal/adapters/out/postgres/pgtypes"
	"shop/internal/core/domain/model/checkout"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
)

// CheckoutDTO is the checkout row. The customer id is its primary key.
type CheckoutDTO struct {
	CustomerID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                      string
	Currency                   string `gorm:"size:3"`
	IPAddress                  string
	MassUnit                   string
	HasAddress                 bool
	AddressCreated             bool
	Address                    pgtypes.AddressDTO `gorm:"embedded;embeddedPrefix:billing_"`
	HasShippingAddress         bool
	ShippingAddressCreated     bool
	ShippingAddress            pgtypes.AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	HasShippingMethod          bool
	ShippingMethodName         string
	ShippingMethodAmount       int64
	ShippingMethodType         string
	PaymentID                  *uuid.UUID `gorm:"type:uuid"`
	PaymentToken               string
	UsesSingleAddress          bool
	SavePaymentMethodAsDefault bool
	SaveCustomerAddresses      bool
	LastChange                 time.Time         `gorm:"index"`
	Lines                      []CheckoutLineDTO `gorm:"foreignKey:CheckoutID;references:CustomerID;constraint:OnDelete:CASCADE"`
}

func (CheckoutDTO) TableName() string {
	return "checkouts"
}

// CheckoutLineDTO is a variant put into a checkout with the catalog values it was added with.
type CheckoutLineDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CheckoutID       uuid.UUID `gorm:"type:uuid;index"`
	Position         int
	VariantID        uuid.UUID `gorm:"type:uuid"`
	ProductID        uuid.UUID `gorm:"type:uuid"`
	ProductName      string
	VariantName      string
	UnitPrice        int64
	Mass             float64
	Quantity         int
	ShippingRequired bool
}

func (CheckoutLineDTO) TableName() string {
	return "checkout_lines"
}

func fromDomain(c *checkout.Checkout) CheckoutDTO {
	s := c.State()
	dto := CheckoutDTO{
		CustomerID:                 s.CustomerID.Bytes(),
		Email:                      s.Email,
		Currency:                   s.Currency.Code(),
		UsesSingleAddress:          s.UsesSingleAddress,
		SavePaymentMethodAsDefault: s.SavePaymentMethodAsDefault,
		SaveCustomerAddresses:      s.SaveCustomerAddresses,
		LastChange:                 s.LastChange,
	}
	if s.IPAddress.IsValid() {
		dto.IPAddress = s.IPAddress.String()
	}
	if s.MassUnit.Validate() == nil {
		dto.MassUnit = s.MassUnit.String()
	}
	if s.Address != nil {
		dto.HasAddress = true
		dto.AddressCreated = s.Address.Created
		dto.Address = pgtypes.AddressFromDomain(s.Address.Address)
	}
	if s.ShippingAddress != nil {
		dto.HasShippingAddress = true
		dto.ShippingAddressCreated = s.ShippingAddress.Created
		dto.ShippingAddress = pgtypes.AddressFromDomain(s.ShippingAddress.Address)
	}
	if s.ShippingMethod != nil {
		dto.HasShippingMethod = true
		dto.ShippingMethodName = s.ShippingMethod.Name()
		dto.ShippingMethodAmount = s.ShippingMethod.Amount()
		dto.ShippingMethodType = s.ShippingMethod.Type().String()
	}
	if s.Payment != nil {
		id := s.Payment.ID.Bytes()
		dto.PaymentID = &id
		dto.PaymentToken = s.Payment.Token
	}

	for i, l := range s.Lines {
		dto.Lines = append(dto.Lines, CheckoutLineDTO{
			ID:               l.ID.Bytes(),
			CheckoutID:       dto.CustomerID,
			Position:         i,
			VariantID:        l.VariantID.Bytes(),
			ProductID:        l.ProductID.Bytes(),
			ProductName:      l.ProductName,
			VariantName:      l.VariantName,
			UnitPrice:        l.UnitPrice,
			Mass:             l.Mass,
			Quantity:         l.Quantity,
			ShippingRequired: l.ShippingRequired,
		})
	}
	return dto
}

func toDomain(dto CheckoutDTO) (*checkout.Checkout, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	s := checkout.State{
		CustomerID:                 customerID,
		Email:                      dto.Email,
		Currency:                   currency,
		UsesSingleAddress:          dto.UsesSingleAddress,
		SavePaymentMethodAsDefault: dto.SavePaymentMethodAsDefault,
		SaveCustomerAddresses:      dto.SaveCustomerAddresses,
		LastChange:                 dto.LastChange,
	}
	if dto.IPAddress != "" {
		if s.IPAddress, err = netip.ParseAddr(dto.IPAddress); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("ip address", err)
		}
	}
	if dto.MassUnit != "" {
		if s.MassUnit, err = kernel.MassUnitFromString(dto.MassUnit); err != nil {
			return nil, err
		}
	}
	if dto.HasAddress {
		address, addrErr := dto.Address.ToDomain()
		if addrErr != nil {
			return nil, addrErr
		}
		s.Address = &checkout.AddressState{Address: address, Created: dto.AddressCreated}
	}
	if dto.HasShippingAddress {
		address, addrErr := dto.ShippingAddress.ToDomain()
		if addrErr != nil {
			return nil, addrErr
		}
		s.ShippingAddress = &checkout.AddressState{Address: address, Created: dto.ShippingAddressCreated}
	}
	if dto.HasShippingMethod {
		kind, kindErr := kernel.ShippingTypeFromString(dto.ShippingMethodType)
		if kindErr != nil {
			return nil, kindErr
		}
		method, methodErr := kernel.NewShippingMethodDetails(dto.ShippingMethodName, dto.ShippingMethodAmount, kind)
		if methodErr != nil {
			return nil, methodErr
		}
		s.ShippingMethod = &method
	}
	if dto.PaymentID != nil {
		paymentID, idErr := kernel.UUIDFromBytes((*dto.PaymentID)[:])
		if idErr != nil {
			return nil, idErr
		}
		s.Payment = &checkout.PaymentDetails{ID: paymentID, Token: dto.PaymentToken}
	}

	for _, ld := range dto.Lines {
		line, lineErr := lineToDomain(ld)
		if lineErr != nil {
			return nil, lineErr
		}
		s.Lines = append(s.Lines, line)
	}

	return checkout.RestoreCheckout(s)
}

func lineToDomain(dto CheckoutLineDTO) (checkout.LineState, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return checkout.LineState{}, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return checkout.LineState{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return checkout.LineState{}, err
	}
	return checkout.LineState{
		ID:               id,
		VariantID:        variantID,
		ProductID:        productID,
		ProductName:      dto.ProductName,
		VariantName:      dto.VariantName,
		UnitPrice:        dto.UnitPrice,
		Mass:             dto.Mass,
		Quantity:         dto.Quantity,
		ShippingRequired: dto.ShippingRequired,
	}, nil
}
