// Package paymentrepo persists payments selected for checkouts.
package paymentrepo

import (
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index"`
	Token           string
	PaymentMethodID string
	Currency        string `gorm:"size:3"`
	Amount          int64
	Status          string `gorm:"size:16"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              p.ID().Bytes(),
		CustomerID:      p.CustomerID().Bytes(),
		Token:           p.Token(),
		PaymentMethodID: p.PaymentMethodID(),
		Currency:        p.Currency().Code(),
		Amount:          p.Amount(),
		Status:          p.Status().String(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	return payment.RestorePayment(id, customerID, dto.Token, dto.PaymentMethodID, currency, dto.Amount, status)
}
