// Package shippingrepo reads shipping zones and methods.
package shippingrepo

import (
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/shipping"

	"github.com/google/uuid"
)

// ShippingZoneDTO stores the zone countries as a comma separated list of ISO codes.
type ShippingZoneDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Countries string
}

func (ShippingZoneDTO) TableName() string {
	return "shipping_zones"
}

type ShippingMethodDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ZoneID   uuid.UUID       `gorm:"type:uuid;index"`
	Zone     ShippingZoneDTO `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`
	Name     string
	Type     string `gorm:"size:16"`
	Rate     int64
	MinLimit *float64
	MaxLimit *float64
}

func (ShippingMethodDTO) TableName() string {
	return "shipping_methods"
}

func zoneFromDomain(z *shipping.Zone) ShippingZoneDTO {
	return ShippingZoneDTO{
		ID:        z.ID().Bytes(),
		Name:      z.Name(),
		Countries: strings.Join(z.Countries(), ","),
	}
}

func methodFromDomain(m *shipping.Method) ShippingMethodDTO {
	return ShippingMethodDTO{
		ID:       m.ID().Bytes(),
		ZoneID:   m.Zone().ID().Bytes(),
		Name:     m.Name(),
		Type:     m.Type().String(),
		Rate:     m.Rate(),
		MinLimit: m.Limits().Min,
		MaxLimit: m.Limits().Max,
	}
}

func toDomain(dto ShippingMethodDTO) (*shipping.Method, error) {
	zoneID, err := kernel.UUIDFromBytes(dto.Zone.ID[:])
	if err != nil {
		return nil, err
	}
	var countries []string
	if dto.Zone.Countries != "" {
		countries = strings.Split(dto.Zone.Countries, ",")
	}
	zone, err := shipping.NewZone(zoneID, dto.Zone.Name, countries)
	if err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	kind, err := kernel.ShippingTypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}
	return shipping.NewMethod(id, dto.Name, zone, kind, dto.Rate, shipping.Limits{Min: dto.MinLimit, Max: dto.MaxLimit})
}
