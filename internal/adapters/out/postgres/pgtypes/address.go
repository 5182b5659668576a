// Package pgtypes holds column types shared by the postgres repositories.
package pgtypes

import (
	"shop/internal/core/domain/model/kernel"
)

// AddressDTO is a postal address embedded into the table of its owner.
type AddressDTO struct {
	FirstName      string
	LastName       string
	CompanyName    string
	StreetAddress1 string
	StreetAddress2 string
	City           string
	CityArea       string
	PostalCode     string
	Country        string `gorm:"size:2"`
	CountryArea    string
	Phone          string
}

// AddressFromDomain maps an address to its columns.
func AddressFromDomain(a kernel.Address) AddressDTO {
	f := a.Fields()
	return AddressDTO{
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		CompanyName:    f.CompanyName,
		StreetAddress1: f.StreetAddress1,
		StreetAddress2: f.StreetAddress2,
		City:           f.City,
		CityArea:       f.CityArea,
		PostalCode:     f.PostalCode,
		Country:        f.Country,
		CountryArea:    f.CountryArea,
		Phone:          f.Phone,
	}
}

// ToDomain validates the stored columns again through kernel.NewAddress.
func (dto AddressDTO) ToDomain() (kernel.Address, error) {
	return kernel.NewAddress(kernel.AddressFields{
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		CompanyName:    dto.CompanyName,
		StreetAddress1: dto.StreetAddress1,
		StreetAddress2: dto.StreetAddress2,
		City:           dto.City,
		CityArea:       dto.CityArea,
		PostalCode:     dto.PostalCode,
		Country:        dto.Country,
		CountryArea:    dto.CountryArea,
		Phone:          dto.Phone,
	})
}
