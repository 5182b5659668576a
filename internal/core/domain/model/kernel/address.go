package kernel

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"

	"golang.org/x/text/language"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// AddressFields carries the raw components of an Address. It is the input of NewAddress
// and the output of Address.Fields, so adapters never touch Address internals.
type AddressFields struct {
	FirstName      string
	LastName       string
	CompanyName    string
	StreetAddress1 string
	StreetAddress2 string
	City           string
	CityArea       string
	PostalCode     string
	Country        string
	CountryArea    string
	Phone          string
}

// Address is an immutable postal address used for billing and shipping.
type Address struct { //nolint:recvcheck //using for validation
	fields AddressFields
	guard  guard.ConstructorGuard
}

// NewAddress validates fields and builds an Address.
// First name, last name, street, city and a two letter ISO 3166 country code are required;
// the country code is normalised to upper case.
func NewAddress(fields AddressFields) (Address, error) {
	fields = trimAddressFields(fields)

	var problems []error
	for _, required := range []struct{ name, value string }{
		{"first name", fields.FirstName},
		{"last name", fields.LastName},
		{"street address 1", fields.StreetAddress1},
		{"city", fields.City},
	} {
		if required.value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(required.name))
		}
	}

	country, err := normalizeCountry(fields.Country)
	if err != nil {
		problems = append(problems, err)
	}
	fields.Country = country

	if err = errors.Join(problems...); err != nil {
		return Address{}, err
	}

	return Address{fields: fields, guard: guard.NewConstructorGuard()}, nil
}

// Validate fails for a zero-value Address.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Fields returns a copy of the address components.
func (a Address) Fields() AddressFields {
	return a.fields
}

// Country returns the upper case ISO 3166-1 alpha-2 country code.
func (a Address) Country() string {
	return a.fields.Country
}

// City returns the city name.
func (a Address) City() string {
	return a.fields.City
}

// FullName joins first and last name.
func (a Address) FullName() string {
	return strings.TrimSpace(a.fields.FirstName + " " + a.fields.LastName)
}

// Copy returns an independent Address with every component copied.
func (a Address) Copy() Address {
	return Address{
		fields: AddressFields{
			FirstName:      a.fields.FirstName,
			LastName:       a.fields.LastName,
			CompanyName:    a.fields.CompanyName,
			StreetAddress1: a.fields.StreetAddress1,
			StreetAddress2: a.fields.StreetAddress2,
			City:           a.fields.City,
			CityArea:       a.fields.CityArea,
			PostalCode:     a.fields.PostalCode,
			Country:        a.fields.Country,
			CountryArea:    a.fields.CountryArea,
			Phone:          a.fields.Phone,
		},
		guard: a.guard,
	}
}

// IsEqual compares all address components.
func (a Address) IsEqual(other Address) bool {
	return a.fields == other.fields
}

// String renders a single line form, mostly for logs.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s",
		a.FullName(), a.fields.StreetAddress1, a.fields.PostalCode, a.fields.City, a.fields.Country)
}

// ParseCountry validates an ISO 3166-1 alpha-2 code and returns it in upper case.
func ParseCountry(code string) (string, error) {
	return normalizeCountry(strings.ToUpper(strings.TrimSpace(code)))
}

func normalizeCountry(code string) (string, error) {
	if code == "" {
		return "", errs.NewValueIsRequiredError("country")
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() || len(code) != 2 {
		return "", errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not an ISO 3166 country code", code))
	}
	return region.String(), nil
}

func trimAddressFields(f AddressFields) AddressFields {
	return AddressFields{
		FirstName:      strings.TrimSpace(f.FirstName),
		LastName:       strings.TrimSpace(f.LastName),
		CompanyName:    strings.TrimSpace(f.CompanyName),
		StreetAddress1: strings.TrimSpace(f.StreetAddress1),
		StreetAddress2: strings.TrimSpace(f.StreetAddress2),
		City:           strings.TrimSpace(f.City),
		CityArea:       strings.TrimSpace(f.CityArea),
		PostalCode:     strings.TrimSpace(f.PostalCode),
		Country:        strings.ToUpper(strings.TrimSpace(f.Country)),
		CountryArea:    strings.TrimSpace(f.CountryArea),
		Phone:          strings.TrimSpace(f.Phone),
	}
}
