// Package shipping holds shipping zones and the shipping methods offered in them.
package shipping

import (
	"errors"
	"slices"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is a named set of countries shipping methods are offered in.
type Zone struct {
	id        kernel.UUID
	name      string
	countries []string
	guard     guard.ConstructorGuard
}

// NewZone creates a zone covering countries, given as ISO 3166-1 alpha-2 codes.
// Duplicates are dropped.
func NewZone(id kernel.UUID, name string, countries []string) (*Zone, error) {
	z := &Zone{guard: guard.NewConstructorGuard()}

	var problems []error
	problems = append(problems, id.Validate())
	name = strings.TrimSpace(name)
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("zone name"))
	}
	if len(countries) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("zone countries"))
	}
	for _, code := range countries {
		country, err := kernel.ParseCountry(code)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if !slices.Contains(z.countries, country) {
			z.countries = append(z.countries, country)
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	z.id = id
	z.name = name
	return z, nil
}

// Validate ensures the zone was built by NewZone.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

func (z *Zone) ID() kernel.UUID     { return z.id }
func (z *Zone) Name() string        { return z.name }
func (z *Zone) Countries() []string { return slices.Clone(z.countries) }

// Covers reports whether country belongs to the zone.
func (z *Zone) Covers(country string) bool {
	return slices.Contains(z.countries, strings.ToUpper(country))
}
