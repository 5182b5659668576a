package kernel

import (
	"fmt"
	"strings"

	"shop/internal/pkg/errs"
)

// MassUnit is the unit a checkout expresses its total mass in.
type MassUnit int

const (
	// UnknownMassUnit is the zero value and is invalid.
	UnknownMassUnit MassUnit = iota
	Gram
	Kilogram
	Pound
	Ounce
)

var massUnitNames = map[MassUnit]string{
	Gram:     "g",
	Kilogram: "kg",
	Pound:    "lb",
	Ounce:    "oz",
}

var massUnitKilograms = map[MassUnit]float64{
	Gram:     0.001,
	Kilogram: 1,
	Pound:    0.45359237,
	Ounce:    0.028349523125,
}

// MassUnitFromString parses "g", "kg", "lb" or "oz" (case insensitive).
func MassUnitFromString(s string) (MassUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for unit, name := range massUnitNames {
		if name == s {
			return unit, nil
		}
	}
	return UnknownMassUnit, errs.NewValueIsInvalidErrorWithCause("mass unit", fmt.Errorf("%q is not a supported unit", s))
}

// Validate fails for UnknownMassUnit and values outside the enum.
func (u MassUnit) Validate() error {
	if _, ok := massUnitNames[u]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("mass unit", fmt.Errorf("%d is not a valid mass unit", u))
	}
	return nil
}

func (u MassUnit) String() string {
	if name, ok := massUnitNames[u]; ok {
		return name
	}
	return "unknown"
}

// ToKilograms converts value expressed in u. Unknown units convert to 0.
func (u MassUnit) ToKilograms(value float64) float64 {
	return value * massUnitKilograms[u]
}
