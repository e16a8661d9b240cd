package service

import (
	"sort"

	"siggibot/internal/core/domain"
)

type family string

const (
	temperature family = "temperature"
	length      family = "length"
	weight      family = "weight"
)

// unit converts to and from its family's base unit (celsius, metre, kilogram).
type unit struct {
	family   family
	name     string
	toBase   func(float64) float64
	fromBase func(float64) float64
}

func linear(f family, name string, factor float64) unit {
	return unit{
		family:   f,
		name:     name,
		toBase:   func(v float64) float64 { return v * factor },
		fromBase: func(v float64) float64 { return v / factor },
	}
}

const absoluteZero = -273.15

var units = map[string]unit{
	"c": {
		family:   temperature,
		name:     "°C",
		toBase:   func(v float64) float64 { return v },
		fromBase: func(v float64) float64 { return v },
	},
	"f": {
		family:   temperature,
		name:     "°F",
		toBase:   func(v float64) float64 { return (v - 32) * 5 / 9 },
		fromBase: func(v float64) float64 { return v*9/5 + 32 },
	},
	"k": {
		family:   temperature,
		name:     "K",
		toBase:   func(v float64) float64 { return v + absoluteZero },
		fromBase: func(v float64) float64 { return v - absoluteZero },
	},
	"cm": linear(length, "cm", 0.01),
	"m":  linear(length, "m", 1),
	"km": linear(length, "km", 1000),
	"in": linear(length, "in", 0.0254),
	"ft": linear(length, "ft", 0.3048),
	"g":  linear(weight, "g", 0.001),
	"kg": linear(weight, "kg", 1),
	"lb": linear(weight, "lb", 0.45359237),
	"oz": linear(weight, "oz", 0.028349523125),
}

// UnitCodes lists every accepted unit code, sorted.
func UnitCodes() []string {
	codes := make([]string, 0, len(units))
	for code := range units {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// UnitName is the display symbol of a unit code.
func UnitName(code string) string {
	if u, ok := units[code]; ok {
		return u.name
	}

	return code
}

// Convert converts value between two units of the same family.
func Convert(value float64, from, to string) (float64, error) {
	src, ok := units[from]
	if !ok {
		return 0, domain.NewValidationError("unknown unit %q", from)
	}

	dst, ok := units[to]
	if !ok {
		return 0, domain.NewValidationError("unknown unit %q", to)
	}

	if src.family != dst.family {
		return 0, domain.NewValidationError("can't convert %s (%s) to %s (%s)", from, src.family, to, dst.family)
	}

	base := src.toBase(value)
	if src.family == temperature && base < absoluteZero-1e-9 {
		return 0, domain.NewValidationError("%g%s is below absolute zero", value, src.name)
	}

	if src.family != temperature && value < 0 {
		return 0, domain.NewValidationError("a %s can't be negative", src.family)
	}

	return dst.fromBase(base), nil
}
