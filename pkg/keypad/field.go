package keypad

import (
	"strings"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/shopspring/decimal"
)

// Places is an optional decimal-place limit. The zero value means "use the
// locale default for the field kind".
type Places struct {
	n   int
	set bool
}

// LocaleDefaultPlaces defers to the profile's default digit counts.
var LocaleDefaultPlaces = Places{}

// MaxPlaces limits a field to n decimal places. Negative n is treated as
// LocaleDefaultPlaces.
func MaxPlaces(n int) Places {
	if n < 0 {
		return LocaleDefaultPlaces
	}
	return Places{n: n, set: true}
}

// Get returns the explicit limit and whether one was set.
func (p Places) Get() (int, bool) {
	return p.n, p.set
}

// FieldConstraint describes one input field. It is supplied by the UI and
// does not change while the field exists.
type FieldConstraint struct {
	ID               string
	Layout           constants.KeyboardLayout
	Min              decimal.NullDecimal
	Max              decimal.NullDecimal
	MaxDecimalPlaces Places
	IsPercentage     bool
	MinHex           string
	MaxHex           string
}

// NewDecimalField builds a decimal field; IsPercentage follows the ID.
func NewDecimalField(id string, places Places) FieldConstraint {
	return FieldConstraint{
		ID:               id,
		Layout:           constants.LayoutDecimal,
		MaxDecimalPlaces: places,
		IsPercentage:     IsPercentageField(id),
	}
}

// NewHexField builds a hexadecimal field with an optional range.
func NewHexField(id, minHex, maxHex string) FieldConstraint {
	return FieldConstraint{
		ID:     id,
		Layout: constants.LayoutHex,
		MinHex: minHex,
		MaxHex: maxHex,
	}
}

// NewTextField builds an alphanumeric field.
func NewTextField(id string) FieldConstraint {
	return FieldConstraint{ID: id, Layout: constants.LayoutAlphanumeric}
}

// WithRange returns a copy bounded to [min, max].
func (c FieldConstraint) WithRange(min, max decimal.Decimal) FieldConstraint {
	c.Min = decimal.NewNullDecimal(min)
	c.Max = decimal.NewNullDecimal(max)
	return c
}

// IsPercentageField applies the naming convention for percentage fields:
// identifiers ending in "percent", "percentage" or "pct", any case.
func IsPercentageField(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, suffix := range []string{"percent", "percentage", "pct"} {
		if strings.HasSuffix(id, suffix) {
			return true
		}
	}
	return false
}

// EffectiveDecimalPlaces resolves the limit actually enforced for c.
func EffectiveDecimalPlaces(c FieldConstraint, p LocaleProfile) int {
	if n, ok := c.MaxDecimalPlaces.Get(); ok {
		return n
	}
	if c.IsPercentage {
		return p.DefaultPercentDecimalDigits
	}
	return p.DefaultDecimalDigits
}
