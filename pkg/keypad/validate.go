package keypad

import (
	"math/big"
	"strings"
)

// ValidateDecimal reports whether candidate is an acceptable decimal number
// in progress for field c. Text shown in display form is not checked.
func ValidateDecimal(candidate string, c FieldConstraint, p LocaleProfile, displayFormatted bool) bool {
	if displayFormatted {
		return true
	}
	if candidate == "" {
		return true
	}

	tokens, ok := p.tokenize(candidate, false)
	if !ok {
		return false
	}

	negatives, points, afterPoint := 0, 0, 0
	for i, tok := range tokens {
		switch tok.kind {
		case tokenNegative:
			negatives++
			if i != 0 || negatives > 1 {
				return false
			}
		case tokenDecimal:
			points++
			if points > 1 {
				return false
			}
		case tokenDigit:
			if points == 1 {
				afterPoint++
			}
		}
	}

	limit := EffectiveDecimalPlaces(c, p)
	if points == 1 && limit == 0 {
		return false
	}
	return afterPoint <= limit
}

// IsNegative reports whether editable text carries the negative sign.
func IsNegative(text string, p LocaleProfile) bool {
	return p.NegativeSign != "" && strings.HasPrefix(text, p.NegativeSign)
}

// DecimalInRange checks text against the bounds of c. evaluated is false
// when the text does not parse or c has no bounds.
func DecimalInRange(text string, c FieldConstraint, p LocaleProfile) (inRange bool, evaluated bool) {
	if !c.Min.Valid && !c.Max.Valid {
		return true, false
	}
	value, err := ParseDecimal(text, p)
	if err != nil {
		return true, false
	}
	if c.Min.Valid && value.LessThan(c.Min.Decimal) {
		return false, true
	}
	if c.Max.Valid && value.GreaterThan(c.Max.Decimal) {
		return false, true
	}
	return true, true
}

// ValidateHex reports whether every character of candidate is a
// hexadecimal digit. Empty text is valid.
func ValidateHex(candidate string) bool {
	for _, r := range candidate {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// HexInRange reports whether text lies in [minHex, maxHex]. If any of the
// three does not parse as base 16 the range is not evaluated and the
// result is true.
func HexInRange(text, minHex, maxHex string) bool {
	inRange, _ := HexRangeCheck(text, minHex, maxHex)
	return inRange
}

// HexRangeCheck is HexInRange that also reports whether the check ran.
func HexRangeCheck(text, minHex, maxHex string) (inRange bool, evaluated bool) {
	value, ok := parseHex(text)
	if !ok {
		return true, false
	}
	min, ok := parseHex(minHex)
	if !ok {
		return true, false
	}
	max, ok := parseHex(maxHex)
	if !ok {
		return true, false
	}
	return value.Cmp(min) >= 0 && value.Cmp(max) <= 0, true
}

func parseHex(s string) (*big.Int, bool) {
	if s == "" || !ValidateHex(s) {
		return nil, false
	}
	return new(big.Int).SetString(s, 16)
}
