package keypad

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type tokenKind int

const (
	tokenDigit tokenKind = iota
	tokenDecimal
	tokenGroup
	tokenNegative
)

type token struct {
	kind  tokenKind
	digit int
}

type glyph struct {
	text  string
	kind  tokenKind
	digit int
}

// glyphs lists the symbols of p, longest first so that a multi-rune
// symbol wins over any of its prefixes.
func (p LocaleProfile) glyphs(withGroup bool) []glyph {
	out := make([]glyph, 0, 23)
	for d, g := range p.NativeDigits {
		out = append(out, glyph{text: g, kind: tokenDigit, digit: d})
	}
	out = append(out,
		glyph{text: p.DecimalSeparator, kind: tokenDecimal},
		glyph{text: p.NegativeSign, kind: tokenNegative},
	)
	if withGroup {
		out = append(out, glyph{text: p.GroupSeparator, kind: tokenGroup})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].text) > len(out[j].text)
	})
	return out
}

// tokenize splits text into profile symbols. It reports false as soon as
// it meets anything else.
func (p LocaleProfile) tokenize(text string, withGroup bool) ([]token, bool) {
	glyphs := p.glyphs(withGroup)
	tokens := make([]token, 0, utf8.RuneCountInString(text))

	for len(text) > 0 {
		matched := false
		for _, g := range glyphs {
			if g.text != "" && strings.HasPrefix(text, g.text) {
				tokens = append(tokens, token{kind: g.kind, digit: g.digit})
				text = text[len(g.text):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return tokens, true
}

// ParseDecimal reads editable or display text written with the symbols of
// p. Group separators are accepted in the integer part only, and only
// where RenderDecimal would put them.
func ParseDecimal(text string, p LocaleProfile) (decimal.Decimal, error) {
	tokens, ok := p.tokenize(strings.TrimSpace(text), true)
	if !ok || len(tokens) == 0 {
		return decimal.Zero, ErrNotANumber
	}

	var (
		b          strings.Builder
		digits     int
		run        int
		groups     []int
		seenPoint  bool
		lastWasSep bool
	)

	for i, tok := range tokens {
		switch tok.kind {
		case tokenNegative:
			if i != 0 {
				return decimal.Zero, ErrNotANumber
			}
			b.WriteByte('-')
		case tokenGroup:
			if seenPoint || digits == 0 || lastWasSep {
				return decimal.Zero, ErrNotANumber
			}
			groups = append(groups, run)
			run = 0
			lastWasSep = true
			continue
		case tokenDecimal:
			if seenPoint || lastWasSep {
				return decimal.Zero, ErrNotANumber
			}
			if len(groups) > 0 {
				groups = append(groups, run)
			}
			if digits == 0 {
				b.WriteByte('0')
			}
			seenPoint = true
			b.WriteByte('.')
		case tokenDigit:
			digits++
			if !seenPoint {
				run++
			}
			b.WriteByte(byte('0' + tok.digit))
		}
		lastWasSep = false
	}

	if digits == 0 || lastWasSep {
		return decimal.Zero, ErrNotANumber
	}
	if len(groups) > 0 && !seenPoint {
		groups = append(groups, run)
	}
	if len(groups) > 0 && !p.validGroups(groups) {
		return decimal.Zero, ErrNotANumber
	}

	ascii := strings.TrimSuffix(b.String(), ".")
	value, err := decimal.NewFromString(ascii)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	return value, nil
}

// Round applies mode at the given number of decimal places. Modes outside
// the supported set truncate.
func Round(value decimal.Decimal, places int, mode RoundingMode) decimal.Decimal {
	if places < 0 {
		places = 0
	}
	switch mode {
	case RoundAwayFromZero:
		return value.Round(int32(places))
	case RoundToEven:
		return value.RoundBank(int32(places))
	default:
		return value.Truncate(int32(places))
	}
}

// RenderDecimal writes value with exactly places decimals using the
// symbols of p, with or without digit grouping. value must already be
// rounded to places.
func RenderDecimal(value decimal.Decimal, places int, grouped bool, p LocaleProfile) string {
	if places < 0 {
		places = 0
	}
	fixed := value.StringFixed(int32(places))

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString(p.NegativeSign)
	}

	for i, r := range intPart {
		if grouped && i > 0 && p.groupsBefore(len(intPart)-i) {
			b.WriteString(p.GroupSeparator)
		}
		b.WriteString(p.NativeDigits[r-'0'])
	}

	if fracPart != "" {
		b.WriteString(p.DecimalSeparator)
		for _, r := range fracPart {
			b.WriteString(p.NativeDigits[r-'0'])
		}
	}
	return b.String()
}

// groupsBefore reports whether a group separator goes in front of a digit
// that has remaining integer digits to its right, itself included.
func (p LocaleProfile) groupsBefore(remaining int) bool {
	primary, secondary := p.groupSizes()
	if remaining == primary {
		return true
	}
	return remaining > primary && (remaining-primary)%secondary == 0
}

// validGroups checks the digit counts between group separators, most
// significant first: the rightmost group holds the primary size, the
// groups before it the secondary size, and the leading group at most that.
func (p LocaleProfile) validGroups(groups []int) bool {
	primary, secondary := p.groupSizes()
	last := len(groups) - 1
	if groups[last] != primary {
		return false
	}
	if groups[0] < 1 || groups[0] > secondary {
		return false
	}
	for _, size := range groups[1:last] {
		if size != secondary {
			return false
		}
	}
	return true
}

func (p LocaleProfile) groupSizes() (int, int) {
	primary, secondary := p.PrimaryGroupSize, p.SecondaryGroupSize
	if primary <= 0 {
		primary = FallbackGroupSize
	}
	if secondary <= 0 {
		secondary = primary
	}
	return primary, secondary
}
