package keypad

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BrandonKowalski/keypad/pkg/keypad/internal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ProfileOverride replaces parts of a CLDR-derived profile. Empty strings
// and nil pointers leave the derived value in place.
type ProfileOverride struct {
	GroupSeparator       string   `json:"group_separator,omitempty" yaml:"group_separator,omitempty"`
	DecimalSeparator     string   `json:"decimal_separator,omitempty" yaml:"decimal_separator,omitempty"`
	NegativeSign         string   `json:"negative_sign,omitempty" yaml:"negative_sign,omitempty"`
	NativeDigits         []string `json:"native_digits,omitempty" yaml:"native_digits,omitempty"`
	DecimalDigits        *int     `json:"decimal_digits,omitempty" yaml:"decimal_digits,omitempty"`
	PercentDecimalDigits *int     `json:"percent_decimal_digits,omitempty" yaml:"percent_decimal_digits,omitempty"`
	RoundingMode         string   `json:"rounding_mode,omitempty" yaml:"rounding_mode,omitempty"`
}

// Overrides maps locale identifiers to overrides.
type Overrides map[string]ProfileOverride

// LoadOverrides reads overrides from a .json, .yaml or .yml file.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	return DecodeOverrides(path, data)
}

// DecodeOverrides decodes data using the format implied by name's extension.
func DecodeOverrides(name string, data []byte) (Overrides, error) {
	var raw map[string]ProfileOverride

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode overrides %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode overrides %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOverrides, ext)
	}

	overrides := make(Overrides, len(raw))
	for locale, override := range raw {
		key := normalizeLocaleKey(locale)
		if key == "" {
			return nil, fmt.Errorf("decode overrides %s: empty locale", name)
		}
		overrides[key] = override
	}
	return overrides, nil
}

func normalizeLocaleKey(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		return tag.String()
	}
	return locale
}

// lookup tries the exact tag, then its base language.
func (o Overrides) lookup(tag language.Tag) (ProfileOverride, bool) {
	if len(o) == 0 {
		return ProfileOverride{}, false
	}
	if override, ok := o[tag.String()]; ok {
		return override, true
	}
	base, _ := tag.Base()
	if override, ok := o[base.String()]; ok {
		return override, true
	}
	return ProfileOverride{}, false
}

func (o ProfileOverride) apply(p *LocaleProfile) {
	if o.GroupSeparator != "" {
		p.GroupSeparator = o.GroupSeparator
	}
	if o.DecimalSeparator != "" {
		p.DecimalSeparator = o.DecimalSeparator
	}
	if o.NegativeSign != "" {
		p.NegativeSign = o.NegativeSign
	}
	if len(o.NativeDigits) == 10 {
		var digits [10]string
		for i, glyph := range o.NativeDigits {
			if utf8.RuneCountInString(glyph) != 1 {
				internal.GetInternalLogger().Warn("Ignoring native digit override", "locale", p.Tag.String(), "glyph", glyph)
				digits = [10]string{}
				break
			}
			digits[i] = glyph
		}
		if digits[0] != "" {
			p.NativeDigits = digits
		}
	}
	if o.DecimalDigits != nil && *o.DecimalDigits >= 0 {
		p.DefaultDecimalDigits = *o.DecimalDigits
	}
	if o.PercentDecimalDigits != nil && *o.PercentDecimalDigits >= 0 {
		p.DefaultPercentDecimalDigits = *o.PercentDecimalDigits
	}
	if o.RoundingMode != "" {
		mode, err := ParseRoundingMode(o.RoundingMode)
		if err != nil {
			internal.GetInternalLogger().Warn("Ignoring rounding mode override", "locale", p.Tag.String(), "error", err)
			return
		}
		p.RoundingMode = mode
	}
}
