package keypad

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BrandonKowalski/keypad/pkg/keypad/internal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// RoundingMode selects how a value is rounded to its decimal-place limit
// when a field loses focus.
type RoundingMode int

const (
	RoundAwayFromZero RoundingMode = iota
	RoundToEven
	RoundToZero
)

func (m RoundingMode) String() string {
	switch m {
	case RoundAwayFromZero:
		return "AwayFromZero"
	case RoundToEven:
		return "ToEven"
	case RoundToZero:
		return "ToZero"
	default:
		return "ToZero"
	}
}

// ParseRoundingMode accepts the String form case-insensitively. Unknown
// names resolve to RoundToZero together with ErrUnknownRoundingMode.
func ParseRoundingMode(raw string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "awayfromzero", "away_from_zero", "half_away_from_zero":
		return RoundAwayFromZero, nil
	case "toeven", "to_even", "half_even", "bankers":
		return RoundToEven, nil
	case "tozero", "to_zero", "truncate":
		return RoundToZero, nil
	default:
		return RoundToZero, fmt.Errorf("%w: %q", ErrUnknownRoundingMode, raw)
	}
}

// Fallback constants used whenever the locale yields nothing usable.
const (
	FallbackGroupSeparator   = ","
	FallbackDecimalSeparator = "."
	FallbackNegativeSign     = "-"
	FallbackDecimalDigits    = 2
	FallbackGroupSize        = 3
)

var asciiDigits = [10]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// LocaleProfile holds the number-entry conventions of one locale. It is
// built as a unit and treated as read-only afterwards.
type LocaleProfile struct {
	Tag                         language.Tag
	GroupSeparator              string
	DecimalSeparator            string
	NegativeSign                string
	NativeDigits                [10]string
	PrimaryGroupSize            int
	SecondaryGroupSize          int
	DefaultDecimalDigits        int
	DefaultPercentDecimalDigits int
	RoundingMode                RoundingMode

	allowed []string
}

// Profile lets a plain LocaleProfile act as a ProfileSource.
func (p LocaleProfile) Profile() LocaleProfile {
	return p
}

// AllowedDecimalChars returns the glyphs accepted while editing a decimal
// field: the native digits, the decimal separator and the negative sign.
func (p LocaleProfile) AllowedDecimalChars() []string {
	if len(p.allowed) == 0 {
		return buildAllowed(p)
	}
	out := make([]string, len(p.allowed))
	copy(out, p.allowed)
	return out
}

func buildAllowed(p LocaleProfile) []string {
	allowed := make([]string, 0, 12)
	allowed = append(allowed, p.NativeDigits[:]...)
	allowed = append(allowed, p.DecimalSeparator, p.NegativeSign)
	return allowed
}

// DefaultLocaleProfile returns the profile made only of fallback constants.
func DefaultLocaleProfile() LocaleProfile {
	return normalizeProfile(LocaleProfile{Tag: language.Und, DefaultDecimalDigits: -1, DefaultPercentDecimalDigits: -1})
}

// NewLocaleProfile derives a profile for tag from CLDR data, applies the
// matching override (if any) and then the fallback rules.
func NewLocaleProfile(tag language.Tag, overrides Overrides) LocaleProfile {
	profile := LocaleProfile{
		Tag:                         tag,
		DefaultDecimalDigits:        -1,
		DefaultPercentDecimalDigits: -1,
	}

	if tag != language.Und {
		probeSymbols(&profile)
	}

	if override, ok := overrides.lookup(tag); ok {
		override.apply(&profile)
	}

	return normalizeProfile(profile)
}

// probeSymbols prints known values with a locale printer and reads the
// symbols back out of the result.
func probeSymbols(profile *LocaleProfile) {
	printer := message.NewPrinter(profile.Tag)

	sample := printer.Sprintf("%v", number.Decimal(-1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	sign, separators := splitNumberSample(sample)
	profile.NegativeSign = sign
	switch len(separators) {
	case 0:
	case 1:
		profile.DecimalSeparator = separators[0]
	default:
		profile.GroupSeparator = separators[0]
		profile.DecimalSeparator = separators[len(separators)-1]
		profile.PrimaryGroupSize, profile.SecondaryGroupSize = sampleGroupSizes(sample)
	}

	for d := 0; d < 10; d++ {
		glyph := printer.Sprintf("%v", number.Decimal(d))
		if utf8.RuneCountInString(glyph) != 1 {
			internal.GetInternalLogger().Debug("Unexpected digit glyph, using ASCII digits",
				"locale", profile.Tag.String(), "digit", d, "glyph", glyph)
			profile.NativeDigits = [10]string{}
			return
		}
		profile.NativeDigits[d] = glyph
	}
}

// splitNumberSample returns the text before the first digit and every run
// of non-digits that sits between two digits.
func splitNumberSample(sample string) (string, []string) {
	var (
		prefix     strings.Builder
		separators []string
		current    strings.Builder
		seenDigit  bool
	)

	for _, r := range sample {
		if unicode.IsDigit(r) {
			if seenDigit && current.Len() > 0 {
				separators = append(separators, current.String())
			}
			current.Reset()
			seenDigit = true
			continue
		}
		if !seenDigit {
			prefix.WriteRune(r)
			continue
		}
		current.WriteRune(r)
	}

	return strings.TrimFunc(prefix.String(), isBidiOrSpace), separators
}

// sampleGroupSizes reads the grouping of the integer part of a sample
// printed with a fraction. A leading group can be short, so the secondary
// size only counts when three or more groups were printed.
func sampleGroupSizes(sample string) (int, int) {
	var runs []int
	inRun := false
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if !inRun {
				runs = append(runs, 0)
				inRun = true
			}
			runs[len(runs)-1]++
			continue
		}
		inRun = false
	}

	if len(runs) < 3 {
		return 0, 0
	}
	groups := runs[:len(runs)-1]
	primary := groups[len(groups)-1]
	secondary := primary
	if len(groups) >= 3 {
		secondary = groups[len(groups)-2]
	}
	return primary, secondary
}

func isBidiOrSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Bidi_Control, r)
}

func normalizeProfile(p LocaleProfile) LocaleProfile {
	if p.GroupSeparator == "" {
		p.GroupSeparator = FallbackGroupSeparator
	}
	if p.DecimalSeparator == "" {
		p.DecimalSeparator = FallbackDecimalSeparator
	}
	if p.DecimalSeparator == p.GroupSeparator {
		p.DecimalSeparator = FallbackDecimalSeparator
		p.GroupSeparator = FallbackGroupSeparator
	}
	if p.NegativeSign == "" {
		p.NegativeSign = FallbackNegativeSign
	}
	p.PrimaryGroupSize, p.SecondaryGroupSize = p.groupSizes()

	for _, digit := range p.NativeDigits {
		if digit == "" {
			p.NativeDigits = asciiDigits
			break
		}
	}

	if p.DefaultDecimalDigits < 0 {
		p.DefaultDecimalDigits = FallbackDecimalDigits
	}
	if p.DefaultPercentDecimalDigits < 0 {
		p.DefaultPercentDecimalDigits = FallbackDecimalDigits
	}
	switch p.RoundingMode {
	case RoundAwayFromZero, RoundToEven, RoundToZero:
	default:
		p.RoundingMode = RoundAwayFromZero
	}

	p.allowed = buildAllowed(p)
	return p
}

// ParseLocale reads a BCP-47 tag or a POSIX locale name such as
// "de_DE.UTF-8". "C", "POSIX" and unparsable names report false.
func ParseLocale(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// DetectLocale reads LC_ALL, LC_NUMERIC and LANG in that order.
func DetectLocale() (language.Tag, bool) {
	for _, name := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if value := os.Getenv(name); value != "" {
			return ParseLocale(value)
		}
	}
	return language.Und, false
}

// Settings keys persisted by InitializeLocale.
const (
	SettingDecimalDigits        = "decimal_digits"
	SettingPercentDecimalDigits = "percent_decimal_digits"
	SettingRoundingMode         = "rounding_mode"
)

type localeConfig struct {
	locale    string
	settings  Settings
	overrides Overrides
}

// LocaleOption configures InitializeLocale.
type LocaleOption func(*localeConfig)

// WithLocale uses the given locale name instead of the environment.
func WithLocale(locale string) LocaleOption {
	return func(c *localeConfig) {
		c.locale = locale
	}
}

// WithSettings persists and restores the user preferences through s.
func WithSettings(s Settings) LocaleOption {
	return func(c *localeConfig) {
		c.settings = s
	}
}

// WithOverrides applies per-locale overrides on top of CLDR data.
func WithOverrides(o Overrides) LocaleOption {
	return func(c *localeConfig) {
		c.overrides = o
	}
}

// InitializeLocale resolves the active locale and builds its profile. It
// never fails: missing locale data falls back to constants, and settings
// errors are logged.
func InitializeLocale(opts ...LocaleOption) LocaleProfile {
	cfg := &localeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	logger := internal.GetInternalLogger()

	var (
		tag language.Tag
		ok  bool
	)
	if cfg.locale != "" {
		tag, ok = ParseLocale(cfg.locale)
	} else {
		tag, ok = DetectLocale()
	}
	if !ok {
		logger.Debug("No usable locale, using fallback number format", "locale", cfg.locale)
	}

	profile := NewLocaleProfile(tag, cfg.overrides)
	if cfg.settings != nil {
		profile = applySettings(profile, cfg.settings)
	}

	logger.Debug("Locale profile initialized",
		"locale", profile.Tag.String(),
		"group", profile.GroupSeparator,
		"decimal", profile.DecimalSeparator,
		"negative", profile.NegativeSign,
		"rounding", profile.RoundingMode.String(),
	)
	return profile
}

// applySettings restores persisted preferences and records the computed
// values for keys that are not stored yet.
func applySettings(profile LocaleProfile, settings Settings) LocaleProfile {
	logger := internal.GetInternalLogger()

	restoreInt := func(key string, target *int) {
		raw, ok := settings.Get(key)
		if !ok {
			if err := settings.Set(key, strconv.Itoa(*target)); err != nil {
				logger.Warn("Failed to persist setting", "key", key, "error", err)
			}
			return
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || value < 0 {
			logger.Warn("Ignoring malformed setting", "key", key, "value", raw)
			return
		}
		*target = value
	}

	restoreInt(SettingDecimalDigits, &profile.DefaultDecimalDigits)
	restoreInt(SettingPercentDecimalDigits, &profile.DefaultPercentDecimalDigits)

	if raw, ok := settings.Get(SettingRoundingMode); ok {
		mode, err := ParseRoundingMode(raw)
		if err != nil {
			logger.Warn("Ignoring malformed setting", "key", SettingRoundingMode, "value", raw)
		} else {
			profile.RoundingMode = mode
		}
	} else if err := settings.Set(SettingRoundingMode, profile.RoundingMode.String()); err != nil {
		logger.Warn("Failed to persist setting", "key", SettingRoundingMode, "error", err)
	}

	return profile
}
