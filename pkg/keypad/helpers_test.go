package keypad

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func usProfile() LocaleProfile {
	return normalizeProfile(LocaleProfile{
		Tag:                         language.AmericanEnglish,
		GroupSeparator:              ",",
		DecimalSeparator:            ".",
		NegativeSign:                "-",
		NativeDigits:                asciiDigits,
		DefaultDecimalDigits:        2,
		DefaultPercentDecimalDigits: 1,
		RoundingMode:                RoundAwayFromZero,
	})
}

func deProfile() LocaleProfile {
	p := usProfile()
	p.Tag = language.German
	p.GroupSeparator = "."
	p.DecimalSeparator = ","
	return normalizeProfile(p)
}

func arabicProfile() LocaleProfile {
	p := usProfile()
	p.Tag = language.MustParse("ar-EG")
	p.GroupSeparator = "٬"
	p.DecimalSeparator = "٫"
	p.NativeDigits = [10]string{"٠", "١", "٢", "٣", "٤", "٥", "٦", "٧", "٨", "٩"}
	return normalizeProfile(p)
}

func indianProfile() LocaleProfile {
	p := usProfile()
	p.Tag = language.MustParse("en-IN")
	p.SecondaryGroupSize = 2
	return normalizeProfile(p)
}

// recordingNotifier keeps every signal a Session emits.
type recordingNotifier struct {
	signs     []bool
	ranges    []bool
	selects   int
	refocuses int
	advances  int
	dismisses int
}

func (n *recordingNotifier) SignChanged(negative bool) { n.signs = append(n.signs, negative) }
func (n *recordingNotifier) RangeChanged(inRange bool) { n.ranges = append(n.ranges, inRange) }
func (n *recordingNotifier) SelectAll() { n.selects++ }
func (n *recordingNotifier) RequestRefocus() { n.refocuses++ }
func (n *recordingNotifier) AdvanceFocus() { n.advances++ }
func (n *recordingNotifier) DismissOverlay() { n.dismisses++ }

func intPtr(n int) *int {
	return &n
}

func mustParse(t *testing.T, text string, p LocaleProfile) decimal.Decimal {
	t.Helper()
	value, err := ParseDecimal(text, p)
	require.NoError(t, err)
	return value
}
