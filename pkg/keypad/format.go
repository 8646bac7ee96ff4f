package keypad

import "github.com/BrandonKowalski/keypad/pkg/keypad/internal"

// FormatOnFocus turns display text into editable text: no grouping, fixed
// point, the field's effective decimal places. ok is false when text does
// not parse; the text is then returned unchanged.
func FormatOnFocus(text string, c FieldConstraint, p LocaleProfile) (formatted string, ok bool) {
	if text == "" {
		return text, true
	}

	value, err := ParseDecimal(text, p)
	if err != nil {
		internal.GetInternalLogger().Debug("Focus text is not a number", "field", c.ID, "text", text)
		return text, false
	}

	places := EffectiveDecimalPlaces(c, p)
	return RenderDecimal(Round(value, places, p.RoundingMode), places, false, p), true
}

// FormatOnUnfocus turns editable text into display text, rounded with the
// profile's rounding mode and grouped. When text does not parse it returns
// "" and false; the caller clears the field and focuses it again.
func FormatOnUnfocus(text string, c FieldConstraint, p LocaleProfile) (formatted string, ok bool) {
	if text == "" {
		return text, true
	}

	value, err := ParseDecimal(text, p)
	if err != nil {
		internal.GetInternalLogger().Debug("Unfocus text is not a number", "field", c.ID, "text", text)
		return "", false
	}

	places := EffectiveDecimalPlaces(c, p)
	return RenderDecimal(Round(value, places, p.RoundingMode), places, true, p), true
}
