package keypad

import (
	"testing"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestRouteKey_Decimal(t *testing.T) {
	us := usProfile()

	tests := []struct {
		name       string
		text       string
		cursor     int
		key        KeyEvent
		wantText   string
		wantCursor int
		wantAction Action
	}{
		{"digit at cursor", "12", 1, constants.Digit(5), "152", 2, ActionNone},
		{"digit at end", "12", 2, constants.Digit(0), "120", 3, ActionNone},
		{"backspace", "12", 2, constants.Backspace(), "1", 1, ActionNone},
		{"backspace at start", "12", 0, constants.Backspace(), "12", 0, ActionNone},
		{"minus prepends", "12", 2, constants.Minus(), "-12", 3, ActionNone},
		{"minus keeps cursor on its character", "12", 1, constants.Minus(), "-12", 2, ActionNone},
		{"minus when negative is a no-op", "-12", 3, constants.Minus(), "-12", 3, ActionNone},
		{"decimal point at cursor", "12", 1, constants.DecimalPoint(), "1.2", 2, ActionNone},
		{"second decimal point is a no-op", "1.2", 3, constants.DecimalPoint(), "1.2", 3, ActionNone},
		{"char is ignored", "12", 2, constants.Char("A"), "12", 2, ActionNone},
		{"shift is ignored", "12", 2, constants.Shift(), "12", 2, ActionNone},
		{"out of range digit is ignored", "12", 2, KeyEvent{Kind: constants.KeyDigit, Digit: 12}, "12", 2, ActionNone},
		{"return advances", "12", 2, constants.Return(), "12", 2, ActionAdvanceFocus},
		{"hide dismisses", "12", 2, constants.Hide(), "12", 2, ActionDismiss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := EditState{Text: tt.text, Cursor: tt.cursor, Layout: constants.LayoutDecimal}
			got, action := RouteKey(state, tt.key, us)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantCursor, got.Cursor)
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestRouteKey_DecimalUsesProfileSymbols(t *testing.T) {
	ar := arabicProfile()
	state := EditState{Layout: constants.LayoutDecimal}

	for _, key := range []KeyEvent{constants.Digit(1), constants.Digit(2), constants.DecimalPoint(), constants.Digit(5), constants.Minus()} {
		state, _ = RouteKey(state, key, ar)
	}

	assert.Equal(t, "-١٢٫٥", state.Text)
	assert.Equal(t, 5, state.Cursor)
}

func TestRouteKey_Hex(t *testing.T) {
	us := usProfile()

	tests := []struct {
		name     string
		key      KeyEvent
		wantText string
	}{
		{"digit", constants.Digit(9), "A9"},
		{"hex letter", constants.Char("f"), "Af"},
		{"non hex letter", constants.Char("G"), "A"},
		{"multi character", constants.Char("AB"), "A"},
		{"minus", constants.Minus(), "A"},
		{"decimal point", constants.DecimalPoint(), "A"},
		{"backspace", constants.Backspace(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := EditState{Text: "A", Cursor: 1, Layout: constants.LayoutHex}
			got, _ := RouteKey(state, tt.key, us)
			assert.Equal(t, tt.wantText, got.Text)
		})
	}
}

func TestRouteKey_AlphanumericShift(t *testing.T) {
	us := usProfile()
	state := EditState{Layout: constants.LayoutAlphanumeric}

	state, _ = RouteKey(state, constants.Char("Q"), us)
	assert.Equal(t, "Q", state.Text)

	state, _ = RouteKey(state, constants.Shift(), us)
	assert.True(t, state.Shift)

	state, _ = RouteKey(state, constants.Char("Q"), us)
	state, _ = RouteKey(state, constants.Char("ab"), us)
	assert.Equal(t, "Qqab", state.Text)

	state, _ = RouteKey(state, constants.Shift(), us)
	assert.False(t, state.Shift)

	for _, key := range []KeyEvent{constants.Digit(7), constants.Minus(), constants.DecimalPoint()} {
		state, _ = RouteKey(state, key, us)
	}
	assert.Equal(t, "Qqab7-.", state.Text)
	assert.Equal(t, 7, state.Cursor)
}

func TestRouteKey_ShiftLowersPerLocale(t *testing.T) {
	turkish := usProfile()
	turkish.Tag = language.Turkish

	state := EditState{Layout: constants.LayoutAlphanumeric, Shift: true}

	got, _ := RouteKey(state, constants.Char("I"), usProfile())
	assert.Equal(t, "i", got.Text)

	got, _ = RouteKey(state, constants.Char("I"), turkish)
	assert.Equal(t, "ı", got.Text)
}
