package keypad

import (
	"testing"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, s *Session, keys ...KeyEvent) EditState {
	t.Helper()
	var state EditState
	for _, key := range keys {
		state, _ = s.Press(key)
	}
	return state
}

func TestSession_GermanEntry(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(deProfile(), notifier)

	state := s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "")
	assert.Equal(t, "", state.Text)
	assert.Equal(t, 0, state.Cursor)
	assert.Equal(t, 1, notifier.selects)

	state = press(t, s, constants.Digit(1), constants.Digit(2), constants.DecimalPoint(), constants.Digit(5))
	assert.Equal(t, "12,5", state.Text)
	assert.True(t, ValidateDecimal(state.Text, s.Field(), deProfile(), false))

	state, accepted := s.Press(constants.DecimalPoint())
	assert.False(t, accepted)
	assert.Equal(t, "12,5", state.Text)

	text, committed := s.FocusLost()
	assert.True(t, committed)
	assert.Equal(t, "12,50", text)
	assert.False(t, s.Active())
}

func TestSession_FocusGainedFormatsDisplayText(t *testing.T) {
	s := NewSession(usProfile(), nil)

	state := s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "1,234.5")
	assert.Equal(t, "1234.50", state.Text)
	assert.Equal(t, 7, state.Cursor)
	assert.False(t, state.DisplayFormatted)
	assert.NotEmpty(t, s.ID())
}

func TestSession_RejectedEditReverts(t *testing.T) {
	s := NewSession(usProfile(), nil)
	s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "1.23")

	state, accepted := s.Press(constants.Digit(4))
	assert.False(t, accepted)
	assert.Equal(t, "1.23", state.Text)
	assert.Equal(t, 4, state.Cursor)

	state, accepted = s.Press(constants.Backspace())
	assert.True(t, accepted)
	assert.Equal(t, "1.2", state.Text)
}

func TestSession_UnparsableTextBypassesValidation(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(usProfile(), notifier)

	state := s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "n/a")
	assert.Equal(t, "n/a", state.Text)
	assert.True(t, state.DisplayFormatted)

	state, accepted := s.Press(constants.Digit(1))
	assert.True(t, accepted)
	assert.Equal(t, "n/a1", state.Text)
	assert.True(t, state.DisplayFormatted)

	text, committed := s.FocusLost()
	assert.False(t, committed)
	assert.Equal(t, "", text)
	assert.Equal(t, 1, notifier.refocuses)
}

func TestSession_DisplayFlagClearsOnceTextValidates(t *testing.T) {
	s := NewSession(usProfile(), nil)
	s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "x")

	state := press(t, s, constants.Backspace(), constants.Digit(4))
	assert.Equal(t, "4", state.Text)
	assert.False(t, state.DisplayFormatted)

	state, accepted := s.Press(constants.Char("x"))
	assert.False(t, accepted)
	assert.Equal(t, "4", state.Text)
}

func TestSession_SignNotifications(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(usProfile(), notifier)
	s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "5")

	press(t, s, constants.Minus())
	require.NotEmpty(t, notifier.signs)
	assert.True(t, notifier.signs[len(notifier.signs)-1])
	assert.Equal(t, "-5.00", s.State().Text)

	_, accepted := s.Press(constants.Minus())
	assert.False(t, accepted)
}

func TestSession_RangeNotifications(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(usProfile(), notifier)
	field := NewDecimalField("level", MaxPlaces(0)).WithRange(decimal.NewFromInt(0), decimal.NewFromInt(10))
	s.FocusGained(field, "")

	press(t, s, constants.Digit(1))
	assert.Equal(t, []bool{true}, notifier.ranges)

	press(t, s, constants.Digit(1))
	assert.Equal(t, []bool{true, false}, notifier.ranges)
}

func TestSession_Hex(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(usProfile(), notifier)
	s.FocusGained(NewHexField("color", "00", "FF"), "")

	state := press(t, s, constants.Digit(1), constants.Char("f"))
	assert.Equal(t, "1f", state.Text)
	assert.Equal(t, []bool{true, true}, notifier.ranges)

	press(t, s, constants.Digit(0))
	assert.Equal(t, []bool{true, true, false}, notifier.ranges)

	_, accepted := s.Press(constants.Minus())
	assert.False(t, accepted)

	text, committed := s.FocusLost()
	assert.True(t, committed)
	assert.Equal(t, "1f0", text)
}

func TestSession_ShiftResetsOnFocus(t *testing.T) {
	s := NewSession(usProfile(), nil)
	s.FocusGained(NewTextField("name"), "")

	state, accepted := s.Press(constants.Shift())
	assert.True(t, accepted)
	assert.True(t, state.Shift)

	state = press(t, s, constants.Char("A"))
	assert.Equal(t, "a", state.Text)

	text, committed := s.FocusLost()
	assert.True(t, committed)
	assert.Equal(t, "a", text)

	state = s.FocusGained(NewTextField("name"), "ab")
	assert.False(t, state.Shift)
	assert.Equal(t, 2, state.Cursor)
}

func TestSession_ReturnAndHide(t *testing.T) {
	notifier := &recordingNotifier{}
	s := NewSession(usProfile(), notifier)
	s.FocusGained(NewDecimalField("amount", MaxPlaces(2)), "1")

	state, accepted := s.Press(constants.Return())
	assert.True(t, accepted)
	assert.Equal(t, "1.00", state.Text)
	assert.Equal(t, 1, notifier.advances)

	_, accepted = s.Press(constants.Hide())
	assert.True(t, accepted)
	assert.Equal(t, 1, notifier.dismisses)
}

func TestSession_Inactive(t *testing.T) {
	s := NewSession(usProfile(), nil)

	_, accepted := s.Press(constants.Digit(1))
	assert.False(t, accepted)

	text, committed := s.FocusLost()
	assert.False(t, committed)
	assert.Equal(t, "", text)
}

func TestSession_FollowsProfileHolder(t *testing.T) {
	holder := NewProfileHolder(usProfile())
	s := NewSession(holder, nil)
	field := NewDecimalField("amount", MaxPlaces(2))

	s.FocusGained(field, "")
	press(t, s, constants.Digit(1), constants.DecimalPoint(), constants.Digit(5))
	text, _ := s.FocusLost()
	assert.Equal(t, "1.50", text)

	previous := holder.Replace(deProfile())
	assert.Equal(t, ".", previous.DecimalSeparator)

	s.FocusGained(field, "")
	press(t, s, constants.Digit(1), constants.DecimalPoint(), constants.Digit(5))
	text, _ = s.FocusLost()
	assert.Equal(t, "1,50", text)
}
