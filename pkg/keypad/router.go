package keypad

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"golang.org/x/text/cases"
)

// KeyEvent is re-exported so callers rarely need the constants package.
type KeyEvent = constants.KeyEvent

// EditState is the live state of the focused field.
type EditState struct {
	Text             string
	Cursor           int
	DisplayFormatted bool
	Shift            bool
	Layout           constants.KeyboardLayout
}

// Action is what a key asks of the surrounding UI besides editing.
type Action int

const (
	ActionNone Action = iota
	ActionAdvanceFocus
	ActionDismiss
)

func (a Action) String() string {
	switch a {
	case ActionAdvanceFocus:
		return "advance"
	case ActionDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// RouteKey applies key to state. It performs no validation; the caller
// checks the resulting text and keeps the old state on rejection.
func RouteKey(state EditState, key KeyEvent, p LocaleProfile) (EditState, Action) {
	switch key.Kind {
	case constants.KeyReturn:
		return state, ActionAdvanceFocus
	case constants.KeyHide:
		return state, ActionDismiss
	case constants.KeyBackspace:
		state.Text, state.Cursor = DeleteBefore(state.Text, state.Cursor)
		return state, ActionNone
	}

	switch state.Layout {
	case constants.LayoutDecimal:
		return routeDecimal(state, key, p), ActionNone
	case constants.LayoutHex:
		return routeHex(state, key), ActionNone
	case constants.LayoutAlphanumeric:
		return routeAlphanumeric(state, key, p), ActionNone
	default:
		return state, ActionNone
	}
}

func routeDecimal(state EditState, key KeyEvent, p LocaleProfile) EditState {
	switch key.Kind {
	case constants.KeyDigit:
		if key.Digit < 0 || key.Digit > 9 {
			return state
		}
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, p.NativeDigits[key.Digit])
	case constants.KeyMinus:
		if strings.Contains(state.Text, p.NegativeSign) {
			return state
		}
		cursor := state.Cursor
		state.Text, _ = Insert(state.Text, 0, p.NegativeSign)
		state.Cursor = cursor + utf8.RuneCountInString(p.NegativeSign)
	case constants.KeyDecimalPoint:
		if strings.Contains(state.Text, p.DecimalSeparator) {
			return state
		}
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, p.DecimalSeparator)
	}
	return state
}

func routeHex(state EditState, key KeyEvent) EditState {
	switch key.Kind {
	case constants.KeyDigit:
		if key.Digit < 0 || key.Digit > 9 {
			return state
		}
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, strconv.Itoa(key.Digit))
	case constants.KeyChar:
		if !isHexKey(key.Char) {
			return state
		}
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, key.Char)
	}
	return state
}

func isHexKey(char string) bool {
	r, size := utf8.DecodeRuneInString(char)
	return size == len(char) && size > 0 && isHexDigit(r)
}

func routeAlphanumeric(state EditState, key KeyEvent, p LocaleProfile) EditState {
	switch key.Kind {
	case constants.KeyShift:
		state.Shift = !state.Shift
	case constants.KeyDigit:
		if key.Digit < 0 || key.Digit > 9 {
			return state
		}
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, strconv.Itoa(key.Digit))
	case constants.KeyChar:
		char := key.Char
		if state.Shift && utf8.RuneCountInString(char) == 1 {
			char = cases.Lower(p.Tag).String(char)
		}
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, char)
	case constants.KeyMinus:
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, "-")
	case constants.KeyDecimalPoint:
		state.Text, state.Cursor = Insert(state.Text, state.Cursor, ".")
	}
	return state
}
