// Package constants defines the closed key vocabulary and layout identifiers
// shared by the keypad core, its input adapters and the UI layer.
package constants

import (
	"fmt"
	"strconv"
	"time"
)

// DebugEnvVar switches the internal logger to debug level when non-empty.
const DebugEnvVar = "KEYPAD_DEBUG"

// MappingPathEnvVar points at a JSON file that extends the hardware key mapping.
const MappingPathEnvVar = "KEYPAD_INPUT_MAPPING_PATH"

// Default long-press timings.
const (
	DefaultRepeatDelay    = 400 * time.Millisecond
	DefaultRepeatInterval = 80 * time.Millisecond
)

// DefaultDispatchQueue is the size of the queue Init creates when the UI
// supplies no dispatcher.
const DefaultDispatchQueue = 64

// KeyboardLayout selects which key set an overlay presents and which
// dispatch rules apply to the focused field.
type KeyboardLayout int

const (
	// LayoutDecimal is the locale-aware decimal number pad.
	LayoutDecimal KeyboardLayout = iota
	// LayoutHex is the hexadecimal pad (0-9, A-F).
	LayoutHex
	// LayoutAlphanumeric is the QWERTY layout with shift.
	LayoutAlphanumeric
)

func (l KeyboardLayout) String() string {
	switch l {
	case LayoutDecimal:
		return "decimal"
	case LayoutHex:
		return "hex"
	case LayoutAlphanumeric:
		return "alphanumeric"
	default:
		return "unknown"
	}
}

// ParseLayout maps a layout name back to its KeyboardLayout.
func ParseLayout(name string) (KeyboardLayout, error) {
	switch name {
	case "decimal", "numeric":
		return LayoutDecimal, nil
	case "hex", "hexadecimal":
		return LayoutHex, nil
	case "alphanumeric", "alpha", "text":
		return LayoutAlphanumeric, nil
	default:
		return LayoutDecimal, fmt.Errorf("unknown keyboard layout %q", name)
	}
}

// KeyKind is the tag of a KeyEvent.
type KeyKind int

const (
	KeyUnassigned KeyKind = iota
	KeyDigit
	KeyChar
	KeyBackspace
	KeyMinus
	KeyDecimalPoint
	KeyShift
	KeyReturn
	KeyHide
)

// GetName returns the stable identifier used in mapping files and the CLI.
func (k KeyKind) GetName() string {
	switch k {
	case KeyUnassigned:
		return "unassigned"
	case KeyDigit:
		return "digit"
	case KeyChar:
		return "char"
	case KeyBackspace:
		return "backspace"
	case KeyMinus:
		return "minus"
	case KeyDecimalPoint:
		return "decimalPoint"
	case KeyShift:
		return "shift"
	case KeyReturn:
		return "return"
	case KeyHide:
		return "keyboardHide"
	default:
		return "unknown"
	}
}

// KeyEvent is a single key press produced by a UI or hardware adapter.
// Digit is set for KeyDigit (0-9), Char for KeyChar (one character,
// usually the upper-case caption of the key).
type KeyEvent struct {
	Kind  KeyKind
	Digit int
	Char  string
}

func Digit(n int) KeyEvent { return KeyEvent{Kind: KeyDigit, Digit: n} }
func Char(c string) KeyEvent { return KeyEvent{Kind: KeyChar, Char: c} }
func Backspace() KeyEvent { return KeyEvent{Kind: KeyBackspace} }
func Minus() KeyEvent { return KeyEvent{Kind: KeyMinus} }
func DecimalPoint() KeyEvent { return KeyEvent{Kind: KeyDecimalPoint} }
func Shift() KeyEvent { return KeyEvent{Kind: KeyShift} }
func Return() KeyEvent { return KeyEvent{Kind: KeyReturn} }
func Hide() KeyEvent { return KeyEvent{Kind: KeyHide} }

func (e KeyEvent) String() string {
	switch e.Kind {
	case KeyDigit:
		return strconv.Itoa(e.Digit)
	case KeyChar:
		return e.Char
	default:
		return e.Kind.GetName()
	}
}

// ParseKeyID resolves a textual key identifier: a named key ("backspace",
// "minus", "decimalPoint", "shift", "return", "keyboardHide"), a single
// digit, or any other single character.
func ParseKeyID(id string) (KeyEvent, error) {
	switch id {
	case "backspace":
		return Backspace(), nil
	case "minus":
		return Minus(), nil
	case "decimalPoint", "decimal":
		return DecimalPoint(), nil
	case "shift":
		return Shift(), nil
	case "return", "enter":
		return Return(), nil
	case "keyboardHide", "hide":
		return Hide(), nil
	}

	runes := []rune(id)
	if len(runes) != 1 {
		return KeyEvent{}, fmt.Errorf("unknown key id %q", id)
	}
	if runes[0] >= '0' && runes[0] <= '9' {
		return Digit(int(runes[0] - '0')), nil
	}
	return Char(id), nil
}
