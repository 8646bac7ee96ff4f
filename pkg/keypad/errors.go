package keypad

import "errors"

// ErrNotANumber reports text that does not parse as a decimal in the active profile.
var ErrNotANumber = errors.New("keypad: text is not a number")

// ErrUnknownRoundingMode reports a rounding mode name outside the supported set.
var ErrUnknownRoundingMode = errors.New("keypad: unknown rounding mode")

// ErrUnsupportedOverrides reports an overrides file with an unknown extension.
var ErrUnsupportedOverrides = errors.New("keypad: unsupported overrides format")
