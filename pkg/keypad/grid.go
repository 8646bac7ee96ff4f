package keypad

import (
	"strconv"
	"strings"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/BrandonKowalski/keypad/pkg/keypad/i18n"
	"golang.org/x/text/cases"
)

// GridKey is one key of an on-screen layout. Caption is the glyph drawn on
// the key and Label is its spoken or tooltip name.
type GridKey struct {
	Event   KeyEvent
	Caption string
	Label   string
}

// Grid returns the rows of keys for layout. Glyphs come from the profile so
// a decimal keypad shows the locale's digits and separators. localizer may
// be nil, in which case labels are message IDs.
func Grid(layout constants.KeyboardLayout, shift bool, p LocaleProfile, localizer *i18n.Localizer) [][]GridKey {
	g := gridBuilder{profile: p, localizer: localizer}

	switch layout {
	case constants.LayoutDecimal:
		return [][]GridKey{
			{g.digit(7, true), g.digit(8, true), g.digit(9, true), g.special(constants.Backspace())},
			{g.digit(4, true), g.digit(5, true), g.digit(6, true), g.special(constants.Minus())},
			{g.digit(1, true), g.digit(2, true), g.digit(3, true), g.special(constants.DecimalPoint())},
			{g.digit(0, true), g.special(constants.Return()), g.special(constants.Hide())},
		}
	case constants.LayoutHex:
		return [][]GridKey{
			{g.char("D", false), g.char("E", false), g.char("F", false), g.special(constants.Backspace())},
			{g.char("A", false), g.char("B", false), g.char("C", false)},
			{g.digit(7, false), g.digit(8, false), g.digit(9, false)},
			{g.digit(4, false), g.digit(5, false), g.digit(6, false)},
			{g.digit(1, false), g.digit(2, false), g.digit(3, false)},
			{g.digit(0, false), g.special(constants.Return()), g.special(constants.Hide())},
		}
	case constants.LayoutAlphanumeric:
		numbers := make([]GridKey, 0, 10)
		for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 0} {
			numbers = append(numbers, g.digit(n, false))
		}
		numbers = append(numbers, g.special(constants.Backspace()))

		rows := [][]GridKey{numbers}
		for i, letters := range []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"} {
			row := make([]GridKey, 0, len(letters)+2)
			if i == 2 {
				row = append(row, g.special(constants.Shift()))
			}
			for _, r := range letters {
				row = append(row, g.char(string(r), shift))
			}
			if i == 1 {
				row = append(row, g.special(constants.Return()))
			}
			if i == 2 {
				row = append(row,
					GridKey{Event: constants.Minus(), Caption: "-", Label: g.label(i18n.KeyMinus)},
					GridKey{Event: constants.DecimalPoint(), Caption: ".", Label: g.label(i18n.KeyDecimalPoint)},
				)
			}
			rows = append(rows, row)
		}
		rows = append(rows, []GridKey{
			{Event: constants.Char(" "), Caption: " ", Label: g.label(i18n.KeySpace)},
			g.special(constants.Hide()),
		})
		return rows
	default:
		return nil
	}
}

type gridBuilder struct {
	profile   LocaleProfile
	localizer *i18n.Localizer
}

func (g gridBuilder) digit(n int, native bool) GridKey {
	caption := strconv.Itoa(n)
	if native {
		caption = g.profile.NativeDigits[n]
	}
	return GridKey{Event: constants.Digit(n), Caption: caption, Label: caption}
}

func (g gridBuilder) char(c string, lower bool) GridKey {
	caption := c
	if lower {
		caption = cases.Lower(g.profile.Tag).String(c)
	}
	return GridKey{Event: constants.Char(c), Caption: caption, Label: strings.ToUpper(caption)}
}

func (g gridBuilder) special(event KeyEvent) GridKey {
	var caption, id string
	switch event.Kind {
	case constants.KeyBackspace:
		caption, id = "⌫", i18n.KeyBackspace
	case constants.KeyMinus:
		caption, id = g.profile.NegativeSign, i18n.KeyMinus
	case constants.KeyDecimalPoint:
		caption, id = g.profile.DecimalSeparator, i18n.KeyDecimalPoint
	case constants.KeyShift:
		caption, id = "⇧", i18n.KeyShift
	case constants.KeyReturn:
		caption, id = "⏎", i18n.KeyReturn
	case constants.KeyHide:
		caption, id = "⌨", i18n.KeyHide
	default:
		return GridKey{Event: event, Caption: event.String(), Label: event.String()}
	}
	return GridKey{Event: event, Caption: caption, Label: g.label(id)}
}

func (g gridBuilder) label(id string) string {
	return g.localizer.GetString(id)
}
