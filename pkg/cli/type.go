package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/BrandonKowalski/keypad/pkg/keypad"
	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/BrandonKowalski/keypad/pkg/keypad/i18n"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// printNotifier writes session signals to the command output.
type printNotifier struct {
	w    io.Writer
	help helpLines
}

func (n printNotifier) SignChanged(negative bool) {
	_, _ = fmt.Fprintf(n.w, "  sign: negative=%t\n", negative)
}

func (n printNotifier) RangeChanged(inRange bool) {
	_, _ = fmt.Fprintf(n.w, "  range: in=%t\n", inRange)
	if !inRange {
		_, _ = fmt.Fprintf(n.w, "  help: %s\n", n.help.outOfRange())
	}
}

func (n printNotifier) SelectAll() {}
func (n printNotifier) RequestRefocus() { _, _ = fmt.Fprintln(n.w, "  refocus requested") }
func (n printNotifier) AdvanceFocus() { _, _ = fmt.Fprintln(n.w, "  advance focus") }
func (n printNotifier) DismissOverlay() { _, _ = fmt.Fprintln(n.w, "  dismiss overlay") }

// helpLines picks the localized hint shown next to a field.
type helpLines struct {
	localizer *i18n.Localizer
	field     keypad.FieldConstraint
	profile   keypad.LocaleProfile
}

// rejected explains why key was refused while the field held text. It is
// empty when there is nothing useful to say.
func (h helpLines) rejected(text string, key keypad.KeyEvent) string {
	if h.field.Layout != constants.LayoutDecimal {
		return ""
	}
	places := keypad.EffectiveDecimalPlaces(h.field, h.profile)

	switch key.Kind {
	case constants.KeyDigit:
		if strings.Contains(text, h.profile.DecimalSeparator) {
			return h.localizer.GetPluralString(i18n.HelpDecimalPlaces, places)
		}
		return h.localizer.GetString(i18n.HelpInvalidNumber)
	case constants.KeyDecimalPoint:
		if places == 0 {
			return h.localizer.GetPluralString(i18n.HelpDecimalPlaces, places)
		}
		return h.localizer.GetString(i18n.HelpInvalidNumber)
	case constants.KeyMinus:
		return h.localizer.GetString(i18n.HelpInvalidNumber)
	default:
		return ""
	}
}

func (h helpLines) outOfRange() string {
	var lower, upper string
	if h.field.Layout == constants.LayoutHex {
		lower, upper = h.field.MinHex, h.field.MaxHex
		if lower == "" {
			lower = "0"
		}
	} else {
		lower, upper = h.bound(h.field.Min), h.bound(h.field.Max)
		if lower == "" {
			lower = "-∞"
		}
	}
	if upper == "" {
		upper = "∞"
	}
	return h.localizer.GetStringWithData(i18n.HelpOutOfRange, map[string]interface{}{
		"Min": lower,
		"Max": upper,
	})
}

func (h helpLines) bound(b decimal.NullDecimal) string {
	if !b.Valid {
		return ""
	}
	places := 0
	if exp := b.Decimal.Exponent(); exp < 0 {
		places = int(-exp)
	}
	return keypad.RenderDecimal(b.Decimal, places, true, h.profile)
}

// NewTypeCommand creates the type command
func NewTypeCommand(cfg *Config) *cobra.Command {
	var (
		field   fieldFlags
		initial string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "type <key>...",
		Short: "Replay key presses against a field",
		Long: `Focus a field, press the given keys in order and print the committed text.

Keys are digits, single characters or named keys: backspace, minus,
decimalPoint, shift, return, keyboardHide.

Examples:
  keypad type 1 2 decimalPoint 5 --locale de --places 2
  keypad type minus 4 2 --text 1.000 --locale en-US
  keypad type 1 F --layout hex --min-hex 00 --max-hex FF`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constraint, err := field.constraint()
			if err != nil {
				return err
			}

			keys := make([]keypad.KeyEvent, 0, len(args))
			for _, arg := range args {
				key, err := constants.ParseKeyID(arg)
				if err != nil {
					return err
				}
				keys = append(keys, key)
			}

			rt, err := cfg.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			catalog, err := i18n.NewCatalog()
			if err != nil {
				return fmt.Errorf("failed to load messages: %w", err)
			}
			profile := rt.Profiles.Profile()
			help := helpLines{
				localizer: catalog.Localizer(profile.Tag),
				field:     constraint,
				profile:   profile,
			}

			out := cmd.OutOrStdout()
			notifier := keypad.Notifier(keypad.NopNotifier{})
			if verbose {
				notifier = printNotifier{w: out, help: help}
			}
			session := keypad.NewSession(rt.Profiles, notifier)

			state := session.FocusGained(constraint, initial)
			if verbose {
				_, _ = fmt.Fprintf(out, "focus: %q cursor=%d\n", state.Text, state.Cursor)
			}

			for _, key := range keys {
				state, accepted := session.Press(key)
				if verbose {
					mark := "✓"
					if !accepted {
						mark = "✗"
					}
					_, _ = fmt.Fprintf(out, "%s %-12s %q cursor=%d\n", mark, key.String(), state.Text, state.Cursor)
					if line := help.rejected(state.Text, key); line != "" && !accepted {
						_, _ = fmt.Fprintf(out, "  help: %s\n", line)
					}
				}
			}

			text, committed := session.FocusLost()
			if !committed {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Field text is not a number, cleared")
				return keypad.ErrNotANumber
			}
			_, _ = fmt.Fprintln(out, text)
			return nil
		},
	}

	field.register(cmd)
	cmd.Flags().StringVar(&initial, "text", "", "Text the field holds before it gains focus")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every intermediate state")
	return cmd
}
