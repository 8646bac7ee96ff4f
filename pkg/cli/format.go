package cli

import (
	"fmt"

	"github.com/BrandonKowalski/keypad/pkg/keypad"
	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// fieldFlags describe the field a command operates on.
type fieldFlags struct {
	id      string
	layout  string
	places  int
	percent bool
	min     string
	max     string
	minHex  string
	maxHex  string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "field", "value", "Field identifier")
	cmd.Flags().StringVar(&f.layout, "layout", "decimal", "Keyboard layout: decimal, hex or alphanumeric")
	cmd.Flags().IntVar(&f.places, "places", -1, "Maximum decimal places (negative uses the locale default)")
	cmd.Flags().BoolVar(&f.percent, "percent", false, "Treat the field as a percentage field")
	cmd.Flags().StringVar(&f.min, "min", "", "Lower bound of a decimal field")
	cmd.Flags().StringVar(&f.max, "max", "", "Upper bound of a decimal field")
	cmd.Flags().StringVar(&f.minHex, "min-hex", "", "Lower bound of a hex field")
	cmd.Flags().StringVar(&f.maxHex, "max-hex", "", "Upper bound of a hex field")
}

func (f *fieldFlags) constraint() (keypad.FieldConstraint, error) {
	layout, err := constants.ParseLayout(f.layout)
	if err != nil {
		return keypad.FieldConstraint{}, err
	}

	switch layout {
	case constants.LayoutHex:
		return keypad.NewHexField(f.id, f.minHex, f.maxHex), nil
	case constants.LayoutAlphanumeric:
		return keypad.NewTextField(f.id), nil
	}

	c := keypad.NewDecimalField(f.id, keypad.MaxPlaces(f.places))
	c.IsPercentage = c.IsPercentage || f.percent
	if c.Min, err = parseBound(f.min); err != nil {
		return c, fmt.Errorf("invalid --min: %w", err)
	}
	if c.Max, err = parseBound(f.max); err != nil {
		return c, fmt.Errorf("invalid --max: %w", err)
	}
	return c, nil
}

func parseBound(raw string) (decimal.NullDecimal, error) {
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// NewFormatCommand creates the format command
func NewFormatCommand(cfg *Config) *cobra.Command {
	var field fieldFlags

	cmd := &cobra.Command{
		Use:   "format <focus|unfocus> <text>",
		Short: "Convert text between display and edit form",
		Long: `Convert text the way a decimal field does when it gains or loses focus.

focus strips grouping and pads to the field's decimal places.
unfocus rounds with the locale rounding mode and groups the digits.

Examples:
  keypad format unfocus 1234567.891 --locale en-US
  keypad format focus 1.234,50 --locale de --places 2`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"focus", "unfocus"},
		RunE: func(cmd *cobra.Command, args []string) error {
			constraint, err := field.constraint()
			if err != nil {
				return err
			}

			rt, err := cfg.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			profile := rt.Profiles.Profile()
			var (
				text string
				ok   bool
			)
			switch args[0] {
			case "focus":
				text, ok = keypad.FormatOnFocus(args[1], constraint, profile)
			case "unfocus":
				text, ok = keypad.FormatOnUnfocus(args[1], constraint, profile)
			default:
				return fmt.Errorf("unknown direction %q, want focus or unfocus", args[0])
			}

			if !ok {
				_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ %q is not a number in %s\n", args[1], profile.Tag)
				return keypad.ErrNotANumber
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	field.register(cmd)
	return cmd
}
