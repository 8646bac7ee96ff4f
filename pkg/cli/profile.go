package cli

import (
	"fmt"

	"github.com/BrandonKowalski/keypad/pkg/keypad"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type profileView struct {
	Locale                      string   `yaml:"locale"`
	GroupSeparator              string   `yaml:"group_separator"`
	DecimalSeparator            string   `yaml:"decimal_separator"`
	NegativeSign                string   `yaml:"negative_sign"`
	NativeDigits                []string `yaml:"native_digits,flow"`
	GroupSizes                  []int    `yaml:"group_sizes,flow"`
	DefaultDecimalDigits        int      `yaml:"default_decimal_digits"`
	DefaultPercentDecimalDigits int      `yaml:"default_percent_decimal_digits"`
	RoundingMode                string   `yaml:"rounding_mode"`
	AllowedDecimalChars         []string `yaml:"allowed_decimal_chars,flow"`
}

func newProfileView(p keypad.LocaleProfile) profileView {
	return profileView{
		Locale:                      p.Tag.String(),
		GroupSeparator:              p.GroupSeparator,
		DecimalSeparator:            p.DecimalSeparator,
		NegativeSign:                p.NegativeSign,
		NativeDigits:                p.NativeDigits[:],
		GroupSizes:                  []int{p.PrimaryGroupSize, p.SecondaryGroupSize},
		DefaultDecimalDigits:        p.DefaultDecimalDigits,
		DefaultPercentDecimalDigits: p.DefaultPercentDecimalDigits,
		RoundingMode:                p.RoundingMode.String(),
		AllowedDecimalChars:         p.AllowedDecimalChars(),
	}
}

// NewProfileCommand creates the profile command
func NewProfileCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the resolved locale profile",
		Long: `Print the number-entry conventions resolved for the active locale.

Examples:
  keypad profile
  keypad profile --locale de-DE
  keypad profile --locale fr --overrides overrides.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cfg.runtime()
			if err != nil {
				return err
			}
			defer rt.Close()

			data, err := yaml.Marshal(newProfileView(rt.Profiles.Profile()))
			if err != nil {
				return fmt.Errorf("failed to marshal profile: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
