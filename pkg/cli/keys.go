package cli

import (
	"fmt"
	"strings"

	"github.com/BrandonKowalski/keypad/pkg/keypad"
	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/BrandonKowalski/keypad/pkg/keypad/i18n"
	"github.com/spf13/cobra"
)

// NewKeysCommand creates the keys command
func NewKeysCommand(cfg *Config) *cobra.Command {
	var (
		layoutName string
		shift      bool
		labels     bool
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the on-screen key grid for a layout",
		Long: `Print the keys an overlay would show for a layout, with the locale's
digit glyphs and separators.

Examples:
  keypad keys --locale ar-EG
  keypad keys --layout alphanumeric --shift --labels --locale es`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := constants.ParseLayout(layoutName)
			if err != nil {
				return err
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
			localizer := catalog.Localizer(profile.Tag)

			out := cmd.OutOrStdout()
			for _, row := range keypad.Grid(layout, shift, profile, localizer) {
				cells := make([]string, 0, len(row))
				for _, key := range row {
					if labels {
						cells = append(cells, fmt.Sprintf("%s (%s)", key.Caption, key.Label))
					} else {
						cells = append(cells, key.Caption)
					}
				}
				_, _ = fmt.Fprintln(out, strings.Join(cells, " | "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&layoutName, "layout", "decimal", "Keyboard layout: decimal, hex or alphanumeric")
	cmd.Flags().BoolVar(&shift, "shift", false, "Show the shifted alphanumeric captions")
	cmd.Flags().BoolVar(&labels, "labels", false, "Show the localized key names")
	return cmd
}
