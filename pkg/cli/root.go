package cli

import (
	"fmt"

	"github.com/BrandonKowalski/keypad/pkg/keypad"
	"github.com/spf13/cobra"
)

const (
	// Version is the current version of the keypad tool
	Version = "0.3.0"
)

// Config holds the flags shared by every command.
type Config struct {
	OptionsFile   string
	Locale        string
	SettingsPath  string
	OverridesPath string
	Debug         bool
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "keypad",
		Short: "Locale-aware numeric keypad engine",
		Long: `keypad exercises the text-entry engine behind the on-screen keypad:
inspect locale profiles, convert between edit and display forms, and
replay key presses against a field.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			keypad.SetLogOutput(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&cfg.OptionsFile, "config", "", "TOML options file")
	cmd.PersistentFlags().StringVar(&cfg.Locale, "locale", "", "Locale to use instead of LC_ALL/LC_NUMERIC/LANG")
	cmd.PersistentFlags().StringVar(&cfg.SettingsPath, "settings", "", "Settings file for persisted preferences")
	cmd.PersistentFlags().StringVar(&cfg.OverridesPath, "overrides", "", "Per-locale overrides file (.json, .yaml)")
	cmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(NewProfileCommand(cfg))
	cmd.AddCommand(NewFormatCommand(cfg))
	cmd.AddCommand(NewTypeCommand(cfg))
	cmd.AddCommand(NewKeysCommand(cfg))

	return cmd
}

// runtime builds a keypad runtime from the options file and flag overrides.
func (c *Config) runtime() (*keypad.Runtime, error) {
	options := keypad.DefaultOptions()
	if c.OptionsFile != "" {
		loaded, err := keypad.LoadOptions(c.OptionsFile)
		if err != nil {
			return nil, err
		}
		options = loaded
	}

	if c.Locale != "" {
		options.Locale = c.Locale
	}
	if c.SettingsPath != "" {
		options.SettingsPath = c.SettingsPath
	}
	if c.OverridesPath != "" {
		options.OverridesPath = c.OverridesPath
	}
	if c.Debug {
		options.LogLevel = "debug"
	}
	options.WatchFiles = false

	rt, err := keypad.Init(options)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keypad: %w", err)
	}
	return rt, nil
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
