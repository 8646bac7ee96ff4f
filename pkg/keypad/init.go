package keypad

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/BrandonKowalski/keypad/pkg/keypad/internal"
	"github.com/BurntSushi/toml"
)

type Options struct {
	Locale         string        `toml:"locale"`
	SettingsPath   string        `toml:"settings_path"`
	OverridesPath  string        `toml:"overrides_path"`
	RepeatDelay    time.Duration `toml:"repeat_delay"`
	RepeatInterval time.Duration `toml:"repeat_interval"`
	LogLevel       string        `toml:"log_level"`
	WatchFiles     bool          `toml:"watch_files"`

	Dispatcher Dispatcher `toml:"-"`
	Notifier   Notifier   `toml:"-"`
}

// DefaultOptions uses the environment locale, in-memory settings and the
// default repeat timings.
func DefaultOptions() Options {
	return Options{
		RepeatDelay:    constants.DefaultRepeatDelay,
		RepeatInterval: constants.DefaultRepeatInterval,
	}
}

// LoadOptions reads Options from a TOML file. Durations are written as
// strings such as "400ms". Missing keys keep their defaults.
func LoadOptions(path string) (Options, error) {
	options := DefaultOptions()
	if _, err := toml.DecodeFile(path, &options); err != nil {
		return DefaultOptions(), fmt.Errorf("loading options %s: %w", path, err)
	}
	return options, nil
}

// Runtime ties a locale profile, a focus session and a key repeater
// together for one UI.
//
// Key repeats and profile reloads reach the session through a Dispatcher.
// When Options.Dispatcher is nil, Init creates a QueueDispatcher and
// exposes it as Queue; the UI thread must Run or Drain it.
type Runtime struct {
	Profiles *ProfileHolder
	Session  *Session
	Repeater *Repeater
	Settings Settings
	Queue    *QueueDispatcher

	watcher *ProfileWatcher
}

// Init builds the locale profile and everything that depends on it.
// Must be called before any other keypad functions.
func Init(options Options) (*Runtime, error) {
	if os.Getenv(constants.DebugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else if options.LogLevel != "" {
		internal.SetInternalLogLevel(internal.ParseLevel(options.LogLevel))
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	settings, err := openSettings(options.SettingsPath)
	if err != nil {
		return nil, err
	}

	overrides, err := loadOptionalOverrides(options.OverridesPath)
	if err != nil {
		return nil, err
	}

	build := func(settings Settings, overrides Overrides) LocaleProfile {
		return InitializeLocale(
			WithLocale(options.Locale),
			WithSettings(settings),
			WithOverrides(overrides),
		)
	}

	var queue *QueueDispatcher
	dispatcher := options.Dispatcher
	if dispatcher == nil {
		queue = NewQueueDispatcher(constants.DefaultDispatchQueue)
		dispatcher = queue
	}

	profiles := NewProfileHolder(build(settings, overrides))
	rt := &Runtime{
		Profiles: profiles,
		Session:  NewSession(profiles, options.Notifier),
		Repeater: NewRepeater(dispatcher, options.RepeatDelay, options.RepeatInterval),
		Settings: settings,
		Queue:    queue,
	}

	if options.WatchFiles && (options.OverridesPath != "" || options.SettingsPath != "") {
		rebuild := func() (LocaleProfile, error) {
			if fileSettings, ok := settings.(*FileSettings); ok {
				if err := fileSettings.Reload(); err != nil {
					return LocaleProfile{}, err
				}
			}
			overrides, err := loadOptionalOverrides(options.OverridesPath)
			if err != nil {
				return LocaleProfile{}, err
			}
			return build(settings, overrides), nil
		}

		rt.watcher, err = NewProfileWatcher(profiles, dispatcher, rebuild, options.OverridesPath, options.SettingsPath)
		if err != nil {
			if queue != nil {
				queue.Close()
			}
			return nil, fmt.Errorf("watching profile files: %w", err)
		}
	}

	internal.GetInternalLogger().Debug("Keypad initialized",
		"locale", profiles.Profile().Tag.String(),
		"settings", options.SettingsPath,
		"overrides", options.OverridesPath,
	)
	return rt, nil
}

func openSettings(path string) (Settings, error) {
	if path == "" {
		return NewMemorySettings(), nil
	}
	return OpenFileSettings(path)
}

func loadOptionalOverrides(path string) (Overrides, error) {
	if path == "" {
		return nil, nil
	}
	overrides, err := LoadOverrides(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return overrides, err
}

// PressKey routes key through the session and arms the repeater for keys
// that repeat while held.
func (rt *Runtime) PressKey(key KeyEvent) (EditState, bool) {
	state, accepted := rt.Session.Press(key)

	if repeats(key) {
		rt.Repeater.Press(func() {
			rt.Session.Press(key)
		})
	} else {
		rt.Repeater.Release()
	}
	return state, accepted
}

// ReleaseKey cancels any pending repeat.
func (rt *Runtime) ReleaseKey() {
	rt.Repeater.Release()
}

// FocusGained cancels any repeat and starts editing field.
func (rt *Runtime) FocusGained(field FieldConstraint, text string) EditState {
	rt.Repeater.Release()
	return rt.Session.FocusGained(field, text)
}

// FocusLost cancels any repeat and commits the focused field.
func (rt *Runtime) FocusLost() (string, bool) {
	rt.Repeater.Release()
	return rt.Session.FocusLost()
}

// Close tidies up timers, file watchers and the queue Init created.
func (rt *Runtime) Close() error {
	rt.Repeater.Stop()
	if rt.Queue != nil {
		rt.Queue.Close()
	}
	if rt.watcher != nil {
		return rt.watcher.Close()
	}
	return nil
}

func repeats(key KeyEvent) bool {
	switch key.Kind {
	case constants.KeyDigit, constants.KeyChar, constants.KeyBackspace:
		return true
	default:
		return false
	}
}

// MapEvdevKey translates a Linux input key code into a key event using
// the active input mapping.
func MapEvdevKey(code uint16) (KeyEvent, bool) {
	return internal.GetInputMapping().Lookup(code)
}

func SetLogOutput(w io.Writer) {
	internal.SetLogOutput(w)
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

func SetInputMappingBytes(data []byte) {
	internal.SetInputMappingBytes(data)
}
