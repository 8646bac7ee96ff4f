package keypad

import (
	"log/slog"

	"github.com/BrandonKowalski/keypad/pkg/keypad/constants"
	"github.com/BrandonKowalski/keypad/pkg/keypad/internal"
	"github.com/google/uuid"
)

// Notifier receives the signals a Session emits toward the UI layer.
type Notifier interface {
	SignChanged(negative bool)
	RangeChanged(inRange bool)
	SelectAll()
	RequestRefocus()
	AdvanceFocus()
	DismissOverlay()
}

// NopNotifier ignores every signal.
type NopNotifier struct{}

func (NopNotifier) SignChanged(bool) {}
func (NopNotifier) RangeChanged(bool) {}
func (NopNotifier) SelectAll() {}
func (NopNotifier) RequestRefocus() {}
func (NopNotifier) AdvanceFocus() {}
func (NopNotifier) DismissOverlay() {}

// Session drives the one focused field. It must only be used from the UI
// thread.
type Session struct {
	profiles ProfileSource
	notifier Notifier
	logger   *slog.Logger

	id     string
	active bool
	field  FieldConstraint
	state  EditState
}

func NewSession(profiles ProfileSource, notifier Notifier) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if profiles == nil {
		profiles = DefaultLocaleProfile()
	}
	return &Session{
		profiles: profiles,
		notifier: notifier,
		logger:   internal.GetInternalLogger(),
	}
}

// FocusGained starts editing field with its current text.
func (s *Session) FocusGained(field FieldConstraint, text string) EditState {
	profile := s.profiles.Profile()

	s.id = uuid.NewString()
	s.active = true
	s.field = field
	s.state = EditState{Text: text, Layout: field.Layout}

	if field.Layout == constants.LayoutDecimal {
		formatted, ok := FormatOnFocus(text, field, profile)
		s.state.Text = formatted
		s.state.DisplayFormatted = !ok
	}
	s.state.Cursor = len([]rune(s.state.Text))

	s.logger.Debug("Focus gained",
		"session", s.id,
		"field", field.ID,
		"layout", field.Layout.String(),
		"text", s.state.Text,
	)

	s.notifier.SelectAll()
	s.signal(profile)
	return s.state
}

// Press routes one key. accepted is false when the key was ignored or the
// edit it produced failed validation and was reverted.
func (s *Session) Press(key KeyEvent) (state EditState, accepted bool) {
	if !s.active {
		return s.state, false
	}
	profile := s.profiles.Profile()

	next, action := RouteKey(s.state, key, profile)
	switch action {
	case ActionAdvanceFocus:
		s.notifier.AdvanceFocus()
		return s.state, true
	case ActionDismiss:
		s.notifier.DismissOverlay()
		return s.state, true
	}

	if next == s.state {
		return s.state, false
	}

	if next.Text != s.state.Text {
		if !s.valid(next, profile) {
			s.logger.Debug("Edit rejected",
				"session", s.id,
				"field", s.field.ID,
				"key", key.String(),
				"text", next.Text,
			)
			return s.state, false
		}
		if next.DisplayFormatted && s.valid(EditState{Text: next.Text, Layout: next.Layout}, profile) {
			next.DisplayFormatted = false
		}
	}

	s.state = next
	s.signal(profile)
	return s.state, true
}

// FocusLost ends editing and returns the committed text. committed is false
// when the text could not be parsed; the field is then cleared and a
// refocus requested.
func (s *Session) FocusLost() (text string, committed bool) {
	if !s.active {
		return "", false
	}
	profile := s.profiles.Profile()

	text, committed = s.state.Text, true
	if s.field.Layout == constants.LayoutDecimal {
		text, committed = FormatOnUnfocus(s.state.Text, s.field, profile)
		if !committed {
			s.logger.Debug("Discarding unparsable text", "session", s.id, "field", s.field.ID, "text", s.state.Text)
			s.notifier.RequestRefocus()
		}
	}

	s.logger.Debug("Focus lost", "session", s.id, "field", s.field.ID, "text", text)

	s.active = false
	s.state = EditState{}
	return text, committed
}

// Active reports whether a field is focused.
func (s *Session) Active() bool {
	return s.active
}

// State returns the current edit state.
func (s *Session) State() EditState {
	return s.state
}

// Field returns the focused field.
func (s *Session) Field() FieldConstraint {
	return s.field
}

// ID identifies the current focus session in logs.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) valid(state EditState, profile LocaleProfile) bool {
	switch s.field.Layout {
	case constants.LayoutDecimal:
		return ValidateDecimal(state.Text, s.field, profile, state.DisplayFormatted)
	case constants.LayoutHex:
		return ValidateHex(state.Text)
	default:
		return true
	}
}

func (s *Session) signal(profile LocaleProfile) {
	if s.state.DisplayFormatted {
		return
	}
	switch s.field.Layout {
	case constants.LayoutDecimal:
		s.notifier.SignChanged(IsNegative(s.state.Text, profile))
		if inRange, evaluated := DecimalInRange(s.state.Text, s.field, profile); evaluated {
			s.notifier.RangeChanged(inRange)
		}
	case constants.LayoutHex:
		if inRange, evaluated := HexRangeCheck(s.state.Text, s.field.MinHex, s.field.MaxHex); evaluated {
			s.notifier.RangeChanged(inRange)
		}
	}
}
