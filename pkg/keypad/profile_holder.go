package keypad

import "go.uber.org/atomic"

// ProfileSource hands out the profile to use for the next operation.
type ProfileSource interface {
	Profile() LocaleProfile
}

// ProfileHolder publishes a LocaleProfile that can be replaced as a whole,
// for example after the locale or its overrides change.
type ProfileHolder struct {
	current *atomic.Pointer[LocaleProfile]
}

var _ ProfileSource = &ProfileHolder{}

func NewProfileHolder(p LocaleProfile) *ProfileHolder {
	return &ProfileHolder{current: atomic.NewPointer(&p)}
}

// Profile returns the current profile.
func (h *ProfileHolder) Profile() LocaleProfile {
	if p := h.current.Load(); p != nil {
		return *p
	}
	return DefaultLocaleProfile()
}

// Replace swaps in p and returns the previous profile.
func (h *ProfileHolder) Replace(p LocaleProfile) LocaleProfile {
	old := h.current.Swap(&p)
	if old == nil {
		return DefaultLocaleProfile()
	}
	return *old
}
