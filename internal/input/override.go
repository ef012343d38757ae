package input

import "github.com/dshills/naturekeys/internal/input/key"

// OverrideStatus is the state of the Backspace override.
type OverrideStatus int

const (
	// OverrideIdle means Backspace behaves normally.
	OverrideIdle OverrideStatus = iota
	// OverrideDeleteSubstituted means a Backspace press was turned into a
	// Delete press and Delete stays registered until Backspace is released.
	OverrideDeleteSubstituted
)

// String returns the state name.
func (s OverrideStatus) String() string {
	switch s {
	case OverrideIdle:
		return "IDLE"
	case OverrideDeleteSubstituted:
		return "DELETE_SUBSTITUTED"
	default:
		return "UNKNOWN"
	}
}

// OverrideState tracks whether the interceptor has Delete registered in
// place of Backspace. It lives as long as the interceptor and is only
// changed by overrideBackspace.
type OverrideState struct {
	deleteRegistered bool
}

// DeleteRegistered reports whether a substituted Delete is held down.
func (s *OverrideState) DeleteRegistered() bool {
	return s.deleteRegistered
}

// Status returns the state machine state.
func (s *OverrideState) Status() OverrideStatus {
	if s.deleteRegistered {
		return OverrideDeleteSubstituted
	}
	return OverrideIdle
}

// overrideBackspace turns Shift+Backspace into Delete.
//
// Shift is masked off only around the Delete report so it keeps applying to
// any other held key. The release path checks the flag, not the current
// modifiers: Shift may be let go before Backspace.
func (i *Interceptor) overrideBackspace(ev key.Event) bool {
	if ev.Pressed {
		if i.state.deleteRegistered {
			// A second press without a release cannot come from a debounced
			// matrix. Swallow it so Delete is not registered twice.
			i.metrics.RecordRepeat()
			i.logger.Warn("%s while Delete is substituted; ignored", ev)
			return true
		}

		mods := i.host.Mods()
		if !mods.HasShift() {
			return false
		}

		i.host.SetMods(mods.Without(key.ModMaskShift))
		i.host.Register(key.KeyDelete)
		i.state.deleteRegistered = true
		i.host.SetMods(mods)

		i.metrics.RecordSubstitution()
		i.logger.Debug("substituted %s for %s (mods=%s)", key.KeyDelete, ev.Keycode, mods)
		return true
	}

	if !i.state.deleteRegistered {
		return false
	}

	i.host.Unregister(key.KeyDelete)
	i.state.deleteRegistered = false
	i.logger.Debug("released substituted %s", key.KeyDelete)
	return true
}
