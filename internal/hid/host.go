package hid

import (
	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/logging"
)

// Host is an emulated HID keyboard endpoint. It implements input.Host.
//
// Modifier changes only update state. A report goes out on every Register,
// Unregister and on each half of a character tap during SendString.
type Host struct {
	mods   key.Modifier
	keys   []key.Keycode
	sink   ReportSink
	layout *USLayout
	logger *logging.Logger

	reports int
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger for dropped keys and characters.
func WithHostLogger(l *logging.Logger) HostOption {
	return func(h *Host) {
		h.logger = l.WithComponent("hid")
	}
}

// WithLayout replaces the US layout used by SendString.
func WithLayout(l *USLayout) HostOption {
	return func(h *Host) {
		h.layout = l
	}
}

// NewHost creates a host that sends reports to sink.
func NewHost(sink ReportSink, opts ...HostOption) *Host {
	if sink == nil {
		sink = SinkFunc(func(Report) {})
	}
	h := &Host{
		sink:   sink,
		layout: NewUSLayout(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mods returns the current modifier byte.
func (h *Host) Mods() key.Modifier {
	return h.mods
}

// SetMods replaces the modifier byte without sending a report.
func (h *Host) SetMods(mods key.Modifier) {
	h.mods = mods
}

// ClearMods releases all modifiers without sending a report.
func (h *Host) ClearMods() {
	h.mods = key.ModNone
}

// AddMods sets modifier bits without sending a report.
func (h *Host) AddMods(mods key.Modifier) {
	h.mods = h.mods.With(mods)
}

// DelMods clears modifier bits without sending a report.
func (h *Host) DelMods(mods key.Modifier) {
	h.mods = h.mods.Without(mods)
}

// Register presses kc and sends a report. Modifier keys set their bit;
// wrapped keys set their modifiers and press the base key.
func (h *Host) Register(kc key.Keycode) {
	switch {
	case kc.IsModifier():
		h.mods = h.mods.With(kc.ModifierBit())
	case kc.IsWrapped():
		mods, base := kc.Unwrap()
		h.mods = h.mods.With(mods)
		h.press(base)
	case kc.IsConsumer():
		h.logger.Debug("consumer key %s is not part of the keyboard report", kc)
		return
	case kc.IsBasic():
		h.press(kc)
	default:
		h.logger.Debug("cannot register %s on a HID report", kc)
		return
	}
	h.send()
}

// Unregister releases kc and sends a report.
func (h *Host) Unregister(kc key.Keycode) {
	switch {
	case kc.IsModifier():
		h.mods = h.mods.Without(kc.ModifierBit())
	case kc.IsWrapped():
		mods, base := kc.Unwrap()
		h.mods = h.mods.Without(mods)
		h.release(base)
	case kc.IsConsumer():
		return
	case kc.IsBasic():
		h.release(kc)
	default:
		return
	}
	h.send()
}

// SendString types s one character at a time. Each character is a press
// report followed by a release report; Shift is added only for the press
// of characters that need it. Characters outside the layout are skipped.
func (h *Host) SendString(s string) {
	for _, r := range s {
		stroke, ok := h.layout.StrokeFor(r)
		if !ok {
			h.logger.Warn("no key types %q; skipped", r)
			continue
		}

		saved := h.mods
		if stroke.Shift {
			h.mods = h.mods.With(key.ModLShift)
		}
		h.press(stroke.Usage)
		h.send()

		h.release(stroke.Usage)
		h.mods = saved
		h.send()
	}
}

// Held returns the keys currently pressed, in press order.
func (h *Host) Held() []key.Keycode {
	out := make([]key.Keycode, len(h.keys))
	copy(out, h.keys)
	return out
}

// IsHeld reports whether kc is currently pressed.
func (h *Host) IsHeld(kc key.Keycode) bool {
	for _, k := range h.keys {
		if k == kc {
			return true
		}
	}
	return false
}

// Report returns the report describing the current state.
func (h *Host) Report() Report {
	r := Report{Modifiers: h.mods}
	copy(r.Keys[:], h.keys)
	return r
}

// ReportsSent returns how many reports have been sent.
func (h *Host) ReportsSent() int {
	return h.reports
}

// Reset releases everything without sending a report.
func (h *Host) Reset() {
	h.mods = key.ModNone
	h.keys = h.keys[:0]
	h.reports = 0
}

func (h *Host) press(kc key.Keycode) {
	if h.IsHeld(kc) {
		return
	}
	if len(h.keys) >= MaxKeys {
		h.logger.Warn("rollover: %s dropped with %d keys held", kc, len(h.keys))
		return
	}
	h.keys = append(h.keys, kc)
}

func (h *Host) release(kc key.Keycode) {
	for i, k := range h.keys {
		if k == kc {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			return
		}
	}
}

func (h *Host) send() {
	h.reports++
	h.sink.SendReport(h.Report())
}
