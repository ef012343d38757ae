package input

import (
	"time"

	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/input/keymap"
	"github.com/dshills/naturekeys/internal/logging"
)

// Interceptor decides, per key transition, whether the keymap handles the
// event itself or lets the firmware apply its default processing.
type Interceptor struct {
	host    Host
	codes   *keymap.CodeTable
	state   OverrideState
	metrics *Metrics
	logger  *logging.Logger
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithCodeTable replaces the default code table.
func WithCodeTable(t *keymap.CodeTable) Option {
	return func(i *Interceptor) {
		i.codes = t
	}
}

// WithLogger sets the logger used for per-event debug output.
func WithLogger(l *logging.Logger) Option {
	return func(i *Interceptor) {
		i.logger = l.WithComponent("interceptor")
	}
}

// WithMetrics shares a metrics tracker with the caller.
func WithMetrics(m *Metrics) Option {
	return func(i *Interceptor) {
		i.metrics = m
	}
}

// NewInterceptor creates an interceptor driving host.
func NewInterceptor(host Host, opts ...Option) *Interceptor {
	i := &Interceptor{
		host:   host,
		codes:  keymap.DefaultCodeTable(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.metrics == nil {
		i.metrics = NewMetrics()
	}
	return i
}

// OnKeyEvent processes one key transition. It returns true when the event
// was handled and the firmware must skip default processing.
func (i *Interceptor) OnKeyEvent(ev key.Event) bool {
	start := time.Now()
	handled := i.dispatch(ev)
	i.metrics.RecordEvent(time.Since(start), handled)
	return handled
}

// Process is OnKeyEvent for callers that only have the keycode and direction.
func (i *Interceptor) Process(kc key.Keycode, pressed bool) bool {
	return i.OnKeyEvent(key.Event{Keycode: kc, Pressed: pressed, Time: time.Now()})
}

// State returns the Backspace override state.
func (i *Interceptor) State() OverrideStatus {
	return i.state.Status()
}

// Metrics returns the interceptor's metrics tracker.
func (i *Interceptor) Metrics() *Metrics {
	return i.metrics
}

// CodeTable returns the table used for string actions.
func (i *Interceptor) CodeTable() *keymap.CodeTable {
	return i.codes
}

func (i *Interceptor) dispatch(ev key.Event) bool {
	switch {
	case i.codes.Has(ev.Keycode):
		return i.sendCode(ev)
	case ev.Keycode == key.KeyBackspace:
		return i.overrideBackspace(ev)
	default:
		return false
	}
}

// sendCode types the code table entry for a custom action on press.
// Releases are not handled; the actions do not model hold duration.
func (i *Interceptor) sendCode(ev key.Event) bool {
	if !ev.Pressed {
		return false
	}

	mods := i.host.Mods()
	shifted := mods.HasShift()
	text := i.codes.Lookup(ev.Keycode, shifted)

	i.host.ClearMods()
	i.host.SendString(text)
	i.host.SetMods(mods)

	i.metrics.RecordString()
	i.logger.Debug("sent %q for %s (shifted=%t, mods=%s)", text, ev.Keycode, shifted, mods)
	return true
}
