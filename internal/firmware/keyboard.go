// Package firmware stands in for the keyboard framework around the keymap:
// it hands each key transition to the interceptor and, when the interceptor
// lets it through, applies the framework's default processing.
package firmware

import (
	"time"

	"github.com/dshills/naturekeys/internal/input"
	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/logging"
)

// Decision is the outcome of processing one event.
type Decision struct {
	Event key.Event

	// Handled is true when the interceptor consumed the event.
	Handled bool

	// Default is true when default processing sent something to the host.
	Default bool

	// ModsBefore and ModsAfter bracket the event.
	ModsBefore key.Modifier
	ModsAfter  key.Modifier

	// State is the Backspace override state after the event.
	State input.OverrideStatus
}

// Observer is notified after every processed event.
type Observer func(d Decision)

// Keyboard runs the event pipeline for one keymap.
type Keyboard struct {
	host        input.Host
	interceptor *input.Interceptor
	iopts       []input.Option
	logger      *logging.Logger
	observers   []Observer
	clock       func() time.Time
}

// Option configures a Keyboard.
type Option func(*Keyboard)

// WithLogger sets the pipeline logger. The interceptor gets a child of it.
func WithLogger(l *logging.Logger) Option {
	return func(k *Keyboard) {
		k.logger = l
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(k *Keyboard) {
		k.observers = append(k.observers, o)
	}
}

// WithClock replaces the time source used for event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(k *Keyboard) {
		k.clock = clock
	}
}

// WithInterceptorOptions passes options through to the interceptor.
func WithInterceptorOptions(opts ...input.Option) Option {
	return func(k *Keyboard) {
		k.iopts = append(k.iopts, opts...)
	}
}

// New creates a keyboard pipeline driving host.
func New(host input.Host, opts ...Option) *Keyboard {
	k := &Keyboard{
		host:   host,
		logger: logging.Discard(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(k)
	}
	k.logger = k.logger.WithComponent("firmware")
	iopts := append([]input.Option{input.WithLogger(k.logger)}, k.iopts...)
	k.interceptor = input.NewInterceptor(host, iopts...)
	return k
}

// Interceptor returns the keymap's interceptor.
func (k *Keyboard) Interceptor() *input.Interceptor {
	return k.interceptor
}

// Host returns the host the pipeline drives.
func (k *Keyboard) Host() input.Host {
	return k.host
}

// Process runs one event through the interceptor and default processing.
// It returns true when the interceptor handled the event.
func (k *Keyboard) Process(ev key.Event) bool {
	if ev.Time.IsZero() {
		ev.Time = k.clock()
	}

	d := Decision{Event: ev, ModsBefore: k.host.Mods()}
	d.Handled = k.interceptor.OnKeyEvent(ev)
	if !d.Handled {
		d.Default = k.applyDefault(ev)
	}
	d.ModsAfter = k.host.Mods()
	d.State = k.interceptor.State()

	k.logger.Debug("%s handled=%t default=%t mods=%s state=%s",
		ev, d.Handled, d.Default, d.ModsAfter, d.State)
	for _, o := range k.observers {
		o(d)
	}
	return d.Handled
}

// Press processes a key-down of kc.
func (k *Keyboard) Press(kc key.Keycode) bool {
	return k.Process(key.Event{Keycode: kc, Pressed: true, Time: k.clock()})
}

// Release processes a key-up of kc.
func (k *Keyboard) Release(kc key.Keycode) bool {
	return k.Process(key.Event{Keycode: kc, Pressed: false, Time: k.clock()})
}

// Tap processes a press immediately followed by a release.
func (k *Keyboard) Tap(kc key.Keycode) {
	k.Press(kc)
	k.Release(kc)
}

// applyDefault sends the raw keycode to the host. Layer keys, mod-taps,
// firmware commands and custom codes without a handler are not simulated.
func (k *Keyboard) applyDefault(ev key.Event) bool {
	kc := ev.Keycode
	if !kc.IsBasic() && !kc.IsWrapped() {
		k.logger.Debug("default processing of %s is not simulated", kc)
		return false
	}
	if ev.Pressed {
		k.host.Register(kc)
	} else {
		k.host.Unregister(kc)
	}
	return true
}
