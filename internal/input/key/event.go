package key

import (
	"fmt"
	"time"
)

// Event represents a single debounced key transition.
type Event struct {
	// Keycode is the logical keycode the framework resolved for the
	// physical position.
	Keycode Keycode

	// Pressed is true for key-down and false for key-up.
	Pressed bool

	// Time is when the transition was detected.
	Time time.Time
}

// NewPress creates a key-down event with the current timestamp.
func NewPress(k Keycode) Event {
	return Event{Keycode: k, Pressed: true, Time: time.Now()}
}

// NewRelease creates a key-up event with the current timestamp.
func NewRelease(k Keycode) Event {
	return Event{Keycode: k, Pressed: false, Time: time.Now()}
}

// Released returns true for key-up events.
func (e Event) Released() bool {
	return !e.Pressed
}

// Equals returns true if two events describe the same transition.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Keycode == other.Keycode && e.Pressed == other.Pressed
}

// String returns a compact representation like "+KC_BSPC" or "-KC_BSPC".
func (e Event) String() string {
	if e.Pressed {
		return "+" + e.Keycode.String()
	}
	return "-" + e.Keycode.String()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Keycode: %s, Pressed: %t}", e.Keycode, e.Pressed)
}
