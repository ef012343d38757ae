package input

import "github.com/dshills/naturekeys/internal/input/key"

// Host is the part of the firmware the interceptor drives.
//
// Every call is fire-and-forget. Changing modifiers alone does not send a
// report to the computer; the next Register, Unregister or SendString carries
// the current modifier state.
type Host interface {
	// Mods returns the modifiers held at the time of the call.
	Mods() key.Modifier

	// SetMods replaces the modifier state.
	SetMods(mods key.Modifier)

	// ClearMods releases all modifiers.
	ClearMods()

	// Register presses a keycode and sends a report.
	Register(kc key.Keycode)

	// Unregister releases a keycode and sends a report.
	Unregister(kc key.Keycode)

	// SendString types s as a sequence of key taps.
	SendString(s string)
}
