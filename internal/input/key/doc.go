// Package key provides the keycode, modifier and event types shared by the
// keymap and the event interceptor.
//
// This package defines the fundamental types for representing keyboard input
// as the firmware sees it:
//
//   - Keycode: a logical key identifier (a HID usage, a wrapped key, a layer
//     or firmware command, or a custom action at or above SafeRange)
//   - Modifier: the HID modifier byte (left/right Ctrl, Shift, Alt, GUI)
//   - Event: a single press or release of a keycode with its timestamp
//
// # Keycode Names
//
// Keycodes can be written in the firmware's notation or by a friendly name:
//
//   - Basic keys: "KC_A", "A", "KC_BSPC", "BSPC", "Backspace"
//   - Wrapped keys: "S(KC_EQL)", "ALGR(KC_Q)", "LCTL_T(KC_TAB)"
//   - Layer keys: "MO(1)"
//   - Custom actions: "ARROW", "MO_GRV", "MO_CIRC", "MO_QUOT"
//
// Only equality of keycodes is meaningful to the interceptor; the encoding of
// wrapped and command keycodes exists so layout grids can be written as data.
package key
