// Package input implements the key event interceptor of the keymap.
//
// The firmware calls the interceptor once per debounced key transition. The
// interceptor either handles the event itself, in which case the firmware
// skips its default processing, or lets it fall through.
//
// # Architecture
//
// Two behaviors are implemented on top of a host interface that exposes the
// firmware's modifier state and HID transport:
//
//   - String actions: custom keycodes type a fixed string from the code
//     table, choosing the shifted or unshifted entry by the held Shift keys.
//     Modifiers are cleared while the string is typed and restored afterwards.
//   - Backspace override: Backspace pressed with Shift held registers Delete
//     instead, with Shift masked off so the host never sees Shift+Delete.
//     The matching Backspace release unregisters Delete even if Shift was
//     released in between.
//
// # Concurrency
//
// The interceptor is not safe for concurrent use. The firmware processes one
// event at a time to completion, and the modifier clear/restore sequences
// assume nothing else touches the host in between.
//
// # Usage
//
//	ic := input.NewInterceptor(host, input.WithLogger(logger))
//
//	for ev := range events {
//	    if !ic.OnKeyEvent(ev) {
//	        applyDefault(ev)
//	    }
//	}
package input
