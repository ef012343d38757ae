package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/naturekeys/internal/hid"
	"github.com/dshills/naturekeys/internal/input/key"
)

// Stroke is one simulated key tap derived from a terminal key event.
type Stroke struct {
	Keycode key.Keycode
	Mods    key.Modifier
}

// Function keys standing in for the custom actions a terminal cannot send.
var actionKeys = map[tcell.Key]key.Keycode{
	tcell.KeyF5: key.Arrow,
	tcell.KeyF6: key.ModGrave,
	tcell.KeyF7: key.ModCircumflex,
	tcell.KeyF8: key.ModQuote,
}

var namedKeys = map[tcell.Key]key.Keycode{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertMod converts tcell modifiers to left-hand HID modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModLShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModLCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModLAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModLGui
	}
	return mods
}

// translate maps a terminal key event to the tap that would produce it.
// The bool is false for events with no keyboard equivalent.
func translate(ev *tcell.EventKey, layout *hid.USLayout) (Stroke, bool) {
	mods := convertMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		s, ok := layout.StrokeFor(ev.Rune())
		if !ok {
			return Stroke{}, false
		}
		if s.Shift {
			mods |= key.ModLShift
		}
		return Stroke{Keycode: s.Usage, Mods: mods}, true
	}
	if kc, ok := actionKeys[ev.Key()]; ok {
		return Stroke{Keycode: kc, Mods: mods}, true
	}
	if kc, ok := namedKeys[ev.Key()]; ok {
		if ev.Key() == tcell.KeyBacktab {
			mods |= key.ModLShift
		}
		return Stroke{Keycode: kc, Mods: mods}, true
	}

	// Ctrl+letter arrives as its own key code.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return Stroke{Keycode: key.KeyA + key.Keycode(ev.Key()-tcell.KeyCtrlA), Mods: mods | key.ModLCtrl}, true
	}
	return Stroke{}, false
}

// modKeys returns the modifier keys to hold for mods, in bit order.
func modKeys(mods key.Modifier) []key.Keycode {
	var out []key.Keycode
	for i := 0; i < 8; i++ {
		if mods&(1<<i) != 0 {
			out = append(out, key.KeyLeftCtrl+key.Keycode(i))
		}
	}
	return out
}
