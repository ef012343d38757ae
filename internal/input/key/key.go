package key

import "fmt"

// Keycode is a logical key identifier.
//
// Values below 0x0100 are USB HID keyboard usages (plus the consumer keys the
// firmware folds into that range). Higher ranges encode wrapped keys, layer
// keys, firmware commands and, from SafeRange up, custom actions.
type Keycode uint16

// Sentinel keycodes.
const (
	// KeyNone is the "no key" code.
	KeyNone Keycode = 0x0000
	// Transparent defers to the next lower active layer.
	Transparent Keycode = 0x0001
)

// Letters.
const (
	KeyA Keycode = 0x04 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// Number row.
const (
	Key1 Keycode = 0x1E + iota
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
)

// Editing and punctuation keys.
const (
	KeyEnter Keycode = 0x28 + iota
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyNonUSHash
	KeySemicolon
	KeyQuote
	KeyGrave
	KeyComma
	KeyDot
	KeySlash
	KeyCapsLock
)

// Function keys.
const (
	KeyF1 Keycode = 0x3A + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Navigation keys.
const (
	KeyPrintScreen Keycode = 0x46 + iota
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyNumLock
)

// Consumer and system keys.
const (
	KeyMute Keycode = 0xA8 + iota
	KeyVolumeUp
	KeyVolumeDown
	KeyMediaNext
	KeyMediaPrev
	KeyMediaStop
	KeyMediaPlay
	KeyMediaSelect
	KeyMediaEject
	KeyMail
	KeyCalculator
	KeyMyComputer
)

// Modifier keys.
const (
	KeyLeftCtrl Keycode = 0xE0 + iota
	KeyLeftShift
	KeyLeftAlt
	KeyLeftGui
	KeyRightCtrl
	KeyRightShift
	KeyRightAlt
	KeyRightGui
)

// Encoded ranges.
const (
	rangeModsMin    Keycode = 0x0100
	rangeModsMax    Keycode = 0x1FFF
	rangeModTapMin  Keycode = 0x2000
	rangeModTapMax  Keycode = 0x3FFF
	rangeMomentary  Keycode = 0x5220
	rangeMomentMax  Keycode = 0x523F
	rangeCommandMin Keycode = 0x7000
)

// Firmware commands. The simulator treats these as opaque.
const (
	NKROToggle  Keycode = 0x7013
	Reset       Keycode = 0x7C00
	EEPROMReset Keycode = 0x7C03
)

// RGB lighting controls.
const (
	RGBToggle Keycode = 0x7820 + iota
	RGBModeForward
	RGBModeReverse
	RGBHueUp
	RGBHueDown
	RGBSatUp
	RGBSatDown
	RGBValUp
	RGBValDown
	RGBSpeedUp
	RGBSpeedDown
)

// SafeRange is the first keycode available for custom actions.
const SafeRange Keycode = 0x7E00

// Custom actions of this keymap. Placeholder occupies SafeRange itself.
const (
	Placeholder Keycode = SafeRange + iota
	Arrow
	ModGrave
	ModCircumflex
	ModQuote
)

// Wrapped keycodes carry a 5-bit modifier field: bits 0-3 are
// Ctrl/Shift/Alt/Gui and wrapRight selects the right-hand keys.
const wrapRight = 0x10

// toWrapBits converts a Modifier to the 5-bit field. Mixed-hand modifiers
// collapse to the right hand if any right-hand bit is set.
func toWrapBits(m Modifier) uint16 {
	right := m&0xF0 != 0
	bits := uint16(m&0x0F) | uint16(m>>4)
	if right {
		bits |= wrapRight
	}
	return bits & 0x1F
}

func fromWrapBits(bits uint16) Modifier {
	m := Modifier(bits & 0x0F)
	if bits&wrapRight != 0 {
		return m << 4
	}
	return m
}

// Wrap returns k with the given modifiers applied, like S(k) or ALGR(k).
func Wrap(mods Modifier, k Keycode) Keycode {
	return Keycode(toWrapBits(mods))<<8 | (k & 0xFF)
}

// Shifted returns k with Left Shift applied.
func Shifted(k Keycode) Keycode {
	return Wrap(ModLShift, k)
}

// AltGr returns k with Right Alt applied.
func AltGr(k Keycode) Keycode {
	return Wrap(ModRAlt, k)
}

// ModTap returns a key that acts as mods when held and k when tapped.
func ModTap(mods Modifier, k Keycode) Keycode {
	return rangeModTapMin | Keycode(toWrapBits(mods))<<8 | (k & 0xFF)
}

// Momentary returns the key that activates layer while held.
func Momentary(layer int) Keycode {
	return rangeMomentary | Keycode(layer&0x1F)
}

// IsBasic returns true for plain HID usages, including modifier keys.
func (k Keycode) IsBasic() bool {
	return k > Transparent && k < rangeModsMin
}

// IsModifier returns true for the eight modifier keys.
func (k Keycode) IsModifier() bool {
	return k >= KeyLeftCtrl && k <= KeyRightGui
}

// IsConsumer returns true for media and system keys.
func (k Keycode) IsConsumer() bool {
	return k >= KeyMute && k <= KeyMyComputer
}

// IsWrapped returns true for modifier-wrapped keys such as S(KC_EQL).
func (k Keycode) IsWrapped() bool {
	return k >= rangeModsMin && k <= rangeModsMax
}

// IsModTap returns true for hold-modifier/tap-key codes.
func (k Keycode) IsModTap() bool {
	return k >= rangeModTapMin && k <= rangeModTapMax
}

// IsMomentary returns true for MO(n) layer keys.
func (k Keycode) IsMomentary() bool {
	return k >= rangeMomentary && k <= rangeMomentMax
}

// IsCommand returns true for firmware commands (reset, RGB, NKRO).
func (k Keycode) IsCommand() bool {
	return k >= rangeCommandMin && k < SafeRange
}

// IsCustom returns true for keycodes in the custom action range.
func (k Keycode) IsCustom() bool {
	return k >= SafeRange
}

// ModifierBit returns the modifier bit a modifier key controls,
// or ModNone for any other key.
func (k Keycode) ModifierBit() Modifier {
	if !k.IsModifier() {
		return ModNone
	}
	return Modifier(1) << (k - KeyLeftCtrl)
}

// Unwrap splits a wrapped or mod-tap keycode into its modifiers and base key.
// Other keycodes are returned unchanged with ModNone.
func (k Keycode) Unwrap() (Modifier, Keycode) {
	if k.IsWrapped() || k.IsModTap() {
		return fromWrapBits(uint16(k>>8) & 0x1F), k & 0xFF
	}
	return ModNone, k
}

// Layer returns the layer index of a Momentary keycode.
func (k Keycode) Layer() (int, bool) {
	if !k.IsMomentary() {
		return 0, false
	}
	return int(k - rangeMomentary), true
}

// String returns the firmware-style name of the keycode.
func (k Keycode) String() string {
	if name, ok := keycodeNames[k]; ok {
		return name
	}
	switch {
	case k.IsWrapped():
		mods, base := k.Unwrap()
		switch mods {
		case ModLShift:
			return "S(" + base.String() + ")"
		case ModRAlt:
			return "ALGR(" + base.String() + ")"
		case ModLCtrl:
			return "C(" + base.String() + ")"
		}
		return fmt.Sprintf("MODS(%s, %s)", mods, base)
	case k.IsModTap():
		mods, base := k.Unwrap()
		if mods == ModLCtrl {
			return "LCTL_T(" + base.String() + ")"
		}
		return fmt.Sprintf("MT(%s, %s)", mods, base)
	case k.IsMomentary():
		layer, _ := k.Layer()
		return fmt.Sprintf("MO(%d)", layer)
	}
	return fmt.Sprintf("Keycode(0x%04X)", uint16(k))
}
