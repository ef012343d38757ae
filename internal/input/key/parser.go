package key

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty keycode specification")
	ErrInvalidSpec      = errors.New("invalid keycode specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in keycode specification")
)

// keycodeNames holds the canonical firmware name of every named keycode.
var keycodeNames = map[Keycode]string{
	KeyNone:     "KC_NO",
	Transparent: "KC_TRNS",

	KeyA: "KC_A", KeyB: "KC_B", KeyC: "KC_C", KeyD: "KC_D", KeyE: "KC_E",
	KeyF: "KC_F", KeyG: "KC_G", KeyH: "KC_H", KeyI: "KC_I", KeyJ: "KC_J",
	KeyK: "KC_K", KeyL: "KC_L", KeyM: "KC_M", KeyN: "KC_N", KeyO: "KC_O",
	KeyP: "KC_P", KeyQ: "KC_Q", KeyR: "KC_R", KeyS: "KC_S", KeyT: "KC_T",
	KeyU: "KC_U", KeyV: "KC_V", KeyW: "KC_W", KeyX: "KC_X", KeyY: "KC_Y",
	KeyZ: "KC_Z",

	Key1: "KC_1", Key2: "KC_2", Key3: "KC_3", Key4: "KC_4", Key5: "KC_5",
	Key6: "KC_6", Key7: "KC_7", Key8: "KC_8", Key9: "KC_9", Key0: "KC_0",

	KeyEnter:        "KC_ENT",
	KeyEscape:       "KC_ESC",
	KeyBackspace:    "KC_BSPC",
	KeyTab:          "KC_TAB",
	KeySpace:        "KC_SPC",
	KeyMinus:        "KC_MINS",
	KeyEqual:        "KC_EQL",
	KeyLeftBracket:  "KC_LBRC",
	KeyRightBracket: "KC_RBRC",
	KeyBackslash:    "KC_BSLS",
	KeyNonUSHash:    "KC_NUHS",
	KeySemicolon:    "KC_SCLN",
	KeyQuote:        "KC_QUOT",
	KeyGrave:        "KC_GRV",
	KeyComma:        "KC_COMM",
	KeyDot:          "KC_DOT",
	KeySlash:        "KC_SLSH",
	KeyCapsLock:     "KC_CAPS",

	KeyF1: "KC_F1", KeyF2: "KC_F2", KeyF3: "KC_F3", KeyF4: "KC_F4",
	KeyF5: "KC_F5", KeyF6: "KC_F6", KeyF7: "KC_F7", KeyF8: "KC_F8",
	KeyF9: "KC_F9", KeyF10: "KC_F10", KeyF11: "KC_F11", KeyF12: "KC_F12",

	KeyPrintScreen: "KC_PSCR",
	KeyScrollLock:  "KC_SLCK",
	KeyPause:       "KC_PAUS",
	KeyInsert:      "KC_INS",
	KeyHome:        "KC_HOME",
	KeyPageUp:      "KC_PGUP",
	KeyDelete:      "KC_DEL",
	KeyEnd:         "KC_END",
	KeyPageDown:    "KC_PGDN",
	KeyRight:       "KC_RGHT",
	KeyLeft:        "KC_LEFT",
	KeyDown:        "KC_DOWN",
	KeyUp:          "KC_UP",
	KeyNumLock:     "KC_NLCK",

	KeyMute:        "KC_MUTE",
	KeyVolumeUp:    "KC_VOLU",
	KeyVolumeDown:  "KC_VOLD",
	KeyMediaNext:   "KC_MNXT",
	KeyMediaPrev:   "KC_MPRV",
	KeyMediaStop:   "KC_MSTP",
	KeyMediaPlay:   "KC_MPLY",
	KeyMediaSelect: "KC_MSEL",
	KeyMediaEject:  "KC_EJCT",
	KeyMail:        "KC_MAIL",
	KeyCalculator:  "KC_CALC",
	KeyMyComputer:  "KC_MYCM",

	KeyLeftCtrl:   "KC_LCTL",
	KeyLeftShift:  "KC_LSFT",
	KeyLeftAlt:    "KC_LALT",
	KeyLeftGui:    "KC_LGUI",
	KeyRightCtrl:  "KC_RCTL",
	KeyRightShift: "KC_RSFT",
	KeyRightAlt:   "KC_RALT",
	KeyRightGui:   "KC_RGUI",

	NKROToggle:  "NK_TOGG",
	Reset:       "RESET",
	EEPROMReset: "EEP_RST",

	RGBToggle:      "RGB_TOG",
	RGBModeForward: "RGB_MOD",
	RGBModeReverse: "RGB_RMOD",
	RGBHueUp:       "RGB_HUI",
	RGBHueDown:     "RGB_HUD",
	RGBSatUp:       "RGB_SAI",
	RGBSatDown:     "RGB_SAD",
	RGBValUp:       "RGB_VAI",
	RGBValDown:     "RGB_VAD",
	RGBSpeedUp:     "RGB_SPI",
	RGBSpeedDown:   "RGB_SPD",

	Placeholder:   "PLACEHOLDER",
	Arrow:         "ARROW",
	ModGrave:      "MO_GRV",
	ModCircumflex: "MO_CIRC",
	ModQuote:      "MO_QUOT",
}

// keyAliases maps friendly names (lowercase) to keycodes, in addition to the
// canonical names with or without their "KC_" prefix.
var keyAliases = map[string]Keycode{
	"none":        KeyNone,
	"trns":        Transparent,
	"enter":       KeyEnter,
	"return":      KeyEnter,
	"escape":      KeyEscape,
	"backspace":   KeyBackspace,
	"bs":          KeyBackspace,
	"space":       KeySpace,
	"delete":      KeyDelete,
	"insert":      KeyInsert,
	"pageup":      KeyPageUp,
	"pagedown":    KeyPageDown,
	"right":       KeyRight,
	"printscreen": KeyPrintScreen,
	"capslock":    KeyCapsLock,
	"minus":       KeyMinus,
	"equal":       KeyEqual,
	"quote":       KeyQuote,
	"grave":       KeyGrave,
	"comma":       KeyComma,
	"slash":       KeySlash,
	"lshift":      KeyLeftShift,
	"rshift":      KeyRightShift,
	"lctrl":       KeyLeftCtrl,
	"rctrl":       KeyRightCtrl,
	"shift":       KeyLeftShift,
	"ctrl":        KeyLeftCtrl,
	"alt":         KeyLeftAlt,
	"altgr":       KeyRightAlt,
	"gui":         KeyLeftGui,
}

// nameIndex maps lowercase names to keycodes. Built from keycodeNames.
var nameIndex = func() map[string]Keycode {
	idx := make(map[string]Keycode, len(keycodeNames)*2+len(keyAliases))
	for k, name := range keycodeNames {
		lower := strings.ToLower(name)
		idx[lower] = k
		if trimmed, ok := strings.CutPrefix(lower, "kc_"); ok {
			idx[trimmed] = k
		}
	}
	for name, k := range keyAliases {
		idx[name] = k
	}
	return idx
}()

// wrapperMods maps wrapper function names to the modifiers they apply.
var wrapperMods = map[string]Modifier{
	"s":    ModLShift,
	"lsft": ModLShift,
	"rsft": ModRShift,
	"c":    ModLCtrl,
	"lctl": ModLCtrl,
	"a":    ModLAlt,
	"lalt": ModLAlt,
	"algr": ModRAlt,
	"ralt": ModRAlt,
	"g":    ModLGui,
	"lgui": ModLGui,
}

// Parse parses a keycode specification.
//
// Supported formats:
//   - Names: "KC_BSPC", "BSPC", "Backspace", "ARROW"
//   - Modifier wrappers: "S(KC_EQL)", "ALGR(KC_Q)"
//   - Mod-tap: "LCTL_T(KC_TAB)"
//   - Layer keys: "MO(1)"
//   - Raw values: "0x2A"
func Parse(spec string) (Keycode, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return KeyNone, ErrEmptySpec
	}

	open := strings.IndexByte(spec, '(')
	if open < 0 {
		if strings.HasSuffix(spec, ")") {
			return KeyNone, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
		}
		return parseName(spec)
	}
	if !strings.HasSuffix(spec, ")") {
		return KeyNone, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
	}

	fn := strings.ToLower(strings.TrimSpace(spec[:open]))
	arg := spec[open+1 : len(spec)-1]

	switch {
	case fn == "mo":
		layer, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || layer < 0 || layer > 31 {
			return KeyNone, fmt.Errorf("%w: bad layer in %q", ErrInvalidSpec, spec)
		}
		return Momentary(layer), nil
	case strings.HasSuffix(fn, "_t"):
		mods, ok := wrapperMods[strings.TrimSuffix(fn, "_t")]
		if !ok {
			return KeyNone, fmt.Errorf("%w: unknown mod-tap %q", ErrInvalidSpec, spec)
		}
		base, err := Parse(arg)
		if err != nil {
			return KeyNone, err
		}
		if !base.IsBasic() {
			return KeyNone, fmt.Errorf("%w: mod-tap needs a basic key, got %s", ErrInvalidSpec, base)
		}
		return ModTap(mods, base), nil
	}

	mods, ok := wrapperMods[fn]
	if !ok {
		return KeyNone, fmt.Errorf("%w: unknown wrapper %q", ErrInvalidSpec, spec)
	}
	base, err := Parse(arg)
	if err != nil {
		return KeyNone, err
	}
	if base.IsWrapped() {
		inner, k := base.Unwrap()
		return Wrap(mods|inner, k), nil
	}
	if !base.IsBasic() {
		return KeyNone, fmt.Errorf("%w: wrapper needs a basic key, got %s", ErrInvalidSpec, base)
	}
	return Wrap(mods, base), nil
}

func parseName(name string) (Keycode, error) {
	if k, ok := nameIndex[strings.ToLower(name)]; ok {
		return k, nil
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		v, err := strconv.ParseUint(name[2:], 16, 16)
		if err == nil {
			return Keycode(v), nil
		}
	}
	return KeyNone, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse is like Parse but panics on error.
// Use only for compile-time constant specifications.
func MustParse(spec string) Keycode {
	k, err := Parse(spec)
	if err != nil {
		panic("invalid keycode specification: " + spec + ": " + err.Error())
	}
	return k
}

// FromName returns the keycode for a name, or KeyNone if it is not known.
func FromName(name string) Keycode {
	k, err := parseName(strings.TrimSpace(name))
	if err != nil {
		return KeyNone
	}
	return k
}
