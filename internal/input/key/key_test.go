package key

import "testing"

func TestKeycodeHIDUsages(t *testing.T) {
	tests := []struct {
		k    Keycode
		want uint16
	}{
		{KeyA, 0x04},
		{KeyZ, 0x1D},
		{Key1, 0x1E},
		{Key0, 0x27},
		{KeyEnter, 0x28},
		{KeyBackspace, 0x2A},
		{KeyQuote, 0x34},
		{KeyGrave, 0x35},
		{KeyCapsLock, 0x39},
		{KeyF12, 0x45},
		{KeyDelete, 0x4C},
		{KeyUp, 0x52},
		{KeyLeftCtrl, 0xE0},
		{KeyRightGui, 0xE7},
	}

	for _, tt := range tests {
		if uint16(tt.k) != tt.want {
			t.Errorf("%s = %#x, want %#x", tt.k, uint16(tt.k), tt.want)
		}
	}
}

func TestKeycodeClassification(t *testing.T) {
	tests := []struct {
		k                                     Keycode
		basic, modifier, custom, wrapped, cmd bool
	}{
		{KeyA, true, false, false, false, false},
		{KeyLeftShift, true, true, false, false, false},
		{KeyMute, true, false, false, false, false},
		{Shifted(KeyEqual), false, false, false, true, false},
		{Momentary(1), false, false, false, false, false},
		{RGBToggle, false, false, false, false, true},
		{Reset, false, false, false, false, true},
		{Arrow, false, false, true, false, false},
		{ModQuote, false, false, true, false, false},
		{Transparent, false, false, false, false, false},
	}

	for _, tt := range tests {
		if got := tt.k.IsBasic(); got != tt.basic {
			t.Errorf("%s IsBasic() = %v, want %v", tt.k, got, tt.basic)
		}
		if got := tt.k.IsModifier(); got != tt.modifier {
			t.Errorf("%s IsModifier() = %v, want %v", tt.k, got, tt.modifier)
		}
		if got := tt.k.IsCustom(); got != tt.custom {
			t.Errorf("%s IsCustom() = %v, want %v", tt.k, got, tt.custom)
		}
		if got := tt.k.IsWrapped(); got != tt.wrapped {
			t.Errorf("%s IsWrapped() = %v, want %v", tt.k, got, tt.wrapped)
		}
		if got := tt.k.IsCommand(); got != tt.cmd {
			t.Errorf("%s IsCommand() = %v, want %v", tt.k, got, tt.cmd)
		}
	}
}

func TestModifierBit(t *testing.T) {
	tests := []struct {
		k    Keycode
		want Modifier
	}{
		{KeyLeftCtrl, ModLCtrl},
		{KeyLeftShift, ModLShift},
		{KeyLeftAlt, ModLAlt},
		{KeyLeftGui, ModLGui},
		{KeyRightCtrl, ModRCtrl},
		{KeyRightShift, ModRShift},
		{KeyRightAlt, ModRAlt},
		{KeyRightGui, ModRGui},
		{KeyA, ModNone},
	}

	for _, tt := range tests {
		if got := tt.k.ModifierBit(); got != tt.want {
			t.Errorf("%s ModifierBit() = %s, want %s", tt.k, got, tt.want)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	tests := []struct {
		k        Keycode
		wantMods Modifier
		wantBase Keycode
	}{
		{Shifted(KeyEqual), ModLShift, KeyEqual},
		{AltGr(KeyQ), ModRAlt, KeyQ},
		{Wrap(ModLCtrl|ModLShift, KeyP), ModLCtrl | ModLShift, KeyP},
		{ModTap(ModLCtrl, KeyTab), ModLCtrl, KeyTab},
		{KeyA, ModNone, KeyA},
	}

	for _, tt := range tests {
		mods, base := tt.k.Unwrap()
		if mods != tt.wantMods || base != tt.wantBase {
			t.Errorf("%s Unwrap() = (%s, %s), want (%s, %s)", tt.k, mods, base, tt.wantMods, tt.wantBase)
		}
	}
}

func TestMomentaryLayer(t *testing.T) {
	layer, ok := Momentary(1).Layer()
	if !ok || layer != 1 {
		t.Errorf("MO(1).Layer() = (%d, %v), want (1, true)", layer, ok)
	}
	if _, ok := KeyA.Layer(); ok {
		t.Error("KC_A.Layer() should not report a layer")
	}
}

func TestCustomActionsAreDistinct(t *testing.T) {
	seen := make(map[Keycode]bool)
	for _, k := range []Keycode{Placeholder, Arrow, ModGrave, ModCircumflex, ModQuote} {
		if seen[k] {
			t.Errorf("duplicate custom keycode %s", k)
		}
		seen[k] = true
		if k < SafeRange {
			t.Errorf("%s = %#x is below SafeRange", k, uint16(k))
		}
	}
}

func TestKeycodeString(t *testing.T) {
	tests := []struct {
		k    Keycode
		want string
	}{
		{KeyBackspace, "KC_BSPC"},
		{KeyDelete, "KC_DEL"},
		{Transparent, "KC_TRNS"},
		{Arrow, "ARROW"},
		{ModGrave, "MO_GRV"},
		{Shifted(KeyEqual), "S(KC_EQL)"},
		{AltGr(KeyQ), "ALGR(KC_Q)"},
		{ModTap(ModLCtrl, KeyTab), "LCTL_T(KC_TAB)"},
		{Momentary(1), "MO(1)"},
		{Keycode(0x7FFF), "Keycode(0x7FFF)"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
