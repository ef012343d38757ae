package key

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModifier indicates a modifier name that is not recognized.
var ErrUnknownModifier = errors.New("unknown modifier")

// Modifier is the HID modifier byte: one bit per left/right modifier key.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModLCtrl is the left Control key.
	ModLCtrl Modifier = 0x01
	// ModLShift is the left Shift key.
	ModLShift Modifier = 0x02
	// ModLAlt is the left Alt key.
	ModLAlt Modifier = 0x04
	// ModLGui is the left GUI key (Cmd on macOS, Win on Windows).
	ModLGui Modifier = 0x08
	// ModRCtrl is the right Control key.
	ModRCtrl Modifier = 0x10
	// ModRShift is the right Shift key.
	ModRShift Modifier = 0x20
	// ModRAlt is the right Alt key (AltGr on international layouts).
	ModRAlt Modifier = 0x40
	// ModRGui is the right GUI key.
	ModRGui Modifier = 0x80
)

// Masks covering both hands.
const (
	ModMaskCtrl  = ModLCtrl | ModRCtrl
	ModMaskShift = ModLShift | ModRShift
	ModMaskAlt   = ModLAlt | ModRAlt
	ModMaskGui   = ModLGui | ModRGui
)

// Has returns true if m shares any bit with mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if either Shift is held.
func (m Modifier) HasShift() bool {
	return m.Has(ModMaskShift)
}

// HasCtrl returns true if either Control is held.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModMaskCtrl)
}

// HasAlt returns true if either Alt is held.
func (m Modifier) HasAlt() bool {
	return m.Has(ModMaskAlt)
}

// HasGui returns true if either GUI key is held.
func (m Modifier) HasGui() bool {
	return m.Has(ModMaskGui)
}

// With returns a new Modifier with the specified bits added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified bits removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModLCtrl, "LCtrl"},
	{ModLShift, "LShift"},
	{ModLAlt, "LAlt"},
	{ModLGui, "LGui"},
	{ModRCtrl, "RCtrl"},
	{ModRShift, "RShift"},
	{ModRAlt, "RAlt"},
	{ModRGui, "RGui"},
}

// String returns a human-readable representation like "LCtrl+RShift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, n := range modifierNames {
		if m&n.mod != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
// Names without a side refer to the left-hand key.
var modifierNameMap = map[string]Modifier{
	"lctrl":   ModLCtrl,
	"lctl":    ModLCtrl,
	"ctrl":    ModLCtrl,
	"control": ModLCtrl,
	"rctrl":   ModRCtrl,
	"rctl":    ModRCtrl,
	"lshift":  ModLShift,
	"lsft":    ModLShift,
	"shift":   ModLShift,
	"rshift":  ModRShift,
	"rsft":    ModRShift,
	"lalt":    ModLAlt,
	"alt":     ModLAlt,
	"option":  ModLAlt,
	"ralt":    ModRAlt,
	"altgr":   ModRAlt,
	"algr":    ModRAlt,
	"lgui":    ModLGui,
	"gui":     ModLGui,
	"cmd":     ModLGui,
	"win":     ModLGui,
	"super":   ModLGui,
	"rgui":    ModRGui,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers parses a modifier string like "LCtrl+RShift" or "ctrl|shift".
// Unknown names are ignored.
func ParseModifiers(s string) Modifier {
	var result Modifier
	for _, part := range modifierParts(s) {
		result = result.With(ModifierFromName(part))
	}
	return result
}

// ParseModifiersStrict is ParseModifiers but fails on unknown names.
func ParseModifiersStrict(s string) (Modifier, error) {
	var result Modifier
	for _, part := range modifierParts(s) {
		m := ModifierFromName(part)
		if m == ModNone {
			return ModNone, fmt.Errorf("%w: %q", ErrUnknownModifier, part)
		}
		result = result.With(m)
	}
	return result, nil
}

func modifierParts(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == '|' || r == ',' || r == ' '
	})
}
