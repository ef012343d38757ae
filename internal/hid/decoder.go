package hid

import (
	"strings"
	"unicode"

	"github.com/dshills/naturekeys/internal/input/key"
)

// specialNames are the tokens for keys that do not type a character.
var specialNames = map[key.Keycode]string{
	key.KeyEnter:     "CR",
	key.KeyEscape:    "Esc",
	key.KeyBackspace: "BS",
	key.KeyTab:       "Tab",
	key.KeyDelete:    "Del",
	key.KeyInsert:    "Ins",
	key.KeyHome:      "Home",
	key.KeyEnd:       "End",
	key.KeyPageUp:    "PageUp",
	key.KeyPageDown:  "PageDown",
	key.KeyUp:        "Up",
	key.KeyDown:      "Down",
	key.KeyLeft:      "Left",
	key.KeyRight:     "Right",
	key.KeySpace:     "Space",
}

// Decoder plays the computer's side: it watches reports and records what a
// text field would see. It implements ReportSink.
type Decoder struct {
	layout *USLayout
	prev   Report
	text   []rune
	tokens []string
}

// NewDecoder creates a decoder for the US layout.
func NewDecoder() *Decoder {
	return &Decoder{layout: NewUSLayout()}
}

// SendReport consumes one report. Keys that were not held in the previous
// report count as pressed.
func (d *Decoder) SendReport(r Report) {
	for _, k := range r.Pressed() {
		if !d.prev.Contains(k) {
			d.keyDown(k, r.Modifiers)
		}
	}
	d.prev = r
}

func (d *Decoder) keyDown(k key.Keycode, mods key.Modifier) {
	chord := mods.Without(key.ModMaskShift)
	if ch, ok := d.layout.CharFor(Stroke{Usage: k, Shift: mods.HasShift()}); ok &&
		chord.IsEmpty() && unicode.IsPrint(ch) {
		d.text = append(d.text, ch)
		d.tokens = append(d.tokens, string(ch))
		return
	}

	d.tokens = append(d.tokens, d.token(k, mods))
	if !mods.IsEmpty() {
		return
	}
	switch k {
	case key.KeyBackspace:
		if n := len(d.text); n > 0 {
			d.text = d.text[:n-1]
		}
	case key.KeyEnter:
		d.text = append(d.text, '\n')
	case key.KeyTab:
		d.text = append(d.text, '\t')
	}
}

// token formats a key press in Vim notation, e.g. "<Del>" or "<S-Del>".
func (d *Decoder) token(k key.Keycode, mods key.Modifier) string {
	var parts []string
	if mods.HasCtrl() {
		parts = append(parts, "C")
	}
	if mods.HasAlt() {
		parts = append(parts, "A")
	}
	if mods.HasGui() {
		parts = append(parts, "D")
	}
	if mods.HasShift() {
		parts = append(parts, "S")
	}

	name, ok := specialNames[k]
	if !ok {
		if ch, found := d.layout.CharFor(Stroke{Usage: k}); found && unicode.IsPrint(ch) {
			name = string(ch)
		} else {
			name = k.String()
		}
	}
	parts = append(parts, name)
	return "<" + strings.Join(parts, "-") + ">"
}

// Text returns the typed text after Backspace edits.
func (d *Decoder) Text() string {
	return string(d.text)
}

// Tokens returns one token per key press: the character typed, or a
// bracketed name for keys and chords that do not type one.
func (d *Decoder) Tokens() []string {
	out := make([]string, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// Reset forgets all typed text and the last report.
func (d *Decoder) Reset() {
	d.prev = Report{}
	d.text = d.text[:0]
	d.tokens = d.tokens[:0]
}
