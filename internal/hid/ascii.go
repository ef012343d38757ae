package hid

import "github.com/dshills/naturekeys/internal/input/key"

// Stroke is the key and Shift state that types one character.
type Stroke struct {
	Usage key.Keycode
	Shift bool
}

// usRows lists, per usage, the unshifted and shifted character of a US
// layout. Control characters only have an unshifted form.
var usRows = []struct {
	usage           key.Keycode
	normal, shifted rune
}{
	{key.Key1, '1', '!'},
	{key.Key2, '2', '@'},
	{key.Key3, '3', '#'},
	{key.Key4, '4', '$'},
	{key.Key5, '5', '%'},
	{key.Key6, '6', '^'},
	{key.Key7, '7', '&'},
	{key.Key8, '8', '*'},
	{key.Key9, '9', '('},
	{key.Key0, '0', ')'},
	{key.KeyEnter, '\n', 0},
	{key.KeyEscape, '\x1b', 0},
	{key.KeyBackspace, '\b', 0},
	{key.KeyTab, '\t', 0},
	{key.KeySpace, ' ', 0},
	{key.KeyMinus, '-', '_'},
	{key.KeyEqual, '=', '+'},
	{key.KeyLeftBracket, '[', '{'},
	{key.KeyRightBracket, ']', '}'},
	{key.KeyBackslash, '\\', '|'},
	{key.KeySemicolon, ';', ':'},
	{key.KeyQuote, '\'', '"'},
	{key.KeyGrave, '`', '~'},
	{key.KeyComma, ',', '<'},
	{key.KeyDot, '.', '>'},
	{key.KeySlash, '/', '?'},
}

// USLayout maps characters to strokes and strokes back to characters.
type USLayout struct {
	strokes map[rune]Stroke
	chars   map[Stroke]rune
}

// NewUSLayout builds the US ASCII layout.
func NewUSLayout() *USLayout {
	l := &USLayout{
		strokes: make(map[rune]Stroke, 100),
		chars:   make(map[Stroke]rune, 100),
	}
	for i := 0; i < 26; i++ {
		usage := key.KeyA + key.Keycode(i)
		l.add(usage, 'a'+rune(i), 'A'+rune(i))
	}
	for _, row := range usRows {
		l.add(row.usage, row.normal, row.shifted)
	}
	return l
}

func (l *USLayout) add(usage key.Keycode, normal, shifted rune) {
	l.strokes[normal] = Stroke{Usage: usage}
	l.chars[Stroke{Usage: usage}] = normal
	if shifted != 0 {
		l.strokes[shifted] = Stroke{Usage: usage, Shift: true}
		l.chars[Stroke{Usage: usage, Shift: true}] = shifted
	}
}

// StrokeFor returns the stroke that types r.
func (l *USLayout) StrokeFor(r rune) (Stroke, bool) {
	s, ok := l.strokes[r]
	return s, ok
}

// CharFor returns the character a stroke types.
func (l *USLayout) CharFor(s Stroke) (rune, bool) {
	r, ok := l.chars[s]
	return r, ok
}
