package keymap

import (
	"sort"

	"github.com/dshills/naturekeys/internal/input/key"
)

// Codes is the pair of strings a custom action types.
type Codes struct {
	// Unshifted is typed when no Shift key is held.
	Unshifted string

	// Shifted is typed when either Shift key is held.
	Shifted string
}

// For returns the string for the given shift state.
func (c Codes) For(shifted bool) string {
	if shifted {
		return c.Shifted
	}
	return c.Unshifted
}

// CodeTable maps custom action keycodes to their output strings.
// A CodeTable is immutable once built and safe for concurrent reads.
type CodeTable struct {
	rows map[key.Keycode]Codes
}

// NewCodeTable builds a table from the given rows. The map is copied.
func NewCodeTable(rows map[key.Keycode]Codes) *CodeTable {
	t := &CodeTable{rows: make(map[key.Keycode]Codes, len(rows))}
	for k, c := range rows {
		t.rows[k] = c
	}
	return t
}

// DefaultCodeTable returns the compiled table of this keymap.
func DefaultCodeTable() *CodeTable {
	return NewCodeTable(map[key.Keycode]Codes{
		key.Arrow:         {Unshifted: "->", Shifted: "->"},
		key.ModGrave:      {Unshifted: "` ", Shifted: "~ "},
		key.ModCircumflex: {Unshifted: "6", Shifted: "^ "},
		key.ModQuote:      {Unshifted: "' ", Shifted: "\" "},
	})
}

// Lookup returns the string to type for action. Actions without a row
// return the empty string.
func (t *CodeTable) Lookup(action key.Keycode, shifted bool) string {
	return t.rows[action].For(shifted)
}

// Row returns the full row for action.
func (t *CodeTable) Row(action key.Keycode) (Codes, bool) {
	c, ok := t.rows[action]
	return c, ok
}

// Has reports whether action has a row.
func (t *CodeTable) Has(action key.Keycode) bool {
	_, ok := t.rows[action]
	return ok
}

// Len returns the number of rows.
func (t *CodeTable) Len() int {
	return len(t.rows)
}

// Actions returns the action keycodes in ascending order.
func (t *CodeTable) Actions() []key.Keycode {
	actions := make([]key.Keycode, 0, len(t.rows))
	for k := range t.rows {
		actions = append(actions, k)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}
