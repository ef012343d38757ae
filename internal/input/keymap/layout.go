package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/naturekeys/internal/input/key"
)

// Layout errors.
var (
	ErrNoLayers      = errors.New("layout has no layers")
	ErrEmptyLayer    = errors.New("layer has no keys")
	ErrUnknownAction = errors.New("custom action has no code table row")
	ErrBadLayerRef   = errors.New("layer key refers to a missing layer")
)

// Position addresses one key of a layout.
type Position struct {
	Layer int
	Row   int
	Col   int
}

func (p Position) String() string {
	return fmt.Sprintf("L%d[%d,%d]", p.Layer, p.Row, p.Col)
}

// Layer is one complete keycode grid. Rows may differ in length to follow
// the physical staggering of the board.
type Layer struct {
	Name string
	Rows [][]key.Keycode
}

// Keys returns the number of keys on the layer.
func (l Layer) Keys() int {
	n := 0
	for _, r := range l.Rows {
		n += len(r)
	}
	return n
}

// Layout is the static set of layers for one board.
type Layout struct {
	Name   string
	Layers []Layer
}

// At returns the keycode at a position.
func (l *Layout) At(layer, row, col int) (key.Keycode, bool) {
	if layer < 0 || layer >= len(l.Layers) {
		return key.KeyNone, false
	}
	rows := l.Layers[layer].Rows
	if row < 0 || row >= len(rows) {
		return key.KeyNone, false
	}
	if col < 0 || col >= len(rows[row]) {
		return key.KeyNone, false
	}
	return rows[row][col], true
}

// Find returns every position holding kc, in layer/row/column order.
func (l *Layout) Find(kc key.Keycode) []Position {
	var found []Position
	for li, layer := range l.Layers {
		for ri, row := range layer.Rows {
			for ci, k := range row {
				if k == kc {
					found = append(found, Position{Layer: li, Row: ri, Col: ci})
				}
			}
		}
	}
	return found
}

// Validate checks that every layer has keys, every custom action placed on
// the grid has a row in table, and every layer key points at a layer.
func (l *Layout) Validate(table *CodeTable) error {
	if len(l.Layers) == 0 {
		return ErrNoLayers
	}
	for li, layer := range l.Layers {
		if layer.Keys() == 0 {
			return fmt.Errorf("layer %d (%s): %w", li, layer.Name, ErrEmptyLayer)
		}
		for ri, row := range layer.Rows {
			for ci, k := range row {
				pos := Position{Layer: li, Row: ri, Col: ci}
				if k.IsCustom() && k != key.Placeholder && !table.Has(k) {
					return fmt.Errorf("%s %s: %w", pos, k, ErrUnknownAction)
				}
				if n, ok := k.Layer(); ok && n >= len(l.Layers) {
					return fmt.Errorf("%s %s: %w", pos, k, ErrBadLayerRef)
				}
			}
		}
	}
	return nil
}

// Render formats a layer as aligned text, one grid row per line.
func (l *Layout) Render(layer int) string {
	if layer < 0 || layer >= len(l.Layers) {
		return ""
	}
	rows := l.Layers[layer].Rows

	width := 0
	for _, row := range rows {
		for _, k := range row {
			if n := len(k.String()); n > width {
				width = n
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] %s\n", layer, l.Layers[layer].Name)
	for _, row := range rows {
		for i, k := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%-*s", width, k.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
