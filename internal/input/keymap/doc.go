// Package keymap holds the compiled keymap data: the code table used by the
// custom string actions and the layer grids of the physical layout.
//
// # Key Concepts
//
// CodeTable: maps a custom action keycode to the pair of strings it types,
// one for the unshifted and one for the shifted case.
//
// Layout: an ordered list of layers, each a grid of keycodes indexed by
// (row, column). Which layer is active is decided by the firmware, not here.
//
// # Dead Keys
//
// Several table entries end in a space after an accent character such as
// "` " or "^ ". Hosts running an international layout treat the accent as a
// dead key and wait for the next character; the space makes them commit the
// bare accent immediately. The entries are kept verbatim per row.
//
// # Usage
//
//	table := keymap.DefaultCodeTable()
//	text := table.Lookup(key.ModGrave, shifted) // "` " or "~ "
//
//	layout := keymap.Nature()
//	kc, ok := layout.At(0, 1, 0) // MO_GRV
package keymap
