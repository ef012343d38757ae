package input

import (
	"fmt"
	"strings"

	"github.com/dshills/naturekeys/internal/input/key"
)

// hostCall is one recorded call on fakeHost, with the modifier state that
// was in effect when it was made.
type hostCall struct {
	Op   string
	Arg  string
	Mods key.Modifier
}

func (c hostCall) String() string {
	if c.Arg == "" {
		return fmt.Sprintf("%s [%s]", c.Op, c.Mods)
	}
	return fmt.Sprintf("%s(%s) [%s]", c.Op, c.Arg, c.Mods)
}

// fakeHost records every call the interceptor makes.
type fakeHost struct {
	mods  key.Modifier
	calls []hostCall
}

func (h *fakeHost) record(op, arg string) {
	h.calls = append(h.calls, hostCall{Op: op, Arg: arg, Mods: h.mods})
}

func (h *fakeHost) Mods() key.Modifier { return h.mods }

func (h *fakeHost) SetMods(mods key.Modifier) {
	h.mods = mods
	h.record("set_mods", mods.String())
}

func (h *fakeHost) ClearMods() {
	h.mods = key.ModNone
	h.record("clear_mods", "")
}

func (h *fakeHost) Register(kc key.Keycode) { h.record("register", kc.String()) }

func (h *fakeHost) Unregister(kc key.Keycode) { h.record("unregister", kc.String()) }

func (h *fakeHost) SendString(s string) { h.record("send_string", s) }

// ops returns the recorded operations, excluding modifier changes.
func (h *fakeHost) ops() []hostCall {
	var out []hostCall
	for _, c := range h.calls {
		if c.Op != "set_mods" && c.Op != "clear_mods" {
			out = append(out, c)
		}
	}
	return out
}

func (h *fakeHost) dump() string {
	parts := make([]string, len(h.calls))
	for i, c := range h.calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, "; ")
}

func (h *fakeHost) reset() {
	h.calls = nil
}
