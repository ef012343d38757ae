package script

import (
	"fmt"
	"slices"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/naturekeys/internal/firmware"
	"github.com/dshills/naturekeys/internal/hid"
	"github.com/dshills/naturekeys/internal/input"
	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/logging"
	"github.com/dshills/naturekeys/internal/trace"
)

// session is the keyboard a single scenario drives.
type session struct {
	runner *Runner
	name   string
	logger *logging.Logger

	rec     *trace.Recorder
	dec     *hid.Decoder
	host    *hid.Host
	kb      *firmware.Keyboard
	metrics *input.Metrics

	steps  int
	checks int
	fail   *ExpectationError
}

func newSession(r *Runner, name string) *session {
	var opts []trace.Option
	if r.writer != nil {
		opts = append(opts, trace.WithWriter(r.writer))
	}
	s := &session{
		runner:  r,
		name:    name,
		logger:  r.logger.WithField("script", name),
		rec:     trace.NewRecorder(opts...),
		metrics: input.NewMetrics(),
	}
	s.build()
	return s
}

// build wires a fresh host, decoder and keyboard. The recorder and metrics
// survive so reset() shows up in the trace.
func (s *session) build() {
	s.dec = hid.NewDecoder()
	s.host = hostFor(s.dec, s.rec, s.logger)
	s.kb = firmware.New(s.host,
		firmware.WithLogger(s.logger),
		firmware.WithObserver(s.rec.Observe),
		firmware.WithInterceptorOptions(
			input.WithCodeTable(s.runner.codes),
			input.WithMetrics(s.metrics),
		),
	)
}

func (s *session) result() Result {
	return Result{
		Script:  s.name,
		Session: s.rec.Session(),
		Steps:   s.steps,
		Checks:  s.checks,
		Text:    s.dec.Text(),
		Tokens:  s.dec.Tokens(),
		Reports: len(s.rec.Reports()),
		Metrics: s.metrics.Snapshot(),
	}
}

func (s *session) install(L *lua.LState) {
	funcs := map[string]lua.LGFunction{
		"press":         s.luaPress,
		"release":       s.luaRelease,
		"tap":           s.luaTap,
		"type_text":     s.luaTypeText,
		"text":          s.luaText,
		"tokens":        s.luaTokens,
		"mods":          s.luaMods,
		"state":         s.luaState,
		"reset":         s.luaReset,
		"expect_text":   s.luaExpectText,
		"expect_tokens": s.luaExpectTokens,
		"expect_state":  s.luaExpectState,
		"expect_mods":   s.luaExpectMods,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func (s *session) keycode(L *lua.LState, n int) key.Keycode {
	name := L.CheckString(n)
	kc, err := key.Parse(name)
	if err != nil {
		L.ArgError(n, fmt.Sprintf("%v: %s", ErrUnknownKey, err))
	}
	return kc
}

func (s *session) luaPress(L *lua.LState) int {
	kc := s.keycode(L, 1)
	s.steps++
	L.Push(lua.LBool(s.kb.Press(kc)))
	return 1
}

func (s *session) luaRelease(L *lua.LState) int {
	kc := s.keycode(L, 1)
	s.steps++
	L.Push(lua.LBool(s.kb.Release(kc)))
	return 1
}

// tap(name [, count])
func (s *session) luaTap(L *lua.LState) int {
	kc := s.keycode(L, 1)
	count := L.OptInt(2, 1)
	for i := 0; i < count; i++ {
		s.steps++
		s.kb.Tap(kc)
	}
	return 0
}

// type_text(s) taps keys for each character of an ASCII string.
func (s *session) luaTypeText(L *lua.LState) int {
	str := L.CheckString(1)
	layout := hid.NewUSLayout()
	for _, r := range str {
		stroke, ok := layout.StrokeFor(r)
		if !ok {
			L.ArgError(1, fmt.Sprintf("no key types %q", r))
		}
		s.steps++
		if stroke.Shift {
			s.kb.Press(key.KeyLeftShift)
		}
		s.kb.Tap(stroke.Usage)
		if stroke.Shift {
			s.kb.Release(key.KeyLeftShift)
		}
	}
	return 0
}

func (s *session) luaText(L *lua.LState) int {
	L.Push(lua.LString(s.dec.Text()))
	return 1
}

func (s *session) luaTokens(L *lua.LState) int {
	tbl := L.NewTable()
	for _, tok := range s.dec.Tokens() {
		tbl.Append(lua.LString(tok))
	}
	L.Push(tbl)
	return 1
}

func (s *session) luaMods(L *lua.LState) int {
	L.Push(lua.LString(s.host.Mods().String()))
	return 1
}

func (s *session) luaState(L *lua.LState) int {
	L.Push(lua.LString(s.kb.Interceptor().State().String()))
	return 1
}

func (s *session) luaReset(L *lua.LState) int {
	s.rec.Note("reset")
	s.build()
	return 0
}

func (s *session) luaExpectText(L *lua.LState) int {
	s.expect(L, "expect_text", s.dec.Text(), L.CheckString(1))
	return 0
}

func (s *session) luaExpectTokens(L *lua.LState) int {
	tbl := L.CheckTable(1)
	var want []string
	tbl.ForEach(func(_, v lua.LValue) {
		want = append(want, v.String())
	})
	got := s.dec.Tokens()
	s.check(L, "expect_tokens", slices.Equal(got, want), fmt.Sprintf("%q", got), fmt.Sprintf("%q", want))
	return 0
}

func (s *session) luaExpectState(L *lua.LState) int {
	want := strings.ToUpper(L.CheckString(1))
	s.expect(L, "expect_state", s.kb.Interceptor().State().String(), want)
	return 0
}

func (s *session) luaExpectMods(L *lua.LState) int {
	want, err := key.ParseModifiersStrict(L.OptString(1, ""))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	s.expect(L, "expect_mods", s.host.Mods().String(), want.String())
	return 0
}

// expect records a check and raises a Lua error when got differs from want.
func (s *session) expect(L *lua.LState, check, got, want string) {
	s.check(L, check, got == want, got, want)
}

func (s *session) check(L *lua.LState, check string, ok bool, got, want string) {
	s.checks++
	if ok {
		return
	}
	s.fail = &ExpectationError{
		Script: s.name,
		Where:  L.Where(1),
		Check:  check,
		Got:    got,
		Want:   want,
	}
	s.rec.Note(s.fail.Error())
	L.RaiseError("%s", s.fail.Error())
}
