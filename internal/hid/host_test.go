package hid

import (
	"testing"

	"github.com/dshills/naturekeys/internal/input/key"
)

type reportLog struct {
	reports []Report
}

func (l *reportLog) SendReport(r Report) {
	l.reports = append(l.reports, r)
}

func TestReportBytes(t *testing.T) {
	r := Report{Modifiers: key.ModLShift | key.ModRAlt}
	r.Keys[0] = key.KeyA
	r.Keys[1] = key.KeyDelete

	want := [8]byte{0x42, 0x00, 0x04, 0x4C, 0, 0, 0, 0}
	if got := r.Bytes(); got != want {
		t.Errorf("Bytes() = % x, want % x", got, want)
	}
	if got := r.Hex(); got != "42 00 04 4c 00 00 00 00" {
		t.Errorf("Hex() = %q", got)
	}
	if got := r.String(); got != "[LShift+RAlt] KC_A KC_DEL" {
		t.Errorf("String() = %q", got)
	}
}

func TestModChangesDoNotSendReports(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)

	h.SetMods(key.ModLShift)
	h.AddMods(key.ModLCtrl)
	h.DelMods(key.ModLShift)
	h.ClearMods()

	if len(log.reports) != 0 {
		t.Errorf("modifier changes sent %d reports, want 0", len(log.reports))
	}
}

func TestRegisterUnregister(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)
	h.SetMods(key.ModRCtrl)

	h.Register(key.KeyDelete)
	if len(log.reports) != 1 {
		t.Fatalf("Register sent %d reports, want 1", len(log.reports))
	}
	r := log.reports[0]
	if !r.Contains(key.KeyDelete) || r.Modifiers != key.ModRCtrl {
		t.Errorf("report = %s, want [RCtrl] KC_DEL", r)
	}
	if !h.IsHeld(key.KeyDelete) {
		t.Error("KC_DEL should be held")
	}

	h.Unregister(key.KeyDelete)
	if len(log.reports) != 2 || log.reports[1].Contains(key.KeyDelete) {
		t.Errorf("Unregister reports = %v", log.reports)
	}
	if h.ReportsSent() != 2 {
		t.Errorf("ReportsSent() = %d, want 2", h.ReportsSent())
	}
}

func TestRegisterModifierKey(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)

	h.Register(key.KeyRightShift)
	if h.Mods() != key.ModRShift {
		t.Errorf("Mods() = %s, want RShift", h.Mods())
	}
	if len(h.Held()) != 0 {
		t.Errorf("modifier key should not occupy a key slot: %v", h.Held())
	}
	h.Unregister(key.KeyRightShift)
	if !h.Mods().IsEmpty() {
		t.Errorf("Mods() = %s after release, want none", h.Mods())
	}
	if len(log.reports) != 2 {
		t.Errorf("sent %d reports, want 2", len(log.reports))
	}
}

func TestRegisterWrappedKey(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)

	h.Register(key.Shifted(key.KeyEqual))
	r := log.reports[0]
	if r.Modifiers != key.ModLShift || !r.Contains(key.KeyEqual) {
		t.Errorf("report = %s, want [LShift] KC_EQL", r)
	}
	h.Unregister(key.Shifted(key.KeyEqual))
	if !log.reports[1].IsEmpty() {
		t.Errorf("release report = %s, want empty", log.reports[1])
	}
}

func TestRegisterIgnoresNonKeyboardCodes(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)

	for _, kc := range []key.Keycode{key.KeyMute, key.Momentary(1), key.RGBToggle, key.Arrow} {
		h.Register(kc)
		h.Unregister(kc)
	}
	if len(log.reports) != 0 {
		t.Errorf("sent %d reports for non-keyboard codes, want 0", len(log.reports))
	}
}

func TestRollover(t *testing.T) {
	h := NewHost(nil)
	codes := []key.Keycode{key.KeyA, key.KeyB, key.KeyC, key.KeyD, key.KeyE, key.KeyF, key.KeyG}
	for _, kc := range codes {
		h.Register(kc)
	}
	if n := len(h.Held()); n != MaxKeys {
		t.Errorf("held %d keys, want %d", n, MaxKeys)
	}
	if h.IsHeld(key.KeyG) {
		t.Error("seventh key should be dropped")
	}
}

func TestSendStringTapsCharacters(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)

	h.SendString("~ ")

	if len(log.reports) != 4 {
		t.Fatalf("sent %d reports, want 4", len(log.reports))
	}
	want := []string{"[LShift] KC_GRV", "[]", "[] KC_SPC", "[]"}
	for i, w := range want {
		if got := log.reports[i].String(); got != w {
			t.Errorf("report %d = %q, want %q", i, got, w)
		}
	}
	if !h.Mods().IsEmpty() {
		t.Errorf("Mods() = %s after SendString, want none", h.Mods())
	}
}

func TestSendStringKeepsHeldMods(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)
	h.SetMods(key.ModLCtrl)

	h.SendString("a")

	if log.reports[0].Modifiers != key.ModLCtrl {
		t.Errorf("press report mods = %s, want LCtrl", log.reports[0].Modifiers)
	}
	if h.Mods() != key.ModLCtrl {
		t.Errorf("Mods() = %s, want LCtrl", h.Mods())
	}
}

func TestSendStringSkipsUnknownRunes(t *testing.T) {
	log := &reportLog{}
	h := NewHost(log)

	h.SendString("Ä")
	if len(log.reports) != 0 {
		t.Errorf("sent %d reports for a non-ASCII rune, want 0", len(log.reports))
	}
}

func TestTee(t *testing.T) {
	a, b := &reportLog{}, &reportLog{}
	sink := Tee(a, nil, b)
	sink.SendReport(Report{Modifiers: key.ModLGui})

	if len(a.reports) != 1 || len(b.reports) != 1 {
		t.Errorf("Tee delivered %d/%d reports, want 1/1", len(a.reports), len(b.reports))
	}
}

func TestHostReset(t *testing.T) {
	h := NewHost(nil)
	h.SetMods(key.ModLShift)
	h.Register(key.KeyA)
	h.Reset()

	if !h.Report().IsEmpty() || h.ReportsSent() != 0 {
		t.Errorf("after Reset report = %s, sent = %d", h.Report(), h.ReportsSent())
	}
}
