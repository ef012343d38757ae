package trace

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/dshills/naturekeys/internal/firmware"
	"github.com/dshills/naturekeys/internal/hid"
	"github.com/dshills/naturekeys/internal/input/key"
)

var fixed = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixed }

// record wires a recorder into a keyboard and plays Shift+Backspace.
func record(t *testing.T, opts ...Option) *Recorder {
	t.Helper()
	rec := NewRecorder(append([]Option{WithClock(clock)}, opts...)...)
	host := hid.NewHost(rec)
	kb := firmware.New(host, firmware.WithObserver(rec.Observe), firmware.WithClock(clock))

	kb.Press(key.KeyLeftShift)
	kb.Press(key.KeyBackspace)
	kb.Release(key.KeyBackspace)
	kb.Release(key.KeyLeftShift)
	return rec
}

func TestRecorderSession(t *testing.T) {
	r := NewRecorder()
	if _, err := uuid.Parse(r.Session()); err != nil {
		t.Errorf("Session() = %q is not a uuid: %v", r.Session(), err)
	}
	if NewRecorder().Session() == r.Session() {
		t.Error("two recorders share a session id")
	}
	if got := NewRecorder(WithSession("abc")).Session(); got != "abc" {
		t.Errorf("Session() = %q, want abc", got)
	}
}

func TestRecorderOrdersEntries(t *testing.T) {
	rec := record(t)
	entries := rec.Entries()

	// Each of the four events sends one report before its decision is observed.
	var kinds []string
	for i, e := range entries {
		if e.Seq != i+1 {
			t.Errorf("entry %d Seq = %d", i, e.Seq)
		}
		kinds = append(kinds, string(e.Kind))
	}
	want := "report event report event report event report event"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}

	reports := rec.Reports()
	if len(reports) != 4 {
		t.Fatalf("Reports() = %d, want 4", len(reports))
	}
	if got := reports[1].String(); got != "[] KC_DEL" {
		t.Errorf("substituted report = %q, want %q", got, "[] KC_DEL")
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	rec := record(t, WithWriter(NewJSONWriter(&buf)), WithSession("s-1"))
	if err := rec.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8", len(lines))
	}
	for i, line := range lines {
		if !gjson.Valid(line) {
			t.Fatalf("line %d is not JSON: %s", i, line)
		}
		if got := gjson.Get(line, "session").String(); got != "s-1" {
			t.Errorf("line %d session = %q", i, got)
		}
	}

	press := lines[3]
	tests := []struct {
		path string
		want string
	}{
		{"kind", "event"},
		{"event.keycode", "KC_BSPC"},
		{"event.pressed", "true"},
		{"handled", "true"},
		{"mods.before", "LShift"},
		{"state", "DELETE_SUBSTITUTED"},
		{"time", "2024-03-01T12:00:00Z"},
	}
	for _, tt := range tests {
		if got := gjson.Get(press, tt.path).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}

	report := lines[2]
	if got := gjson.Get(report, "report.keys.0").String(); got != "KC_DEL" {
		t.Errorf("report.keys.0 = %q, want KC_DEL", got)
	}
	if got := gjson.Get(report, "report.hex").String(); got != "00 00 4c 00 00 00 00 00" {
		t.Errorf("report.hex = %q", got)
	}
	if got := gjson.Get(report, "seq").Int(); got != 3 {
		t.Errorf("seq = %d, want 3", got)
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	rec := record(t, WithWriter(NewTextWriter(&buf)))
	rec.Note("done")

	out := buf.String()
	for _, want := range []string{
		"0004 event    +KC_BSPC",
		"handled mods=LShift state=DELETE_SUBSTITUTED",
		"0003 report   00 00 4c 00 00 00 00 00  [] KC_DEL",
		"0009 note     done",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"JSON", false},
		{"yaml", true},
	}
	for _, tt := range tests {
		_, err := NewWriter(tt.format, &bytes.Buffer{})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewWriter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("NewWriter(%q) error = %v, want ErrUnknownFormat", tt.format, err)
		}
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(Entry) error {
	f.calls++
	return errors.New("disk full")
}

func TestRecorderKeepsFirstWriteError(t *testing.T) {
	fw := &failingWriter{}
	rec := NewRecorder(WithWriter(fw))
	rec.Note("a")
	rec.Note("b")

	if rec.Err() == nil {
		t.Fatal("Err() = nil, want write error")
	}
	if fw.calls != 1 {
		t.Errorf("writer called %d times after failing, want 1", fw.calls)
	}
	if n := len(rec.Entries()); n != 2 {
		t.Errorf("Entries() = %d, want 2", n)
	}

	rec.Reset()
	if rec.Err() != nil || len(rec.Entries()) != 0 {
		t.Error("Reset should clear entries and error")
	}
}
