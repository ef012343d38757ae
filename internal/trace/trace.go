// Package trace records what the keyboard pipeline did: every key event with
// its decision, and every HID report that went to the computer.
package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/naturekeys/internal/firmware"
	"github.com/dshills/naturekeys/internal/hid"
)

// Kind identifies a trace entry.
type Kind string

const (
	KindEvent  Kind = "event"
	KindReport Kind = "report"
	KindNote   Kind = "note"
)

// Entry is one line of a trace.
type Entry struct {
	Seq     int
	Session string
	Time    time.Time
	Kind    Kind

	// Set for KindEvent.
	Decision firmware.Decision

	// Set for KindReport.
	Report hid.Report

	// Set for KindNote.
	Note string
}

// Recorder collects trace entries and streams them to an optional writer.
// It implements hid.ReportSink; Observe is a firmware.Observer.
type Recorder struct {
	mu      sync.Mutex
	session string
	entries []Entry
	writer  Writer
	clock   func() time.Time
	err     error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithWriter streams each entry to w as it is recorded.
func WithWriter(w Writer) Option {
	return func(r *Recorder) {
		r.writer = w
	}
}

// WithSession fixes the session id instead of generating one.
func WithSession(id string) Option {
	return func(r *Recorder) {
		r.session = id
	}
}

// WithClock replaces the time source for report and note entries.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) {
		r.clock = clock
	}
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if r.session == "" {
		r.session = uuid.NewString()
	}
	return r
}

// Session returns the session id stamped on every entry.
func (r *Recorder) Session() string {
	return r.session
}

// Observe records a pipeline decision.
func (r *Recorder) Observe(d firmware.Decision) {
	r.add(Entry{Kind: KindEvent, Time: d.Event.Time, Decision: d})
}

// SendReport records a HID report.
func (r *Recorder) SendReport(rep hid.Report) {
	r.add(Entry{Kind: KindReport, Time: r.clock(), Report: rep})
}

// Note records a free-form line, such as a scenario step.
func (r *Recorder) Note(msg string) {
	r.add(Entry{Kind: KindNote, Time: r.clock(), Note: msg})
}

func (r *Recorder) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.Seq = len(r.entries) + 1
	e.Session = r.session
	r.entries = append(r.entries, e)
	if r.writer != nil && r.err == nil {
		r.err = r.writer.Write(e)
	}
}

// Entries returns a copy of everything recorded.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Reports returns only the report entries' reports.
func (r *Recorder) Reports() []hid.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []hid.Report
	for _, e := range r.entries {
		if e.Kind == KindReport {
			out = append(out, e.Report)
		}
	}
	return out
}

// Err returns the first write error. Recording continues in memory after it.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Reset drops all entries and any write error.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.err = nil
}
