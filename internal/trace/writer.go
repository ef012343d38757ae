package trace

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/sjson"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown trace format")

// Format names accepted by NewWriter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Writer serializes entries.
type Writer interface {
	Write(e Entry) error
}

// NewWriter returns the writer for format.
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatText:
		return &TextWriter{w: w}, nil
	case FormatJSON:
		return &JSONWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// TextWriter writes one human-readable line per entry.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Write implements Writer.
func (t *TextWriter) Write(e Entry) error {
	var line string
	switch e.Kind {
	case KindEvent:
		d := e.Decision
		verdict := "pass"
		switch {
		case d.Handled:
			verdict = "handled"
		case d.Default:
			verdict = "default"
		}
		line = fmt.Sprintf("%04d %-8s %-18s %-7s mods=%s state=%s",
			e.Seq, e.Kind, d.Event, verdict, d.ModsAfter, d.State)
	case KindReport:
		line = fmt.Sprintf("%04d %-8s %s  %s", e.Seq, e.Kind, e.Report.Hex(), e.Report)
	default:
		line = fmt.Sprintf("%04d %-8s %s", e.Seq, e.Kind, e.Note)
	}
	_, err := fmt.Fprintln(t.w, line)
	return err
}

// JSONWriter writes one JSON object per line.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write implements Writer.
func (j *JSONWriter) Write(e Entry) error {
	doc, err := encodeEntry(e)
	if err != nil {
		return err
	}
	_, err = io.WriteString(j.w, doc+"\n")
	return err
}

type field struct {
	path  string
	value any
}

func encodeEntry(e Entry) (string, error) {
	fields := []field{
		{"seq", e.Seq},
		{"session", e.Session},
		{"time", e.Time.UTC().Format(time.RFC3339Nano)},
		{"kind", string(e.Kind)},
	}

	switch e.Kind {
	case KindEvent:
		d := e.Decision
		fields = append(fields,
			field{"event.keycode", d.Event.Keycode.String()},
			field{"event.pressed", d.Event.Pressed},
			field{"handled", d.Handled},
			field{"default", d.Default},
			field{"mods.before", d.ModsBefore.String()},
			field{"mods.after", d.ModsAfter.String()},
			field{"state", d.State.String()},
		)
	case KindReport:
		keys := make([]string, 0, len(e.Report.Keys))
		for _, k := range e.Report.Pressed() {
			keys = append(keys, k.String())
		}
		fields = append(fields,
			field{"report.mods", e.Report.Modifiers.String()},
			field{"report.keys", keys},
			field{"report.hex", e.Report.Hex()},
		)
	case KindNote:
		fields = append(fields, field{"note", e.Note})
	}

	doc := "{}"
	for _, f := range fields {
		var err error
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("encode %s: %w", f.path, err)
		}
	}
	return doc, nil
}
