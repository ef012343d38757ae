// Package hid emulates the USB HID boot keyboard transport the firmware
// talks to: it keeps the modifier byte and held keys, turns them into 8-byte
// reports, and types strings as key taps on a US layout.
package hid

import (
	"fmt"
	"strings"

	"github.com/dshills/naturekeys/internal/input/key"
)

// MaxKeys is the rollover limit of a boot protocol report.
const MaxKeys = 6

// Report is one boot protocol keyboard report.
type Report struct {
	Modifiers key.Modifier
	Keys      [MaxKeys]key.Keycode
}

// Bytes returns the wire form: modifier byte, reserved byte, six usages.
func (r Report) Bytes() [8]byte {
	var b [8]byte
	b[0] = byte(r.Modifiers)
	for i, k := range r.Keys {
		b[2+i] = byte(k)
	}
	return b
}

// Pressed returns the non-empty key slots in order.
func (r Report) Pressed() []key.Keycode {
	var out []key.Keycode
	for _, k := range r.Keys {
		if k != key.KeyNone {
			out = append(out, k)
		}
	}
	return out
}

// Contains reports whether kc is held in the report.
func (r Report) Contains(kc key.Keycode) bool {
	for _, k := range r.Keys {
		if k == kc {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing is held.
func (r Report) IsEmpty() bool {
	return r.Modifiers == key.ModNone && len(r.Pressed()) == 0
}

// String returns a readable form like "[LShift] KC_A KC_B".
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(r.Modifiers.String())
	sb.WriteByte(']')
	for _, k := range r.Pressed() {
		sb.WriteByte(' ')
		sb.WriteString(k.String())
	}
	return sb.String()
}

// Hex returns the wire bytes as hex pairs.
func (r Report) Hex() string {
	b := r.Bytes()
	return fmt.Sprintf("% x", b[:])
}

// ReportSink receives reports in the order they are sent.
type ReportSink interface {
	SendReport(r Report)
}

// SinkFunc adapts a function to ReportSink.
type SinkFunc func(r Report)

// SendReport calls f(r).
func (f SinkFunc) SendReport(r Report) {
	f(r)
}

// Tee returns a sink that forwards every report to each sink in order.
func Tee(sinks ...ReportSink) ReportSink {
	return SinkFunc(func(r Report) {
		for _, s := range sinks {
			if s != nil {
				s.SendReport(r)
			}
		}
	})
}
