// Package terminal is an interactive view of the keymap: keys typed in the
// terminal are replayed on the simulated keyboard and the screen shows what
// the computer received.
//
// Terminals do not report a lone Shift press, so F2 latches Left Shift on and
// off. F5 to F8 stand in for the custom string keys. Ctrl+Q quits.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/naturekeys/internal/firmware"
	"github.com/dshills/naturekeys/internal/hid"
	"github.com/dshills/naturekeys/internal/input"
	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/logging"
)

// maxReports is how many recent reports the view keeps.
const maxReports = 8

// View owns a simulated keyboard and renders its state.
type View struct {
	kb      *firmware.Keyboard
	host    *hid.Host
	dec     *hid.Decoder
	layout  *hid.USLayout
	logger  *logging.Logger
	latched bool
	reports []hid.Report
}

// Option configures a View.
type Option func(*viewConfig)

type viewConfig struct {
	logger *logging.Logger
	sink   hid.ReportSink
	iopts  []input.Option
	fopts  []firmware.Option
}

// WithLogger sets the view logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *viewConfig) {
		c.logger = l
	}
}

// WithReportSink also sends every report to sink, such as a trace recorder.
func WithReportSink(sink hid.ReportSink) Option {
	return func(c *viewConfig) {
		c.sink = sink
	}
}

// WithInterceptorOptions configures the keymap's interceptor.
func WithInterceptorOptions(opts ...input.Option) Option {
	return func(c *viewConfig) {
		c.iopts = append(c.iopts, opts...)
	}
}

// WithKeyboardOptions configures the keyboard pipeline.
func WithKeyboardOptions(opts ...firmware.Option) Option {
	return func(c *viewConfig) {
		c.fopts = append(c.fopts, opts...)
	}
}

// NewView creates a view with a fresh keyboard.
func NewView(opts ...Option) *View {
	cfg := viewConfig{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &View{
		dec:    hid.NewDecoder(),
		layout: hid.NewUSLayout(),
		logger: cfg.logger.WithComponent("terminal"),
	}
	v.host = hid.NewHost(hid.Tee(v.dec, hid.SinkFunc(v.keepReport), cfg.sink), hid.WithHostLogger(cfg.logger))

	fopts := append([]firmware.Option{
		firmware.WithLogger(cfg.logger),
		firmware.WithInterceptorOptions(cfg.iopts...),
	}, cfg.fopts...)
	v.kb = firmware.New(v.host, fopts...)
	return v
}

func (v *View) keepReport(r hid.Report) {
	v.reports = append(v.reports, r)
	if len(v.reports) > maxReports {
		v.reports = v.reports[len(v.reports)-maxReports:]
	}
}

// Latched reports whether the Shift latch is on.
func (v *View) Latched() bool {
	return v.latched
}

// Text returns what the computer has typed so far.
func (v *View) Text() string {
	return v.dec.Text()
}

// Tokens returns the decoded key presses.
func (v *View) Tokens() []string {
	return v.dec.Tokens()
}

// ToggleShift presses or releases the latched Left Shift.
func (v *View) ToggleShift() {
	v.latched = !v.latched
	if v.latched {
		v.kb.Press(key.KeyLeftShift)
	} else {
		v.kb.Release(key.KeyLeftShift)
	}
	v.logger.Debug("shift latch %t", v.latched)
}

// HandleKey replays ev on the keyboard. It returns false when the view
// should exit.
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return false
	case tcell.KeyF2:
		v.ToggleShift()
		return true
	}

	s, ok := translate(ev, v.layout)
	if !ok {
		v.logger.Debug("no key for %s", ev.Name())
		return true
	}
	v.tap(s)
	return true
}

// tap holds s.Mods around a tap of s.Keycode. Shift is not pressed again
// while latched.
func (v *View) tap(s Stroke) {
	mods := s.Mods
	if v.latched {
		mods = mods.Without(key.ModLShift)
	}
	held := modKeys(mods)
	for _, m := range held {
		v.kb.Press(m)
	}
	v.kb.Tap(s.Keycode)
	for i := len(held) - 1; i >= 0; i-- {
		v.kb.Release(held[i])
	}
}

// Draw renders the view onto screen.
func (v *View) Draw(screen tcell.Screen) {
	screen.Clear()
	w, _ := screen.Size()

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	latch := "off"
	if v.latched {
		latch = "ON"
	}

	lines := []struct {
		text  string
		style tcell.Style
	}{
		{"naturekeys: X-Bows Nature keymap", bold},
		{"F2 shift latch | F5 -> | F6 ` ~ | F7 6 ^ | F8 ' \" | Ctrl+Q quit", dim},
		{"", tcell.StyleDefault},
		{"text    " + visible(v.dec.Text()), tcell.StyleDefault},
		{"keys    " + lastTokens(v.dec.Tokens(), 12), tcell.StyleDefault},
		{fmt.Sprintf("mods    %-20s shift latch %s", orNone(v.host.Mods().String()), latch), tcell.StyleDefault},
		{"override " + v.kb.Interceptor().State().String(), tcell.StyleDefault},
		{"", tcell.StyleDefault},
		{"reports", bold},
	}
	for _, r := range v.reports {
		lines = append(lines, struct {
			text  string
			style tcell.Style
		}{"  " + r.Hex() + "  " + r.String(), tcell.StyleDefault})
	}

	for y, l := range lines {
		drawText(screen, 0, y, w, l.text, l.style)
	}
	screen.Show()
}

// Run polls screen until the user quits or ctx is done. The caller owns
// screen initialization and teardown.
func (v *View) Run(ctx context.Context, screen tcell.Screen) error {
	stop := context.AfterFunc(ctx, func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	v.Draw(screen)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return nil
			}
		}
		v.Draw(screen)
	}
}

// drawText writes s at (x, y), cut to fit width columns.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	s = runewidth.Truncate(s, width-x, "…")
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func visible(s string) string {
	return strings.NewReplacer("\n", "⏎", "\t", "⇥").Replace(s)
}

func lastTokens(tokens []string, n int) string {
	if len(tokens) > n {
		tokens = tokens[len(tokens)-n:]
	}
	return strings.Join(tokens, " ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
