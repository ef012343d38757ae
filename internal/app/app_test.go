package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"

	"github.com/dshills/naturekeys/internal/config"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// quietConfig writes a config that sends logs to a file in dir.
func quietConfig(t *testing.T, dir, extra string) string {
	t.Helper()
	logPath := filepath.Join(dir, "naturekeys.log")
	return writeFile(t, dir, "naturekeys.toml", "[log]\noutput = '"+logPath+"'\n"+extra)
}

func newApp(t *testing.T, opts Options) (*Application, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	opts.Stdout = out
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a, out
}

func TestRunWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApp(t, Options{ConfigPath: quietConfig(t, dir, "")})
	if err := a.Run(context.Background()); !errors.Is(err, ErrNoScenarios) {
		t.Errorf("Run() = %v, want ErrNoScenarios", err)
	}
}

func TestPrintLayout(t *testing.T) {
	dir := t.TempDir()
	a, out := newApp(t, Options{ConfigPath: quietConfig(t, dir, ""), PrintLayout: true})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	for _, want := range []string{"xbows/nature", "[0] VANILLA", "[1] FN", "MO_GRV", "ARROW", "KC_TRNS"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("layout output missing %q", want)
		}
	}
}

func TestRunScenarios(t *testing.T) {
	dir := t.TempDir()
	pass := writeFile(t, dir, "pass.lua", `
		press("KC_LSFT") tap("KC_BSPC") release("KC_LSFT")
		expect_tokens({"<Del>"})
	`)
	fail := writeFile(t, dir, "fail.lua", `tap("ARROW") expect_text("=>")`)

	a, out := newApp(t, Options{ConfigPath: quietConfig(t, dir, ""), Files: []string{pass, fail}})
	err := a.Run(context.Background())
	if !errors.Is(err, ErrScenariosFailed) {
		t.Fatalf("Run() = %v, want ErrScenariosFailed", err)
	}
	for _, want := range []string{"PASS pass.lua", "FAIL fail.lua", `got "->", want "=>"`, "1/2 scenarios passed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCodeOverridesReachScenarios(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "[[codes]]\naction = 'ARROW'\nunshifted = '=>'\nshifted = '=>'\n")
	file := writeFile(t, dir, "arrow.lua", `tap("ARROW") expect_text("=>")`)

	a, _ := newApp(t, Options{ConfigPath: cfg, Files: []string{file}})
	if err := a.Run(context.Background()); err != nil {
		t.Errorf("Run() = %v", err)
	}
}

func TestJSONTraceToFile(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.jsonl")
	cfg := quietConfig(t, dir, "[trace]\nformat = 'json'\noutput = '"+tracePath+"'\n")
	file := writeFile(t, dir, "a.lua", `tap("KC_A")`)

	a, _ := newApp(t, Options{ConfigPath: cfg, Files: []string{file}})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	a.Shutdown()

	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("trace has %d lines, want 4", len(lines))
	}
	if got := gjson.Get(lines[0], "report.keys.0").String(); got != "KC_A" {
		t.Errorf("first report key = %q, want KC_A", got)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "[trace]\nformat = 'json'\n")
	a, _ := newApp(t, Options{ConfigPath: cfg, LogLevel: "debug", Trace: "text", Watch: true})

	c := a.Config()
	if c.Log.Level != "debug" || c.Trace.Format != "text" || !c.Watch.Enabled {
		t.Errorf("Config() = %+v", c)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvLogLevel, "warn")
	a, _ := newApp(t, Options{ConfigPath: quietConfig(t, dir, "")})
	if got := a.Config().Log.Level; got != "warn" {
		t.Errorf("Log.Level = %q, want warn", got)
	}
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		opts      Options
		component string
		target    error
	}{
		{"missing config", Options{ConfigPath: filepath.Join(dir, "nope.toml")}, "config", config.ErrFileNotFound},
		{"bad level", Options{ConfigPath: quietConfig(t, dir, ""), LogLevel: "loud"}, "config", config.ErrValidationFailed},
		{"bad trace", Options{ConfigPath: quietConfig(t, dir, ""), Trace: "xml"}, "config", config.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			var ie *InitError
			if !errors.As(err, &ie) || ie.Component != tt.component {
				t.Fatalf("New() = %v, want InitError for %s", err, tt.component)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("New() = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestInteractiveRejectsWatch(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApp(t, Options{ConfigPath: quietConfig(t, dir, ""), Interactive: true, Watch: true})
	if err := a.Run(context.Background()); !errors.Is(err, ErrInteractiveWatch) {
		t.Errorf("Run() = %v, want ErrInteractiveWatch", err)
	}
}

func TestInteractiveStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApp(t, Options{ConfigPath: quietConfig(t, dir, ""), Interactive: true})
	a.newScreen = func() (tcell.Screen, error) {
		s := tcell.NewSimulationScreen("UTF-8")
		return s, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("Run() = %v, want nil after cancel", err)
	}
}

func TestWatchRerunsChangedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t, dir, "[watch]\ndebounce = '20ms'\n")
	file := writeFile(t, dir, "w.lua", `tap("KC_A") expect_text("a")`)

	a, out := newApp(t, Options{ConfigPath: cfg, Files: []string{file}, Watch: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	waitFor(t, out, "1/1 scenarios passed")
	writeFile(t, dir, "w.lua", `tap("KC_B") expect_text("a")`)
	waitFor(t, out, "w.lua changed")
	waitFor(t, out, "0/1 scenarios passed")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() = %v, want nil after cancel", err)
	}
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in:\n%s", want, out.String())
}

func TestOperationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{"nil error", nil, ""},
		{"op only", &OperationError{Op: "watch"}, "watch"},
		{"op and target", &OperationError{Op: "open", Target: "/tmp/trace"}, "open /tmp/trace"},
		{"full", NewOperationError("open", "/tmp/trace", errors.New("denied")), "open /tmp/trace: denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", got, tt.expected)
			}
		})
	}
}

func TestPaintOnlyOnTerminal(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApp(t, Options{ConfigPath: quietConfig(t, dir, "")})
	if got := a.paint("PASS", "green+b"); got != "PASS" {
		t.Errorf("paint() = %q, want plain PASS for a buffer", got)
	}
	a.color = true
	if got := a.paint("PASS", "green+b"); got == "PASS" || !strings.Contains(got, "PASS") {
		t.Errorf("paint() = %q, want escape codes around PASS", got)
	}
}

func TestDefaultScreenRequiresTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	stdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = stdin }()

	if _, err := defaultScreen(); !errors.Is(err, ErrNotATerminal) {
		t.Errorf("defaultScreen() = %v, want ErrNotATerminal", err)
	}
}

func TestSampleScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenarios", "*.lua"))
	if err != nil || len(files) == 0 {
		t.Fatalf("Glob() = %v, %v", files, err)
	}
	dir := t.TempDir()
	a, out := newApp(t, Options{ConfigPath: quietConfig(t, dir, ""), Files: files})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v\n%s", err, out.String())
	}
}
