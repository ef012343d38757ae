// Package script runs Lua scenarios against the keymap.
//
// A scenario drives a simulated keyboard and checks what the computer saw:
//
//	press("KC_LSFT")
//	tap("KC_BSPC")
//	release("KC_LSFT")
//	expect_tokens({"<Del>"})
//	expect_state("IDLE")
//
// Only the base, table, string and math libraries are available.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/naturekeys/internal/hid"
	"github.com/dshills/naturekeys/internal/input"
	"github.com/dshills/naturekeys/internal/input/keymap"
	"github.com/dshills/naturekeys/internal/logging"
	"github.com/dshills/naturekeys/internal/trace"
)

// DefaultTimeout bounds a single scenario run.
const DefaultTimeout = 5 * time.Second

// Result summarizes one scenario run.
type Result struct {
	Script   string
	Session  string
	Steps    int
	Checks   int
	Text     string
	Tokens   []string
	Reports  int
	Metrics  input.MetricsSnapshot
	Duration time.Duration
	Err      error
}

// Passed reports whether the scenario ran to completion with every check met.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Runner executes scenarios. Each run gets a fresh keyboard and Lua state.
type Runner struct {
	logger  *logging.Logger
	codes   *keymap.CodeTable
	writer  trace.Writer
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner logger. Lua print() goes to it at Info.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithCodeTable replaces the custom-string table used by the keymap.
func WithCodeTable(t *keymap.CodeTable) Option {
	return func(r *Runner) {
		r.codes = t
	}
}

// WithTraceWriter streams each run's trace to w.
func WithTraceWriter(w trace.Writer) Option {
	return func(r *Runner) {
		r.writer = w
	}
}

// WithTimeout sets the per-run deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:  logging.Discard(),
		codes:   keymap.DefaultCodeTable(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")
	return r
}

// RunFile loads and runs the scenario at path.
func (r *Runner) RunFile(ctx context.Context, path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Script: path, Err: err}
	}
	defer f.Close()
	return r.Run(ctx, filepath.Base(path), f)
}

// RunString runs src under name.
func (r *Runner) RunString(ctx context.Context, name, src string) Result {
	return r.Run(ctx, name, strings.NewReader(src))
}

// Run executes the scenario read from src.
func (r *Runner) Run(ctx context.Context, name string, src io.Reader) Result {
	start := time.Now()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	sess := newSession(r, name)
	L := newState(r.logger.WithField("script", name))
	defer L.Close()
	L.SetContext(ctx)
	sess.install(L)

	err := r.exec(L, name, src)
	switch {
	case sess.fail != nil:
		err = sess.fail
	case err != nil && ctx.Err() != nil:
		err = fmt.Errorf("%w: %s after %s", ErrTimeout, name, time.Since(start).Round(time.Millisecond))
	case err != nil:
		err = &ScriptError{Script: name, Err: err}
	}

	res := sess.result()
	res.Duration = time.Since(start)
	res.Err = err

	log := r.logger.WithFields(map[string]any{"script": name, "session": res.Session})
	if err != nil {
		log.Error("failed: %v", err)
	} else {
		log.Info("passed: %d steps, %d checks", res.Steps, res.Checks)
	}
	return res
}

func (r *Runner) exec(L *lua.LState, name string, src io.Reader) error {
	fn, err := L.Load(src, name)
	if err != nil {
		return err
	}
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// newState opens a Lua state with only the safe standard libraries.
func newState(logger *logging.Logger) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
	return L
}

// RunAll runs each file in order and returns every result.
func (r *Runner) RunAll(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Script: p, Err: err})
			continue
		}
		results = append(results, r.RunFile(ctx, p))
	}
	return results
}

// Failures joins the errors of every failed result, or returns nil.
func Failures(results []Result) error {
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// hostFor builds the simulated host. Reports go to the decoder and recorder.
func hostFor(dec *hid.Decoder, rec *trace.Recorder, logger *logging.Logger) *hid.Host {
	return hid.NewHost(hid.Tee(dec, rec), hid.WithHostLogger(logger))
}
