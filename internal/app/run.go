package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mgutz/ansi"
	"golang.org/x/term"

	"github.com/dshills/naturekeys/internal/firmware"
	"github.com/dshills/naturekeys/internal/input"
	"github.com/dshills/naturekeys/internal/input/keymap"
	"github.com/dshills/naturekeys/internal/script"
	"github.com/dshills/naturekeys/internal/terminal"
	"github.com/dshills/naturekeys/internal/trace"
	"github.com/dshills/naturekeys/internal/watcher"
)

// screenFactory creates the terminal screen for interactive mode.
type screenFactory func() (tcell.Screen, error)

func defaultScreen() (tcell.Screen, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotATerminal
	}
	return tcell.NewScreen()
}

// printLayout writes every layer of the keymap after checking it against
// the configured code table.
func (app *Application) printLayout() error {
	layout := keymap.Nature()
	if err := layout.Validate(app.cfg.CodeTable()); err != nil {
		return NewOperationError("validate", layout.Name, err)
	}
	fmt.Fprintf(app.stdout, "%s\n\n", layout.Name)
	for i := range layout.Layers {
		fmt.Fprintln(app.stdout, layout.Render(i))
	}
	return nil
}

// runScenarios runs each file once and prints a line per result.
func (app *Application) runScenarios(ctx context.Context, files []string) error {
	results := app.runner().RunAll(ctx, files)

	passed := 0
	for _, res := range results {
		app.report(res)
		if res.Passed() {
			passed++
		}
	}
	fmt.Fprintf(app.stdout, "%d/%d scenarios passed\n", passed, len(results))

	if err := script.Failures(results); err != nil {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, len(results)-passed, len(results))
	}
	return nil
}

func (app *Application) report(res script.Result) {
	status := app.paint("PASS", "green+b")
	if !res.Passed() {
		status = app.paint("FAIL", "red+b")
	}
	fmt.Fprintf(app.stdout, "%s %s (%d steps, %d checks, %d reports, %s)\n",
		status, res.Script, res.Steps, res.Checks, res.Reports, res.Duration.Round(100*time.Microsecond))
	if !res.Passed() {
		fmt.Fprintf(app.stdout, "     %v\n", res.Err)
	}
}

// paint colors s when writing to a terminal.
func (app *Application) paint(s, style string) string {
	if !app.color {
		return s
	}
	return ansi.Color(s, style)
}

// watchScenarios runs every file, then re-runs each one as it changes.
func (app *Application) watchScenarios(ctx context.Context) error {
	if err := app.runScenarios(ctx, app.opts.Files); err != nil && !errors.Is(err, ErrScenariosFailed) {
		return err
	}

	w, err := watcher.New(app.opts.Files,
		watcher.WithDelay(app.cfg.Watch.Debounce.Std()),
		watcher.WithLogger(app.logger),
	)
	if err != nil {
		return NewOperationError("watch", strings.Join(app.opts.Files, ", "), err)
	}
	defer w.Close()

	app.logger.Info("watching %d files; interrupt to stop", len(app.opts.Files))
	err = w.Run(ctx, func(path string) {
		fmt.Fprintf(app.stdout, "--- %s changed\n", path)
		_ = app.runScenarios(ctx, []string{path})
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runInteractive opens the terminal view until the user quits.
func (app *Application) runInteractive(ctx context.Context) error {
	screen, err := app.newScreen()
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	if err := screen.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer screen.Fini()

	opts := []terminal.Option{
		terminal.WithLogger(app.logger),
		terminal.WithInterceptorOptions(input.WithCodeTable(app.cfg.CodeTable())),
	}
	if app.traceWriter != nil {
		rec := trace.NewRecorder(trace.WithWriter(app.traceWriter))
		opts = append(opts,
			terminal.WithReportSink(rec),
			terminal.WithKeyboardOptions(firmware.WithObserver(rec.Observe)),
		)
	}

	view := terminal.NewView(opts...)
	err = view.Run(ctx, screen)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
