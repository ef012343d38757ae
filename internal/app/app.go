package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"

	"github.com/dshills/naturekeys/internal/config"
	"github.com/dshills/naturekeys/internal/logging"
	"github.com/dshills/naturekeys/internal/script"
	"github.com/dshills/naturekeys/internal/trace"
)

// Options are the command-line settings. Empty strings leave the
// configured value alone.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides log.level.
	LogLevel string

	// Trace overrides trace.format.
	Trace string

	// Watch re-runs scenarios when their files change.
	Watch bool

	// Interactive opens the terminal view.
	Interactive bool

	// PrintLayout prints the layer grids and exits.
	PrintLayout bool

	// Files are the scenario files to run.
	Files []string

	// Stdout receives results and layouts. Defaults to os.Stdout.
	Stdout io.Writer
}

// Application is one configured naturekeys run.
type Application struct {
	opts   Options
	cfg    *config.Config
	logger *logging.Logger
	stdout io.Writer
	color  bool

	traceWriter trace.Writer
	closers     []io.Closer

	// newScreen is replaced in tests.
	newScreen screenFactory
}

// New loads configuration and sets up logging and tracing.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		stdout:    opts.Stdout,
		newScreen: defaultScreen,
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	if f, ok := app.stdout.(*os.File); ok {
		app.color = term.IsTerminal(int(f.Fd())) && !env.Has("NO_COLOR")
	}
	return app, nil
}

// bootstrap resolves configuration, then opens log and trace outputs.
func (app *Application) bootstrap() error {
	cfg, err := config.Load(app.opts.ConfigPath, app.opts.ConfigPath != "")
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	cfg.ApplyEnv()
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.Trace != "" {
		cfg.Trace.Format = app.opts.Trace
	}
	if app.opts.Watch {
		cfg.Watch.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	logOut, err := app.open(cfg.Log.Output)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Output: logOut,
		Prefix: "naturekeys",
	})

	if cfg.Trace.Format != "" {
		traceOut, err := app.open(cfg.Trace.Output)
		if err != nil {
			return &InitError{Component: "trace", Err: err}
		}
		w, err := trace.NewWriter(cfg.Trace.Format, traceOut)
		if err != nil {
			return &InitError{Component: "trace", Err: err}
		}
		app.traceWriter = w
	}

	app.logger.Debug("config resolved: log=%s trace=%q watch=%t codes=%d",
		cfg.Log.Level, cfg.Trace.Format, cfg.Watch.Enabled, len(cfg.Codes))
	return nil
}

// open resolves an output name. Files are appended to and closed on Shutdown.
func (app *Application) open(name string) (io.Writer, error) {
	switch strings.ToLower(name) {
	case "stdout", "-":
		return app.stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, NewOperationError("open", name, err)
	}
	app.closers = append(app.closers, f)
	return f, nil
}

// Config returns the resolved configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Run performs the requested action until it finishes or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	switch {
	case app.opts.PrintLayout:
		return app.printLayout()
	case app.opts.Interactive:
		if app.cfg.Watch.Enabled {
			return ErrInteractiveWatch
		}
		return app.runInteractive(ctx)
	case len(app.opts.Files) == 0:
		return ErrNoScenarios
	case app.cfg.Watch.Enabled:
		return app.watchScenarios(ctx)
	default:
		return app.runScenarios(ctx, app.opts.Files)
	}
}

// Shutdown closes any files opened for logs or traces.
func (app *Application) Shutdown() {
	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c.Close())
	}
	app.closers = nil
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintf(os.Stderr, "naturekeys: shutdown: %v\n", err)
	}
}

func (app *Application) runner() *script.Runner {
	opts := []script.Option{
		script.WithLogger(app.logger),
		script.WithCodeTable(app.cfg.CodeTable()),
		script.WithTimeout(app.cfg.Script.Timeout.Std()),
	}
	if app.traceWriter != nil {
		opts = append(opts, script.WithTraceWriter(app.traceWriter))
	}
	return script.NewRunner(opts...)
}
