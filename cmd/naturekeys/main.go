// Package main is the entry point for the naturekeys keymap simulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/naturekeys/internal/app"
	"github.com/dshills/naturekeys/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrScenariosFailed) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.Trace, "trace", "", "Trace reports as text or json")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-run scenarios when their files change")
	flag.BoolVar(&opts.Watch, "w", false, "Re-run scenarios when their files change (shorthand)")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Type on the simulated keyboard in the terminal")
	flag.BoolVar(&opts.Interactive, "i", false, "Type on the simulated keyboard in the terminal (shorthand)")
	flag.BoolVar(&opts.PrintLayout, "layout", false, "Print the keymap layers and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "naturekeys - X-Bows Nature keymap simulator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: naturekeys [options] [scenario.lua...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  naturekeys -layout                  Print both layers\n")
		fmt.Fprintf(os.Stderr, "  naturekeys shift_bksp.lua           Run a scenario\n")
		fmt.Fprintf(os.Stderr, "  naturekeys -trace json -w *.lua     Trace reports, re-run on save\n")
		fmt.Fprintf(os.Stderr, "  naturekeys -i                       Type interactively\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("naturekeys %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	opts.Files = flag.Args()
	return opts
}
