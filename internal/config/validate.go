package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/logging"
)

// Bounds on durations.
const (
	MaxWatchDebounce = 10 * time.Second
	MaxScriptTimeout = 10 * time.Minute
)

// Validate checks every setting and returns all failures joined together.
// Each failure is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if !logging.ValidLevel(c.Log.Level) {
		fail("log.level", "must be one of debug, info, warn, error", c.Log.Level, ErrCodeInvalidEnum)
	}
	if c.Log.Output == "" {
		fail("log.output", "must not be empty", c.Log.Output, ErrCodeRequiredMissing)
	}

	switch strings.ToLower(c.Trace.Format) {
	case "", "text", "json":
	default:
		fail("trace.format", "must be text or json", c.Trace.Format, ErrCodeInvalidEnum)
	}
	if c.Trace.Format != "" && c.Trace.Output == "" {
		fail("trace.output", "must not be empty when tracing", c.Trace.Output, ErrCodeRequiredMissing)
	}

	if d := c.Script.Timeout.Std(); d < 0 || d > MaxScriptTimeout {
		fail("script.timeout", fmt.Sprintf("must be between 0 and %s", MaxScriptTimeout), c.Script.Timeout, ErrCodeOutOfRange)
	}
	if d := c.Watch.Debounce.Std(); d <= 0 || d > MaxWatchDebounce {
		fail("watch.debounce", fmt.Sprintf("must be positive and at most %s", MaxWatchDebounce), c.Watch.Debounce, ErrCodeOutOfRange)
	}

	seen := make(map[key.Keycode]bool, len(c.Codes))
	for i, o := range c.Codes {
		path := fmt.Sprintf("codes[%d].action", i)
		kc, err := key.Parse(o.Action)
		if err != nil || !kc.IsCustom() {
			fail(path, "must name a custom keycode", o.Action, ErrCodeUnknownAction)
			continue
		}
		if seen[kc] {
			fail(path, "overridden more than once", o.Action, ErrCodeDuplicate)
		}
		seen[kc] = true
	}

	return errors.Join(errs...)
}
