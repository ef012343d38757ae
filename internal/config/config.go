// Package config holds the settings of the naturekeys simulator.
//
// Values are resolved in increasing precedence: built-in defaults, a TOML
// file, NATUREKEYS_* environment variables, then command-line flags applied
// by the caller. Validate runs last.
package config

import (
	"fmt"
	"time"

	"github.com/dshills/naturekeys/internal/input/key"
	"github.com/dshills/naturekeys/internal/input/keymap"
)

// Config is the complete simulator configuration.
type Config struct {
	Log    LogConfig      `toml:"log"`
	Trace  TraceConfig    `toml:"trace"`
	Script ScriptConfig   `toml:"script"`
	Watch  WatchConfig    `toml:"watch"`
	Codes  []CodeOverride `toml:"codes"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`
	// Output is "stderr", "stdout" or a file path.
	Output string `toml:"output"`
}

// TraceConfig configures the report trace.
type TraceConfig struct {
	// Format is "", "text" or "json". Empty disables tracing.
	Format string `toml:"format"`
	// Output is "stdout", "stderr" or a file path.
	Output string `toml:"output"`
}

// ScriptConfig configures scenario runs.
type ScriptConfig struct {
	Timeout Duration `toml:"timeout"`
}

// WatchConfig configures re-running scenarios on change.
type WatchConfig struct {
	Enabled  bool     `toml:"enabled"`
	Debounce Duration `toml:"debounce"`
}

// CodeOverride replaces the strings typed by one custom action.
//
//	[[codes]]
//	action = "ARROW"
//	unshifted = "=>"
//	shifted = "=>"
type CodeOverride struct {
	Action    string `toml:"action"`
	Unshifted string `toml:"unshifted"`
	Shifted   string `toml:"shifted"`
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Output: "stderr",
		},
		Trace: TraceConfig{
			Output: "stdout",
		},
		Script: ScriptConfig{
			Timeout: Duration(5 * time.Second),
		},
		Watch: WatchConfig{
			Debounce: Duration(200 * time.Millisecond),
		},
	}
}

// CodeTable returns the default code table with the configured overrides
// applied. Call Validate first; overrides that do not parse are skipped.
func (c *Config) CodeTable() *keymap.CodeTable {
	base := keymap.DefaultCodeTable()
	rows := make(map[key.Keycode]keymap.Codes, base.Len()+len(c.Codes))
	for _, action := range base.Actions() {
		row, _ := base.Row(action)
		rows[action] = row
	}
	for _, o := range c.Codes {
		kc, err := key.Parse(o.Action)
		if err != nil || !kc.IsCustom() {
			continue
		}
		rows[kc] = keymap.Codes{Unshifted: o.Unshifted, Shifted: o.Shifted}
	}
	return keymap.NewCodeTable(rows)
}
