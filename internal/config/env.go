package config

import (
	"time"

	"github.com/xyproto/env/v2"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel      = "NATUREKEYS_LOG_LEVEL"
	EnvLogOutput     = "NATUREKEYS_LOG_OUTPUT"
	EnvTrace         = "NATUREKEYS_TRACE"
	EnvTraceOutput   = "NATUREKEYS_TRACE_OUTPUT"
	EnvWatchDebounce = "NATUREKEYS_WATCH_DEBOUNCE" // milliseconds
	EnvScriptTimeout = "NATUREKEYS_SCRIPT_TIMEOUT" // milliseconds
)

// ApplyEnv overrides cfg with any NATUREKEYS_* variables that are set.
// Empty values leave the configured value alone. The environment is
// re-read on every call.
func (c *Config) ApplyEnv() {
	env.Load()
	if env.Has(EnvLogLevel) {
		c.Log.Level = env.Str(EnvLogLevel)
	}
	if env.Has(EnvLogOutput) {
		c.Log.Output = env.Str(EnvLogOutput)
	}
	if env.Has(EnvTrace) {
		c.Trace.Format = env.Str(EnvTrace)
	}
	if env.Has(EnvTraceOutput) {
		c.Trace.Output = env.Str(EnvTraceOutput)
	}
	if env.Has(EnvWatchDebounce) {
		ms := env.Int(EnvWatchDebounce, int(c.Watch.Debounce.Std()/time.Millisecond))
		c.Watch.Debounce = Duration(time.Duration(ms) * time.Millisecond)
	}
	if env.Has(EnvScriptTimeout) {
		ms := env.Int(EnvScriptTimeout, int(c.Script.Timeout.Std()/time.Millisecond))
		c.Script.Timeout = Duration(time.Duration(ms) * time.Millisecond)
	}
}
