package script

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKey is raised when a script names a key that does not parse.
	ErrUnknownKey = errors.New("unknown key")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script timed out")
)

// ExpectationError reports a failed expect_* call.
type ExpectationError struct {
	Script string
	Where  string // "name:line:" as reported by the Lua state
	Check  string // expect_text, expect_state, ...
	Got    string
	Want   string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%s %s: got %q, want %q", e.Where, e.Check, e.Got, e.Want)
}

// ScriptError wraps a Lua compile or runtime error.
type ScriptError struct {
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
