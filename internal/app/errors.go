// Package app wires configuration, logging, the simulated keyboard and its
// front ends into one runnable application.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoScenarios indicates a scenario run was requested with no files.
	ErrNoScenarios = errors.New("no scenario files given")

	// ErrScenariosFailed indicates at least one scenario failed.
	ErrScenariosFailed = errors.New("scenarios failed")

	// ErrInteractiveWatch indicates -interactive and -watch were combined.
	ErrInteractiveWatch = errors.New("interactive mode cannot watch files")

	// ErrNotATerminal indicates interactive mode without a terminal on stdin.
	ErrNotATerminal = errors.New("stdin is not a terminal")
)

// InitError reports which component failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "watch")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
