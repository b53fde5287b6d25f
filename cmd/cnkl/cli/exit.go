// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
)

// Exit codes. Callers of cnkl branch on these, so each failure class
// has its own code.
const (
	ExitOK                  = 0
	ExitVerifyFailed        = 1
	ExitChunklistUnreadable = 2
	ExitNotChunklist        = 3
	ExitUnsupported         = 4
	ExitNoChunklist         = 5
	ExitTargetUnreadable    = 6
	ExitWriteFailed         = 7
	ExitUsage               = 64
	ExitInternal            = 70
	ExitConfig              = 78
)

// ExitError carries an exit code. With a nil Err, the command has
// already written its own output and [Report] prints nothing. With a
// non-nil Err, Report prints it before exiting with Code.
//
// This is useful for commands where a non-zero exit is a valid
// outcome (e.g., "verify" returning 1 for a mismatch) rather than an
// unexpected error.
type ExitError struct {
	Code int
	Err  error
}

// WithExitCode wraps err so that it exits with code.
func WithExitCode(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Report writes err to w (if it has something to say) and returns the
// process exit status for it.
func Report(err error, w io.Writer) int {
	if err == nil {
		return ExitOK
	}

	code := ExitInternal
	var exitError *ExitError
	var toolError *ToolError
	switch {
	case errors.As(err, &exitError):
		code = exitError.Code
		if exitError.Err == nil {
			return code
		}
	case errors.As(err, &toolError) && toolError.Category == CategoryValidation:
		code = ExitUsage
	}

	fmt.Fprintf(w, "error: %v\n", err)
	return code
}
