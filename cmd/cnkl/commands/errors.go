// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/chunklist"
)

// formatExitCode maps a format error to its exit code, or returns
// false if err carries none.
func formatExitCode(err error) (int, bool) {
	var formatError *chunklist.FormatError
	if !errors.As(err, &formatError) {
		return 0, false
	}
	if formatError.Kind == chunklist.UnsupportedVersion {
		return cli.ExitUnsupported, true
	}
	return cli.ExitNotChunklist, true
}

// manifestError classifies a failure to load a chunklist.
func manifestError(err error) error {
	if code, ok := formatExitCode(err); ok {
		return cli.WithExitCode(code, err)
	}
	var ioError *chunklist.IOError
	if errors.As(err, &ioError) {
		return cli.WithExitCode(cli.ExitChunklistUnreadable, err)
	}
	return err
}

// targetError classifies a failure while reading the target file.
func targetError(err error) error {
	if code, ok := formatExitCode(err); ok {
		return cli.WithExitCode(code, err)
	}
	if errors.Is(err, chunklist.ErrInvalidChunkSize) {
		return cli.Validation("%w", err)
	}
	var ioError *chunklist.IOError
	if errors.As(err, &ioError) {
		return cli.WithExitCode(cli.ExitTargetUnreadable, err)
	}
	return err
}

// requireArgs returns a usage error unless exactly want positional
// arguments were given.
func requireArgs(args []string, want int, usage string) error {
	if len(args) != want {
		return cli.Validation("expected %d argument(s), got %d\n\nUsage: %s", want, len(args), usage)
	}
	return nil
}
