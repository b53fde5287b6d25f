// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// cnkl generates and verifies chunklist manifests.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/cmd/cnkl/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	level := new(slog.LevelVar)
	logger := cli.NewCommandLogger(os.Stderr, level)

	root := commands.Root(commands.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Level:  level,
	})
	return cli.Report(root.Execute(context.Background(), os.Args[1:], logger), os.Stderr)
}
