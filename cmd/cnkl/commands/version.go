// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(options *Options) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			if done, err := params.EmitJSON(options.Stdout, version.Current()); done {
				return err
			}
			fmt.Fprintf(options.Stdout, "cnkl %s\n", version.Full())
			return nil
		},
	}
}
