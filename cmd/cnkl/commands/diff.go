// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/chunklist"
)

type diffParams struct {
	cli.JSONOutput
}

func diffCommand(options *Options) *cli.Command {
	var params diffParams
	const usage = "cnkl diff <old-chunklist> <new-chunklist> [flags]"

	return &cli.Command{
		Name:    "diff",
		Summary: "List the chunks that differ between two chunklists",
		Description: `Compare two chunklists of the same file record by record and list
the chunk indexes whose size or digest changed, plus chunks present in
only one of them.

Exits 0 when the chunklists describe identical content and 1 when they
differ. Lists generated with different chunk sizes are reported as
such; an index-wise comparison of them is meaningless.`,
		Usage: usage,
		Examples: []cli.Example{
			{
				Description: "See which 10MiB ranges of an image changed between builds",
				Command:     "cnkl diff build-41/image.dmg.chunklist build-42/image.dmg.chunklist",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 2, usage); err != nil {
				return err
			}

			older, err := chunklist.ReadFile(args[0])
			if err != nil {
				return manifestError(err)
			}
			newer, err := chunklist.ReadFile(args[1])
			if err != nil {
				return manifestError(err)
			}

			diff := chunklist.Compare(older, newer)
			logger.Debug("chunklists compared",
				"command", "diff",
				"old", args[0],
				"new", args[1],
				"changed", len(diff.Changed),
			)

			if done, err := params.EmitJSON(options.Stdout, diff); done {
				if err != nil {
					return err
				}
				return diffExit(diff)
			}

			if diff.Identical() {
				fmt.Fprintln(options.Stdout, "identical.")
				return nil
			}
			if diff.ChunkingChanged {
				fmt.Fprintf(options.Stdout, "chunk sizes differ (%d vs %d bytes); lists were generated with different chunk sizes\n",
					older.Records[0].Size, newer.Records[0].Size)
			}
			if len(diff.Changed) > 0 {
				indexes := make([]string, len(diff.Changed))
				for i, index := range diff.Changed {
					indexes[i] = fmt.Sprint(index)
				}
				fmt.Fprintf(options.Stdout, "changed: %d chunk(s): %s\n", len(diff.Changed), strings.Join(indexes, " "))
			}
			if diff.Added > 0 {
				fmt.Fprintf(options.Stdout, "added: %d chunk(s) at end\n", diff.Added)
			}
			if diff.Removed > 0 {
				fmt.Fprintf(options.Stdout, "removed: %d chunk(s) from end\n", diff.Removed)
			}
			return diffExit(diff)
		},
	}
}

func diffExit(diff *chunklist.Diff) error {
	if diff.Identical() {
		return nil
	}
	return &cli.ExitError{Code: cli.ExitVerifyFailed}
}
