// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/chunklist"
)

type verifyParams struct {
	configParams
	cli.JSONOutput
	Chunklist string `json:"chunklist" flag:"chunklist,l" desc:"chunklist path (default: probe <file>.chunklist, <file>.integrityDataV1)"`
	Verbose   bool   `json:"verbose"   flag:"verbose,v"   desc:"show per-chunk progress"`
}

// verifyReport is the --json output of verify. FailedChunk is a
// pointer so that a failure at chunk 0 is distinguishable from a pass.
type verifyReport struct {
	File          string            `json:"file"`
	Chunklist     string            `json:"chunklist"`
	Status        chunklist.Status  `json:"status"`
	FailedChunk   *uint64           `json:"failed_chunk,omitempty"`
	Reason        chunklist.Reason  `json:"reason,omitempty"`
	Expected      *chunklist.Digest `json:"expected,omitempty"`
	Actual        *chunklist.Digest `json:"actual,omitempty"`
	Chunks        uint64            `json:"chunks"`
	ChunksChecked uint64            `json:"chunks_checked"`
	BytesChecked  uint64            `json:"bytes_checked"`
}

func newVerifyReport(target, manifest string, list *chunklist.Chunklist, result chunklist.Result) verifyReport {
	report := verifyReport{
		File:          target,
		Chunklist:     manifest,
		Status:        result.Status,
		Chunks:        list.Header.ChunkCount,
		ChunksChecked: result.ChunksChecked,
		BytesChecked:  result.BytesChecked,
	}
	if !result.Passed() {
		index := result.FailedChunk
		report.FailedChunk = &index
		report.Reason = result.Reason
	}
	if result.Reason == chunklist.ReasonDigestMismatch {
		expected, actual := result.Expected, result.Actual
		report.Expected = &expected
		report.Actual = &actual
	}
	return report
}

func verifyCommand(options *Options) *cli.Command {
	var params verifyParams
	const usage = "cnkl verify <file> [flags]"

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a file against its chunklist",
		Description: `Check a file against a chunklist, reading the file once in order and
stopping at the first chunk whose digest does not match.

Without --chunklist, looks for <file>.chunklist and then
<file>.integrityDataV1 (the probe order is configurable).

Exit status:
  0  every chunk matched
  1  a chunk did not match, or the file has data past the last chunk
  2  the chunklist could not be read
  3  the chunklist is not a chunklist (bad magic, truncated, malformed)
  4  the chunklist uses an unsupported version or chunk method
  5  no chunklist was found
  6  the file could not be read, or is shorter than the chunklist says
  70 an unexpected internal error`,
		Usage: usage,
		Examples: []cli.Example{
			{
				Description: "Verify against image.dmg.chunklist",
				Command:     "cnkl verify image.dmg",
			},
			{
				Description: "Verify against an explicit chunklist, machine-readable",
				Command:     "cnkl verify image.dmg -l manifests/image.chunklist --json",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, usage); err != nil {
				return err
			}
			target := args[0]

			cfg, err := options.loadConfig(params.configParams, params.Verbose)
			if err != nil {
				return err
			}

			manifest := params.Chunklist
			if manifest == "" {
				manifest, err = chunklist.Locate(target, cfg.Extensions)
				if errors.Is(err, chunklist.ErrNotFound) {
					return cli.WithExitCode(cli.ExitNoChunklist,
						cli.NotFound("%w", err).WithHint("Pass --chunklist <path>, or run 'cnkl generate "+target+"' first."))
				}
				if err != nil {
					return manifestError(err)
				}
			}

			logger = logger.With("command", "verify", "file", target, "chunklist", manifest)

			list, err := chunklist.ReadFile(manifest)
			if err != nil {
				return manifestError(err)
			}
			logger.Debug("chunklist loaded",
				"chunks", list.Header.ChunkCount,
				"bytes", list.TotalSize(),
			)

			verifyOptions := chunklist.VerifyOptions{}
			progress := cli.NewProgressPrinter(options.Stderr, logger, "checking")
			if params.Verbose || cfg.Verbose {
				verifyOptions.Progress = progress.Report
			}
			result, err := chunklist.Verify(list, target, verifyOptions)
			progress.Done()
			if err != nil {
				return targetError(err)
			}

			if result.Passed() {
				logger.Info("verification passed", "chunks", result.ChunksChecked)
			} else {
				logger.Warn("verification failed",
					"chunk", result.FailedChunk,
					"reason", result.Reason.String(),
				)
			}

			report := newVerifyReport(target, manifest, list, result)
			if done, err := params.EmitJSON(options.Stdout, report); done {
				if err != nil {
					return err
				}
				return verifyExit(result)
			}

			if result.Passed() {
				fmt.Fprintln(options.Stdout, "verify succeeded.")
				return nil
			}
			fmt.Fprintf(options.Stdout, "verify failed at chunk %d of %d: %s\n",
				result.FailedChunk, list.Header.ChunkCount, result.Reason)
			if result.Reason == chunklist.ReasonDigestMismatch {
				fmt.Fprintf(options.Stdout, "  expected %s\n  actual   %s\n", result.Expected, result.Actual)
			}
			return verifyExit(result)
		},
	}
}

// verifyExit is silent: the outcome has already been printed.
func verifyExit(result chunklist.Result) error {
	if result.Passed() {
		return nil
	}
	return &cli.ExitError{Code: cli.ExitVerifyFailed}
}
