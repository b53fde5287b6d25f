// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/chunklist"
	"github.com/bureau-foundation/chunklist/lib/config"
)

type generateParams struct {
	configParams
	cli.JSONOutput
	Output          string `json:"output"           flag:"output,l"         desc:"chunklist path (default <file>.chunklist)"`
	ChunkSize       string `json:"chunk_size"       flag:"chunk-size"       desc:"nominal chunk size, e.g. 10MiB (default from config)"`
	SignatureMethod string `json:"signature_method" flag:"signature-method" desc:"signature method to record: none, rev1, rev2 (default from config)"`
	Verbose         bool   `json:"verbose"          flag:"verbose,v"        desc:"show per-chunk progress"`
}

// generateResult is the --json output of generate.
type generateResult struct {
	File            string `json:"file"`
	Chunklist       string `json:"chunklist"`
	Chunks          uint64 `json:"chunks"`
	Bytes           uint64 `json:"bytes"`
	ChunkSize       uint64 `json:"chunk_size"`
	SignatureMethod string `json:"signature_method"`
	Fingerprint     string `json:"fingerprint"`
}

func generateCommand(options *Options) *cli.Command {
	var params generateParams
	const usage = "cnkl generate <file> [flags]"

	return &cli.Command{
		Name:    "generate",
		Summary: "Write a chunklist for a file",
		Description: `Read a file once and write its chunklist: one SHA-256 digest per
fixed-size chunk. The last chunk holds the remainder (or a full chunk
when the length is an exact multiple); an empty file gets a valid
manifest with no chunks.

The chunklist is written to a temporary file in the destination
directory and renamed into place, so a failed run never leaves a
partial manifest behind.`,
		Usage: usage,
		Examples: []cli.Example{
			{
				Description: "Generate image.dmg.chunklist with the default 10MiB chunks",
				Command:     "cnkl generate image.dmg",
			},
			{
				Description: "Use 1MiB chunks and an explicit output path",
				Command:     "cnkl generate image.dmg --chunk-size 1MiB -l /tmp/image.chunklist",
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

			generateOptions := chunklist.NewGenerateOptions()
			generateOptions.ChunkSize = uint64(cfg.ChunkSize)
			generateOptions.SignatureMethod = cfg.SignatureMethodValue()
			if params.ChunkSize != "" {
				size, err := config.ParseByteSize(params.ChunkSize)
				if err != nil {
					return cli.Validation("--chunk-size: %w", err)
				}
				if size == 0 {
					// Zero in GenerateOptions means "default"; on the
					// command line it is a mistake.
					return cli.Validation("--chunk-size: %w: 0", chunklist.ErrInvalidChunkSize)
				}
				generateOptions.ChunkSize = uint64(size)
			}
			if params.SignatureMethod != "" {
				method, err := chunklist.ParseSignatureMethod(params.SignatureMethod)
				if err != nil {
					return cli.Validation("--signature-method: %w", err)
				}
				generateOptions.SignatureMethod = method
			}

			output := params.Output
			if output == "" {
				output = target + "." + cfg.Extensions[0]
				if cfg.OutputDirectory != "" {
					output = filepath.Join(cfg.OutputDirectory, filepath.Base(output))
				}
			}

			logger = logger.With("command", "generate", "file", target)
			logger.Debug("generating chunklist",
				"chunk_size", generateOptions.ChunkSize,
				"signature_method", generateOptions.SignatureMethod.String(),
				"output", output,
			)

			progress := cli.NewProgressPrinter(options.Stderr, logger, "hashing")
			if params.Verbose || cfg.Verbose {
				generateOptions.Progress = progress.Report
			}
			list, err := chunklist.Generate(target, generateOptions)
			progress.Done()
			if err != nil {
				return targetError(err)
			}

			if err := chunklist.WriteFile(output, list); err != nil {
				return cli.WithExitCode(cli.ExitWriteFailed, fmt.Errorf("writing chunklist: %w", err))
			}

			logger.Info("chunklist written",
				"output", output,
				"chunks", list.Header.ChunkCount,
				"bytes", list.TotalSize(),
			)

			encoded, err := list.MarshalBinary()
			if err != nil {
				return cli.Internal("re-encoding chunklist: %w", err)
			}
			result := generateResult{
				File:            target,
				Chunklist:       output,
				Chunks:          list.Header.ChunkCount,
				Bytes:           list.TotalSize(),
				ChunkSize:       generateOptions.ChunkSize,
				SignatureMethod: list.Header.SignatureMethod.String(),
				Fingerprint:     chunklist.FormatFingerprint(chunklist.Fingerprint(encoded)),
			}
			if done, err := params.EmitJSON(options.Stdout, result); done {
				return err
			}

			fmt.Fprintf(options.Stdout, "generated at: %s (%d chunks, %s)\n",
				output, result.Chunks, humanize.IBytes(result.Bytes))
			return nil
		},
	}
}
