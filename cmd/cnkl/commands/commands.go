// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the cnkl command tree.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
)

// Options carries the process environment the commands write to.
// Zero fields fall back to the real stdout and stderr.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Level is the logger's level. Commands lower it after loading
	// configuration or seeing --verbose.
	Level *slog.LevelVar
}

func (o *Options) applyDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Level == nil {
		o.Level = new(slog.LevelVar)
	}
}

// Root builds and returns the complete cnkl command tree.
func Root(options Options) *cli.Command {
	options.applyDefaults()

	return &cli.Command{
		Name: "cnkl",
		Description: `cnkl: generate and verify chunklist manifests.

A chunklist records the SHA-256 digest of every fixed-size chunk of a
file. Verification reads the file once, front to back, and reports the
first chunk that does not match.`,
		Subcommands: []*cli.Command{
			generateCommand(&options),
			verifyCommand(&options),
			inspectCommand(&options),
			diffCommand(&options),
			versionCommand(&options),
		},
		Examples: []cli.Example{
			{
				Description: "Write image.dmg.chunklist next to the image",
				Command:     "cnkl generate image.dmg",
			},
			{
				Description: "Verify the image against its chunklist",
				Command:     "cnkl verify image.dmg",
			},
			{
				Description: "Show a chunklist's header and fingerprint",
				Command:     "cnkl inspect image.dmg.chunklist",
			},
		},
	}
}
