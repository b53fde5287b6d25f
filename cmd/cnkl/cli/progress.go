// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/chunklist/lib/chunklist"
)

// ProgressPrinter renders chunk progress from the generator or
// verifier. On a terminal it redraws one status line with \r; anywhere
// else it logs each chunk at debug level so piped output stays clean.
type ProgressPrinter struct {
	out      io.Writer
	logger   *slog.Logger
	verb     string
	terminal bool
	drawn    bool
	bytes    uint64
}

// NewProgressPrinter returns a printer writing to out. verb labels the
// line ("checking", "hashing").
func NewProgressPrinter(out io.Writer, logger *slog.Logger, verb string) *ProgressPrinter {
	return &ProgressPrinter{
		out:      out,
		logger:   logger,
		verb:     verb,
		terminal: IsTerminal(out),
	}
}

// Report is a chunklist progress observer.
func (p *ProgressPrinter) Report(progress chunklist.Progress) {
	p.bytes += uint64(progress.Size)
	if !p.terminal {
		p.logger.Debug(p.verb+" chunk",
			"index", progress.Index,
			"count", progress.Count,
			"size", progress.Size,
		)
		return
	}
	fmt.Fprintf(p.out, "\r%s chunk %d/%d (%s)", p.verb, progress.Index+1, progress.Count, humanize.IBytes(p.bytes))
	p.drawn = true
}

// Done ends the status line, if one was drawn.
func (p *ProgressPrinter) Done() {
	if p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}
