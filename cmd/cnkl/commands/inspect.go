// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/chunklist/cmd/cnkl/cli"
	"github.com/bureau-foundation/chunklist/lib/chunklist"
	"github.com/bureau-foundation/chunklist/lib/codec"
)

type inspectParams struct {
	Format  string `json:"format"  flag:"format,f" desc:"output format: text, json, yaml, cbor, diag" default:"text"`
	Records bool   `json:"records" flag:"records"  desc:"include the per-chunk record table"`
}

// inspectSummary is what inspect reports about one chunklist. Field
// names are shared by the JSON, YAML, and CBOR renderings.
type inspectSummary struct {
	Path             string  `json:"path"               yaml:"path"`
	FileVersion      uint8   `json:"file_version"       yaml:"file_version"`
	ChunkMethod      uint8   `json:"chunk_method"       yaml:"chunk_method"`
	Supported        bool    `json:"supported"          yaml:"supported"`
	SignatureMethod  string  `json:"signature_method"   yaml:"signature_method"`
	SignatureBytes   int     `json:"signature_bytes"    yaml:"signature_bytes"`
	HeaderSize       uint32  `json:"header_size"        yaml:"header_size"`
	ChunkTableOffset uint64  `json:"chunk_table_offset" yaml:"chunk_table_offset"`
	SignatureOffset  uint64  `json:"signature_offset"   yaml:"signature_offset"`
	Chunks           uint64  `json:"chunks"             yaml:"chunks"`
	TotalSize        uint64  `json:"total_size"         yaml:"total_size"`
	NominalChunkSize uint32  `json:"nominal_chunk_size" yaml:"nominal_chunk_size"`
	Fingerprint      string  `json:"fingerprint"        yaml:"fingerprint"`
	DigestRoot       string  `json:"digest_root"        yaml:"digest_root"`
	Records          []entry `json:"records,omitempty"  yaml:"records,omitempty"`
}

type entry struct {
	Index  uint64           `json:"index"  yaml:"index"`
	Offset uint64           `json:"offset" yaml:"offset"`
	Size   uint32           `json:"size"   yaml:"size"`
	Digest chunklist.Digest `json:"digest" yaml:"digest"`
}

// summarize builds the inspect view of list. The fingerprint covers
// the canonical re-encoding, so two files that differ only in padding
// or the reserved byte share it.
func summarize(path string, list *chunklist.Chunklist, withRecords bool) (inspectSummary, error) {
	encoded, err := list.MarshalBinary()
	if err != nil {
		return inspectSummary{}, err
	}

	header := list.Header
	summary := inspectSummary{
		Path:             path,
		FileVersion:      header.FileVersion,
		ChunkMethod:      header.ChunkMethod,
		Supported:        chunklist.CheckSupported(header) == nil,
		SignatureMethod:  header.SignatureMethod.String(),
		SignatureBytes:   len(list.Signature),
		HeaderSize:       header.HeaderSize,
		ChunkTableOffset: header.ChunkTableOffset,
		SignatureOffset:  header.SignatureOffset,
		Chunks:           header.ChunkCount,
		TotalSize:        list.TotalSize(),
		Fingerprint:      chunklist.FormatFingerprint(chunklist.Fingerprint(encoded)),
		DigestRoot:       chunklist.DigestRoot(list.Records).String(),
	}
	if len(list.Records) > 0 {
		summary.NominalChunkSize = list.Records[0].Size
	}

	if withRecords {
		var offset uint64
		summary.Records = make([]entry, len(list.Records))
		for i, record := range list.Records {
			summary.Records[i] = entry{Index: uint64(i), Offset: offset, Size: record.Size, Digest: record.Digest}
			offset += uint64(record.Size)
		}
	}
	return summary, nil
}

func inspectCommand(options *Options) *cli.Command {
	var params inspectParams
	const usage = "cnkl inspect <chunklist> [flags]"

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show a chunklist's header, totals, and fingerprint",
		Description: `Decode a chunklist and print what it describes: format version,
chunk method, signature method, chunk count, total size, and two
BLAKE3 identities.

The fingerprint (cnkl-<12 hex>) identifies the manifest itself. The
digest root is a Merkle root over the chunk digests: two chunklists
with the same root describe the same content under the same chunking,
whatever their headers say.

Chunklists with an unknown version or chunk method are still shown
(marked unsupported); verify refuses them.`,
		Usage: usage,
		Examples: []cli.Example{
			{
				Description: "Summarize a chunklist",
				Command:     "cnkl inspect image.dmg.chunklist",
			},
			{
				Description: "List every chunk as YAML",
				Command:     "cnkl inspect image.dmg.chunklist --records --format yaml",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, usage); err != nil {
				return err
			}
			path := args[0]

			list, err := chunklist.ReadFile(path)
			if err != nil {
				return manifestError(err)
			}

			summary, err := summarize(path, list, params.Records)
			if err != nil {
				return cli.Internal("summarizing %s: %w", path, err)
			}
			logger.Debug("chunklist decoded", "command", "inspect", "path", path, "chunks", summary.Chunks)

			return writeSummary(options.Stdout, summary, params.Format)
		},
	}
}

func writeSummary(w io.Writer, summary inspectSummary, format string) error {
	switch format {
	case "text", "":
		return writeSummaryText(w, summary)

	case "json":
		return cli.WriteJSON(w, summary)

	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()

	case "cbor":
		return codec.NewEncoder(w).Encode(summary)

	case "diag":
		data, err := codec.Marshal(summary)
		if err != nil {
			return fmt.Errorf("encoding CBOR: %w", err)
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("CBOR diagnostic notation: %w", err)
		}
		_, err = fmt.Fprintln(w, notation)
		return err

	default:
		return cli.Validation("unknown --format %q (want text, json, yaml, cbor, or diag)", format)
	}
}

func writeSummaryText(w io.Writer, summary inspectSummary) error {
	support := ""
	if !summary.Supported {
		support = " (unsupported)"
	}
	signature := summary.SignatureMethod
	if summary.SignatureBytes > 0 {
		signature += fmt.Sprintf(" (%d-byte signature block)", summary.SignatureBytes)
	} else {
		signature += " (no signature block)"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "chunklist:\t%s\n", summary.Path)
	fmt.Fprintf(tw, "format:\tversion %d, chunk method %d%s\n", summary.FileVersion, summary.ChunkMethod, support)
	fmt.Fprintf(tw, "signature:\t%s\n", signature)
	fmt.Fprintf(tw, "chunks:\t%d\n", summary.Chunks)
	fmt.Fprintf(tw, "total size:\t%s (%d bytes)\n", humanize.IBytes(summary.TotalSize), summary.TotalSize)
	fmt.Fprintf(tw, "chunk size:\t%s\n", humanize.IBytes(uint64(summary.NominalChunkSize)))
	fmt.Fprintf(tw, "layout:\theader %d, table at %d, signature at %d\n",
		summary.HeaderSize, summary.ChunkTableOffset, summary.SignatureOffset)
	fmt.Fprintf(tw, "fingerprint:\t%s\n", summary.Fingerprint)
	fmt.Fprintf(tw, "digest root:\t%s\n", summary.DigestRoot)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(summary.Records) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "INDEX\tOFFSET\tSIZE\t  DIGEST\n")
	for _, record := range summary.Records {
		fmt.Fprintf(tw, "%d\t%d\t%d\t  %s\n", record.Index, record.Offset, record.Size, record.Digest)
	}
	return tw.Flush()
}
